package ranking

import (
	"sort"

	"github.com/alejandrodnm/rankcast/internal/domain"
	"github.com/alejandrodnm/rankcast/internal/ports"
)

// Ranker ordena respuestas candidatas por un score híbrido de similitud
// textual y engagement, con penalización de respuestas cortas.
type Ranker struct {
	weights  Weights
	observer ports.RankObserver
}

// Option configura un Ranker.
type Option func(*Ranker)

// WithWeights sustituye los pesos por defecto.
func WithWeights(w Weights) Option {
	return func(r *Ranker) { r.weights = w.withDefaults() }
}

// WithObserver inyecta el receptor de trazas de diagnóstico.
func WithObserver(o ports.RankObserver) Option {
	return func(r *Ranker) {
		if o != nil {
			r.observer = o
		}
	}
}

// New crea un Ranker con los pesos por defecto y sin trazas.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		weights:  DefaultWeights(),
		observer: ports.NopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Weights devuelve los pesos efectivos.
func (r *Ranker) Weights() Weights {
	return r.weights
}

// Rank puntúa cada respuesta y las devuelve ordenadas por score desc.
// El orden es estable: con scores iguales se respeta el orden de entrada.
func (r *Ranker) Rank(question string, answers []domain.Answer) []domain.ScoredAnswer {
	r.observer.RankingStarted(question, len(answers))
	qTokens := domain.Preprocess(question)

	scored := make([]domain.ScoredAnswer, 0, len(answers))
	for _, ans := range answers {
		scored = append(scored, r.score(qTokens, ans))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// score calcula todas las métricas de una respuesta.
func (r *Ranker) score(qTokens []string, ans domain.Answer) domain.ScoredAnswer {
	metrics := domain.AnswerMetrics{
		Jaccard: domain.Jaccard(qTokens, domain.Preprocess(ans.Text)),
		CTR:     domain.CTR(ans.Upvotes, ans.Impressions),
		Upvotes: ans.Upvotes,
		Penalty: domain.LengthPenalty(ans.Text, r.weights.MinWords, r.weights.ShortPenalty),
	}
	if metrics.Penalty != 0 {
		r.observer.ShortAnswerPenalized(ans.Text, domain.WordCount(ans.Text))
	}

	return domain.ScoredAnswer{
		Text:    ans.Text,
		Score:   domain.AnswerScore(metrics, r.weights.Jaccard, r.weights.CTR, r.weights.Upvotes),
		Metrics: metrics,
	}
}

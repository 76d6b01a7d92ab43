package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/rankcast/internal/domain"
	"github.com/alejandrodnm/rankcast/internal/ports"
	"github.com/google/uuid"
)

// AnswerRanker es el subconjunto de ranking.Ranker que usa el Service.
type AnswerRanker interface {
	Rank(question string, answers []domain.Answer) []domain.ScoredAnswer
}

// SalesForecaster es el subconjunto de forecast.Forecaster que usa el Service.
type SalesForecaster interface {
	PredictISO(items []string, targetDate string) (domain.Forecast, error)
}

// Service orquesta score → notify → persist para cada petición.
// Cada llamada es independiente; no comparte estado salvo el historial del forecaster.
type Service struct {
	ranker     AnswerRanker
	forecaster SalesForecaster
	notifier   ports.Notifier
	store      ports.RunStore // nil = dry-run, no se persiste nada
	now        func() time.Time
}

// New crea un Service con todas las dependencias inyectadas. store puede ser nil.
func New(ranker AnswerRanker, forecaster SalesForecaster, notifier ports.Notifier, store ports.RunStore) *Service {
	return &Service{
		ranker:     ranker,
		forecaster: forecaster,
		notifier:   notifier,
		store:      store,
		now:        time.Now,
	}
}

// Rank ordena las respuestas, las presenta y guarda el run.
func (s *Service) Rank(ctx context.Context, question string, answers []domain.Answer) (domain.RankingRun, error) {
	if err := ctx.Err(); err != nil {
		return domain.RankingRun{}, fmt.Errorf("scoring.Rank: %w", err)
	}
	start := time.Now()

	run := domain.RankingRun{
		RunID:     uuid.New().String(),
		CreatedAt: s.now().UTC(),
		Question:  question,
		Answers:   s.ranker.Rank(question, answers),
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyRanking(ctx, question, run.Answers); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}

	if s.store != nil {
		if err := s.store.SaveRanking(ctx, run); err != nil {
			slog.Warn("storage error", "err", err, "run_id", run.RunID)
		}
	}

	slog.Debug("ranking complete",
		"run_id", run.RunID,
		"answers", len(run.Answers),
		"duration", time.Since(start).Round(time.Microsecond),
	)
	return run, nil
}

// Forecast predice las ventas, las presenta y guarda el run.
// Errores de fecha o de historial vacío se devuelven sin notificar ni persistir.
func (s *Service) Forecast(ctx context.Context, items []string, targetDate string) (domain.ForecastRun, error) {
	if err := ctx.Err(); err != nil {
		return domain.ForecastRun{}, fmt.Errorf("scoring.Forecast: %w", err)
	}
	start := time.Now()

	fc, err := s.forecaster.PredictISO(items, targetDate)
	if err != nil {
		return domain.ForecastRun{}, fmt.Errorf("scoring.Forecast: %w", err)
	}

	run := domain.ForecastRun{
		RunID:     uuid.New().String(),
		CreatedAt: s.now().UTC(),
		Forecast:  fc,
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyForecast(ctx, fc); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}

	if s.store != nil {
		if err := s.store.SaveForecast(ctx, run); err != nil {
			slog.Warn("storage error", "err", err, "run_id", run.RunID)
		}
	}

	slog.Debug("forecast complete",
		"run_id", run.RunID,
		"predicted_units", fc.PredictedUnits,
		"cold_start", fc.ColdStart,
		"duration", time.Since(start).Round(time.Microsecond),
	)
	return run, nil
}

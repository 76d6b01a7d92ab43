package notify

import (
	"log/slog"
	"time"

	"github.com/alejandrodnm/rankcast/internal/domain"
)

// LogObserver implementa ports.RankObserver y ports.ForecastObserver sobre slog.
type LogObserver struct {
	log *slog.Logger
}

// NewLogObserver crea un observer que escribe en el logger dado (o el default si es nil).
func NewLogObserver(log *slog.Logger) *LogObserver {
	if log == nil {
		log = slog.Default()
	}
	return &LogObserver{log: log}
}

func (o *LogObserver) RankingStarted(question string, answers int) {
	o.log.Debug("ranking answers", "question", question, "answers", answers)
}

func (o *LogObserver) ShortAnswerPenalized(text string, words int) {
	o.log.Info("penalty applied to short answer", "text", text, "words", words)
}

func (o *LogObserver) ForecastStarted(items []string, target time.Time) {
	o.log.Debug("predicting sales", "date", target.Format(domain.DateLayout), "items", items)
}

func (o *LogObserver) ColdStartDetected(fallback float64, historySize int) {
	o.log.Info("cold start detected: using average of all historical sales",
		"fallback_units", fallback,
		"history_size", historySize,
	)
}

func (o *LogObserver) MatchFound(top domain.ForecastCandidate) {
	o.log.Info("most similar past promotion",
		"id", top.ID,
		"similarity", top.Similarity,
		"seasonality_boost", top.SeasonalityBoost,
		"units", top.Units,
	)
}

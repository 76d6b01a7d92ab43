package ports

import (
	"time"

	"github.com/alejandrodnm/rankcast/internal/domain"
)

// RankObserver recibe las trazas de diagnóstico del ranker.
type RankObserver interface {
	RankingStarted(question string, answers int)
	ShortAnswerPenalized(text string, words int)
}

// ForecastObserver recibe las trazas de diagnóstico del forecaster.
type ForecastObserver interface {
	ForecastStarted(items []string, target time.Time)
	ColdStartDetected(fallback float64, historySize int)
	MatchFound(top domain.ForecastCandidate)
}

// NopObserver descarta todas las trazas. Es el default del core.
type NopObserver struct{}

func (NopObserver) RankingStarted(string, int)          {}
func (NopObserver) ShortAnswerPenalized(string, int)    {}
func (NopObserver) ForecastStarted([]string, time.Time) {}
func (NopObserver) ColdStartDetected(float64, int)      {}
func (NopObserver) MatchFound(domain.ForecastCandidate) {}

package domain

import "time"

// RankingRun es el registro de una ejecución del ranker.
type RankingRun struct {
	RunID     string
	CreatedAt time.Time
	Question  string
	Answers   []ScoredAnswer
}

// ForecastRun es el registro de una ejecución del forecaster.
type ForecastRun struct {
	RunID     string
	CreatedAt time.Time
	Forecast  Forecast
}

package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/alejandrodnm/rankcast/internal/adapters/storage"
	"github.com/alejandrodnm/rankcast/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRankingRun(id string) domain.RankingRun {
	return domain.RankingRun{
		RunID:     id,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Question:  "How to learn system design?",
		Answers: []domain.ScoredAnswer{
			{Text: "Read DDIA and practice with case studies.", Score: 1.3, Metrics: domain.AnswerMetrics{Jaccard: 0.1, CTR: 0.3, Upvotes: 300}},
			{Text: "Yes.", Score: -0.35, Metrics: domain.AnswerMetrics{CTR: 0.04, Upvotes: 2, Penalty: -0.5}},
		},
	}
}

func makeForecastRun(id string, created time.Time, cold bool) domain.ForecastRun {
	return domain.ForecastRun{
		RunID:     id,
		CreatedAt: created,
		Forecast: domain.Forecast{
			Items:          []string{"heater", "jacket"},
			TargetDate:     time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC),
			PredictedUnits: 3000,
			ColdStart:      cold,
			Candidates: []domain.ForecastCandidate{
				{ID: "PROMO_WINTER", Similarity: 0.7, Units: 3000, Items: []string{"heater", "jacket", "gloves"}, SeasonalityBoost: 0.2},
				{ID: "PROMO_JULY", Similarity: 0, Units: 8000, Items: []string{"ps5"}},
			},
		},
	}
}

func TestSQLiteStorage_SaveAndGetRanking(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	run := makeRankingRun("run-1")
	require.NoError(t, db.SaveRanking(ctx, run))

	got, err := db.GetRanking(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, run.Question, got.Question)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Answers, 2)
	// se mantiene el orden del ranking
	assert.Equal(t, run.Answers[0].Text, got.Answers[0].Text)
	assert.Equal(t, -0.5, got.Answers[1].Metrics.Penalty)
	assert.Equal(t, 300, got.Answers[0].Metrics.Upvotes)
	assert.InDelta(t, -0.35, got.Answers[1].Score, 1e-12)
}

func TestSQLiteStorage_GetRanking_NotFound(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.GetRanking(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSQLiteStorage_DuplicateRunID(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, db.SaveRanking(ctx, makeRankingRun("dup")))
	assert.Error(t, db.SaveRanking(ctx, makeRankingRun("dup")))
}

func TestSQLiteStorage_SaveEmptyRanking(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	run := domain.RankingRun{RunID: "empty", CreatedAt: time.Now(), Question: "?"}
	require.NoError(t, db.SaveRanking(ctx, run))

	got, err := db.GetRanking(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, got.Answers)
}

func TestSQLiteStorage_SaveAndRecentForecasts(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, db.SaveForecast(ctx, makeForecastRun("old", base.Add(-time.Hour), true)))
	require.NoError(t, db.SaveForecast(ctx, makeForecastRun("new", base, false)))

	runs, err := db.RecentForecasts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// más reciente primero
	assert.Equal(t, "new", runs[0].RunID)
	assert.Equal(t, "old", runs[1].RunID)
	assert.True(t, runs[1].Forecast.ColdStart)

	fc := runs[0].Forecast
	assert.Equal(t, []string{"heater", "jacket"}, fc.Items)
	assert.Equal(t, "2025-12-10", fc.TargetDate.Format(domain.DateLayout))
	assert.Equal(t, 3000.0, fc.PredictedUnits)
	require.Len(t, fc.Candidates, 2)
	assert.Equal(t, "PROMO_WINTER", fc.Candidates[0].ID)
	assert.Equal(t, []string{"heater", "jacket", "gloves"}, fc.Candidates[0].Items)
	assert.Equal(t, 0.2, fc.Candidates[0].SeasonalityBoost)
}

func TestSQLiteStorage_RecentForecasts_Limit(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	base := time.Now().UTC()
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, db.SaveForecast(ctx, makeForecastRun(id, base.Add(time.Duration(i)*time.Minute), false)))
	}

	runs, err := db.RecentForecasts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].RunID)
	assert.Equal(t, "b", runs[1].RunID)
}

func TestSQLiteStorage_RecentForecasts_Empty(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	runs, err := db.RecentForecasts(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

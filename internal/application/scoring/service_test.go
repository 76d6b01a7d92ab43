package scoring_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alejandrodnm/rankcast/internal/application/scoring"
	"github.com/alejandrodnm/rankcast/internal/domain"
	"github.com/alejandrodnm/rankcast/internal/forecast"
	"github.com/alejandrodnm/rankcast/internal/ranking"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockNotifier struct {
	rankings  [][]domain.ScoredAnswer
	forecasts []domain.Forecast
	err       error
}

func (m *mockNotifier) NotifyRanking(_ context.Context, _ string, answers []domain.ScoredAnswer) error {
	m.rankings = append(m.rankings, answers)
	return m.err
}

func (m *mockNotifier) NotifyForecast(_ context.Context, fc domain.Forecast) error {
	m.forecasts = append(m.forecasts, fc)
	return m.err
}

type mockStore struct {
	rankings  []domain.RankingRun
	forecasts []domain.ForecastRun
	err       error
}

func (m *mockStore) SaveRanking(_ context.Context, run domain.RankingRun) error {
	m.rankings = append(m.rankings, run)
	return m.err
}

func (m *mockStore) SaveForecast(_ context.Context, run domain.ForecastRun) error {
	m.forecasts = append(m.forecasts, run)
	return m.err
}

func (m *mockStore) Close() error { return nil }

// --- helpers ---

func newService(t *testing.T, history []domain.Promotion, n *mockNotifier, s *mockStore) *scoring.Service {
	t.Helper()
	f, err := forecast.New(history)
	require.NoError(t, err)
	if s == nil {
		return scoring.New(ranking.New(), f, n, nil)
	}
	return scoring.New(ranking.New(), f, n, s)
}

func TestService_Rank(t *testing.T) {
	n, s := &mockNotifier{}, &mockStore{}
	svc := newService(t, forecast.SeedHistory(), n, s)

	run, err := svc.Rank(context.Background(), "a b c", []domain.Answer{
		{Text: "x", Upvotes: 0, Impressions: 1},
		{Text: "a b c d e", Upvotes: 0, Impressions: 1},
	})
	require.NoError(t, err)

	_, err = uuid.Parse(run.RunID)
	assert.NoError(t, err)
	assert.False(t, run.CreatedAt.IsZero())
	require.Len(t, run.Answers, 2)
	assert.Equal(t, "a b c d e", run.Answers[0].Text)
	assert.InDelta(t, 0.36, run.Answers[0].Score, 1e-12)

	require.Len(t, n.rankings, 1)
	require.Len(t, s.rankings, 1)
	assert.Equal(t, run.RunID, s.rankings[0].RunID)
}

func TestService_Rank_IndependentRunIDs(t *testing.T) {
	svc := newService(t, forecast.SeedHistory(), &mockNotifier{}, nil)

	a, err := svc.Rank(context.Background(), "q", nil)
	require.NoError(t, err)
	b, err := svc.Rank(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestService_Rank_NotifierAndStoreErrorsAreNotFatal(t *testing.T) {
	n := &mockNotifier{err: errors.New("boom")}
	s := &mockStore{err: errors.New("disk full")}
	svc := newService(t, forecast.SeedHistory(), n, s)

	run, err := svc.Rank(context.Background(), "q", []domain.Answer{{Text: "one two three four five", Impressions: 1}})
	require.NoError(t, err)
	assert.Len(t, run.Answers, 1)
}

func TestService_Rank_CancelledContext(t *testing.T) {
	n := &mockNotifier{}
	svc := newService(t, forecast.SeedHistory(), n, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Rank(ctx, "q", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, n.rankings)
}

func TestService_Forecast(t *testing.T) {
	n, s := &mockNotifier{}, &mockStore{}
	svc := newService(t, forecast.SeedHistory(), n, s)

	run, err := svc.Forecast(context.Background(), []string{"iphone14", "samsung_s23", "sony_xm5", "new_gadget"}, "2025-06-15")
	require.NoError(t, err)

	assert.Equal(t, 5500.0, run.Forecast.PredictedUnits)
	assert.False(t, run.Forecast.ColdStart)
	require.Len(t, n.forecasts, 1)
	require.Len(t, s.forecasts, 1)
	assert.Equal(t, run.RunID, s.forecasts[0].RunID)
}

func TestService_Forecast_MalformedDate(t *testing.T) {
	n, s := &mockNotifier{}, &mockStore{}
	svc := newService(t, forecast.SeedHistory(), n, s)

	_, err := svc.Forecast(context.Background(), []string{"a"}, "2025-13-45")
	assert.Error(t, err)
	assert.Empty(t, n.forecasts)
	assert.Empty(t, s.forecasts)
}

func TestService_Forecast_EmptyHistory(t *testing.T) {
	svc := newService(t, nil, &mockNotifier{}, nil)

	_, err := svc.Forecast(context.Background(), []string{"a"}, "2025-01-01")
	assert.ErrorIs(t, err, domain.ErrNoHistory)
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alejandrodnm/rankcast/config"
	"github.com/alejandrodnm/rankcast/internal/adapters/fixtures"
	"github.com/alejandrodnm/rankcast/internal/adapters/notify"
	"github.com/alejandrodnm/rankcast/internal/application/scoring"
	"github.com/alejandrodnm/rankcast/internal/domain"
	"github.com/alejandrodnm/rankcast/internal/forecast"
	"github.com/alejandrodnm/rankcast/internal/ports"
	"github.com/alejandrodnm/rankcast/internal/ranking"
)

// runDemo ejecuta los escenarios de ejemplo. Cada forecast usa un forecaster
// nuevo para que las promociones extra de un escenario no afecten al siguiente.
func runDemo(
	ctx context.Context,
	cfg *config.Config,
	ranker *ranking.Ranker,
	notifier *notify.Console,
	store ports.RunStore,
	history []domain.Promotion,
) error {
	observer := notify.NewLogObserver(slog.Default())

	for i, s := range fixtures.DemoRankings() {
		banner(fmt.Sprintf("RANKING %d: %s", i+1, s.Name))
		svc := scoring.New(ranker, nil, notifier, store)
		if _, err := svc.Rank(ctx, s.Input.Question, s.Input.Answers); err != nil {
			return fmt.Errorf("demo ranking %q: %w", s.Name, err)
		}
	}

	for i, s := range fixtures.DemoForecasts() {
		banner(fmt.Sprintf("FORECAST %d: %s", i+1, s.Name))
		f, err := forecast.New(history,
			forecast.WithSeasonalityBoost(*cfg.Forecaster.SeasonalityBoost),
			forecast.WithObserver(observer),
		)
		if err != nil {
			return fmt.Errorf("demo forecast %q: %w", s.Name, err)
		}
		for _, p := range s.Input.Extra {
			f.AddPromotion(p)
		}

		svc := scoring.New(ranker, f, notifier, store)
		if _, err := svc.Forecast(ctx, s.Input.Items, s.Input.TargetDate); err != nil {
			return fmt.Errorf("demo forecast %q: %w", s.Name, err)
		}
	}

	banner("All examples completed")
	return nil
}

func banner(title string) {
	line := strings.Repeat("=", 60)
	fmt.Printf("\n%s\n%s\n%s\n", line, title, line)
}

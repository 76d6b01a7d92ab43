package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/rankcast/config"
	"github.com/alejandrodnm/rankcast/internal/adapters/fixtures"
	"github.com/alejandrodnm/rankcast/internal/adapters/notify"
	"github.com/alejandrodnm/rankcast/internal/adapters/storage"
	"github.com/alejandrodnm/rankcast/internal/application/scoring"
	"github.com/alejandrodnm/rankcast/internal/domain"
	"github.com/alejandrodnm/rankcast/internal/forecast"
	"github.com/alejandrodnm/rankcast/internal/ports"
	"github.com/alejandrodnm/rankcast/internal/ranking"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	answersPath := flag.String("answers", "", "YAML file with a question and its answers to rank")
	items := flag.String("items", "", "comma-separated items of the planned promotion")
	date := flag.String("date", "", "target date of the planned promotion (YYYY-MM-DD)")
	historyPath := flag.String("history", "", "YAML file with extra historical promotions (appended)")
	demo := flag.Bool("demo", false, "run the built-in example scenarios")
	table := flag.Bool("table", false, "print full tables (default: compact 1-line)")
	dryRun := flag.Bool("dry-run", false, "do not persist runs")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("rankcast starting",
		"config", *configPath,
		"demo", *demo,
		"dry_run", *dryRun,
	)

	observer := notify.NewLogObserver(slog.Default())
	ranker := ranking.New(
		ranking.WithWeights(rankerWeights(cfg.Ranker)),
		ranking.WithObserver(observer),
	)

	history, err := loadHistory(cfg.Forecaster.HistoryFile)
	if err != nil {
		slog.Error("failed to load history", "err", err)
		os.Exit(1)
	}
	forecaster, err := forecast.New(history,
		forecast.WithSeasonalityBoost(*cfg.Forecaster.SeasonalityBoost),
		forecast.WithObserver(observer),
	)
	if err != nil {
		slog.Error("failed to build forecaster", "err", err)
		os.Exit(1)
	}
	if *historyPath != "" {
		extra, err := fixtures.LoadPromotions(*historyPath)
		if err != nil {
			slog.Error("failed to load extra history", "err", err, "path", *historyPath)
			os.Exit(1)
		}
		for _, p := range extra {
			forecaster.AddPromotion(p)
		}
	}

	var store ports.RunStore
	if !*dryRun {
		sqlStore, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer sqlStore.Close()
		store = sqlStore
	}

	notifier := notify.NewConsole(*table)
	svc := scoring.New(ranker, forecaster, notifier, store)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *demo {
		if err := runDemo(ctx, cfg, ranker, notifier, store, forecaster.History()); err != nil {
			slog.Error("demo failed", "err", err)
			os.Exit(1)
		}
		return
	}

	ran := false
	if *answersPath != "" {
		in, err := fixtures.LoadRanking(*answersPath)
		if err != nil {
			slog.Error("failed to load answers", "err", err, "path", *answersPath)
			os.Exit(1)
		}
		if _, err := svc.Rank(ctx, in.Question, in.Answers); err != nil {
			slog.Error("ranking failed", "err", err)
			os.Exit(1)
		}
		ran = true
	}

	if *items != "" || *date != "" {
		if *date == "" {
			slog.Error("-date is required with -items")
			os.Exit(2)
		}
		if _, err := svc.Forecast(ctx, fixtures.ParseItems(*items), *date); err != nil {
			if errors.Is(err, domain.ErrNoHistory) {
				slog.Error("cannot forecast without historical promotions", "err", err)
			} else {
				slog.Error("forecast failed", "err", err)
			}
			os.Exit(1)
		}
		ran = true
	}

	if !ran {
		fmt.Fprintln(os.Stderr, "nothing to do: use -answers, -items/-date or -demo")
		flag.Usage()
		os.Exit(2)
	}

	slog.Info("rankcast done")
}

// loadHistory devuelve el historial del archivo configurado, o el dataset incluido.
func loadHistory(path string) ([]domain.Promotion, error) {
	if path == "" {
		return forecast.SeedHistory(), nil
	}
	return fixtures.LoadPromotions(path)
}

func rankerWeights(cfg config.RankerConfig) ranking.Weights {
	return ranking.Weights{
		Jaccard:      *cfg.JaccardWeight,
		CTR:          *cfg.CTRWeight,
		Upvotes:      *cfg.UpvoteWeight,
		ShortPenalty: *cfg.ShortPenalty,
		MinWords:     cfg.MinWords,
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

package storage

// sqlite.go — registro de ejecuciones (rankings y forecasts).
//
// Estrategia:
//   - `ranking_runs` + `ranked_answers`: una fila por ejecución y una por respuesta, en orden.
//   - `forecast_runs` + `forecast_candidates`: igual para las predicciones.
//   - Solo se guardan salidas. El historial del forecaster nunca se lee de aquí.
//   - Prune automático al arrancar: ejecuciones > 90d.

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alejandrodnm/rankcast/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS ranking_runs (
    run_id     TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    question   TEXT NOT NULL,
    answers    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS ranked_answers (
    run_id   TEXT    NOT NULL REFERENCES ranking_runs(run_id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    text     TEXT    NOT NULL,
    score    REAL    NOT NULL,
    jaccard  REAL    NOT NULL DEFAULT 0,
    ctr      REAL    NOT NULL DEFAULT 0,
    upvotes  INTEGER NOT NULL DEFAULT 0,
    penalty  REAL    NOT NULL DEFAULT 0,
    PRIMARY KEY (run_id, position)
);

CREATE TABLE IF NOT EXISTS forecast_runs (
    run_id          TEXT PRIMARY KEY,
    created_at      TEXT    NOT NULL,
    target_date     TEXT    NOT NULL,
    items           TEXT    NOT NULL,
    predicted_units REAL    NOT NULL,
    cold_start      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS forecast_candidates (
    run_id            TEXT    NOT NULL REFERENCES forecast_runs(run_id) ON DELETE CASCADE,
    position          INTEGER NOT NULL,
    promo_id          TEXT    NOT NULL,
    similarity        REAL    NOT NULL,
    units             INTEGER NOT NULL,
    seasonality_boost REAL    NOT NULL DEFAULT 0,
    items             TEXT    NOT NULL,
    PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_ranking_at  ON ranking_runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_forecast_at ON forecast_runs(created_at DESC);
`

const retentionRuns = 90 * 24 * time.Hour

// ErrNotFound indica que el run pedido no existe.
var ErrNotFound = errors.New("run not found")

// SQLiteStorage implementa ports.RunStore usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia datos antiguos.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveRanking persiste un ranking con sus respuestas en orden.
func (s *SQLiteStorage) SaveRanking(ctx context.Context, run domain.RankingRun) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveRanking: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ranking_runs (run_id, created_at, question, answers) VALUES (?, ?, ?, ?)`,
		run.RunID, formatTime(run.CreatedAt), run.Question, len(run.Answers),
	); err != nil {
		return fmt.Errorf("storage.SaveRanking: insert run %s: %w", run.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ranked_answers (run_id, position, text, score, jaccard, ctr, upvotes, penalty)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveRanking: prepare: %w", err)
	}
	defer stmt.Close()

	for i, a := range run.Answers {
		if _, err := stmt.ExecContext(ctx,
			run.RunID, i+1, a.Text, a.Score,
			a.Metrics.Jaccard, a.Metrics.CTR, a.Metrics.Upvotes, a.Metrics.Penalty,
		); err != nil {
			return fmt.Errorf("storage.SaveRanking: insert answer %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveRanking: commit: %w", err)
	}
	return nil
}

// GetRanking devuelve un ranking guardado con sus respuestas en el orden original.
func (s *SQLiteStorage) GetRanking(ctx context.Context, runID string) (domain.RankingRun, error) {
	run := domain.RankingRun{RunID: runID}
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at, question FROM ranking_runs WHERE run_id = ?`, runID,
	).Scan(&createdAt, &run.Question)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RankingRun{}, fmt.Errorf("storage.GetRanking: %s: %w", runID, ErrNotFound)
	}
	if err != nil {
		return domain.RankingRun{}, fmt.Errorf("storage.GetRanking: query run: %w", err)
	}
	run.CreatedAt = parseTime(createdAt)

	rows, err := s.db.QueryContext(ctx, `
		SELECT text, score, jaccard, ctr, upvotes, penalty
		FROM ranked_answers
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return domain.RankingRun{}, fmt.Errorf("storage.GetRanking: query answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.ScoredAnswer
		if err := rows.Scan(&a.Text, &a.Score,
			&a.Metrics.Jaccard, &a.Metrics.CTR, &a.Metrics.Upvotes, &a.Metrics.Penalty,
		); err != nil {
			return domain.RankingRun{}, fmt.Errorf("storage.GetRanking: scan row: %w", err)
		}
		run.Answers = append(run.Answers, a)
	}
	return run, rows.Err()
}

// SaveForecast persiste una predicción con todos sus candidatos en orden.
func (s *SQLiteStorage) SaveForecast(ctx context.Context, run domain.ForecastRun) error {
	fc := run.Forecast
	items, err := json.Marshal(fc.Items)
	if err != nil {
		return fmt.Errorf("storage.SaveForecast: marshal items: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveForecast: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO forecast_runs (run_id, created_at, target_date, items, predicted_units, cold_start)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		run.RunID, formatTime(run.CreatedAt), fc.TargetDate.Format(domain.DateLayout),
		string(items), fc.PredictedUnits, boolToInt(fc.ColdStart),
	); err != nil {
		return fmt.Errorf("storage.SaveForecast: insert run %s: %w", run.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO forecast_candidates (run_id, position, promo_id, similarity, units, seasonality_boost, items)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveForecast: prepare: %w", err)
	}
	defer stmt.Close()

	for i, c := range fc.Candidates {
		candItems, err := json.Marshal(c.Items)
		if err != nil {
			return fmt.Errorf("storage.SaveForecast: marshal candidate %s: %w", c.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			run.RunID, i+1, c.ID, c.Similarity, c.Units, c.SeasonalityBoost, string(candItems),
		); err != nil {
			return fmt.Errorf("storage.SaveForecast: insert candidate %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveForecast: commit: %w", err)
	}
	return nil
}

// RecentForecasts devuelve las últimas predicciones, la más reciente primero.
func (s *SQLiteStorage) RecentForecasts(ctx context.Context, limit int) ([]domain.ForecastRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, created_at, target_date, items, predicted_units, cold_start
		FROM forecast_runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage.RecentForecasts: query: %w", err)
	}

	var runs []domain.ForecastRun
	for rows.Next() {
		var run domain.ForecastRun
		var createdAt, target, items string
		var cold int
		if err := rows.Scan(&run.RunID, &createdAt, &target, &items, &run.Forecast.PredictedUnits, &cold); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage.RecentForecasts: scan row: %w", err)
		}
		run.CreatedAt = parseTime(createdAt)
		run.Forecast.TargetDate, _ = time.Parse(domain.DateLayout, target)
		run.Forecast.ColdStart = cold == 1
		if err := json.Unmarshal([]byte(items), &run.Forecast.Items); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage.RecentForecasts: decode items: %w", err)
		}
		runs = append(runs, run)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.RecentForecasts: rows: %w", err)
	}

	// Con una sola conexión hay que cerrar rows antes de la siguiente query
	for i := range runs {
		cands, err := s.candidates(ctx, runs[i].RunID)
		if err != nil {
			return nil, err
		}
		runs[i].Forecast.Candidates = cands
	}
	return runs, nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- helpers internos ---

func (s *SQLiteStorage) candidates(ctx context.Context, runID string) ([]domain.ForecastCandidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT promo_id, similarity, units, seasonality_boost, items
		FROM forecast_candidates
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage.candidates: query: %w", err)
	}
	defer rows.Close()

	var out []domain.ForecastCandidate
	for rows.Next() {
		var c domain.ForecastCandidate
		var items string
		if err := rows.Scan(&c.ID, &c.Similarity, &c.Units, &c.SeasonalityBoost, &items); err != nil {
			return nil, fmt.Errorf("storage.candidates: scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(items), &c.Items); err != nil {
			return nil, fmt.Errorf("storage.candidates: decode items: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// pruneOld elimina ejecuciones antiguas para mantener la DB ligera.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := formatTime(time.Now().Add(-retentionRuns))
	s.db.ExecContext(ctx, `DELETE FROM ranking_runs WHERE created_at < ?`, cutoff)
	s.db.ExecContext(ctx, `DELETE FROM forecast_runs WHERE created_at < ?`, cutoff)
}

// formatTime usa un formato de ancho fijo para que el orden lexicográfico sea cronológico.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z")
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

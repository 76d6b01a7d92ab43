package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa de rankcast.
type Config struct {
	Ranker     RankerConfig     `yaml:"ranker"`
	Forecaster ForecasterConfig `yaml:"forecaster"`
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
}

// RankerConfig contiene los pesos de la fórmula de ranking.
// Los punteros distinguen "ausente" (usar default) de un 0 explícito.
type RankerConfig struct {
	JaccardWeight *float64 `yaml:"jaccard_weight"` // default 0.6
	CTRWeight     *float64 `yaml:"ctr_weight"`     // default 2.0
	UpvoteWeight  *float64 `yaml:"upvote_weight"`  // default 0.1
	ShortPenalty  *float64 `yaml:"short_penalty"`  // default -0.5
	MinWords      int      `yaml:"min_words"`      // default 5
}

// ForecasterConfig controla el forecaster de promociones.
type ForecasterConfig struct {
	SeasonalityBoost *float64 `yaml:"seasonality_boost"` // default 0.2
	HistoryFile      string   `yaml:"history_file"`      // vacío = dataset incluido
}

// StorageConfig controla dónde se persisten los runs.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// Default devuelve la configuración por defecto, sin leer archivos.
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("RANKCAST_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("RANKCAST_HISTORY_FILE"); v != "" {
		cfg.Forecaster.HistoryFile = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	setFloat(&cfg.Ranker.JaccardWeight, 0.6)
	setFloat(&cfg.Ranker.CTRWeight, 2.0)
	setFloat(&cfg.Ranker.UpvoteWeight, 0.1)
	setFloat(&cfg.Ranker.ShortPenalty, -0.5)
	if cfg.Ranker.MinWords <= 0 {
		cfg.Ranker.MinWords = 5
	}
	setFloat(&cfg.Forecaster.SeasonalityBoost, 0.2)
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "rankcast.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// validate rechaza valores que romperían los invariantes del scoring.
func (c *Config) validate() error {
	if *c.Forecaster.SeasonalityBoost < 0 {
		return fmt.Errorf("forecaster.seasonality_boost must be >= 0, got %v", *c.Forecaster.SeasonalityBoost)
	}
	if *c.Ranker.ShortPenalty > 0 {
		return fmt.Errorf("ranker.short_penalty must be <= 0, got %v", *c.Ranker.ShortPenalty)
	}
	return nil
}

func setFloat(dst **float64, def float64) {
	if *dst == nil {
		v := def
		*dst = &v
	}
}

package domain

import (
	"errors"
	"time"
)

// ErrNoHistory indica que no hay promociones históricas contra las que comparar.
var ErrNoHistory = errors.New("no historical data")

// DateLayout es el formato ISO de fecha que aceptan las entradas (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Promotion es una campaña histórica con sus ventas reales.
type Promotion struct {
	ID        string
	Items     []string // semántica de conjunto: los duplicados no cuentan
	UnitsSold int
	Date      time.Time
}

// Month devuelve el mes del año de la promoción (independiente del año).
func (p Promotion) Month() time.Month {
	return p.Date.Month()
}

// ForecastCandidate es una promoción histórica puntuada contra la promoción planificada.
type ForecastCandidate struct {
	ID               string
	Similarity       float64 // cobertura + boost; puede superar 1.0
	Units            int
	Items            []string
	SeasonalityBoost float64 // 0.0 o el boost de estacionalidad aplicado
}

// Forecast es la predicción para una promoción planificada.
type Forecast struct {
	Items          []string
	TargetDate     time.Time
	PredictedUnits float64
	ColdStart      bool                // true si se usó la media como fallback
	Candidates     []ForecastCandidate // ordenados por similitud desc
}

// Top devuelve el mejor candidato. ok es false si no hay candidatos.
func (f Forecast) Top() (ForecastCandidate, bool) {
	if len(f.Candidates) == 0 {
		return ForecastCandidate{}, false
	}
	return f.Candidates[0], true
}

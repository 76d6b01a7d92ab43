package forecast

import (
	"fmt"
	"math/big"
	"slices"
	"sort"
	"time"

	"github.com/alejandrodnm/rankcast/internal/domain"
	"github.com/alejandrodnm/rankcast/internal/ports"
)

// DefaultSeasonalityBoost es el bonus aditivo cuando coincide el mes del año.
const DefaultSeasonalityBoost = 0.2

// Forecaster predice ventas de una promoción a partir de la promoción histórica
// más parecida (cobertura de items + estacionalidad).
//
// El historial no está protegido contra mutación concurrente: el caller
// debe sincronizar si añade promociones desde varias goroutines.
type Forecaster struct {
	history  []domain.Promotion
	boost    float64
	boostRat *big.Rat
	observer ports.ForecastObserver
}

// Option configura un Forecaster.
type Option func(*Forecaster) error

// WithSeasonalityBoost sustituye el boost por defecto (0.2).
func WithSeasonalityBoost(boost float64) Option {
	return func(f *Forecaster) error {
		if boost < 0 {
			return fmt.Errorf("seasonality boost must be >= 0, got %v", boost)
		}
		r, err := domain.RatFromDecimal(boost)
		if err != nil {
			return err
		}
		f.boost = boost
		f.boostRat = r
		return nil
	}
}

// WithObserver inyecta el receptor de trazas de diagnóstico.
func WithObserver(o ports.ForecastObserver) Option {
	return func(f *Forecaster) error {
		if o != nil {
			f.observer = o
		}
		return nil
	}
}

// New crea un Forecaster con el historial inicial dado (se copia).
// Usar SeedHistory() para el dataset por defecto.
func New(history []domain.Promotion, opts ...Option) (*Forecaster, error) {
	f := &Forecaster{
		history:  clonePromotions(history),
		boost:    DefaultSeasonalityBoost,
		boostRat: big.NewRat(1, 5),
		observer: ports.NopObserver{},
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, fmt.Errorf("forecast.New: %w", err)
		}
	}
	return f, nil
}

// AddPromotion añade una promoción al historial.
func (f *Forecaster) AddPromotion(p domain.Promotion) {
	f.history = append(f.history, clonePromotion(p))
}

// ReplaceHistory sustituye el historial completo.
func (f *Forecaster) ReplaceHistory(history []domain.Promotion) {
	f.history = clonePromotions(history)
}

// History devuelve una copia del historial actual.
func (f *Forecaster) History() []domain.Promotion {
	return clonePromotions(f.history)
}

// PredictISO es Predict con la fecha en formato YYYY-MM-DD.
func (f *Forecaster) PredictISO(items []string, targetDate string) (domain.Forecast, error) {
	target, err := time.Parse(domain.DateLayout, targetDate)
	if err != nil {
		return domain.Forecast{}, fmt.Errorf("forecast.PredictISO: parse date %q: %w", targetDate, err)
	}
	return f.Predict(items, target)
}

// scored acompaña cada candidato con su similitud exacta para ordenar.
type scored struct {
	candidate domain.ForecastCandidate
	sim       *big.Rat
}

// Predict estima las unidades vendidas para una promoción con los items dados
// en la fecha objetivo.
//
//  1. sim = |H ∩ C| / |C| por cada promoción histórica, + boost si coincide el mes
//  2. candidatos ordenados por sim desc (estable: empates respetan el historial)
//  3. sim del mejor == 0 → cold start: media de unidades de todo el historial
//  4. si no, las unidades del mejor candidato (el boost solo afecta la selección)
func (f *Forecaster) Predict(items []string, targetDate time.Time) (domain.Forecast, error) {
	if len(f.history) == 0 {
		return domain.Forecast{}, fmt.Errorf("forecast.Predict: %w", domain.ErrNoHistory)
	}
	f.observer.ForecastStarted(items, targetDate)

	targetMonth := targetDate.Month()
	results := make([]scored, 0, len(f.history))
	for _, promo := range f.history {
		sim := domain.ItemSimilarity(promo.Items, items)

		boost := 0.0
		if promo.Month() == targetMonth {
			sim.Add(sim, f.boostRat)
			boost = f.boost
		}

		simF, _ := sim.Float64()
		results = append(results, scored{
			candidate: domain.ForecastCandidate{
				ID:               promo.ID,
				Similarity:       simF,
				Units:            promo.UnitsSold,
				Items:            slices.Clone(promo.Items),
				SeasonalityBoost: boost,
			},
			sim: sim,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].sim.Cmp(results[j].sim) > 0
	})

	candidates := make([]domain.ForecastCandidate, len(results))
	for i, r := range results {
		candidates[i] = r.candidate
	}

	forecast := domain.Forecast{
		Items:      slices.Clone(items),
		TargetDate: targetDate,
		Candidates: candidates,
	}

	// Cold start: ninguna promoción comparte items ni mes
	if results[0].sim.Sign() == 0 {
		forecast.ColdStart = true
		forecast.PredictedUnits = domain.Mean(f.history)
		f.observer.ColdStartDetected(forecast.PredictedUnits, len(f.history))
		return forecast, nil
	}

	forecast.PredictedUnits = float64(candidates[0].Units)
	f.observer.MatchFound(candidates[0])
	return forecast, nil
}

func clonePromotion(p domain.Promotion) domain.Promotion {
	p.Items = slices.Clone(p.Items)
	return p
}

func clonePromotions(ps []domain.Promotion) []domain.Promotion {
	out := make([]domain.Promotion, len(ps))
	for i, p := range ps {
		out[i] = clonePromotion(p)
	}
	return out
}

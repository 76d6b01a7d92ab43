package ports

import (
	"context"

	"github.com/alejandrodnm/rankcast/internal/domain"
)

// Notifier presenta los resultados al usuario.
type Notifier interface {
	// NotifyRanking muestra las respuestas ordenadas por score.
	NotifyRanking(ctx context.Context, question string, answers []domain.ScoredAnswer) error

	// NotifyForecast muestra la predicción y los candidatos históricos.
	NotifyForecast(ctx context.Context, forecast domain.Forecast) error
}

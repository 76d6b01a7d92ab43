package ports

import (
	"context"

	"github.com/alejandrodnm/rankcast/internal/domain"
)

// RunStore persiste el resultado de cada ejecución. Nunca alimenta el historial
// del forecaster: solo guarda salidas.
type RunStore interface {
	// SaveRanking persiste un ranking completo.
	SaveRanking(ctx context.Context, run domain.RankingRun) error

	// SaveForecast persiste una predicción con todos sus candidatos.
	SaveForecast(ctx context.Context, run domain.ForecastRun) error

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}

package forecast

import (
	"time"

	"github.com/alejandrodnm/rankcast/internal/domain"
)

// SeedHistory devuelve el dataset histórico incluido por defecto.
// Cada llamada devuelve una copia nueva.
func SeedHistory() []domain.Promotion {
	return []domain.Promotion{
		{
			ID:        "PROMO_JUNE_2023",
			Items:     []string{"iphone13", "samsung_s22", "macbook_air", "sony_xm4"},
			UnitsSold: 5000,
			Date:      day(2023, time.June, 15),
		},
		{
			ID:        "PROMO_JULY_2023",
			Items:     []string{"ps5", "xbox_series_x", "nintendo_switch"},
			UnitsSold: 8000,
			Date:      day(2023, time.July, 10),
		},
		{
			ID:        "PROMO_JUNE_2024",
			Items:     []string{"iphone14", "samsung_s23", "macbook_air_m2", "sony_xm5"},
			UnitsSold: 5500,
			Date:      day(2024, time.June, 14),
		},
		{
			ID:        "PROMO_DIWALI_2023",
			Items:     []string{"diya", "lights", "sweets_box", "iphone13"},
			UnitsSold: 12000,
			Date:      day(2023, time.November, 10),
		},
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

package domain

import (
	"fmt"
	"math/big"
	"strconv"
)

// ItemSimilarity calcula la cobertura |H ∩ C| / |C| de forma exacta.
//   - historical: items de la promoción histórica
//   - current: items de la promoción planificada
//
// Es asimétrica: premia históricos que contienen todo lo actual.
// Devuelve 0 si current está vacío.
func ItemSimilarity(historical, current []string) *big.Rat {
	curr := toSet(current)
	if len(curr) == 0 {
		return new(big.Rat)
	}
	hist := toSet(historical)

	overlap := 0
	for item := range curr {
		if _, ok := hist[item]; ok {
			overlap++
		}
	}
	return big.NewRat(int64(overlap), int64(len(curr)))
}

// RatFromDecimal convierte un float de configuración (ej. 0.2) al racional
// decimal que representa (1/5), no a su aproximación binaria.
func RatFromDecimal(v float64) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'f', -1, 64))
	if !ok {
		return nil, fmt.Errorf("domain.RatFromDecimal: invalid value %v", v)
	}
	return r, nil
}

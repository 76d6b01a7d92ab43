package ranking

// Weights son los pesos de la fórmula de score de respuestas.
type Weights struct {
	Jaccard      float64 // peso del solapamiento léxico
	CTR          float64 // peso del click-through rate
	Upvotes      float64 // peso de ln(max(1, upvotes+1))
	ShortPenalty float64 // se suma si la respuesta es corta (negativo)
	MinWords     int     // por debajo de esto la respuesta es corta
}

// DefaultWeights devuelve los pesos por defecto.
//
// Fórmula: S = 0.6 × jaccard + 2.0 × ctr + 0.1 × ln(max(1, upvotes+1)) + penalty
//   - penalty = -0.5 si el texto crudo tiene < 5 palabras
func DefaultWeights() Weights {
	return Weights{
		Jaccard:      0.6,
		CTR:          2.0,
		Upvotes:      0.1,
		ShortPenalty: -0.5,
		MinWords:     5,
	}
}

// withDefaults completa solo MinWords: un peso 0 es una elección válida.
func (w Weights) withDefaults() Weights {
	if w.MinWords <= 0 {
		w.MinWords = DefaultWeights().MinWords
	}
	return w
}

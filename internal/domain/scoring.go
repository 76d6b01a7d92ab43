package domain

import "math"

// CTR calcula el click-through rate de una respuesta.
// Sin impresiones no hay señal: devuelve 0, no es un error.
func CTR(upvotes, impressions int) float64 {
	if impressions <= 0 {
		return 0
	}
	return float64(upvotes) / float64(impressions)
}

// SafeUpvotes aplica el clamp max(1, upvotes+1) para que el logaritmo
// siempre esté definido. Cualquier valor <= 0 aporta ln(1) = 0.
func SafeUpvotes(upvotes int) int {
	return max(1, upvotes+1)
}

// UpvoteSignal devuelve ln(SafeUpvotes(upvotes)). Nunca es negativo.
func UpvoteSignal(upvotes int) float64 {
	return math.Log(float64(SafeUpvotes(upvotes)))
}

// LengthPenalty devuelve penalty si el texto crudo tiene menos de minWords palabras.
func LengthPenalty(text string, minWords int, penalty float64) float64 {
	if WordCount(text) < minWords {
		return penalty
	}
	return 0
}

// AnswerScore combina las métricas de una respuesta.
//
// Fórmula: S = wj × jaccard + wc × ctr + wu × ln(max(1, upvotes+1)) + penalty
func AnswerScore(m AnswerMetrics, jaccardWeight, ctrWeight, upvoteWeight float64) float64 {
	return m.Jaccard*jaccardWeight +
		m.CTR*ctrWeight +
		UpvoteSignal(m.Upvotes)*upvoteWeight +
		m.Penalty
}

// Mean devuelve la media aritmética de las unidades vendidas. 0 si no hay datos.
func Mean(promos []Promotion) float64 {
	if len(promos) == 0 {
		return 0
	}
	total := 0
	for _, p := range promos {
		total += p.UnitsSold
	}
	return float64(total) / float64(len(promos))
}

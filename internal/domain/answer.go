package domain

// Answer es una respuesta candidata a una pregunta, con sus contadores de engagement.
type Answer struct {
	Text        string
	Upvotes     int // puede ser negativo
	Impressions int // 0 = sin señal de engagement (CTR = 0)
}

// AnswerMetrics son los valores intermedios que componen el score de una respuesta.
type AnswerMetrics struct {
	Jaccard float64 // solapamiento léxico con la pregunta, [0, 1]
	CTR     float64 // upvotes / impressions
	Upvotes int     // valor crudo, sin clamp
	Penalty float64 // 0.0 o la penalización por respuesta corta
}

// ScoredAnswer es el resultado del ranking de una respuesta.
type ScoredAnswer struct {
	Text    string
	Score   float64
	Metrics AnswerMetrics
}

// IsPenalized devuelve true si la respuesta recibió la penalización por longitud.
func (s ScoredAnswer) IsPenalized() bool {
	return s.Metrics.Penalty != 0
}

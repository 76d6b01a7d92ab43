package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// --- CTR ---

func TestCTR_Basic(t *testing.T) {
	assert.InDelta(t, 0.25, CTR(5, 20), 1e-12)
}

func TestCTR_ZeroImpressions(t *testing.T) {
	assert.Equal(t, 0.0, CTR(10, 0))
}

func TestCTR_NegativeUpvotes(t *testing.T) {
	// -5 / 300 → CTR negativo, se respeta tal cual
	assert.InDelta(t, -0.01667, CTR(-5, 300), 1e-4)
}

// --- SafeUpvotes / UpvoteSignal ---

func TestSafeUpvotes_Clamp(t *testing.T) {
	for _, up := range []int{-100, -1, 0} {
		assert.Equal(t, 1, SafeUpvotes(up), "upvotes=%d", up)
		assert.Equal(t, 0.0, UpvoteSignal(up), "upvotes=%d", up)
	}
	assert.Equal(t, 2, SafeUpvotes(1))
	assert.Equal(t, 351, SafeUpvotes(350))
}

func TestUpvoteSignal_Log(t *testing.T) {
	assert.InDelta(t, math.Log(2), UpvoteSignal(1), 1e-12)
	assert.InDelta(t, math.Log(121), UpvoteSignal(120), 1e-12)
}

// --- LengthPenalty ---

func TestLengthPenalty_ShortAnswer(t *testing.T) {
	assert.Equal(t, -0.5, LengthPenalty("C++ is the best.", 5, -0.5))
	assert.Equal(t, -0.5, LengthPenalty("Yes.", 5, -0.5))
	assert.Equal(t, -0.5, LengthPenalty("", 5, -0.5))
}

func TestLengthPenalty_ExactlyMinWords(t *testing.T) {
	assert.Equal(t, 0.0, LengthPenalty("a b c d e", 5, -0.5))
	assert.Equal(t, 0.0, LengthPenalty("I think batch is faster.", 5, -0.5))
}

func TestLengthPenalty_PunctuationCountsAsWord(t *testing.T) {
	// "- - -" no genera tokens limpios pero sí cuenta como palabras crudas
	assert.Equal(t, 0.0, LengthPenalty("ok - - - !", 5, -0.5))
	assert.Empty(t, Preprocess("- - - !"))
}

// --- AnswerScore ---

func TestAnswerScore_Scenario(t *testing.T) {
	// pregunta "a b c", respuesta "a b c d e", 0 upvotes, 1 impresión
	// jaccard = 3/5, ctr = 0, penalty = 0 → 0.6 × 0.6 = 0.36
	q := Preprocess("a b c")
	a := Preprocess("a b c d e")
	m := AnswerMetrics{
		Jaccard: Jaccard(q, a),
		CTR:     CTR(0, 1),
		Upvotes: 0,
		Penalty: LengthPenalty("a b c d e", 5, -0.5),
	}
	assert.InDelta(t, 0.6, m.Jaccard, 1e-12)
	assert.InDelta(t, 0.36, AnswerScore(m, 0.6, 2.0, 0.1), 1e-12)
}

func TestAnswerScore_AllTerms(t *testing.T) {
	// 0.6×0.5 + 2.0×0.1 + 0.1×ln(11) - 0.5
	m := AnswerMetrics{Jaccard: 0.5, CTR: 0.1, Upvotes: 10, Penalty: -0.5}
	want := 0.3 + 0.2 + 0.1*math.Log(11) - 0.5
	assert.InDelta(t, want, AnswerScore(m, 0.6, 2.0, 0.1), 1e-12)
}

// --- Mean ---

func TestMean_Basic(t *testing.T) {
	promos := []Promotion{{UnitsSold: 5000}, {UnitsSold: 8000}, {UnitsSold: 5500}, {UnitsSold: 12000}}
	assert.InDelta(t, 7625.0, Mean(promos), 1e-9)
}

func TestMean_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
}

func TestPromotion_Month(t *testing.T) {
	p := Promotion{Date: time.Date(2023, time.November, 10, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, time.November, p.Month())
}

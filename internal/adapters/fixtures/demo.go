package fixtures

import (
	"time"

	"github.com/alejandrodnm/rankcast/internal/domain"
)

// DemoScenario es un ejemplo con nombre para el modo -demo.
type DemoScenario[T any] struct {
	Name  string
	Input T
}

// DemoForecast añade promociones extra al historial antes de predecir.
type DemoForecast struct {
	ForecastInput
	Extra []domain.Promotion
}

// DemoRankings devuelve las preguntas de ejemplo.
func DemoRankings() []DemoScenario[RankingInput] {
	return []DemoScenario[RankingInput]{
		{
			Name: "Technical question",
			Input: RankingInput{
				Question: "What is the difference between Batch and Stream processing?",
				Answers: []domain.Answer{
					{Text: "Batch processing deals with static data in large chunks, while stream processing deals with continuous data in real-time.", Upvotes: 350, Impressions: 1200},
					{Text: "I think batch is faster.", Upvotes: 5, Impressions: 100},
					{Text: "Stream processing is like a river, batch is like a bucket. Apache Flink is good for streaming.", Upvotes: 120, Impressions: 500},
					{Text: "Check out this link for a tutorial.", Upvotes: 10, Impressions: 50},
				},
			},
		},
		{
			Name: "Opinion question",
			Input: RankingInput{
				Question: "Is Python better than Java for Machine Learning?",
				Answers: []domain.Answer{
					{Text: "Yes, Python has better libraries like PyTorch and TensorFlow for ML tasks.", Upvotes: 500, Impressions: 2000},
					{Text: "Java is faster but Python is easier to write and has more ML support.", Upvotes: 200, Impressions: 800},
					{Text: "C++ is the best.", Upvotes: -5, Impressions: 300},
				},
			},
		},
		{
			Name: "Spam detection",
			Input: RankingInput{
				Question: "How to learn system design?",
				Answers: []domain.Answer{
					{Text: "Read 'Designing Data-Intensive Applications' by Martin Kleppmann and practice with real-world case studies.", Upvotes: 300, Impressions: 1000},
					{Text: "Yes.", Upvotes: 2, Impressions: 50},
					{Text: "Watch YouTube tutorials and take online courses on platforms like Coursera or Udemy.", Upvotes: 150, Impressions: 600},
				},
			},
		},
	}
}

// DemoForecasts devuelve las promociones de ejemplo.
func DemoForecasts() []DemoScenario[DemoForecast] {
	return []DemoScenario[DemoForecast]{
		{
			Name: "Tech gadgets promotion",
			Input: DemoForecast{
				ForecastInput: ForecastInput{
					Items:      []string{"iphone14", "samsung_s23", "sony_xm5", "new_gadget"},
					TargetDate: "2025-06-15",
				},
			},
		},
		{
			Name: "Winter promotion (seasonality)",
			Input: DemoForecast{
				ForecastInput: ForecastInput{
					Items:      []string{"heater", "wool_socks", "jacket", "thermals"},
					TargetDate: "2025-12-10",
				},
				Extra: []domain.Promotion{{
					ID:        "PROMO_WINTER_SALE_2023",
					Items:     []string{"heater", "blanket", "jacket", "gloves"},
					UnitsSold: 3000,
					Date:      time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
				}},
			},
		},
		{
			Name: "Cold start (new category)",
			Input: DemoForecast{
				ForecastInput: ForecastInput{
					Items:      []string{"gardening_tools", "seeds", "fertilizer"},
					TargetDate: "2025-03-01",
				},
			},
		},
	}
}

package fixtures

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alejandrodnm/rankcast/internal/domain"
	"gopkg.in/yaml.v3"
)

// RankingInput es una pregunta con sus respuestas candidatas.
type RankingInput struct {
	Question string
	Answers  []domain.Answer
}

// ForecastInput es una promoción planificada.
type ForecastInput struct {
	Items      []string
	TargetDate string // YYYY-MM-DD, se parsea en el forecaster
}

type answerYAML struct {
	Text        string `yaml:"text"`
	Upvotes     *int   `yaml:"upvotes"`
	Impressions *int   `yaml:"impressions"`
}

type rankingYAML struct {
	Question string       `yaml:"question"`
	Answers  []answerYAML `yaml:"answers"`
}

type promotionYAML struct {
	ID        string   `yaml:"id"`
	Items     []string `yaml:"items"`
	UnitsSold int      `yaml:"units_sold"`
	Date      string   `yaml:"date"`
}

type historyYAML struct {
	Promotions []promotionYAML `yaml:"promotions"`
}

// LoadRanking lee una pregunta y sus respuestas desde YAML.
// upvotes ausente → 0, impressions ausente → 1.
func LoadRanking(path string) (RankingInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RankingInput{}, fmt.Errorf("fixtures.LoadRanking: read %q: %w", path, err)
	}

	var raw rankingYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return RankingInput{}, fmt.Errorf("fixtures.LoadRanking: parse YAML: %w", err)
	}
	if strings.TrimSpace(raw.Question) == "" {
		return RankingInput{}, fmt.Errorf("fixtures.LoadRanking: %q: missing question", path)
	}

	in := RankingInput{Question: raw.Question, Answers: make([]domain.Answer, 0, len(raw.Answers))}
	for _, a := range raw.Answers {
		in.Answers = append(in.Answers, toAnswer(a))
	}
	return in, nil
}

// LoadPromotions lee un historial de promociones desde YAML.
// Una fecha mal formada invalida el archivo completo.
func LoadPromotions(path string) ([]domain.Promotion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures.LoadPromotions: read %q: %w", path, err)
	}

	var raw historyYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fixtures.LoadPromotions: parse YAML: %w", err)
	}

	promos := make([]domain.Promotion, 0, len(raw.Promotions))
	for i, p := range raw.Promotions {
		d, err := time.Parse(domain.DateLayout, p.Date)
		if err != nil {
			return nil, fmt.Errorf("fixtures.LoadPromotions: promotion %d (%s): parse date: %w", i, p.ID, err)
		}
		if p.UnitsSold < 0 {
			return nil, fmt.Errorf("fixtures.LoadPromotions: promotion %d (%s): negative units_sold %d", i, p.ID, p.UnitsSold)
		}
		promos = append(promos, domain.Promotion{
			ID:        p.ID,
			Items:     p.Items,
			UnitsSold: p.UnitsSold,
			Date:      d,
		})
	}
	return promos, nil
}

// ParseItems separa una lista de items por comas, ignorando vacíos.
func ParseItems(s string) []string {
	var items []string
	for _, it := range strings.Split(s, ",") {
		if it = strings.TrimSpace(it); it != "" {
			items = append(items, it)
		}
	}
	return items
}

func toAnswer(a answerYAML) domain.Answer {
	ans := domain.Answer{Text: a.Text, Impressions: 1}
	if a.Upvotes != nil {
		ans.Upvotes = *a.Upvotes
	}
	if a.Impressions != nil {
		ans.Impressions = *a.Impressions
	}
	return ans
}

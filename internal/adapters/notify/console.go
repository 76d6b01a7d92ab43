package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alejandrodnm/rankcast/internal/domain"
	"github.com/olekukonko/tablewriter"
)

const (
	textWidthTable   = 70
	textWidthCompact = 30
	compactTopN      = 3
)

// Console implementa ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// NotifyRanking imprime el ranking en el modo configurado.
func (c *Console) NotifyRanking(_ context.Context, question string, answers []domain.ScoredAnswer) error {
	if len(answers) == 0 {
		fmt.Fprintf(c.out, "[%s] no answers to rank for %q\n", now(), question)
		return nil
	}

	if c.table {
		c.printRankingTable(question, answers)
	} else {
		c.printRankingCompact(question, answers)
	}
	return nil
}

// NotifyForecast imprime la predicción en el modo configurado.
func (c *Console) NotifyForecast(_ context.Context, fc domain.Forecast) error {
	if c.table {
		c.printForecastTable(fc)
	} else {
		c.printForecastCompact(fc)
	}
	return nil
}

// printRankingCompact imprime lo esencial en una línea.
func (c *Console) printRankingCompact(question string, answers []domain.ScoredAnswer) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %q → %d answers", now(), truncate(question, 40), len(answers))

	for i, a := range answers {
		if i >= compactTopN {
			break
		}
		fmt.Fprintf(&sb, " | #%d %.2f %s", i+1, a.Score, truncate(a.Text, textWidthCompact))
		if a.IsPenalized() {
			sb.WriteString(" [short]")
		}
	}
	fmt.Fprintln(c.out, sb.String())
}

// printRankingTable imprime la tabla con todas las métricas.
func (c *Console) printRankingTable(question string, answers []domain.ScoredAnswer) {
	fmt.Fprintf(c.out, "\n[%s] Question: %q\n", now(), question)

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Score", "Answer", "Jaccard", "CTR", "Upvotes", "Penalty")

	for i, a := range answers {
		table.Append(
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.2f", a.Score),
			truncate(a.Text, textWidthTable),
			fmt.Sprintf("%.3f", a.Metrics.Jaccard),
			fmt.Sprintf("%.3f", a.Metrics.CTR),
			fmt.Sprintf("%d", a.Metrics.Upvotes),
			fmt.Sprintf("%.1f", a.Metrics.Penalty),
		)
	}
	table.Render()

	fmt.Fprintln(c.out, "  Score = 0.6×Jaccard + 2.0×CTR + 0.1×ln(max(1, upvotes+1)) + Penalty")
	fmt.Fprintln(c.out, "  Penalty = -0.5 if the answer has fewer than 5 words")
}

// printForecastCompact imprime la predicción en una línea.
func (c *Console) printForecastCompact(fc domain.Forecast) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s %d items → %.0f units", now(),
		fc.TargetDate.Format(domain.DateLayout), len(fc.Items), fc.PredictedUnits)

	if fc.ColdStart {
		sb.WriteString(" (cold start: average fallback)")
	} else if top, ok := fc.Top(); ok {
		fmt.Fprintf(&sb, " | match %s sim %s", top.ID, percent(top.Similarity))
	}
	fmt.Fprintln(c.out, sb.String())
}

// printForecastTable imprime todos los candidatos y el resumen.
func (c *Console) printForecastTable(fc domain.Forecast) {
	fmt.Fprintf(c.out, "\n[%s] Forecast for %s\n", now(), fc.TargetDate.Format(domain.DateLayout))
	fmt.Fprintf(c.out, "  Items: %s\n", strings.Join(fc.Items, ", "))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Promotion", "Similarity", "Boost", "Units", "Items")

	for i, cand := range fc.Candidates {
		table.Append(
			fmt.Sprintf("%d", i+1),
			cand.ID,
			percent(cand.Similarity),
			fmt.Sprintf("%.1f", cand.SeasonalityBoost),
			fmt.Sprintf("%d", cand.Units),
			truncate(strings.Join(cand.Items, ", "), 45),
		)
	}
	table.Render()

	if fc.ColdStart {
		fmt.Fprintln(c.out, "  Cold start: no similar historical promotion found")
		fmt.Fprintf(c.out, "  Prediction: %.0f units (average of all history)\n", fc.PredictedUnits)
		return
	}
	if top, ok := fc.Top(); ok {
		fmt.Fprintf(c.out, "  Most similar: %s (similarity %.2f, includes %.1f seasonality boost)\n",
			top.ID, top.Similarity, top.SeasonalityBoost)
	}
	fmt.Fprintf(c.out, "  Prediction: %.0f units\n", fc.PredictedUnits)
}

// --- helpers ---

func now() string {
	return time.Now().Format("15:04:05")
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

// truncate corta por runas para no partir caracteres multibyte.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

package notify_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/alejandrodnm/rankcast/internal/adapters/notify"
	"github.com/alejandrodnm/rankcast/internal/domain"
	"github.com/alejandrodnm/rankcast/internal/ports"
	"github.com/stretchr/testify/assert"
)

var (
	_ ports.RankObserver     = (*notify.LogObserver)(nil)
	_ ports.ForecastObserver = (*notify.LogObserver)(nil)
	_ ports.Notifier         = (*notify.Console)(nil)
)

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogObserver_RankEvents(t *testing.T) {
	var buf bytes.Buffer
	o := notify.NewLogObserver(newBufferLogger(&buf))

	o.RankingStarted("how?", 3)
	o.ShortAnswerPenalized("Yes.", 1)

	out := buf.String()
	assert.Contains(t, out, "ranking answers")
	assert.Contains(t, out, "penalty applied to short answer")
	assert.Contains(t, out, "text=Yes.")
}

func TestLogObserver_ForecastEvents(t *testing.T) {
	var buf bytes.Buffer
	o := notify.NewLogObserver(newBufferLogger(&buf))

	o.ForecastStarted([]string{"seeds"}, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	o.ColdStartDetected(7625, 4)
	o.MatchFound(domain.ForecastCandidate{ID: "PROMO_X", Similarity: 0.7, Units: 3000})

	out := buf.String()
	assert.Contains(t, out, "date=2025-03-01")
	assert.Contains(t, out, "cold start detected")
	assert.Contains(t, out, "fallback_units=7625")
	assert.Contains(t, out, "id=PROMO_X")
}

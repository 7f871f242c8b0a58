package notify

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomail "gopkg.in/gomail.v2"

	"github.com/elcap/swingdash/internal/contracts"
	"github.com/elcap/swingdash/pkg/config"
	"github.com/elcap/swingdash/pkg/logger"
)

func testMailer(cfg config.MailConfig) *Mailer {
	return NewMailer(cfg, logger.NewWriter(io.Discard))
}

func fullMailConfig() config.MailConfig {
	return config.MailConfig{
		To:       "trader@example.com",
		Server:   "smtp.example.com",
		Port:     587,
		User:     "bot@example.com",
		Password: "secret",
	}
}

func TestSendSkipConditions(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MailConfig
	}{
		{"skip flag set", func() config.MailConfig { c := fullMailConfig(); c.Skip = true; return c }()},
		{"no recipient", func() config.MailConfig { c := fullMailConfig(); c.To = ""; return c }()},
		{"no user", func() config.MailConfig { c := fullMailConfig(); c.User = ""; return c }()},
		{"no password", func() config.MailConfig { c := fullMailConfig(); c.Password = ""; return c }()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testMailer(tt.cfg)
			m.send = func(*gomail.Message) error {
				t.Fatal("send must not be called when skipping")
				return nil
			}

			err := m.Send("/tmp/x.xlsx", time.Now(), "MIXED", nil)
			assert.NoError(t, err)
		})
	}
}

func TestSendDeliversMessage(t *testing.T) {
	m := testMailer(fullMailConfig())

	var got *gomail.Message
	m.send = func(msg *gomail.Message) error {
		got = msg
		return nil
	}

	at := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	err := m.Send("/tmp/report.xlsx", at, "BULLISH", nil)

	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, []string{"trader@example.com"}, got.GetHeader("To"))
	assert.Equal(t, []string{Subject(at)}, got.GetHeader("Subject"))
}

func TestSendWrapsDialError(t *testing.T) {
	m := testMailer(fullMailConfig())
	m.send = func(*gomail.Message) error { return errors.New("connection refused") }

	err := m.Send("/tmp/report.xlsx", time.Now(), "MIXED", nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "send dashboard mail")
}

func TestSubject(t *testing.T) {
	at := time.Date(2026, 3, 15, 14, 45, 0, 0, time.UTC)
	assert.Equal(t, "Swing Trade Dashboard - 2:45 PM UTC on Mar 15, 2026", Subject(at))
}

func TestBody(t *testing.T) {
	at := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	records := []contracts.RankedRecord{
		{
			Rank:       1,
			Instrument: contracts.Instrument{Symbol: "NVDA", Sector: "Semiconductors"},
			Snapshot:   contracts.MarketSnapshot{Current: 100.13},
			Scores:     contracts.ScoreBreakdown{Composite: 45},
		},
		{
			Rank:       4,
			Instrument: contracts.Instrument{Symbol: "MU"},
		},
	}

	body := Body(at, "BULLISH", records)

	assert.Contains(t, body, "Market verdict: BULLISH")
	assert.Contains(t, body, "1. NVDA (Semiconductors) - score 45, price $100.13")
	assert.NotContains(t, body, "MU", "rows past the preview cutoff stay out of the body")
}

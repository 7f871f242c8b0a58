// Package notify delivers the assembled dashboard over SMTP. Delivery is
// best-effort: a failed or skipped send never fails the run that produced
// the artifact.
package notify

import (
	"fmt"
	"strings"
	"time"

	gomail "gopkg.in/gomail.v2"

	"github.com/elcap/swingdash/internal/contracts"
	"github.com/elcap/swingdash/pkg/config"
	"github.com/elcap/swingdash/pkg/logger"
)

// bodyTopRows bounds how many ranked rows the plain-text body previews.
const bodyTopRows = 3

// Mailer sends the dashboard workbook as an email attachment.
type Mailer struct {
	cfg    config.MailConfig
	logger *logger.Logger

	// send dials and delivers one message. Swapped out in tests.
	send func(m *gomail.Message) error
}

func NewMailer(cfg config.MailConfig, log *logger.Logger) *Mailer {
	m := &Mailer{
		cfg:    cfg,
		logger: log.WithField("component", "notify"),
	}
	m.send = func(msg *gomail.Message) error {
		d := gomail.NewDialer(cfg.Server, cfg.Port, cfg.User, cfg.Password)
		return d.DialAndSend(msg)
	}
	return m
}

// Send emails the artifact at path. Missing credentials or the skip flag
// turn it into a logged no-op, not an error.
func (m *Mailer) Send(path string, generatedAt time.Time, verdict string, records []contracts.RankedRecord) error {
	if reason := m.skipReason(); reason != "" {
		m.logger.WithField("reason", reason).Info("Email delivery skipped")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.User)
	msg.SetHeader("To", m.cfg.To)
	msg.SetHeader("Subject", Subject(generatedAt))
	msg.SetBody("text/plain", Body(generatedAt, verdict, records))
	msg.Attach(path)

	if err := m.send(msg); err != nil {
		return fmt.Errorf("send dashboard mail: %w", err)
	}

	m.logger.WithFields(map[string]interface{}{
		"to":       m.cfg.To,
		"artifact": path,
	}).Info("Dashboard emailed")
	return nil
}

func (m *Mailer) skipReason() string {
	switch {
	case m.cfg.Skip:
		return "SKIP_EMAIL is set"
	case m.cfg.To == "":
		return "no recipient configured"
	case m.cfg.User == "" || m.cfg.Password == "":
		return "SMTP credentials missing"
	default:
		return ""
	}
}

// Subject builds the message subject for one run.
func Subject(generatedAt time.Time) string {
	return "Swing Trade Dashboard - " + generatedAt.Format("3:04 PM MST on Jan 2, 2006")
}

// Body renders the plain-text summary: overview verdict plus a preview of
// the top ranked rows. The full detail lives in the attachment.
func Body(generatedAt time.Time, verdict string, records []contracts.RankedRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Swing trade dashboard generated at %s.\n\n", generatedAt.Format("3:04 PM MST on Jan 2, 2006"))
	fmt.Fprintf(&b, "Market verdict: %s\n\n", verdict)

	if len(records) > 0 {
		b.WriteString("Top opportunities:\n")
		for _, r := range records {
			if r.Rank > bodyTopRows {
				break
			}
			fmt.Fprintf(&b, "  %d. %s (%s) - score %d, price $%.2f\n",
				r.Rank, r.Instrument.Symbol, r.Instrument.Sector,
				r.Scores.Composite, r.Snapshot.Current)
		}
		b.WriteString("\n")
	}

	b.WriteString("Full tables are in the attached workbook.\n")
	return b.String()
}

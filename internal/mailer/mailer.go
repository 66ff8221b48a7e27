package mailer

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"paroquia_connect/internal/config"

	"github.com/rs/zerolog"
)

// Message is a plain-text email
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

// Mailer delivers messages; implementations make a single attempt
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends mail through an SMTP relay with PLAIN auth
type SMTPMailer struct {
	cfg  config.MailConfig
	log  zerolog.Logger
	send sendFunc
}

// NewSMTPMailer creates a mailer for the configured relay
func NewSMTPMailer(cfg config.MailConfig, log zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log.With().Str("component", "mailer").Logger(), send: smtp.SendMail}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return errors.New("send email: no recipients")
	}
	if m.cfg.DefaultSender == "" {
		return errors.New("send email: sender not configured")
	}

	addr := net.JoinHostPort(m.cfg.Server, strconv.Itoa(m.cfg.Port))
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Server)
	}

	raw := compose(m.cfg.DefaultSender, msg)
	if err := m.send(addr, auth, m.cfg.DefaultSender, msg.To, raw); err != nil {
		m.log.Warn().Err(err).Strs("to", msg.To).Msg("email delivery failed")
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("email sent")
	return nil
}

// compose renders RFC 5322 headers and body. Header values are stripped of
// line breaks since Reply-To and Subject carry user input.
func compose(from string, msg Message) []byte {
	var b strings.Builder
	writeHeader(&b, "From", from)
	writeHeader(&b, "To", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		writeHeader(&b, "Reply-To", msg.ReplyTo)
	}
	writeHeader(&b, "Subject", mime.QEncoding.Encode("utf-8", headerValue(msg.Subject)))
	writeHeader(&b, "MIME-Version", "1.0")
	writeHeader(&b, "Content-Type", `text/plain; charset="utf-8"`)
	writeHeader(&b, "Content-Transfer-Encoding", "8bit")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(msg.Body, "\r\n", "\n"), "\n", "\r\n"))
	return []byte(b.String())
}

func writeHeader(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(headerValue(value))
	b.WriteString("\r\n")
}

func headerValue(v string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(v)
}

package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"paroquia_connect/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	raw  string
}

func newTestMailer(cfg config.MailConfig, sendErr error) (*SMTPMailer, *capturedMail) {
	got := &capturedMail{}
	m := NewSMTPMailer(cfg, zerolog.Nop())
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		got.addr, got.auth, got.from, got.to, got.raw = addr, a, from, to, string(msg)
		return sendErr
	}
	return m, got
}

func testConfig() config.MailConfig {
	return config.MailConfig{
		Server:        "smtp.example.org",
		Port:          587,
		Username:      "paroquia@example.org",
		Password:      "secret",
		DefaultSender: "paroquia@example.org",
		TargetEmail:   "secretaria@example.org",
	}
}

func TestSend_ComposesMessage(t *testing.T) {
	m, got := newTestMailer(testConfig(), nil)

	err := m.Send(context.Background(), Message{
		To:      []string{"secretaria@example.org"},
		ReplyTo: "fiel@example.org",
		Subject: "[Mensagem de Contato] - Dúvida",
		Body:    "linha 1\nlinha 2",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.org:587", got.addr)
	assert.NotNil(t, got.auth)
	assert.Equal(t, "paroquia@example.org", got.from)
	assert.Equal(t, []string{"secretaria@example.org"}, got.to)
	assert.Contains(t, got.raw, "From: paroquia@example.org\r\n")
	assert.Contains(t, got.raw, "To: secretaria@example.org\r\n")
	assert.Contains(t, got.raw, "Reply-To: fiel@example.org\r\n")
	assert.Contains(t, got.raw, "Subject: =?utf-8?q?")
	assert.True(t, strings.HasSuffix(got.raw, "\r\n\r\nlinha 1\r\nlinha 2"))
}

func TestSend_NoAuthWithoutUsername(t *testing.T) {
	cfg := testConfig()
	cfg.Username = ""
	m, got := newTestMailer(cfg, nil)

	require.NoError(t, m.Send(context.Background(), Message{To: []string{"a@example.org"}, Subject: "x"}))
	assert.Nil(t, got.auth)
	assert.NotContains(t, got.raw, "Reply-To")
}

func TestSend_StripsHeaderInjection(t *testing.T) {
	m, got := newTestMailer(testConfig(), nil)

	err := m.Send(context.Background(), Message{
		To:      []string{"secretaria@example.org"},
		ReplyTo: "evil@example.org\r\nBcc: victim@example.org",
		Subject: "oi\nBcc: victim@example.org",
	})
	require.NoError(t, err)

	headers := strings.SplitN(got.raw, "\r\n\r\n", 2)[0]
	for _, line := range strings.Split(headers, "\r\n") {
		assert.False(t, strings.HasPrefix(line, "Bcc:"), "unexpected header line %q", line)
	}
}

func TestSend_WrapsTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	m, _ := newTestMailer(testConfig(), boom)

	err := m.Send(context.Background(), Message{To: []string{"a@example.org"}, Subject: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestSend_Rejects(t *testing.T) {
	m, _ := newTestMailer(testConfig(), nil)
	assert.Error(t, m.Send(context.Background(), Message{Subject: "x"}))

	cfg := testConfig()
	cfg.DefaultSender = ""
	m, _ = newTestMailer(cfg, nil)
	assert.Error(t, m.Send(context.Background(), Message{To: []string{"a@example.org"}}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m, _ = newTestMailer(testConfig(), nil)
	assert.ErrorIs(t, m.Send(ctx, Message{To: []string{"a@example.org"}}), context.Canceled)
}

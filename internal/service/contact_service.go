package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"paroquia_connect/internal/mailer"
	"paroquia_connect/internal/model"

	"github.com/rs/zerolog"
)

// ContactService forwards contact-form messages to the parish office
type ContactService interface {
	Send(ctx context.Context, req model.ContactRequest) error
}

type contactService struct {
	mail   mailer.Mailer
	target string
	log    zerolog.Logger
}

// NewContactService creates a ContactService delivering to target
func NewContactService(mail mailer.Mailer, target string, log zerolog.Logger) ContactService {
	return &contactService{mail: mail, target: target, log: log}
}

func (s *contactService) Send(ctx context.Context, req model.ContactRequest) error {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	subject := strings.TrimSpace(req.Subject)
	if name == "" || email == "" || subject == "" || strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%w: campos obrigatórios (nome, email, assunto, mensagem) estão faltando", ErrValidation)
	}
	if s.target == "" {
		return fmt.Errorf("%w: %w", ErrDelivery, errors.New("TARGET_EMAIL not configured"))
	}

	phone := "Não informado"
	if req.Phone != nil && strings.TrimSpace(*req.Phone) != "" {
		phone = strings.TrimSpace(*req.Phone)
	}

	msg := mailer.Message{
		To:      []string{s.target},
		ReplyTo: email,
		Subject: "[Mensagem de Contato] - " + subject,
		Body: fmt.Sprintf("Nome: %s\nEmail: %s\nTelefone: %s\n---------------------------\nMensagem:\n%s\n",
			name, email, phone, req.Message),
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("reply_to", email).Msg("contact email not delivered")
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return nil
}

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"paroquia_connect/internal/mailer"
	"paroquia_connect/internal/model"
	"paroquia_connect/internal/repository"
	"paroquia_connect/internal/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuthService provides registration, email verification and session management
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	Verify(ctx context.Context, email, code string) error
	ResendCode(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, token string) (*model.User, *model.Session, error)
}

type authService struct {
	users             repository.UserRepository
	sessions          repository.SessionRepository
	tokens            *utils.SessionTokenUtil
	mail              mailer.Mailer
	initialAdminEmail string
	log               zerolog.Logger
}

// NewAuthService creates a new AuthService. Registering with initialAdminEmail
// yields an admin account.
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	tokens *utils.SessionTokenUtil,
	mail mailer.Mailer,
	initialAdminEmail string,
	log zerolog.Logger,
) AuthService {
	return &authService{
		users:             users,
		sessions:          sessions,
		tokens:            tokens,
		mail:              mail,
		initialAdminEmail: normalizeEmail(initialAdminEmail),
		log:               log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a pending account and mails its verification code.
// When the mail cannot be sent the account is kept and ErrDelivery is returned.
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: nome, email e senha são obrigatórios", ErrValidation)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrConflict
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:             name,
		Email:            email,
		PasswordHash:     hashed,
		Phone:            req.Phone,
		IsAdmin:          s.initialAdminEmail != "" && email == s.initialAdminEmail,
		VerificationCode: &code,
	}
	if user.IsAdmin {
		s.log.Info().Str("email", email).Msg("registering initial admin account")
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	if err := s.mail.Send(ctx, verificationMessage(user.Email, user.Name, code)); err != nil {
		s.log.Error().Err(err).Int("user_id", user.ID).Msg("verification email not delivered")
		return user, fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return user, nil
}

func verificationMessage(email, name, code string) mailer.Message {
	return mailer.Message{
		To:      []string{email},
		Subject: "Código de verificação - Paróquia Connect",
		Body: fmt.Sprintf("Olá, %s!\n\nSeu código de verificação é: %s\n\n"+
			"Informe este código para ativar sua conta.", name, code),
	}
}

// ResendCode issues a fresh verification code for a pending account and mails it
func (s *authService) ResendCode(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return fmt.Errorf("usuário %w", ErrNotFound)
	}
	if user.EmailVerified {
		return fmt.Errorf("%w: e-mail já verificado", ErrValidation)
	}

	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return err
	}
	if err := s.users.SetVerificationCode(ctx, user.ID, code); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: e-mail já verificado", ErrValidation)
		}
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	if err := s.mail.Send(ctx, verificationMessage(user.Email, user.Name, code)); err != nil {
		s.log.Error().Err(err).Int("user_id", user.ID).Msg("verification email not delivered")
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return nil
}

// Verify confirms the email with the mailed code. Already verified accounts succeed.
func (s *authService) Verify(ctx context.Context, email, code string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return fmt.Errorf("usuário %w", ErrNotFound)
	}
	if user.EmailVerified {
		return nil
	}
	if user.VerificationCode == nil || subtle.ConstantTimeCompare([]byte(*user.VerificationCode), []byte(code)) != 1 {
		return ErrInvalidCode
	}
	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	return nil
}

// Login checks credentials and opens a server-side session, returning the signed cookie token
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return nil, "", ErrEmailNotVerified
	}

	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.tokens.TTL()),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, "", fmt.Errorf("failed to open session: %w", err)
	}

	token, err := s.tokens.GenerateToken(session.ID, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrUnauthenticated
	}
	return s.sessions.Delete(ctx, sessionID)
}

// Authenticate resolves a cookie token to its live session and user.
// Any mismatch yields ErrUnauthenticated.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, *model.Session, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	session, err := s.sessions.FindActive(ctx, claims.SessionID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil || session.UserID != claims.UserID {
		return nil, nil, ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUnauthenticated
	}
	return user, session, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"paroquia_connect/internal/model"

	"github.com/jackc/pgx/v5"
)

// SessionRepository stores server-side login sessions
type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	FindActive(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type sessionRepository struct {
	db DB
}

func NewSessionRepository(db DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, s *model.Session) error {
	sql := `INSERT INTO sessoes (id, usuario_id, expira_em) VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(ctx, sql, s.ID, s.UserID, s.ExpiresAt); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindActive returns the session if it exists and has not expired; (nil, nil) otherwise
func (r *sessionRepository) FindActive(ctx context.Context, id string) (*model.Session, error) {
	s := &model.Session{}
	sql := `SELECT id, usuario_id, expira_em FROM sessoes WHERE id = $1 AND expira_em > NOW()`
	if err := r.db.QueryRow(ctx, sql, id).Scan(&s.ID, &s.UserID, &s.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sessoes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessoes WHERE expira_em <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

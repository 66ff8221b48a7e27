package repository

import (
	"context"
	"errors"
	"fmt"

	"paroquia_connect/internal/model"

	"github.com/jackc/pgx/v5"
)

// RegistrationRepository defines operations for event registrations
type RegistrationRepository interface {
	CreateWithinCapacity(ctx context.Context, reg *model.Registration) error
	ListByEvent(ctx context.Context, eventID int) ([]model.Registration, error)
	CountByEvent(ctx context.Context, eventID int) (int, error)
}

type registrationRepository struct {
	db DB
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// CreateWithinCapacity inserts a registration unless the event is full.
// The event row stays locked from the capacity read until commit, so two
// concurrent sign-ups for the last seat cannot both succeed.
func (r *registrationRepository) CreateWithinCapacity(ctx context.Context, reg *model.Registration) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var mode string
	var capacity *int
	lockSQL := `SELECT tipo_vagas, numero_vagas FROM eventos WHERE id = $1 FOR UPDATE`
	if err = tx.QueryRow(ctx, lockSQL, reg.EventID).Scan(&mode, &capacity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to lock event: %w", err)
	}

	if mode == model.CapacityLimited && capacity != nil {
		var count int
		countSQL := `SELECT COUNT(*)::int FROM inscricoes_evento WHERE evento_id = $1`
		if err = tx.QueryRow(ctx, countSQL, reg.EventID).Scan(&count); err != nil {
			return fmt.Errorf("failed to count registrations: %w", err)
		}
		if count >= *capacity {
			return ErrCapacityExceeded
		}
	}

	insertSQL := `INSERT INTO inscricoes_evento (nome, telefone, evento_id) VALUES ($1, $2, $3) RETURNING id, criado_em`
	if err = tx.QueryRow(ctx, insertSQL, reg.Name, reg.Phone, reg.EventID).Scan(&reg.ID, &reg.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert registration: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

// ListByEvent returns the event's registrations in creation order
func (r *registrationRepository) ListByEvent(ctx context.Context, eventID int) ([]model.Registration, error) {
	sql := `SELECT id, evento_id, nome, telefone, criado_em FROM inscricoes_evento WHERE evento_id = $1 ORDER BY id ASC`
	rows, err := r.db.Query(ctx, sql, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	regs := []model.Registration{}
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.Name, &reg.Phone, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}
	return regs, nil
}

func (r *registrationRepository) CountByEvent(ctx context.Context, eventID int) (int, error) {
	var count int
	sql := `SELECT COUNT(*)::int FROM inscricoes_evento WHERE evento_id = $1`
	if err := r.db.QueryRow(ctx, sql, eventID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}

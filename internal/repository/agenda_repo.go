package repository

import (
	"context"
	"errors"
	"fmt"

	"paroquia_connect/internal/model"

	"github.com/jackc/pgx/v5"
)

// AgendaRepository defines operations for agenda items, public schedules included
type AgendaRepository interface {
	Create(ctx context.Context, item *model.AgendaItem) error
	FindByID(ctx context.Context, id int) (*model.AgendaItem, error)
	List(ctx context.Context) ([]model.AgendaItem, error)
	ListPublic(ctx context.Context) ([]model.AgendaItem, error)
	Update(ctx context.Context, item *model.AgendaItem) error
	Delete(ctx context.Context, id int) error
}

type agendaRepository struct {
	db DB
}

// NewAgendaRepository creates a new AgendaRepository
func NewAgendaRepository(db DB) AgendaRepository {
	return &agendaRepository{db: db}
}

const agendaSelect = `
	SELECT id, titulo, tipo, data::text, local, horario::text, descricao, is_public, dia_semana, criado_por
	FROM agenda`

func scanAgenda(row pgx.Row, a *model.AgendaItem) error {
	return row.Scan(&a.ID, &a.Title, &a.Type, &a.Date, &a.Location, &a.Time, &a.Description, &a.IsPublic,
		&a.Weekday, &a.OwnerID)
}

func (r *agendaRepository) Create(ctx context.Context, a *model.AgendaItem) error {
	sql := `INSERT INTO agenda (titulo, tipo, data, local, horario, descricao, is_public, dia_semana, criado_por)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRow(ctx, sql, a.Title, a.Type, a.Date, a.Location, a.Time, a.Description, a.IsPublic,
		a.Weekday, a.OwnerID).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to create agenda item: %w", err)
	}
	return nil
}

// FindByID retrieves an agenda item; (nil, nil) when absent
func (r *agendaRepository) FindByID(ctx context.Context, id int) (*model.AgendaItem, error) {
	a := &model.AgendaItem{}
	if err := scanAgenda(r.db.QueryRow(ctx, agendaSelect+` WHERE id = $1`, id), a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find agenda item by ID: %w", err)
	}
	return a, nil
}

// List returns every agenda item, most recent date first
func (r *agendaRepository) List(ctx context.Context) ([]model.AgendaItem, error) {
	return r.query(ctx, agendaSelect+` ORDER BY data DESC NULLS LAST, id DESC`)
}

// ListPublic returns the public schedule ordered by time of day
func (r *agendaRepository) ListPublic(ctx context.Context) ([]model.AgendaItem, error) {
	return r.query(ctx, agendaSelect+` WHERE is_public = TRUE ORDER BY horario ASC, id ASC`)
}

func (r *agendaRepository) query(ctx context.Context, sql string, args ...any) ([]model.AgendaItem, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query agenda: %w", err)
	}
	defer rows.Close()

	items := []model.AgendaItem{}
	for rows.Next() {
		var a model.AgendaItem
		if err := scanAgenda(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan agenda row: %w", err)
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating agenda rows: %w", err)
	}
	return items, nil
}

func (r *agendaRepository) Update(ctx context.Context, a *model.AgendaItem) error {
	sql := `UPDATE agenda
            SET titulo = $1, tipo = $2, data = $3, local = $4, horario = $5, descricao = $6, dia_semana = $7
            WHERE id = $8`
	tag, err := r.db.Exec(ctx, sql, a.Title, a.Type, a.Date, a.Location, a.Time, a.Description, a.Weekday, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update agenda item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *agendaRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM agenda WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete agenda item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

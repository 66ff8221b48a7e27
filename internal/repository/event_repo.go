package repository

import (
	"context"
	"errors"
	"fmt"

	"paroquia_connect/internal/model"

	"github.com/jackc/pgx/v5"
)

// EventRepository defines operations for event data
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id int) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id int) error
}

type eventRepository struct {
	db DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db DB) EventRepository {
	return &eventRepository{db: db}
}

const eventSelect = `
	SELECT e.id, e.titulo, e.tipo, e.local, e.tipo_vagas, e.numero_vagas, e.data::text, e.horario::text,
	       e.descricao, e.criado_por,
	       (SELECT COUNT(*) FROM inscricoes_evento i WHERE i.evento_id = e.id)::int AS registered_count
	FROM eventos e`

func scanEvent(row pgx.Row, e *model.Event) error {
	return row.Scan(&e.ID, &e.Title, &e.Type, &e.Location, &e.CapacityMode, &e.Capacity, &e.Date, &e.Time,
		&e.Description, &e.OwnerID, &e.RegisteredCount)
}

// Create inserts a new event
func (r *eventRepository) Create(ctx context.Context, e *model.Event) error {
	sql := `INSERT INTO eventos (titulo, tipo, local, tipo_vagas, numero_vagas, data, horario, descricao, criado_por)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRow(ctx, sql, e.Title, e.Type, e.Location, e.CapacityMode, e.Capacity, e.Date, e.Time,
		e.Description, e.OwnerID).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// FindByID retrieves an event with its registration count; (nil, nil) when absent
func (r *eventRepository) FindByID(ctx context.Context, id int) (*model.Event, error) {
	e := &model.Event{}
	if err := scanEvent(r.db.QueryRow(ctx, eventSelect+` WHERE e.id = $1`, id), e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find event by ID: %w", err)
	}
	return e, nil
}

// List returns all events with their registration counts
func (r *eventRepository) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.Query(ctx, eventSelect+` ORDER BY e.data DESC, e.horario DESC, e.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}
	return events, nil
}

// Update overwrites the editable fields of an event
func (r *eventRepository) Update(ctx context.Context, e *model.Event) error {
	sql := `UPDATE eventos
            SET titulo = $1, tipo = $2, local = $3, tipo_vagas = $4, numero_vagas = $5, data = $6, horario = $7, descricao = $8
            WHERE id = $9`
	tag, err := r.db.Exec(ctx, sql, e.Title, e.Type, e.Location, e.CapacityMode, e.Capacity, e.Date, e.Time,
		e.Description, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an event; its registrations are removed by the FK cascade
func (r *eventRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM eventos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"paroquia_connect/internal/model"

	"github.com/jackc/pgx/v5"
)

// AnnouncementRepository defines operations for announcements
type AnnouncementRepository interface {
	Create(ctx context.Context, a *model.Announcement) error
	FindByID(ctx context.Context, id int) (*model.Announcement, error)
	List(ctx context.Context) ([]model.Announcement, error)
	Update(ctx context.Context, a *model.Announcement) error
	Delete(ctx context.Context, id int) error
}

type announcementRepository struct {
	db DB
}

func NewAnnouncementRepository(db DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

const announcementSelect = `SELECT id, titulo, categoria, url, descricao, data::text, criado_por FROM avisos`

func scanAnnouncement(row pgx.Row, a *model.Announcement) error {
	return row.Scan(&a.ID, &a.Title, &a.Category, &a.URL, &a.Description, &a.Date, &a.OwnerID)
}

func (r *announcementRepository) Create(ctx context.Context, a *model.Announcement) error {
	sql := `INSERT INTO avisos (titulo, categoria, url, descricao, data, criado_por)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRow(ctx, sql, a.Title, a.Category, a.URL, a.Description, a.Date, a.OwnerID).Scan(&a.ID); err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

func (r *announcementRepository) FindByID(ctx context.Context, id int) (*model.Announcement, error) {
	a := &model.Announcement{}
	if err := scanAnnouncement(r.db.QueryRow(ctx, announcementSelect+` WHERE id = $1`, id), a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find announcement by ID: %w", err)
	}
	return a, nil
}

// List returns announcements, newest date first
func (r *announcementRepository) List(ctx context.Context) ([]model.Announcement, error) {
	rows, err := r.db.Query(ctx, announcementSelect+` ORDER BY data DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query announcements: %w", err)
	}
	defer rows.Close()

	list := []model.Announcement{}
	for rows.Next() {
		var a model.Announcement
		if err := scanAnnouncement(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan announcement row: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating announcement rows: %w", err)
	}
	return list, nil
}

func (r *announcementRepository) Update(ctx context.Context, a *model.Announcement) error {
	sql := `UPDATE avisos SET titulo = $1, categoria = $2, url = $3, descricao = $4, data = $5 WHERE id = $6`
	tag, err := r.db.Exec(ctx, sql, a.Title, a.Category, a.URL, a.Description, a.Date, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *announcementRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM avisos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

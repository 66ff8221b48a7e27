package repository

import (
	"context"
	"fmt"

	"paroquia_connect/internal/model"
)

// DashboardRepository reads the aggregates shown on the dashboard
type DashboardRepository interface {
	Stats(ctx context.Context, scope model.DashboardScope) (model.DashboardStats, error)
	RecentEvents(ctx context.Context, scope model.DashboardScope, limit int) ([]model.RecentItem, error)
	RecentAnnouncements(ctx context.Context, scope model.DashboardScope, limit int) ([]model.RecentItem, error)
	RecentAgenda(ctx context.Context, scope model.DashboardScope, limit int) ([]model.RecentItem, error)
}

type dashboardRepository struct {
	db DB
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// Stats counts rows in scope; the public schedule count ignores the scope.
// A NULL owner parameter disables the owner filter.
func (r *dashboardRepository) Stats(ctx context.Context, scope model.DashboardScope) (model.DashboardStats, error) {
	var s model.DashboardStats
	sql := `
        SELECT
            (SELECT COUNT(*) FROM eventos WHERE $1::int IS NULL OR criado_por = $1)::int,
            (SELECT COUNT(*) FROM avisos  WHERE $1::int IS NULL OR criado_por = $1)::int,
            (SELECT COUNT(*) FROM agenda  WHERE $1::int IS NULL OR criado_por = $1)::int,
            (SELECT COUNT(*) FROM agenda  WHERE is_public = TRUE)::int`
	err := r.db.QueryRow(ctx, sql, scope.OwnerID).Scan(&s.Events, &s.Announcements, &s.Agenda, &s.Schedules)
	if err != nil {
		return s, fmt.Errorf("failed to count dashboard stats: %w", err)
	}
	return s, nil
}

func (r *dashboardRepository) RecentEvents(ctx context.Context, scope model.DashboardScope, limit int) ([]model.RecentItem, error) {
	return r.recent(ctx, "eventos", scope, limit)
}

func (r *dashboardRepository) RecentAnnouncements(ctx context.Context, scope model.DashboardScope, limit int) ([]model.RecentItem, error) {
	return r.recent(ctx, "avisos", scope, limit)
}

func (r *dashboardRepository) RecentAgenda(ctx context.Context, scope model.DashboardScope, limit int) ([]model.RecentItem, error) {
	return r.recent(ctx, "agenda", scope, limit)
}

// recent only ever receives one of the table names above
func (r *dashboardRepository) recent(ctx context.Context, table string, scope model.DashboardScope, limit int) ([]model.RecentItem, error) {
	sql := fmt.Sprintf(`SELECT id, titulo FROM %s WHERE $1::int IS NULL OR criado_por = $1 ORDER BY id DESC LIMIT $2`, table)
	rows, err := r.db.Query(ctx, sql, scope.OwnerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent %s: %w", table, err)
	}
	defer rows.Close()

	items := []model.RecentItem{}
	for rows.Next() {
		var it model.RecentItem
		if err := rows.Scan(&it.ID, &it.Title); err != nil {
			return nil, fmt.Errorf("failed to scan recent %s row: %w", table, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent %s rows: %w", table, err)
	}
	return items, nil
}

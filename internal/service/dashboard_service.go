package service

import (
	"context"
	"fmt"
	"sort"

	"paroquia_connect/internal/model"
	"paroquia_connect/internal/repository"
)

// DashboardService aggregates counts and recent activity for the home screen
type DashboardService interface {
	Get(ctx context.Context, actor model.Actor) (*model.Dashboard, error)
}

type dashboardService struct {
	repo repository.DashboardRepository
}

func NewDashboardService(repo repository.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

// ScopeFor returns the dashboard scope of actor: admins see everything, managers their own rows
func ScopeFor(actor model.Actor) model.DashboardScope {
	if actor.IsAdmin {
		return model.DashboardScope{}
	}
	id := actor.ID
	return model.DashboardScope{OwnerID: &id}
}

func (s *dashboardService) Get(ctx context.Context, actor model.Actor) (*model.Dashboard, error) {
	scope := ScopeFor(actor)

	stats, err := s.repo.Stats(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	events, err := s.repo.RecentEvents(ctx, scope, model.RecentPerEntity)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent events: %w", err)
	}
	announcements, err := s.repo.RecentAnnouncements(ctx, scope, model.RecentPerEntity)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent announcements: %w", err)
	}
	agenda, err := s.repo.RecentAgenda(ctx, scope, model.RecentPerEntity)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent agenda: %w", err)
	}

	return &model.Dashboard{
		Stats:    stats,
		Activity: MergeActivity(events, announcements, agenda),
		UserRole: actor.Role(),
	}, nil
}

// MergeActivity labels the recent rows of each table, orders them by sort id
// descending and keeps the first ActivityFeedLimit. Ids from different tables
// may collide; ties keep events before announcements before agenda.
func MergeActivity(events, announcements, agenda []model.RecentItem) []model.Activity {
	feed := make([]model.Activity, 0, len(events)+len(announcements)+len(agenda))
	add := func(items []model.RecentItem, action, kind string) {
		for _, it := range items {
			feed = append(feed, model.Activity{
				Action: action,
				Item:   it.Title,
				Type:   kind,
				SortID: it.ID * model.ActivitySortMultiplier,
			})
		}
	}
	add(events, model.ActionEventRegistered, model.ActivityTypeEvent)
	add(announcements, model.ActionAnnouncementPublished, model.ActivityTypeAnnouncement)
	add(agenda, model.ActionNewAppointment, model.ActivityTypeAgenda)

	sort.SliceStable(feed, func(i, j int) bool { return feed[i].SortID > feed[j].SortID })
	if len(feed) > model.ActivityFeedLimit {
		feed = feed[:model.ActivityFeedLimit]
	}
	return feed
}

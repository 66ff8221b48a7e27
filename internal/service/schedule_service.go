package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"paroquia_connect/internal/model"
	"paroquia_connect/internal/repository"
)

// ScheduleService exposes public agenda items as the parish schedule.
// Non-public agenda items do not exist as far as this service is concerned.
type ScheduleService interface {
	List(ctx context.Context) ([]model.Schedule, error)
	Create(ctx context.Context, actor model.Actor, req model.CreateScheduleRequest) (*model.Schedule, error)
	Update(ctx context.Context, actor model.Actor, id int, req model.UpdateScheduleRequest) (*model.Schedule, error)
	Delete(ctx context.Context, actor model.Actor, id int) error
}

type scheduleService struct {
	repo repository.AgendaRepository
}

func NewScheduleService(repo repository.AgendaRepository) ScheduleService {
	return &scheduleService{repo: repo}
}

func (s *scheduleService) List(ctx context.Context) ([]model.Schedule, error) {
	items, err := s.repo.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	schedules := make([]model.Schedule, 0, len(items))
	for i := range items {
		schedules = append(schedules, model.ScheduleFromAgenda(&items[i]))
	}
	return schedules, nil
}

func (s *scheduleService) Create(ctx context.Context, actor model.Actor, req model.CreateScheduleRequest) (*model.Schedule, error) {
	title := strings.TrimSpace(req.Title)
	weekday := strings.TrimSpace(req.Weekday)
	if title == "" || weekday == "" || req.Time == "" {
		return nil, fmt.Errorf("%w: título, dia e horário são obrigatórios", ErrValidation)
	}

	owner := actor.ID
	item := &model.AgendaItem{
		Title:    title,
		Weekday:  &weekday,
		Time:     req.Time,
		Location: strings.TrimSpace(req.Location),
		IsPublic: true,
		OwnerID:  &owner,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create schedule in repo: %w", err)
	}
	schedule := model.ScheduleFromAgenda(item)
	return &schedule, nil
}

func (s *scheduleService) loadMutable(ctx context.Context, actor model.Actor, id int) (*model.AgendaItem, error) {
	item, err := loadMutableAgenda(ctx, s.repo, actor, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("horário %w", ErrNotFound)
		}
		return nil, err
	}
	if !item.IsPublic {
		return nil, fmt.Errorf("horário %w", ErrNotFound)
	}
	return item, nil
}

// Update changes only the fields present in req
func (s *scheduleService) Update(ctx context.Context, actor model.Actor, id int, req model.UpdateScheduleRequest) (*model.Schedule, error) {
	item, err := s.loadMutable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: título não pode ser vazio", ErrValidation)
		}
		item.Title = strings.TrimSpace(*req.Title)
	}
	if req.Weekday != nil {
		weekday := strings.TrimSpace(*req.Weekday)
		item.Weekday = &weekday
	}
	if req.Time != nil {
		item.Time = *req.Time
	}
	if req.Location != nil {
		item.Location = strings.TrimSpace(*req.Location)
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("horário %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update schedule in repo: %w", err)
	}
	schedule := model.ScheduleFromAgenda(item)
	return &schedule, nil
}

func (s *scheduleService) Delete(ctx context.Context, actor model.Actor, id int) error {
	if _, err := s.loadMutable(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("horário %w", ErrNotFound)
		}
		return fmt.Errorf("failed to delete schedule in repo: %w", err)
	}
	return nil
}

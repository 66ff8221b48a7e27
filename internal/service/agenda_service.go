package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"paroquia_connect/internal/authz"
	"paroquia_connect/internal/model"
	"paroquia_connect/internal/repository"
)

// AgendaService manages the shared calendar
type AgendaService interface {
	List(ctx context.Context) ([]model.AgendaItem, error)
	Create(ctx context.Context, actor model.Actor, req model.AgendaRequest) (*model.AgendaItem, error)
	Update(ctx context.Context, actor model.Actor, id int, req model.AgendaRequest) (*model.AgendaItem, error)
	Delete(ctx context.Context, actor model.Actor, id int) error
}

type agendaService struct {
	repo repository.AgendaRepository
}

// NewAgendaService creates a new AgendaService
func NewAgendaService(repo repository.AgendaRepository) AgendaService {
	return &agendaService{repo: repo}
}

func (s *agendaService) List(ctx context.Context) ([]model.AgendaItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agenda: %w", err)
	}
	return items, nil
}

func applyAgendaRequest(a *model.AgendaItem, req model.AgendaRequest) error {
	a.Title = strings.TrimSpace(req.Title)
	a.Type = strings.TrimSpace(req.Type)
	a.Location = strings.TrimSpace(req.Location)
	a.Time = req.Time
	a.Description = req.Description
	if a.Title == "" || req.Date == "" {
		return fmt.Errorf("%w: título e data são obrigatórios", ErrValidation)
	}
	date := req.Date
	a.Date = &date
	return nil
}

func (s *agendaService) Create(ctx context.Context, actor model.Actor, req model.AgendaRequest) (*model.AgendaItem, error) {
	item := &model.AgendaItem{}
	if err := applyAgendaRequest(item, req); err != nil {
		return nil, err
	}
	owner := actor.ID
	item.OwnerID = &owner

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create agenda item in repo: %w", err)
	}
	return item, nil
}

// loadMutableAgenda fetches an agenda item the actor may change
func loadMutableAgenda(ctx context.Context, repo repository.AgendaRepository, actor model.Actor, id int) (*model.AgendaItem, error) {
	item, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find agenda item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("item da agenda %w", ErrNotFound)
	}
	if !authz.CanMutate(actor, item) {
		return nil, ErrForbidden
	}
	return item, nil
}

// Update replaces the editable fields; the public flag and weekday are left as they are
func (s *agendaService) Update(ctx context.Context, actor model.Actor, id int, req model.AgendaRequest) (*model.AgendaItem, error) {
	item, err := loadMutableAgenda(ctx, s.repo, actor, id)
	if err != nil {
		return nil, err
	}
	if err := applyAgendaRequest(item, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("item da agenda %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update agenda item in repo: %w", err)
	}
	return item, nil
}

func (s *agendaService) Delete(ctx context.Context, actor model.Actor, id int) error {
	if _, err := loadMutableAgenda(ctx, s.repo, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("item da agenda %w", ErrNotFound)
		}
		return fmt.Errorf("failed to delete agenda item in repo: %w", err)
	}
	return nil
}

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

// EventService manages events and their public registrations
type EventService interface {
	List(ctx context.Context) ([]model.Event, error)
	Get(ctx context.Context, id int) (*model.Event, error)
	Create(ctx context.Context, actor model.Actor, req model.EventRequest) (*model.Event, error)
	Update(ctx context.Context, actor model.Actor, id int, req model.EventRequest) (*model.Event, error)
	Delete(ctx context.Context, actor model.Actor, id int) error
	RegisterForEvent(ctx context.Context, eventID int, req model.RegistrationRequest) (*model.Registration, error)
	ListRegistrations(ctx context.Context, eventID int) ([]model.Registration, error)
}

type eventService struct {
	events        repository.EventRepository
	registrations repository.RegistrationRepository
}

// NewEventService creates a new EventService
func NewEventService(events repository.EventRepository, registrations repository.RegistrationRepository) EventService {
	return &eventService{events: events, registrations: registrations}
}

func (s *eventService) List(ctx context.Context) ([]model.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *eventService) Get(ctx context.Context, id int) (*model.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find event by ID: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("evento %w", ErrNotFound)
	}
	return event, nil
}

// applyEventRequest copies the editable fields and normalizes the capacity mode:
// an absent or legacy mode means unlimited, and unlimited events carry no capacity.
func applyEventRequest(e *model.Event, req model.EventRequest) error {
	e.Title = strings.TrimSpace(req.Title)
	e.Type = strings.TrimSpace(req.Type)
	e.Location = strings.TrimSpace(req.Location)
	e.Date = req.Date
	e.Time = req.Time
	e.Description = req.Description
	if e.Title == "" || e.Date == "" || e.Time == "" {
		return fmt.Errorf("%w: título, data e horário são obrigatórios", ErrValidation)
	}

	mode, ok := model.NormalizeCapacityMode(req.CapacityMode)
	switch {
	case !ok:
		return fmt.Errorf("%w: tipo_vagas deve ser %q ou %q", ErrValidation, model.CapacityUnlimited, model.CapacityLimited)
	case mode == model.CapacityUnlimited:
		e.CapacityMode = model.CapacityUnlimited
		e.Capacity = nil
	default:
		capacity := req.Capacity.IntPtr()
		if capacity == nil || *capacity < 0 {
			return fmt.Errorf("%w: numero_vagas é obrigatório para vagas limitadas", ErrValidation)
		}
		e.CapacityMode = model.CapacityLimited
		e.Capacity = capacity
	}
	return nil
}

func (s *eventService) Create(ctx context.Context, actor model.Actor, req model.EventRequest) (*model.Event, error) {
	event := &model.Event{}
	if err := applyEventRequest(event, req); err != nil {
		return nil, err
	}
	owner := actor.ID
	event.OwnerID = &owner

	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event in repo: %w", err)
	}
	return event, nil
}

func (s *eventService) loadMutable(ctx context.Context, actor model.Actor, id int) (*model.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutate(actor, event) {
		return nil, ErrForbidden
	}
	return event, nil
}

// Update replaces every editable field of the event
func (s *eventService) Update(ctx context.Context, actor model.Actor, id int, req model.EventRequest) (*model.Event, error) {
	event, err := s.loadMutable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := applyEventRequest(event, req); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, event); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("evento %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update event in repo: %w", err)
	}
	return event, nil
}

// Delete removes the event together with its registrations
func (s *eventService) Delete(ctx context.Context, actor model.Actor, id int) error {
	if _, err := s.loadMutable(ctx, actor, id); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("evento %w", ErrNotFound)
		}
		return fmt.Errorf("failed to delete event in repo: %w", err)
	}
	return nil
}

// RegisterForEvent signs a person up, refusing once a limited event is full
func (s *eventService) RegisterForEvent(ctx context.Context, eventID int, req model.RegistrationRequest) (*model.Registration, error) {
	reg := &model.Registration{
		EventID: eventID,
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
	}
	if reg.Name == "" || reg.Phone == "" {
		return nil, fmt.Errorf("%w: nome e telefone são obrigatórios para a inscrição", ErrValidation)
	}

	if err := s.registrations.CreateWithinCapacity(ctx, reg); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("evento %w", ErrNotFound)
		case errors.Is(err, repository.ErrCapacityExceeded):
			return nil, ErrCapacityExceeded
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}
	return reg, nil
}

func (s *eventService) ListRegistrations(ctx context.Context, eventID int) ([]model.Registration, error) {
	if _, err := s.Get(ctx, eventID); err != nil {
		return nil, err
	}
	regs, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}

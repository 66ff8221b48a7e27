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

// AnnouncementService manages parish announcements
type AnnouncementService interface {
	List(ctx context.Context) ([]model.Announcement, error)
	Create(ctx context.Context, actor model.Actor, req model.CreateAnnouncementRequest) (*model.Announcement, error)
	Update(ctx context.Context, actor model.Actor, id int, req model.UpdateAnnouncementRequest) (*model.Announcement, error)
	Delete(ctx context.Context, actor model.Actor, id int) error
}

type announcementService struct {
	repo repository.AnnouncementRepository
}

func NewAnnouncementService(repo repository.AnnouncementRepository) AnnouncementService {
	return &announcementService{repo: repo}
}

func (s *announcementService) List(ctx context.Context) ([]model.Announcement, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return list, nil
}

func (s *announcementService) Create(ctx context.Context, actor model.Actor, req model.CreateAnnouncementRequest) (*model.Announcement, error) {
	a := &model.Announcement{
		Title:       strings.TrimSpace(req.Title),
		Category:    strings.TrimSpace(req.Category),
		URL:         req.URL,
		Description: req.Description,
		Date:        req.Date,
	}
	if a.Title == "" || a.Category == "" || a.Date == "" {
		return nil, fmt.Errorf("%w: campos obrigatórios faltando (titulo, categoria, data)", ErrValidation)
	}
	owner := actor.ID
	a.OwnerID = &owner

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create announcement in repo: %w", err)
	}
	return a, nil
}

func (s *announcementService) loadMutable(ctx context.Context, actor model.Actor, id int) (*model.Announcement, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find announcement: %w", err)
	}
	if a == nil {
		return nil, fmt.Errorf("aviso %w", ErrNotFound)
	}
	if !authz.CanMutate(actor, a) {
		return nil, ErrForbidden
	}
	return a, nil
}

// Update keeps the stored value of every field absent from req
func (s *announcementService) Update(ctx context.Context, actor model.Actor, id int, req model.UpdateAnnouncementRequest) (*model.Announcement, error) {
	a, err := s.loadMutable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = strings.TrimSpace(*req.Title)
	}
	if req.Category != nil {
		a.Category = strings.TrimSpace(*req.Category)
	}
	if req.URL != nil {
		a.URL = req.URL
	}
	if req.Description != nil {
		a.Description = req.Description
	}
	if req.Date != nil {
		a.Date = *req.Date
	}
	if a.Title == "" || a.Category == "" || a.Date == "" {
		return nil, fmt.Errorf("%w: titulo, categoria e data não podem ser vazios", ErrValidation)
	}

	if err := s.repo.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("aviso %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update announcement in repo: %w", err)
	}
	return a, nil
}

func (s *announcementService) Delete(ctx context.Context, actor model.Actor, id int) error {
	if _, err := s.loadMutable(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("aviso %w", ErrNotFound)
		}
		return fmt.Errorf("failed to delete announcement in repo: %w", err)
	}
	return nil
}

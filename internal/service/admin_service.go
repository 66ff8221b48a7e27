package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"paroquia_connect/internal/model"
	"paroquia_connect/internal/repository"
	"paroquia_connect/internal/utils"
)

const notInformed = "N/A"

// AdminService manages user accounts on behalf of an administrator
type AdminService interface {
	List(ctx context.Context) ([]model.AdminView, error)
	Create(ctx context.Context, req model.CreateAccountRequest) (*model.User, error)
	Update(ctx context.Context, id int, req model.UpdateAccountRequest) (*model.User, error)
	Delete(ctx context.Context, actor model.Actor, id int) error
}

type adminService struct {
	users repository.UserRepository
}

func NewAdminService(users repository.UserRepository) AdminService {
	return &adminService{users: users}
}

// ToAdminView converts an account into the admin listing shape
func ToAdminView(u *model.User) model.AdminView {
	phone := notInformed
	if u.Phone != nil && *u.Phone != "" {
		phone = *u.Phone
	}
	joined := notInformed
	if !u.CreatedAt.IsZero() {
		joined = u.CreatedAt.Format("2006-01-02")
	}
	return model.AdminView{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   phone,
		Joined:  joined,
		IsAdmin: u.IsAdmin,
	}
}

func (s *adminService) List(ctx context.Context) ([]model.AdminView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	views := make([]model.AdminView, 0, len(users))
	for i := range users {
		views = append(views, ToAdminView(&users[i]))
	}
	return views, nil
}

// Create adds an account that can log in immediately
func (s *adminService) Create(ctx context.Context, req model.CreateAccountRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: nome, email e senha são obrigatórios", ErrValidation)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrConflict
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:          name,
		Email:         email,
		PasswordHash:  hashed,
		Phone:         req.Phone,
		IsAdmin:       req.IsAdmin,
		EmailVerified: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user, nil
}

// Update applies the fields present in req; a new password is re-hashed
func (s *adminService) Update(ctx context.Context, id int, req model.UpdateAccountRequest) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("administrador %w", ErrNotFound)
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		email := normalizeEmail(*req.Email)
		taken, err := s.users.EmailTakenByOther(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w para outro usuário", ErrConflict)
		}
		user.Email = email
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, fmt.Errorf("%w para outro usuário", ErrConflict)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("administrador %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes an account other than the actor's own
func (s *adminService) Delete(ctx context.Context, actor model.Actor, id int) error {
	if actor.ID == id {
		return ErrSelfDelete
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("administrador %w", ErrNotFound)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

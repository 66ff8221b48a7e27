package model

import "time"

const (
	RoleAdmin   = "admin"
	RoleManager = "gestor"
)

// User represents an account that manages parish content
type User struct {
	ID               int       `json:"id"`
	Name             string    `json:"nome"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"` // Do not expose password hash in JSON responses
	Phone            *string   `json:"telefone,omitempty"`
	IsAdmin          bool      `json:"is_admin"`
	EmailVerified    bool      `json:"email_verificado"`
	VerificationCode *string   `json:"-"`
	CreatedAt        time.Time `json:"criado_em"`
}

// Role returns the role tag derived from the admin flag
func (u *User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleManager
}

// Actor returns the identity used for authorization checks
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, IsAdmin: u.IsAdmin}
}

// Actor is the authenticated caller of an operation
type Actor struct {
	ID      int
	IsAdmin bool
}

// Role returns the role tag of the actor
func (a Actor) Role() string {
	if a.IsAdmin {
		return RoleAdmin
	}
	return RoleManager
}

type RegisterRequest struct {
	Name     string  `json:"nome" binding:"required,max=150"`
	Email    string  `json:"email" binding:"required,email,max=150"`
	Password string  `json:"senha" binding:"required,min=6,max=72"`
	Phone    *string `json:"telefone" binding:"omitempty,max=13"`
}

type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"codigo" binding:"required,len=6,numeric"`
}

type ResendCodeRequest struct {
	Email string `json:"email" binding:"required,email,max=150"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"senha" binding:"required"`
}

// CurrentUserResponse is returned by /auth/me; User is nil for anonymous callers
type CurrentUserResponse struct {
	IsAuthenticated bool         `json:"is_authenticated"`
	User            *UserSummary `json:"user,omitempty"`
}

type UserSummary struct {
	ID      int     `json:"id"`
	Name    string  `json:"nome"`
	Email   string  `json:"email"`
	Phone   *string `json:"telefone,omitempty"`
	IsAdmin bool    `json:"is_admin"`
	Role    string  `json:"role"`
}

// Summary converts the user into its public representation
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		IsAdmin: u.IsAdmin,
		Role:    u.Role(),
	}
}

// AdminView is the account listing shape used by admin management
type AdminView struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Joined  string `json:"joined"`
	IsAdmin bool   `json:"is_admin"`
}

type CreateAccountRequest struct {
	Name     string  `json:"name" binding:"required,max=150"`
	Email    string  `json:"email" binding:"required,email,max=150"`
	Password string  `json:"password" binding:"required,min=6,max=72"`
	Phone    *string `json:"phone" binding:"omitempty,max=13"`
	IsAdmin  bool    `json:"is_admin"`
}

// UpdateAccountRequest uses pointers so absent fields are left untouched
type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,max=150"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email,max=150"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=13"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=6,max=72"`
	IsAdmin  *bool   `json:"is_admin,omitempty"`
}

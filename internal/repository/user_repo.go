package repository

import (
	"context"
	"errors"
	"fmt"

	"paroquia_connect/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	MarkVerified(ctx context.Context, id int) error
	SetVerificationCode(ctx context.Context, id int, code string) error
	Delete(ctx context.Context, id int) error
	EmailTakenByOther(ctx context.Context, email string, id int) (bool, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, nome, email, senha_hash, telefone, is_admin, email_verificado, codigo_verificacao, criado_em`

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.IsAdmin,
		&u.EmailVerified, &u.VerificationCode, &u.CreatedAt)
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO usuarios (nome, email, senha_hash, telefone, is_admin, email_verificado, codigo_verificacao)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, criado_em`
	err := r.db.QueryRow(ctx, sql, user.Name, user.Email, user.PasswordHash, user.Phone, user.IsAdmin,
		user.EmailVerified, user.VerificationCode).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by email; (nil, nil) when absent
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM usuarios WHERE email = $1`
	if err := scanUser(r.db.QueryRow(ctx, sql, email), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by ID; (nil, nil) when absent
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM usuarios WHERE id = $1`
	if err := scanUser(r.db.QueryRow(ctx, sql, id), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// List returns every account ordered by id
func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM usuarios ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// Update overwrites the mutable account fields
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	sql := `UPDATE usuarios
            SET nome = $1, email = $2, telefone = $3, senha_hash = $4, is_admin = $5
            WHERE id = $6`
	tag, err := r.db.Exec(ctx, sql, user.Name, user.Email, user.Phone, user.PasswordHash, user.IsAdmin, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkVerified flags the email as verified and clears the pending code
func (r *userRepository) MarkVerified(ctx context.Context, id int) error {
	sql := `UPDATE usuarios SET email_verificado = TRUE, codigo_verificacao = NULL WHERE id = $1`
	tag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetVerificationCode replaces the pending code of an unverified account
func (r *userRepository) SetVerificationCode(ctx context.Context, id int, code string) error {
	sql := `UPDATE usuarios SET codigo_verificacao = $1 WHERE id = $2 AND email_verificado = FALSE`
	tag, err := r.db.Exec(ctx, sql, code, id)
	if err != nil {
		return fmt.Errorf("failed to set verification code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an account; its sessions go with it
func (r *userRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// EmailTakenByOther reports whether email belongs to an account other than id
func (r *userRepository) EmailTakenByOther(ctx context.Context, email string, id int) (bool, error) {
	var taken bool
	sql := `SELECT EXISTS (SELECT 1 FROM usuarios WHERE email = $1 AND id <> $2)`
	if err := r.db.QueryRow(ctx, sql, email, id).Scan(&taken); err != nil {
		return false, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	return taken, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/2dawng/CorsairStream-BE/internal/domain"
	"github.com/2dawng/CorsairStream-BE/pkg/database"
	"github.com/lib/pq"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user and fills in the generated id and creation time.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, profile_picture, is_active, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	err := r.db.DB.QueryRowContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.ProfilePicture,
		user.IsActive,
		user.IsAdmin,
		user.CreatedAt,
	).Scan(&user.ID)

	if err != nil {
		// Check for unique constraint violation (duplicate email or username)
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateEmail)
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, profile_picture, is_active, is_admin, created_at
		FROM users
		WHERE email = $1
	`

	user := &domain.User{}
	var profilePicture sql.NullString

	err := r.db.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&profilePicture,
		&user.IsActive,
		&user.IsAdmin,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s not found: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if profilePicture.Valid {
		user.ProfilePicture = &profilePicture.String
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, profile_picture, is_active, is_admin, created_at
		FROM users
		WHERE id = $1
	`

	user := &domain.User{}
	var profilePicture sql.NullString

	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&profilePicture,
		&user.IsActive,
		&user.IsAdmin,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %d not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	if profilePicture.Valid {
		user.ProfilePicture = &profilePicture.String
	}

	return user, nil
}

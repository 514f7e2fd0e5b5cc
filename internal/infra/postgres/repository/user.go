package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aliskhannn/deutsch-quiz/internal/domain/entities"
	"github.com/aliskhannn/deutsch-quiz/internal/infra/postgres"
	"github.com/aliskhannn/deutsch-quiz/internal/repository"
)

const uniqueViolation = "23505"

// UserRepository provides access to user data in the database.
type UserRepository struct {
	db postgres.DB
	tr *postgres.Transactor
}

// NewUserRepository creates a new UserRepository with the provided database pool.
func NewUserRepository(db postgres.DB) *UserRepository {
	return &UserRepository{
		db: db,
		tr: postgres.NewTransactor(db),
	}
}

// Create inserts a new user and sets its ID.
// It returns repository.ErrUsernameTaken if the username is already registered.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	return r.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", user.Username).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if exists {
			return repository.ErrUsernameTaken
		}

		query := `
			INSERT INTO users (username, password_hash, created_at)
			VALUES ($1, $2, $3)
			RETURNING id
		`

		err = tx.QueryRow(ctx, query, user.Username, user.PasswordHash, user.CreatedAt).Scan(&user.ID)
		if err != nil {
			// Two concurrent registrations may both pass the check above.
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return repository.ErrUsernameTaken
			}
			return fmt.Errorf("create user: %w", err)
		}

		return nil
	})
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	return r.get(ctx, query, username)
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	return r.get(ctx, query, userID)
}

func (r *UserRepository) get(ctx context.Context, query string, arg any) (*entities.User, error) {
	var user entities.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/aliskhannn/deutsch-quiz/internal/domain/entities"
	"github.com/aliskhannn/deutsch-quiz/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooLong    = errors.New("password is too long")
)

type AccountService struct {
	users UserRepository
	cost  int

	// dummyHash is compared against when the user does not exist, so both
	// failure paths take about the same time.
	dummyHash []byte
}

// NewAccountService creates an AccountService hashing passwords with the given bcrypt cost.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewAccountService(users UserRepository, cost int) *AccountService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	dummy, _ := bcrypt.GenerateFromPassword([]byte("dummy-password"), cost)

	return &AccountService{
		users:     users,
		cost:      cost,
		dummyHash: dummy,
	}
}

// Register creates a user with a bcrypt hash of password.
// It returns repository.ErrUsernameTaken when the username is in use.
func (s *AccountService) Register(ctx context.Context, username, password string) (*entities.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := entities.NewUser(username, string(hash))
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate returns the user when username and password match.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*entities.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// FindByID looks up the user a session is bound to.
func (s *AccountService) FindByID(ctx context.Context, userID int64) (*entities.User, error) {
	return s.users.GetByID(ctx, userID)
}

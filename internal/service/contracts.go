package service

import (
	"context"

	"github.com/aliskhannn/deutsch-quiz/internal/domain/entities"
)

//go:generate mockgen -source=contracts.go -destination=mock/mock_contracts.go

type ContentRepository interface {
	Vocabulary(ctx context.Context) (*entities.Vocabulary, error)
	Grammar(ctx context.Context) ([]entities.GrammarLesson, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
}

type ResultRepository interface {
	Save(ctx context.Context, result *entities.QuizResult) error
	ListByUser(ctx context.Context, userID int64) ([]*entities.QuizResult, error)
}

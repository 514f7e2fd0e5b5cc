package web

import (
	"context"

	"github.com/aliskhannn/deutsch-quiz/internal/domain/entities"
)

type ContentService interface {
	Vocabulary(ctx context.Context) (*entities.Vocabulary, error)
	Grammar(ctx context.Context) ([]entities.GrammarLesson, error)
	Topics(ctx context.Context) ([]string, error)
}

type QuizService interface {
	GenerateQuiz(ctx context.Context, topic string) ([]entities.QuizQuestion, *entities.AnswerKey, error)
}

type AccountService interface {
	Register(ctx context.Context, username, password string) (*entities.User, error)
	Authenticate(ctx context.Context, username, password string) (*entities.User, error)
	FindByID(ctx context.Context, userID int64) (*entities.User, error)
}

type ResultService interface {
	Record(ctx context.Context, userID int64, report entities.ScoreReport) (*entities.QuizResult, error)
	History(ctx context.Context, userID int64) ([]*entities.QuizResult, error)
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

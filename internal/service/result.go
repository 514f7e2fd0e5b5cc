package service

import (
	"context"

	"github.com/aliskhannn/deutsch-quiz/internal/domain/entities"
)

type ResultService struct {
	repository ResultRepository
}

func NewResultService(repository ResultRepository) *ResultService {
	return &ResultService{repository: repository}
}

// Record stores a scored quiz for the user.
func (s *ResultService) Record(ctx context.Context, userID int64, report entities.ScoreReport) (*entities.QuizResult, error) {
	result := entities.NewQuizResult(userID, report.Topic, report.Score, report.Total)
	if err := s.repository.Save(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// History returns every result of the user, most recent first.
func (s *ResultService) History(ctx context.Context, userID int64) ([]*entities.QuizResult, error) {
	return s.repository.ListByUser(ctx, userID)
}

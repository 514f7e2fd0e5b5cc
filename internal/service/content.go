package service

import (
	"context"

	"github.com/aliskhannn/deutsch-quiz/internal/domain/entities"
)

type ContentService struct {
	repository ContentRepository
}

func NewContentService(repository ContentRepository) *ContentService {
	return &ContentService{repository: repository}
}

func (s *ContentService) Vocabulary(ctx context.Context) (*entities.Vocabulary, error) {
	return s.repository.Vocabulary(ctx)
}

func (s *ContentService) Grammar(ctx context.Context) ([]entities.GrammarLesson, error) {
	return s.repository.Grammar(ctx)
}

func (s *ContentService) Topics(ctx context.Context) ([]string, error) {
	vocab, err := s.repository.Vocabulary(ctx)
	if err != nil {
		return nil, err
	}
	return vocab.TopicNames(), nil
}

package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/deutsch-quiz/internal/domain/entities"
	"github.com/aliskhannn/deutsch-quiz/internal/repository"
)

type QuizService struct {
	content ContentRepository
	options *OptionGenerator
}

func NewQuizService(content ContentRepository, options *OptionGenerator) *QuizService {
	return &QuizService{
		content: content,
		options: options,
	}
}

// GenerateQuiz builds one question per vocabulary entry of the topic.
// Wrong answers are drawn from the translations of the whole vocabulary.
// The returned answer key replaces whatever key the caller held before.
func (s *QuizService) GenerateQuiz(
	ctx context.Context, topicName string,
) ([]entities.QuizQuestion, *entities.AnswerKey, error) {
	vocab, err := s.content.Vocabulary(ctx)
	if err != nil {
		return nil, nil, err
	}

	topic, ok := vocab.Topic(topicName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", repository.ErrTopicNotFound, topicName)
	}

	pool := vocab.Translations()

	questions := make([]entities.QuizQuestion, 0, len(topic.Entries))
	for _, entry := range topic.Entries {
		choices, err := s.options.GenerateOptions(entry.Vietnamese, pool)
		if err != nil {
			return nil, nil, fmt.Errorf("question %q: %w", entry.German, err)
		}

		questions = append(questions, entities.QuizQuestion{
			Prompt:  entry.German,
			Choices: choices,
			Correct: entry.Vietnamese,
		})
	}

	return questions, entities.NewAnswerKey(topic.Name, questions), nil
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/deutsch-quiz/internal/domain/entities"
	"github.com/aliskhannn/deutsch-quiz/internal/repository"
	mock_service "github.com/aliskhannn/deutsch-quiz/internal/service/mock"
)

func testVocabulary() *entities.Vocabulary {
	return &entities.Vocabulary{Topics: []entities.Topic{
		{
			Name: "animals",
			Entries: []entities.VocabularyEntry{
				{German: "Hund", Vietnamese: "con chó"},
				{German: "Katze", Vietnamese: "con mèo"},
				{German: "Vogel", Vietnamese: "con chim"},
				{German: "Fisch", Vietnamese: "con cá"},
			},
		},
		{
			Name: "food",
			Entries: []entities.VocabularyEntry{
				{German: "Brot", Vietnamese: "bánh mì"},
				{German: "Apfel", Vietnamese: "quả táo"},
			},
		},
	}}
}

func newQuizServiceMock(t *testing.T, ctrl *gomock.Controller, setupMock func(*mock_service.MockContentRepository)) *QuizService {
	content := mock_service.NewMockContentRepository(ctrl)
	if setupMock != nil {
		setupMock(content)
	}

	return NewQuizService(content, NewOptionGenerator(1))
}

func TestQuizService_GenerateQuiz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		topic     string
		f         func(*mock_service.MockContentRepository)
		wantCount int
		wantErr   error
		anyErr    bool
	}{
		{
			name:  "animals",
			topic: "animals",
			f: func(m *mock_service.MockContentRepository) {
				m.EXPECT().Vocabulary(gomock.Any()).Return(testVocabulary(), nil)
			},
			wantCount: 4,
		},
		{
			name:  "distractors come from other topics",
			topic: "food",
			f: func(m *mock_service.MockContentRepository) {
				m.EXPECT().Vocabulary(gomock.Any()).Return(testVocabulary(), nil)
			},
			wantCount: 2,
		},
		{
			name:  "unknown topic",
			topic: "plants",
			f: func(m *mock_service.MockContentRepository) {
				m.EXPECT().Vocabulary(gomock.Any()).Return(testVocabulary(), nil)
			},
			wantErr: repository.ErrTopicNotFound,
		},
		{
			name:  "pool too small",
			topic: "tiny",
			f: func(m *mock_service.MockContentRepository) {
				m.EXPECT().Vocabulary(gomock.Any()).Return(&entities.Vocabulary{Topics: []entities.Topic{{
					Name: "tiny",
					Entries: []entities.VocabularyEntry{
						{German: "eins", Vietnamese: "một"},
						{German: "zwei", Vietnamese: "hai"},
						{German: "drei", Vietnamese: "ba"},
					},
				}}}, nil)
			},
			wantErr: ErrInsufficientDistractors,
		},
		{
			name:  "content unavailable",
			topic: "animals",
			f: func(m *mock_service.MockContentRepository) {
				m.EXPECT().Vocabulary(gomock.Any()).Return(nil, errors.New("read error"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s := newQuizServiceMock(t, ctrl, tt.f)

			questions, key, err := s.GenerateQuiz(context.Background(), tt.topic)
			if tt.wantErr != nil || tt.anyErr {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Nil(t, key)
				return
			}

			require.NoError(t, err)
			require.Len(t, questions, tt.wantCount)
			require.NotNil(t, key)
			assert.Equal(t, tt.topic, key.Topic)
			require.Len(t, key.Entries, tt.wantCount)

			topic, _ := testVocabulary().Topic(tt.topic)
			for i, q := range questions {
				assert.Equal(t, topic.Entries[i].German, q.Prompt)
				assert.Equal(t, topic.Entries[i].Vietnamese, q.Correct)
				assert.Len(t, q.Choices, 4)
				assert.Contains(t, q.Choices, q.Correct)
				assert.Equal(t, entities.AnswerKeyEntry{Prompt: q.Prompt, Correct: q.Correct}, key.Entries[i])
			}
		})
	}
}

func TestQuizService_ChoicesAreDistinct(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	content := mock_service.NewMockContentRepository(ctrl)
	content.EXPECT().Vocabulary(gomock.Any()).Return(testVocabulary(), nil).Times(50)
	s := NewQuizService(content, NewOptionGenerator(99))

	for i := 0; i < 50; i++ {
		questions, _, err := s.GenerateQuiz(context.Background(), "animals")
		require.NoError(t, err)

		for _, q := range questions {
			seen := make(map[string]int)
			for _, c := range q.Choices {
				seen[c]++
			}
			assert.Len(t, seen, 4, "choices of %q: %v", q.Prompt, q.Choices)
			assert.Equal(t, 1, seen[q.Correct])
		}
	}
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aliskhannn/deutsch-quiz/internal/domain/entities"
)

// ContentRepository reads the vocabulary and grammar documents from disk.
// Files are read on every call so edits show up without a restart.
type ContentRepository struct {
	vocabularyPath string
	grammarPath    string
}

// NewContentRepository creates a ContentRepository for the given JSON files.
func NewContentRepository(vocabularyPath, grammarPath string) *ContentRepository {
	return &ContentRepository{
		vocabularyPath: vocabularyPath,
		grammarPath:    grammarPath,
	}
}

// Vocabulary loads the vocabulary grouped by topic.
func (r *ContentRepository) Vocabulary(_ context.Context) (*entities.Vocabulary, error) {
	data, err := os.ReadFile(r.vocabularyPath)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}

	var vocab entities.Vocabulary
	if err = json.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vocabulary JSON: %w", err)
	}

	for _, topic := range vocab.Topics {
		for i, entry := range topic.Entries {
			if entry.German == "" || entry.Vietnamese == "" {
				return nil, fmt.Errorf("%w: topic %q entry %d is incomplete", ErrContentInvalid, topic.Name, i)
			}
		}
	}

	return &vocab, nil
}

// Grammar loads the grammar lessons.
func (r *ContentRepository) Grammar(_ context.Context) ([]entities.GrammarLesson, error) {
	data, err := os.ReadFile(r.grammarPath)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}

	var lessons []entities.GrammarLesson
	if err = json.Unmarshal(data, &lessons); err != nil {
		return nil, fmt.Errorf("failed to unmarshal grammar JSON: %w", err)
	}

	return lessons, nil
}

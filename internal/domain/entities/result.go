package entities

import "time"

// QuizResult is one scored quiz attempt of a registered user.
type QuizResult struct {
	ID        int64
	UserID    int64
	Topic     *string // nullable, the topic is unknown when the session held no quiz
	Score     int
	Total     int
	CreatedAt time.Time
}

// NewQuizResult creates a result stamped with the current time.
func NewQuizResult(userID int64, topic *string, score, total int) *QuizResult {
	return &QuizResult{
		UserID:    userID,
		Topic:     topic,
		Score:     score,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}
}

// Percentage returns the share of correct answers in percent.
func (r *QuizResult) Percentage() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total) * 100
}

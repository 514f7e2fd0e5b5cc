package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/deutsch-quiz/internal/domain/entities"
	"github.com/aliskhannn/deutsch-quiz/internal/infra/postgres"
)

// ResultRepository stores scored quiz attempts.
type ResultRepository struct {
	db postgres.DB
	tr *postgres.Transactor
}

// NewResultRepository creates a new ResultRepository with the provided database pool.
func NewResultRepository(db postgres.DB) *ResultRepository {
	return &ResultRepository{
		db: db,
		tr: postgres.NewTransactor(db),
	}
}

// Save inserts a quiz result within a transaction and sets its ID.
func (r *ResultRepository) Save(ctx context.Context, result *entities.QuizResult) error {
	query := `
		INSERT INTO quiz_results (user_id, topic, score, total, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return r.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(
			ctx,
			query,
			result.UserID,
			result.Topic,
			result.Score,
			result.Total,
			result.CreatedAt,
		).Scan(&result.ID)
		if err != nil {
			return fmt.Errorf("save quiz result: %w", err)
		}
		return nil
	})
}

// ListByUser returns every result of the user, most recent first.
func (r *ResultRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.QuizResult, error) {
	query := `
		SELECT id, user_id, topic, score, total, created_at
		FROM quiz_results
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	defer rows.Close()

	results := make([]*entities.QuizResult, 0)
	for rows.Next() {
		var res entities.QuizResult
		if err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.Topic,
			&res.Score,
			&res.Total,
			&res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		results = append(results, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz results: %w", err)
	}

	return results, nil
}

// Package submissions tracks field-image submissions and the 24-hour
// resubmission check.
package submissions

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Add(ctx context.Context, userID int64, fieldName string) error {
	query :=
		`INSERT INTO submissions (user_id, fieldname, submitted_time)
         VALUES ($1, $2, now())
		 `

	_, err := r.db.ExecContext(ctx, query, userID, fieldName)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	return nil
}

func (r *PostgresRepository) SubmittedWithin24h(ctx context.Context, userID int64, fieldName string) (bool, error) {
	query :=
		`SELECT count(*) FROM submissions
		 WHERE user_id = $1 AND fieldname = $2 AND submitted_time >= now() - interval '1 day'
		 `

	var count int64
	err := r.db.QueryRowContext(ctx, query, userID, fieldName).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	return count > 0, nil
}

package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spirocarbon/farmrecord/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	query :=
		`SELECT email, password, user_id FROM lookup
		 WHERE email = $1
		 LIMIT 1
		 `

	cred := &Credential{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&cred.Email, &cred.Password, &cred.UserID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return cred, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, email, password string) error {
	query :=
		`UPDATE lookup SET password = $1
		 WHERE email = $2
		 `

	_, err := r.db.ExecContext(ctx, query, password, email)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	return nil
}

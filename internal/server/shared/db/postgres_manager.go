package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/spirocarbon/farmrecord/internal/server/activities"
	"github.com/spirocarbon/farmrecord/internal/server/fields"
	"github.com/spirocarbon/farmrecord/internal/server/migrations"
	"github.com/spirocarbon/farmrecord/internal/server/submissions"
	"github.com/spirocarbon/farmrecord/internal/server/users"
)

type PostgresRepositoryManager struct {
	db          *sql.DB
	users       users.Repository
	fields      fields.Repository
	activities  activities.Repository
	submissions submissions.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Fields() fields.Repository {
	return m.fields
}

func (m *PostgresRepositoryManager) Activities() activities.Repository {
	return m.activities
}

func (m *PostgresRepositoryManager) Submissions() submissions.Repository {
	return m.submissions
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	userRepo, err := users.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}

	fieldRepo, err := fields.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("field repo creation error: %w", err)
	}

	activityRepo, err := activities.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("activity repo creation error: %w", err)
	}

	submissionRepo, err := submissions.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("submission repo creation error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:          db,
		users:       userRepo,
		fields:      fieldRepo,
		activities:  activityRepo,
		submissions: submissionRepo,
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

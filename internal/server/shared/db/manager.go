// Package db wires the relational repositories to a single connection pool
// and applies schema migrations at startup.
package db

import (
	"context"
	"database/sql"

	"github.com/spirocarbon/farmrecord/internal/server/activities"
	"github.com/spirocarbon/farmrecord/internal/server/fields"
	"github.com/spirocarbon/farmrecord/internal/server/submissions"
	"github.com/spirocarbon/farmrecord/internal/server/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Fields() fields.Repository
	Activities() activities.Repository
	Submissions() submissions.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}

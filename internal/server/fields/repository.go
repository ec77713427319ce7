package fields

import (
	"context"
)

type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]Field, error)
}

package activities

import (
	"context"
)

type Repository interface {
	Add(ctx context.Context, a *Activity) error
	ListByUser(ctx context.Context, userID int64) ([]Activity, error)
}

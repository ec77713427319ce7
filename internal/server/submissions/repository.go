package submissions

import (
	"context"
)

type Repository interface {
	// Add records that a user submitted data for a field; the submission
	// timestamp is written by the database at insert time.
	Add(ctx context.Context, userID int64, fieldName string) error

	// SubmittedWithin24h reports whether the user already submitted the
	// same field during the last day.
	SubmittedWithin24h(ctx context.Context, userID int64, fieldName string) (bool, error)
}

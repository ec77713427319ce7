package users

import (
	"context"
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Credential, error)
	UpdatePassword(ctx context.Context, email, password string) error
}

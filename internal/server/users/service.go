// Package users covers the credential side of the service: login, email
// existence checks for OTP issuance, and password updates.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/spirocarbon/farmrecord/internal/common"
	"github.com/spirocarbon/farmrecord/internal/server/auth"
	"github.com/spirocarbon/farmrecord/internal/server/password"
)

// ErrWrongPassword distinguishes a bad password from an unknown user
// (common.ErrorNotFound); the HTTP layer reports different messages for the
// two cases.
var ErrWrongPassword = errors.New("wrong password")

type LoginResult struct {
	UserID      int64
	AccessToken string
}

type Service struct {
	repo   Repository
	hasher *password.Hasher
	tokens *auth.Issuer
}

func NewService(repo Repository, hasher *password.Hasher, tokens *auth.Issuer) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

// Login verifies the submitted credentials and issues an access token.
// An absent credential record and a mismatched password are distinct
// outcomes and are never conflated.
func (s *Service) Login(ctx context.Context, email, submitted string) (*LoginResult, error) {
	cred, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("loading credential: %w", err)
	}

	if !s.hasher.Verify(submitted, cred.Password) {
		return nil, ErrWrongPassword
	}

	token, err := s.tokens.Issue(cred.UserID)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &LoginResult{UserID: cred.UserID, AccessToken: token}, nil
}

// EmailExists reports whether a credential record exists for the address.
func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ChangePassword overwrites the stored credential for the address. The
// value written depends on the hash mode; see the password package.
func (s *Service) ChangePassword(ctx context.Context, email, plain string) error {
	stored, err := s.hasher.Hash(plain)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, email, stored)
}

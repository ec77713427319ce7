package users

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/spirocarbon/farmrecord/internal/common"
	"github.com/spirocarbon/farmrecord/internal/server/auth"
	"github.com/spirocarbon/farmrecord/internal/server/config"
	"github.com/spirocarbon/farmrecord/internal/server/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	cred   *Credential
	getErr error

	updatedEmail    string
	updatedPassword string
	updateErr       error
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.cred, nil
}

func (f *fakeRepo) UpdatePassword(ctx context.Context, email, pw string) error {
	f.updatedEmail = email
	f.updatedPassword = pw
	return f.updateErr
}

func newTestService(repo Repository) *Service {
	hasher := password.NewHasher(config.HashModeLegacySHA256)
	tokens := auth.NewIssuer([]byte("k"), time.Hour)
	return NewService(repo, hasher, tokens)
}

func legacySubmitted(stored string) string {
	sum := sha256.Sum256([]byte(stored))
	return hex.EncodeToString(sum[:])
}

func TestLogin_Success(t *testing.T) {
	repo := &fakeRepo{cred: &Credential{Email: "a@example.com", Password: "stored", UserID: 42}}
	s := newTestService(repo)

	res, err := s.Login(context.Background(), "a@example.com", legacySubmitted("stored"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.UserID)
	assert.NotEmpty(t, res.AccessToken)

	tokens := auth.NewIssuer([]byte("k"), time.Hour)
	userID, err := tokens.Verify(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestLogin_UnknownUser(t *testing.T) {
	s := newTestService(&fakeRepo{getErr: common.ErrorNotFound})

	_, err := s.Login(context.Background(), "missing@example.com", "x")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &fakeRepo{cred: &Credential{Email: "a@example.com", Password: "stored", UserID: 1}}
	s := newTestService(repo)

	_, err := s.Login(context.Background(), "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_RepoError(t *testing.T) {
	s := newTestService(&fakeRepo{getErr: errors.New("db down")})

	_, err := s.Login(context.Background(), "a@example.com", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	assert.NotErrorIs(t, err, ErrWrongPassword)
}

func TestEmailExists(t *testing.T) {
	s := newTestService(&fakeRepo{cred: &Credential{Email: "a@example.com"}})
	ok, err := s.EmailExists(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	s = newTestService(&fakeRepo{getErr: common.ErrorNotFound})
	ok, err = s.EmailExists(context.Background(), "missing@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChangePassword_LegacyStoresVerbatim(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo)

	err := s.ChangePassword(context.Background(), "a@example.com", "newpass")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", repo.updatedEmail)
	assert.Equal(t, "newpass", repo.updatedPassword)
}

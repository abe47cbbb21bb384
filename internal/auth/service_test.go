package auth

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcast/internal/apperr"
	"stockcast/internal/store"
	"stockcast/pkg/config"
	"stockcast/pkg/database"
	"stockcast/pkg/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			SQLitePath: filepath.Join(t.TempDir(), "test.db"),
		},
	}

	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	return NewService(store.NewUserRepository(db.SQL), logger.NewWriter(io.Discard))
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.NotZero(t, id)

	gotID, err := svc.Authenticate(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "secret2")
	assert.ErrorIs(t, err, apperr.ErrDuplicateUsername)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, apperr.ErrAuthentication)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "nobody", "secret1")
	assert.ErrorIs(t, err, apperr.ErrAuthentication)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			SQLitePath: filepath.Join(t.TempDir(), "test.db"),
		},
	}

	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	users := store.NewUserRepository(db.SQL)
	svc := NewService(users, logger.NewWriter(io.Discard))

	_, err = svc.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	u, err := users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.Contains(t, u.PasswordHash, "$2a$")
}

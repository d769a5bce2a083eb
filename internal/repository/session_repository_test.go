package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-records/internal/models"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
)

func TestFileSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewFileSessionRepository(filepath.Join(t.TempDir(), "data", "session.json"))
	ctx := context.Background()

	_, err := repo.Get(ctx, "user_session")
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)

	session := models.Session{ID: "s1", User: models.User{Name: "Admin", Email: "a@b.c"}}
	require.NoError(t, repo.Set(ctx, "user_session", session, time.Hour))

	loaded, err := repo.Get(ctx, "user_session")
	require.NoError(t, err)
	assert.Equal(t, "s1", loaded.ID)
	assert.Equal(t, "Admin", loaded.User.Name)

	require.NoError(t, repo.Delete(ctx, "user_session"))
	_, err = repo.Get(ctx, "user_session")
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
	require.NoError(t, repo.Delete(ctx, "user_session"))
}

func TestFileSessionRepositoryExpires(t *testing.T) {
	repo := NewFileSessionRepository(filepath.Join(t.TempDir(), "session.json"))
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, "user_session", models.Session{ID: "s1"}, time.Minute))

	repo.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err := repo.Get(ctx, "user_session")
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
}

func TestRedisSessionRepositoryWithoutClient(t *testing.T) {
	repo := NewRedisSessionRepository(nil, nil)
	_, err := repo.Get(context.Background(), "user_session")
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
	assert.Error(t, repo.Set(context.Background(), "user_session", models.Session{}, time.Minute))
	assert.NoError(t, repo.Delete(context.Background(), "user_session"))
}

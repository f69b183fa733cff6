package repository

import (
	"context"
	"testing"

	"anoa.com/inkblog/internal/entity"
	"anoa.com/inkblog/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(ctx, &entity.User{Name: "a", Email: "a@example.com"}))
	err := repo.Create(ctx, &entity.User{Name: "b", Email: "A@example.com"})

	assert.ErrorIs(t, err, apperror.ErrBadRequest)
	assert.Equal(t, 409, apperror.MapErrorToStatus(err))
}

func TestMemoryUserRepository_SaveAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	u := &entity.User{Name: "a", Email: "a@example.com"}
	require.NoError(t, repo.Create(ctx, u))

	u.IsBlocked = true
	require.NoError(t, repo.Save(ctx, u))
	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsBlocked)

	found, err := repo.FindByIDs(ctx, []uuid.UUID{u.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = repo.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = repo.FindByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

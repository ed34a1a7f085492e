package jsonfile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/XiPingo/secondhand/internal/domain"
	"github.com/XiPingo/secondhand/internal/repository"
)

func TestUserRepository_CreateAllocatesIncreasingIDs(t *testing.T) {
	cfg := testConfig(t)
	store := mustOpen(t, cfg)
	repo := NewUserRepository(store)
	ctx := context.Background()

	// The bootstrapped admin holds id 1.
	a := domain.NewUser(0, "a@example.com", "", "pw", "a")
	b := domain.NewUser(0, "b@example.com", "", "pw", "b")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	require.Equal(t, 2, a.ID)
	require.Equal(t, 3, b.ID)

	// A gap left by a deletion is not reused.
	require.NoError(t, repo.Delete(ctx, b.ID))
	c := domain.NewUser(0, "c@example.com", "", "pw", "c")
	require.NoError(t, repo.Create(ctx, c))
	require.Equal(t, 4, c.ID)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	cfg := testConfig(t)
	store := mustOpen(t, cfg)
	repo := NewUserRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, domain.NewUser(0, "a@example.com", "", "pw", "a")))

	u, err := repo.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.Equal(t, "a", u.Nickname)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, repository.ErrNotFound)

	exists, err := repo.ExistsByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestUserRepository_UpdatePersists(t *testing.T) {
	cfg := testConfig(t)
	store := mustOpen(t, cfg)
	repo := NewUserRepository(store)
	ctx := context.Background()

	u := domain.NewUser(0, "a@example.com", "", "pw", "旧")
	require.NoError(t, repo.Create(ctx, u))

	u.UpdateProfile("a@example.com", "777", "新", "images/a.png")
	require.NoError(t, repo.Update(ctx, u))

	reopened := mustOpen(t, cfg)
	got, err := NewUserRepository(reopened).GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "新", got.Nickname)
	require.Equal(t, "777", got.Phone)
	require.Equal(t, "images/a.png", got.Avatar)
}

func TestUserRepository_Delete(t *testing.T) {
	cfg := testConfig(t)
	store := mustOpen(t, cfg)
	repo := NewUserRepository(store)
	ctx := context.Background()

	u := domain.NewUser(0, "a@example.com", "", "pw", "a")
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.Delete(ctx, u.ID))

	_, err := repo.GetByID(ctx, u.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, u.ID), repository.ErrNotFound)

	reopened := mustOpen(t, cfg)
	require.Len(t, reopened.users, 1) // only the admin remains
}

func TestUserRepository_RemoveFavoriteRefs(t *testing.T) {
	cfg := testConfig(t)
	store := mustOpen(t, cfg)
	repo := NewUserRepository(store)
	ctx := context.Background()

	a := domain.NewUser(0, "a@example.com", "", "pw", "a")
	a.Favorites = []int{201, 202}
	b := domain.NewUser(0, "b@example.com", "", "pw", "b")
	b.Favorites = []int{202}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	changed, err := repo.RemoveFavoriteRefs(ctx, 201)
	require.NoError(t, err)
	require.Equal(t, 1, changed)
	require.Equal(t, []int{202}, a.Favorites)
	require.Equal(t, []int{202}, b.Favorites)

	// Removing an id nobody references changes nothing.
	changed, err = repo.RemoveFavoriteRefs(ctx, 999)
	require.NoError(t, err)
	require.Zero(t, changed)

	// Several ids are purged in one pass and the result is persisted.
	changed, err = repo.RemoveFavoriteRefs(ctx, 202, 203)
	require.NoError(t, err)
	require.Equal(t, 2, changed)

	reopened := mustOpen(t, cfg)
	for _, u := range reopened.users {
		require.Empty(t, u.Favorites)
	}
}

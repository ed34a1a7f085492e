package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUser_UpdateProfile(t *testing.T) {
	u := NewUser(7, "old@example.com", "123", "secret", "旧昵称")
	u.IsAdmin = true
	u.Favorites = []int{3, 9}

	u.UpdateProfile("new@example.com", "456", "新昵称", "images/a.png")

	require.Equal(t, "new@example.com", u.Email)
	require.Equal(t, "456", u.Phone)
	require.Equal(t, "新昵称", u.Nickname)
	require.Equal(t, "images/a.png", u.Avatar)

	// Identity, password, admin flag and favorites are untouched.
	require.Equal(t, 7, u.ID)
	require.Equal(t, "secret", u.Password)
	require.True(t, u.IsAdmin)
	require.Equal(t, []int{3, 9}, u.Favorites)
}

func TestUser_ToggleFavorite(t *testing.T) {
	u := NewUser(1, "a@example.com", "", "pw", "a")

	require.True(t, u.ToggleFavorite(5))
	require.True(t, u.IsFavorite(5))
	require.True(t, u.ToggleFavorite(9))
	require.Equal(t, []int{5, 9}, u.Favorites)

	// Toggling again removes the id and keeps the rest in order.
	require.False(t, u.ToggleFavorite(5))
	require.False(t, u.IsFavorite(5))
	require.Equal(t, []int{9}, u.Favorites)
}

func TestUser_DisplayName(t *testing.T) {
	u := NewUser(1, "a@example.com", "", "pw", "小王")
	require.Equal(t, "小王", u.DisplayName())

	u.Nickname = ""
	require.Equal(t, "a@example.com", u.DisplayName())
}

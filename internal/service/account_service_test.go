package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/XiPingo/secondhand/internal/domain"
	"github.com/XiPingo/secondhand/internal/repository"
	"github.com/XiPingo/secondhand/internal/repository/jsonfile"
)

// serviceEnv wires services to a real document store in a temporary
// directory. Opening the store bootstraps the default admin as user 1, so
// the first account created by a test gets id 2.
type serviceEnv struct {
	cfg      jsonfile.Config
	users    repository.UserRepository
	products repository.ProductRepository
}

func newServiceEnv(t *testing.T) *serviceEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := jsonfile.DefaultConfig()
	cfg.UsersPath = filepath.Join(dir, "users.json")
	cfg.ProductsPath = filepath.Join(dir, "products.json")

	store, err := jsonfile.Open(cfg, zerolog.Nop())
	require.NoError(t, err)

	return &serviceEnv{
		cfg:      cfg,
		users:    jsonfile.NewUserRepository(store),
		products: jsonfile.NewProductRepository(store),
	}
}

func (e *serviceEnv) addUser(t *testing.T, email, nickname string) *domain.User {
	t.Helper()
	u := domain.NewUser(0, email, "13800000000", "secret", nickname)
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *serviceEnv) addProduct(t *testing.T, sellerID int, name string) *domain.Product {
	t.Helper()
	p := domain.NewProduct(0, name, "electronics", "", 10, nil, sellerID)
	require.NoError(t, e.products.Create(context.Background(), p))
	return p
}

func TestAccountService_Register(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAccountService(env.users, zerolog.Nop())
	ctx := context.Background()

	out, err := svc.Register(ctx, RegisterInput{
		Email:    "alice@example.com",
		Phone:    "13912345678",
		Password: "secret",
		Nickname: "Alice",
	})
	require.NoError(t, err)
	require.Equal(t, 2, out.User.ID)
	require.Equal(t, "alice@example.com", out.User.Email)
	require.Equal(t, "13912345678", out.User.Phone)
	require.Equal(t, "secret", out.User.Password)
	require.Equal(t, "Alice", out.User.Nickname)
	require.False(t, out.User.IsAdmin)
	require.NotNil(t, out.User.Favorites)
	require.Empty(t, out.User.Favorites)

	stored, err := env.users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, out.User.ID, stored.ID)
}

func TestAccountService_Register_NicknameOptional(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAccountService(env.users, zerolog.Nop())

	out, err := svc.Register(context.Background(), RegisterInput{
		Email:    "bob@example.com",
		Password: "pw",
	})
	require.NoError(t, err)
	require.Empty(t, out.User.Nickname)
	require.Equal(t, "bob@example.com", out.User.DisplayName())
}

func TestAccountService_Register_EmailTaken(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAccountService(env.users, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "other"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAccountService_Register_MissingCredentials(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAccountService(env.users, zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"missing email", RegisterInput{Password: "secret"}},
		{"missing password", RegisterInput{Email: "alice@example.com"}},
		{"missing both", RegisterInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.input)
			require.ErrorIs(t, err, ErrMissingCredentials)
		})
	}
}

func TestAccountService_Authenticate(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAccountService(env.users, zerolog.Nop())
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "secret"})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, user.ID)

	_, err = svc.Authenticate(ctx, "alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccountService_Authenticate_DefaultAdmin(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAccountService(env.users, zerolog.Nop())

	admin, err := svc.Authenticate(context.Background(), "admin@example.com", "admin")
	require.NoError(t, err)
	require.True(t, admin.IsAdmin)
	require.Equal(t, 1, admin.ID)
}

func TestAccountService_UpdateProfile(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAccountService(env.users, zerolog.Nop())
	ctx := context.Background()

	user := env.addUser(t, "alice@example.com", "Alice")
	user.Favorites = []int{7}
	require.NoError(t, env.users.Update(ctx, user))

	err := svc.UpdateProfile(ctx, UpdateProfileInput{
		UserID:   user.ID,
		Email:    "alice@new.example.com",
		Phone:    "13700000000",
		Nickname: "小红",
		Avatar:   "images/alice.png",
	})
	require.NoError(t, err)

	updated, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "alice@new.example.com", updated.Email)
	require.Equal(t, "13700000000", updated.Phone)
	require.Equal(t, "小红", updated.Nickname)
	require.Equal(t, "images/alice.png", updated.Avatar)

	// Identity, password, role and favorites ride through untouched.
	require.Equal(t, user.ID, updated.ID)
	require.Equal(t, "secret", updated.Password)
	require.False(t, updated.IsAdmin)
	require.Equal(t, []int{7}, updated.Favorites)
}

func TestAccountService_UpdateProfile_OverwritesWithEmpty(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAccountService(env.users, zerolog.Nop())
	ctx := context.Background()

	user := env.addUser(t, "alice@example.com", "Alice")

	// The update replaces every profile field with whatever was submitted,
	// empty values included.
	err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID})
	require.NoError(t, err)

	updated, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, updated.Email)
	require.Empty(t, updated.Phone)
	require.Empty(t, updated.Nickname)
	require.Equal(t, "secret", updated.Password)
}

func TestAccountService_UpdateProfile_UnknownUser(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAccountService(env.users, zerolog.Nop())

	err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 404})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAccountService_List(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAccountService(env.users, zerolog.Nop())
	ctx := context.Background()

	env.addUser(t, "alice@example.com", "Alice")
	env.addUser(t, "bob@example.com", "Bob")

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	// Document order: the bootstrapped admin first, then creation order.
	require.True(t, users[0].IsAdmin)
	require.Equal(t, "alice@example.com", users[1].Email)
	require.Equal(t, "bob@example.com", users[2].Email)
}

func TestAccountService_Get(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAccountService(env.users, zerolog.Nop())
	ctx := context.Background()

	user := env.addUser(t, "alice@example.com", "Alice")

	got, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", got.Email)

	_, err = svc.Get(ctx, 404)
	require.ErrorIs(t, err, ErrUserNotFound)
}

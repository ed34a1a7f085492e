package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/XiPingo/secondhand/internal/domain"
)

func TestAdminService_DeleteUser_CascadesProducts(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAdminService(env.users, env.products, zerolog.Nop())
	ctx := context.Background()

	seller := env.addUser(t, "seller@example.com", "Seller")
	bystander := env.addUser(t, "bystander@example.com", "Bystander")
	fan := env.addUser(t, "fan@example.com", "Fan")

	p1 := env.addProduct(t, seller.ID, "Camera")
	p2 := env.addProduct(t, seller.ID, "Tripod")
	p3 := env.addProduct(t, bystander.ID, "Bicycle")

	fan.Favorites = []int{p1.ID, p3.ID}
	require.NoError(t, env.users.Update(ctx, fan))

	require.NoError(t, svc.DeleteUser(ctx, seller.ID))

	// The account and everything it sold are gone.
	_, err := env.users.GetByID(ctx, seller.ID)
	require.Error(t, err)
	_, err = env.products.GetByID(ctx, p1.ID)
	require.Error(t, err)
	_, err = env.products.GetByID(ctx, p2.ID)
	require.Error(t, err)

	// The cascade reaches into other users' favorites too; unrelated
	// entries survive.
	after, err := env.users.GetByID(ctx, fan.ID)
	require.NoError(t, err)
	require.Equal(t, []int{p3.ID}, after.Favorites)

	// Unrelated accounts and listings are untouched.
	_, err = env.users.GetByID(ctx, bystander.ID)
	require.NoError(t, err)
	_, err = env.products.GetByID(ctx, p3.ID)
	require.NoError(t, err)
}

func TestAdminService_DeleteUser_NoProducts(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAdminService(env.users, env.products, zerolog.Nop())
	ctx := context.Background()

	user := env.addUser(t, "alice@example.com", "Alice")

	require.NoError(t, svc.DeleteUser(ctx, user.ID))

	_, err := env.users.GetByID(ctx, user.ID)
	require.Error(t, err)
}

func TestAdminService_DeleteUser_RefusesAdmins(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAdminService(env.users, env.products, zerolog.Nop())
	ctx := context.Background()

	err := svc.DeleteUser(ctx, 1)
	require.ErrorIs(t, err, domain.ErrAdminProtected)

	// Still there.
	admin, err := env.users.GetByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, admin.IsAdmin)
}

func TestAdminService_DeleteUser_Unknown(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAdminService(env.users, env.products, zerolog.Nop())

	err := svc.DeleteUser(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAdminService_DeleteProduct(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAdminService(env.users, env.products, zerolog.Nop())
	ctx := context.Background()

	seller := env.addUser(t, "seller@example.com", "Seller")
	fan := env.addUser(t, "fan@example.com", "Fan")
	product := env.addProduct(t, seller.ID, "Camera")

	fan.Favorites = []int{product.ID}
	require.NoError(t, env.users.Update(ctx, fan))

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))

	_, err := env.products.GetByID(ctx, product.ID)
	require.Error(t, err)

	after, err := env.users.GetByID(ctx, fan.ID)
	require.NoError(t, err)
	require.Empty(t, after.Favorites)
}

func TestAdminService_DeleteProduct_Unknown(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAdminService(env.users, env.products, zerolog.Nop())

	err := svc.DeleteProduct(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAdminService_Lists(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewAdminService(env.users, env.products, zerolog.Nop())
	ctx := context.Background()

	seller := env.addUser(t, "seller@example.com", "Seller")
	env.addProduct(t, seller.ID, "Camera")

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2) // bootstrap admin plus the seller

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
}

// Package repository defines data access interfaces for the marketplace.
// These interfaces abstract the document store, allowing for different
// implementations (JSON files, in-memory for testing, etc.) while keeping
// the service layer clean.
package repository

import (
	"context"

	"github.com/XiPingo/secondhand/internal/domain"
)

// =============================================================================
// User Repository
// =============================================================================

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create allocates an id for the user, adds it to the collection and
	// persists the user document.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int) (*domain.User, error)

	// GetByEmail retrieves the first user with the given email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByEmail checks if a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns all users in document order.
	List(ctx context.Context) ([]*domain.User, error)

	// Update replaces the stored user with the same ID and persists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID and persists.
	Delete(ctx context.Context, id int) error

	// RemoveFavoriteRefs removes the given product ids from every user's
	// favorites in a single pass, persisting once when anything changed.
	// It returns the number of users whose favorites were modified.
	RemoveFavoriteRefs(ctx context.Context, productIDs ...int) (int, error)
}

// =============================================================================
// Product Repository
// =============================================================================

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// Create allocates an id for the product, adds it to the collection and
	// persists the product document.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID.
	GetByID(ctx context.Context, id int) (*domain.Product, error)

	// List returns all products in document order (insertion order).
	List(ctx context.Context) ([]*domain.Product, error)

	// Update replaces the stored product with the same ID and persists.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product by ID and persists.
	Delete(ctx context.Context, id int) error

	// DeleteBySeller removes every product published by the given seller
	// and persists once. It returns the ids of the removed products so the
	// caller can purge favorite references to them.
	DeleteBySeller(ctx context.Context, sellerID int) ([]int, error)
}

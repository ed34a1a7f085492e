package jsonfile

import (
	"context"

	"github.com/XiPingo/secondhand/internal/domain"
	"github.com/XiPingo/secondhand/internal/repository"
)

// userRepository implements repository.UserRepository over the store.
type userRepository struct {
	store *Store
}

// NewUserRepository creates a user repository backed by the store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

// Create allocates the next user id, appends the user and persists.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	user.ID = domain.NextID(userIDs(r.store.users))
	if user.Favorites == nil {
		user.Favorites = []int{}
	}
	r.store.users = append(r.store.users, user)
	return r.store.SaveUsers()
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	for _, u := range r.store.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetByEmail retrieves the first user with the given email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ExistsByEmail checks if a user with the given email exists.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// List returns all users in document order.
func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	return r.store.users, nil
}

// Update replaces the stored user with the same ID and persists.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	for i, u := range r.store.users {
		if u.ID == user.ID {
			r.store.users[i] = user
			return r.store.SaveUsers()
		}
	}
	return repository.ErrNotFound
}

// Delete removes a user by ID and persists.
func (r *userRepository) Delete(ctx context.Context, id int) error {
	for i, u := range r.store.users {
		if u.ID == id {
			r.store.users = append(r.store.users[:i], r.store.users[i+1:]...)
			return r.store.SaveUsers()
		}
	}
	return repository.ErrNotFound
}

// RemoveFavoriteRefs removes the given product ids from every user's
// favorites, persisting once when anything changed.
func (r *userRepository) RemoveFavoriteRefs(ctx context.Context, productIDs ...int) (int, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}

	gone := make(map[int]bool, len(productIDs))
	for _, id := range productIDs {
		gone[id] = true
	}

	changed := 0
	for _, u := range r.store.users {
		kept := u.Favorites[:0]
		for _, fav := range u.Favorites {
			if !gone[fav] {
				kept = append(kept, fav)
			}
		}
		if len(kept) != len(u.Favorites) {
			u.Favorites = kept
			changed++
		}
	}

	if changed == 0 {
		return 0, nil
	}
	return changed, r.store.SaveUsers()
}

var _ repository.UserRepository = (*userRepository)(nil)

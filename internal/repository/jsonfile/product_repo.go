package jsonfile

import (
	"context"

	"github.com/XiPingo/secondhand/internal/domain"
	"github.com/XiPingo/secondhand/internal/repository"
)

// productRepository implements repository.ProductRepository over the store.
type productRepository struct {
	store *Store
}

// NewProductRepository creates a product repository backed by the store.
func NewProductRepository(store *Store) repository.ProductRepository {
	return &productRepository{store: store}
}

// Create allocates the next product id, appends the product and persists.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	product.ID = domain.NextID(productIDs(r.store.products))
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.Comments == nil {
		product.Comments = []domain.Comment{}
	}
	r.store.products = append(r.store.products, product)
	return r.store.SaveProducts()
}

// GetByID retrieves a product by ID.
func (r *productRepository) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	for _, p := range r.store.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

// List returns all products in document order.
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.store.products, nil
}

// Update replaces the stored product with the same ID and persists.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	for i, p := range r.store.products {
		if p.ID == product.ID {
			r.store.products[i] = product
			return r.store.SaveProducts()
		}
	}
	return repository.ErrNotFound
}

// Delete removes a product by ID and persists.
func (r *productRepository) Delete(ctx context.Context, id int) error {
	for i, p := range r.store.products {
		if p.ID == id {
			r.store.products = append(r.store.products[:i], r.store.products[i+1:]...)
			return r.store.SaveProducts()
		}
	}
	return repository.ErrNotFound
}

// DeleteBySeller removes every product published by the seller and persists
// once. The removed ids are returned for favorite cleanup.
func (r *productRepository) DeleteBySeller(ctx context.Context, sellerID int) ([]int, error) {
	removed := []int{}
	kept := r.store.products[:0]
	for _, p := range r.store.products {
		if p.SellerID == sellerID {
			removed = append(removed, p.ID)
		} else {
			kept = append(kept, p)
		}
	}

	if len(removed) == 0 {
		return removed, nil
	}

	r.store.products = kept
	return removed, r.store.SaveProducts()
}

var _ repository.ProductRepository = (*productRepository)(nil)

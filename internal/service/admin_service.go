package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/XiPingo/secondhand/internal/domain"
	"github.com/XiPingo/secondhand/internal/repository"
)

// AdminService handles the management operations behind the admin surfaces.
// Whether the caller is allowed to reach them is decided at those surfaces;
// the service itself only enforces the rules that hold for everyone, such
// as admin accounts being undeletable.
type AdminService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(userRepo repository.UserRepository, productRepo repository.ProductRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "admin").Logger(),
	}
}

// DeleteUser removes an account together with every listing it published,
// then purges the removed listings from all remaining favorites. Admin
// accounts are refused outright.
func (s *AdminService) DeleteUser(ctx context.Context, userID int) error {
	target, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if target.IsAdmin {
		return domain.NewDomainError(domain.ErrAdminProtected, "refusing to delete", target.Email)
	}

	removed, err := s.productRepo.DeleteBySeller(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	cleaned := 0
	if len(removed) > 0 {
		cleaned, err = s.userRepo.RemoveFavoriteRefs(ctx, removed...)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternalError, err)
		}
	}

	s.logger.Info().
		Int("user_id", userID).
		Int("products_removed", len(removed)).
		Int("favorites_cleaned", cleaned).
		Msg("user deleted")

	return nil
}

// DeleteProduct removes a listing and purges it from every user's
// favorites.
func (s *AdminService) DeleteProduct(ctx context.Context, productID int) error {
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		if err == repository.ErrNotFound {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	cleaned, err := s.userRepo.RemoveFavoriteRefs(ctx, productID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int("product_id", productID).
		Int("favorites_cleaned", cleaned).
		Msg("product deleted by admin")

	return nil
}

// ListUsers returns all accounts in document order.
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return users, nil
}

// ListProducts returns all listings in document order.
func (s *AdminService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return products, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/XiPingo/secondhand/internal/domain"
	"github.com/XiPingo/secondhand/internal/repository"
)

// FavoriteService handles marking and unmarking listings as favorites.
type FavoriteService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(userRepo repository.UserRepository, productRepo repository.ProductRepository, logger zerolog.Logger) *FavoriteService {
	return &FavoriteService{
		userRepo:    userRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "favorite").Logger(),
	}
}

// Toggle flips the favorite state of a listing for the user and persists.
// It returns true when the listing is a favorite afterwards. The listing
// must exist; favorites never point at products that were never there.
func (s *FavoriteService) Toggle(ctx context.Context, userID, productID int) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return false, domain.ErrUserNotFound
		}
		return false, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if err == repository.ErrNotFound {
			return false, domain.ErrProductNotFound
		}
		return false, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	nowFavorite := user.ToggleFavorite(productID)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int("user_id", userID).
		Int("product_id", productID).
		Bool("favorite", nowFavorite).
		Msg("favorite toggled")

	return nowFavorite, nil
}

// List returns the user's favorited listings in document order. Favorite
// ids with no matching listing are skipped.
func (s *FavoriteService) List(ctx context.Context, userID int) ([]*domain.Product, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	favorites := []*domain.Product{}
	for _, p := range products {
		if user.IsFavorite(p.ID) {
			favorites = append(favorites, p)
		}
	}
	return favorites, nil
}

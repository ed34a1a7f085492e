package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/XiPingo/secondhand/internal/domain"
	"github.com/XiPingo/secondhand/internal/repository"
)

// CatalogService handles publishing, browsing and commenting on listings.
type CatalogService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(productRepo repository.ProductRepository, userRepo repository.UserRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		userRepo:    userRepo,
		validate:    validator.New(),
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// PublishInput contains the data needed to publish a listing. The price is
// already coerced by the input surface (domain.ParsePrice with fallback 0).
type PublishInput struct {
	SellerID    int
	Name        string `validate:"required"`
	Category    string
	Description string
	Price       float64
	Images      []string
}

// PublishOutput contains the result of publishing a listing.
type PublishOutput struct {
	Product *domain.Product
}

// Publish creates a new listing for the seller. Only the name is required;
// category and description may be empty and the price is taken as given.
func (s *CatalogService) Publish(ctx context.Context, input PublishInput) (*PublishOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, domain.ErrProductNameRequired
	}

	product := domain.NewProduct(0, input.Name, input.Category, input.Description, input.Price, input.Images, input.SellerID)
	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create product")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int("product_id", product.ID).
		Int("seller_id", product.SellerID).
		Str("name", product.Name).
		Msg("product published")

	return &PublishOutput{Product: product}, nil
}

// EditInput contains the full replacement values for a listing.
type EditInput struct {
	ProductID   int
	ActorID     int
	Name        string
	Category    string
	Description string
	Price       float64
	Images      []string
}

// Edit overwrites the editable listing fields. Only the seller may edit;
// no field validation is applied beyond that.
func (s *CatalogService) Edit(ctx context.Context, input EditInput) error {
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		if err == repository.ErrNotFound {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if product.SellerID != input.ActorID {
		return domain.ErrNotSeller
	}

	product.Edit(input.Name, input.Category, input.Description, input.Price, input.Images)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int("product_id", product.ID).Msg("product edited")
	return nil
}

// GetOutput contains a listing together with its resolved seller.
type GetOutput struct {
	Product *domain.Product

	// Seller is nil when the selling account no longer exists; the caller
	// renders an id placeholder instead of a name.
	Seller *domain.User
}

// Get retrieves a listing and resolves its seller, tolerating a seller that
// has since been deleted.
func (s *CatalogService) Get(ctx context.Context, id int) (*GetOutput, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	out := &GetOutput{Product: product}
	seller, err := s.userRepo.GetByID(ctx, product.SellerID)
	if err == nil {
		out.Seller = seller
	} else if err != repository.ErrNotFound {
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return out, nil
}

// Browse returns all listings, newest first.
func (s *CatalogService) Browse(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	sorted := make([]*domain.Product, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })
	return sorted, nil
}

// Search returns the listings whose name or description contains the
// keyword, case-insensitively, in document order. An empty keyword matches
// everything; the input surface guards against that where it matters.
func (s *CatalogService) Search(ctx context.Context, keyword string) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	kw := strings.ToLower(strings.TrimSpace(keyword))
	matches := []*domain.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), kw) || strings.Contains(strings.ToLower(p.Description), kw) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// AddCommentInput contains the data needed to comment on a listing.
type AddCommentInput struct {
	ProductID int
	AuthorID  int
	Text      string `validate:"required"`
}

// AddComment appends a comment to a listing, snapshotting the author's
// current nickname so the comment keeps rendering after the account is gone.
func (s *CatalogService) AddComment(ctx context.Context, input AddCommentInput) error {
	if err := s.validate.Struct(input); err != nil {
		return domain.ErrCommentTextRequired
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		if err == repository.ErrNotFound {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	author, err := s.userRepo.GetByID(ctx, input.AuthorID)
	if err != nil {
		if err == repository.ErrNotFound {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	product.AddComment(domain.Comment{
		UserID:   author.ID,
		Nickname: author.Nickname,
		Text:     input.Text,
	})

	if err := s.productRepo.Update(ctx, product); err != nil {
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int("product_id", product.ID).
		Int("user_id", author.ID).
		Msg("comment added")

	return nil
}

// DeleteProductInput identifies a listing and the user removing it.
type DeleteProductInput struct {
	ProductID int
	ActorID   int
}

// Delete removes a listing and purges it from every user's favorites.
// The seller may remove their own listing; administrators may remove any.
func (s *CatalogService) Delete(ctx context.Context, input DeleteProductInput) error {
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		if err == repository.ErrNotFound {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	actor, err := s.userRepo.GetByID(ctx, input.ActorID)
	if err != nil {
		if err == repository.ErrNotFound {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if !actor.IsAdmin && product.SellerID != actor.ID {
		return domain.ErrNotSeller
	}

	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	cleaned, err := s.userRepo.RemoveFavoriteRefs(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int("product_id", product.ID).
		Int("user_id", actor.ID).
		Int("favorites_cleaned", cleaned).
		Msg("product deleted")

	return nil
}

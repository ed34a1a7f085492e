package service

import (
	"context"
	"fmt"
	"path"

	"github.com/rs/zerolog"

	"github.com/XiPingo/secondhand/internal/assets"
	"github.com/XiPingo/secondhand/internal/repository"
)

// MaintenanceService checks and repairs the data documents and the image
// directory. The documents are small enough to scan whole, so every
// operation here is a full pass.
type MaintenanceService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	library     *assets.Library
	logger      zerolog.Logger
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	library *assets.Library,
	logger zerolog.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		userRepo:    userRepo,
		productRepo: productRepo,
		library:     library,
		logger:      logger.With().Str("service", "maintenance").Logger(),
	}
}

// FavoriteRef identifies one favorite entry in a user's list.
type FavoriteRef struct {
	UserID    int
	ProductID int
}

// VerifyReport describes the state of the documents after a full scan.
type VerifyReport struct {
	// Users is the number of accounts in the user document.
	Users int

	// Products is the number of listings in the product document.
	Products int

	// Admins is the number of accounts flagged as administrators.
	Admins int

	// DanglingFavorites lists favorite entries that point at products
	// which no longer exist.
	DanglingFavorites []FavoriteRef

	// OrphanProducts lists products whose seller account no longer exists.
	OrphanProducts []int

	// OrphanComments is the number of comments whose author account no
	// longer exists. These keep their nickname snapshot and still render,
	// so they are reported but never repaired.
	OrphanComments int
}

// Clean reports whether the scan found nothing to complain about.
func (r *VerifyReport) Clean() bool {
	return len(r.DanglingFavorites) == 0 && len(r.OrphanProducts) == 0
}

// Verify scans both documents and reports every cross-reference that no
// longer resolves. It never modifies anything.
func (s *MaintenanceService) Verify(ctx context.Context) (*VerifyReport, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	userIDs := make(map[int]bool, len(users))
	report := &VerifyReport{Users: len(users), Products: len(products)}
	for _, u := range users {
		userIDs[u.ID] = true
		if u.IsAdmin {
			report.Admins++
		}
	}

	productIDs := make(map[int]bool, len(products))
	for _, p := range products {
		productIDs[p.ID] = true
		if !userIDs[p.SellerID] {
			report.OrphanProducts = append(report.OrphanProducts, p.ID)
		}
		for _, c := range p.Comments {
			if !userIDs[c.UserID] {
				report.OrphanComments++
			}
		}
	}

	for _, u := range users {
		for _, fav := range u.Favorites {
			if !productIDs[fav] {
				report.DanglingFavorites = append(report.DanglingFavorites, FavoriteRef{
					UserID:    u.ID,
					ProductID: fav,
				})
			}
		}
	}

	s.logger.Debug().
		Int("users", report.Users).
		Int("products", report.Products).
		Int("dangling_favorites", len(report.DanglingFavorites)).
		Int("orphan_products", len(report.OrphanProducts)).
		Msg("document scan completed")

	return report, nil
}

// RepairFavorites removes every favorite entry that points at a product
// which no longer exists. The whole repair is one pass and one save. It
// returns the number of users whose list changed.
func (s *MaintenanceService) RepairFavorites(ctx context.Context) (int, error) {
	report, err := s.Verify(ctx)
	if err != nil {
		return 0, err
	}
	if len(report.DanglingFavorites) == 0 {
		return 0, nil
	}

	seen := make(map[int]bool)
	ids := make([]int, 0, len(report.DanglingFavorites))
	for _, ref := range report.DanglingFavorites {
		if !seen[ref.ProductID] {
			seen[ref.ProductID] = true
			ids = append(ids, ref.ProductID)
		}
	}

	changed, err := s.userRepo.RemoveFavoriteRefs(ctx, ids...)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int("users_changed", changed).
		Int("products_referenced", len(ids)).
		Msg("dangling favorites removed")

	return changed, nil
}

// SweepResult contains the result of an image sweep.
type SweepResult struct {
	// FilesRemoved is the number of files removed, or that would be
	// removed in dry-run mode.
	FilesRemoved int

	// FilesKept is the number of files still referenced by a document.
	FilesKept int

	// Errors is the number of files that could not be removed.
	Errors int
}

// SweepAssets deletes every file in the image directory that no avatar and
// no product image refers to. With dryRun set it only logs what it would
// delete. References are matched by file name, which is unique in the
// managed directory.
func (s *MaintenanceService) SweepAssets(ctx context.Context, dryRun bool) (SweepResult, error) {
	result := SweepResult{}

	names, err := s.library.List()
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	// Documents store forward-slash paths, so path.Base is the right cut.
	referenced := make(map[string]bool)
	for _, u := range users {
		if u.Avatar != "" {
			referenced[path.Base(u.Avatar)] = true
		}
	}
	for _, p := range products {
		for _, img := range p.Images {
			if img != "" {
				referenced[path.Base(img)] = true
			}
		}
	}

	for _, name := range names {
		if referenced[name] {
			result.FilesKept++
			continue
		}

		if dryRun {
			s.logger.Info().
				Str("file", name).
				Msg("[DRY RUN] Would delete unreferenced image")
			result.FilesRemoved++
			continue
		}

		if err := s.library.Remove(name); err != nil {
			s.logger.Error().Err(err).Str("file", name).Msg("Failed to delete unreferenced image")
			result.Errors++
			continue
		}

		s.logger.Debug().Str("file", name).Msg("Deleted unreferenced image")
		result.FilesRemoved++
	}

	s.logger.Info().
		Int("files_removed", result.FilesRemoved).
		Int("files_kept", result.FilesKept).
		Int("errors", result.Errors).
		Bool("dry_run", dryRun).
		Msg("image sweep completed")

	return result, nil
}

// Package jsonfile implements the repository interfaces over two JSON
// documents on local disk: one for users, one for products. The documents
// are the source of truth between runs; in memory the store keeps both
// collections loaded and rewrites a whole document after every mutation.
//
// The store is not safe for concurrent use. The application drives it from
// a single goroutine, which is the deployment model for a local app.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/XiPingo/secondhand/internal/domain"
)

// Config holds the document locations and the identity used when the
// default administrator has to be created.
type Config struct {
	// UsersPath is the path to the user document.
	UsersPath string

	// ProductsPath is the path to the product document.
	ProductsPath string

	// AdminEmail is the login email of the synthesized administrator.
	AdminEmail string

	// AdminPassword is the initial password of the synthesized administrator.
	AdminPassword string

	// AdminNickname is the display name of the synthesized administrator.
	AdminNickname string
}

// DefaultConfig returns the conventional document locations relative to the
// working directory and the stock administrator identity.
func DefaultConfig() Config {
	return Config{
		UsersPath:     "users.json",
		ProductsPath:  "products.json",
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin",
		AdminNickname: "Administrator",
	}
}

// Store owns the in-memory collections and their backing documents.
type Store struct {
	cfg      Config
	logger   zerolog.Logger
	users    []*domain.User
	products []*domain.Product
}

// Open loads both documents and guarantees the administrator invariant:
// after a successful Open there is at least one admin account on disk.
// A missing document yields an empty collection; an unreadable or malformed
// document is a hard error, as is a failed bootstrap save.
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		cfg:    cfg,
		logger: logger.With().Str("component", "jsonfile").Logger(),
	}

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	s.users = users

	products, err := s.loadProducts()
	if err != nil {
		return nil, err
	}
	s.products = products

	if err := s.ensureAdmin(); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("users", len(s.users)).
		Int("products", len(s.products)).
		Str("users_path", cfg.UsersPath).
		Str("products_path", cfg.ProductsPath).
		Msg("documents loaded")

	return s, nil
}

// SaveUsers rewrites the user document from the in-memory collection.
func (s *Store) SaveUsers() error {
	return s.writeDocument(s.cfg.UsersPath, s.users)
}

// SaveProducts rewrites the product document from the in-memory collection.
func (s *Store) SaveProducts() error {
	return s.writeDocument(s.cfg.ProductsPath, s.products)
}

func (s *Store) loadUsers() ([]*domain.User, error) {
	data, err := os.ReadFile(s.cfg.UsersPath)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug().Str("path", s.cfg.UsersPath).Msg("user document missing, starting empty")
		return []*domain.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.cfg.UsersPath, err)
	}
	return decodeUsers(s.cfg.UsersPath, data)
}

func (s *Store) loadProducts() ([]*domain.Product, error) {
	data, err := os.ReadFile(s.cfg.ProductsPath)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug().Str("path", s.cfg.ProductsPath).Msg("product document missing, starting empty")
		return []*domain.Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.cfg.ProductsPath, err)
	}
	return decodeProducts(s.cfg.ProductsPath, data)
}

// ensureAdmin synthesizes the default administrator when no user carries the
// admin flag, and persists it straight away.
func (s *Store) ensureAdmin() error {
	for _, u := range s.users {
		if u.IsAdmin {
			return nil
		}
	}

	admin := domain.NewUser(
		domain.NextID(userIDs(s.users)),
		s.cfg.AdminEmail,
		"",
		s.cfg.AdminPassword,
		s.cfg.AdminNickname,
	)
	admin.IsAdmin = true
	s.users = append(s.users, admin)

	if err := s.SaveUsers(); err != nil {
		return err
	}

	s.logger.Info().
		Int("user_id", admin.ID).
		Str("email", admin.Email).
		Msg("default admin created")

	return nil
}

// writeDocument encodes the collection and atomically replaces the document:
// the bytes go to a uniquely named temp file in the same directory, which is
// then renamed over the target. Readers never observe a half-written file.
func (s *Store) writeDocument(path string, v any) error {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

func userIDs(users []*domain.User) []int {
	ids := make([]int, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func productIDs(products []*domain.Product) []int {
	ids := make([]int, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

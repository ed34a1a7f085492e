// Package service provides the application operations for the marketplace.
package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/XiPingo/secondhand/internal/domain"
	"github.com/XiPingo/secondhand/internal/repository"
)

// AccountService handles registration, login and profile management.
type AccountService struct {
	userRepo repository.UserRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(userRepo repository.UserRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{
		userRepo: userRepo,
		validate: validator.New(),
		logger:   logger.With().Str("service", "account").Logger(),
	}
}

// RegisterInput contains the data needed to register an account. The input
// surface trims the fields before calling; the service stores them as given.
type RegisterInput struct {
	Email    string `validate:"required"`
	Phone    string
	Password string `validate:"required"`
	Nickname string
}

// RegisterOutput contains the result of a registration.
type RegisterOutput struct {
	User *domain.User
}

// Register creates a new account. Email and password are required and the
// email must not belong to an existing account.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, ErrMissingCredentials
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to check email existence")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: '%s'", ErrEmailTaken, input.Email)
	}

	user := domain.NewUser(0, input.Email, input.Phone, input.Password, input.Nickname)
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to create user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int("user_id", user.ID).
		Str("email", user.Email).
		Msg("user registered")

	return &RegisterOutput{User: user}, nil
}

// Authenticate verifies the credentials and returns the account.
// The password comparison is plain text, matching the document format.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Log but don't expose whether the email exists
		s.logger.Debug().Str("email", email).Msg("unknown email during login")
		return nil, ErrInvalidCredentials
	}

	if user.Password != password {
		s.logger.Debug().Str("email", email).Msg("wrong password during login")
		return nil, ErrInvalidCredentials
	}

	s.logger.Info().
		Int("user_id", user.ID).
		Str("email", user.Email).
		Msg("user logged in")

	return user, nil
}

// UpdateProfileInput contains the full replacement profile for an account.
type UpdateProfileInput struct {
	UserID   int
	Email    string
	Phone    string
	Nickname string
	Avatar   string
}

// UpdateProfile overwrites the editable profile fields with the given
// values, exactly as provided. Password, admin flag and favorites stay.
func (s *AccountService) UpdateProfile(ctx context.Context, input UpdateProfileInput) error {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		if err == repository.ErrNotFound {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	user.UpdateProfile(input.Email, input.Phone, input.Nickname, input.Avatar)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int("user_id", user.ID).Msg("profile updated")
	return nil
}

// Get retrieves an account by id.
func (s *AccountService) Get(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return user, nil
}

// List returns all accounts in document order.
func (s *AccountService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return users, nil
}

package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/atelierweb/site-backend/internal/auth"
	"github.com/atelierweb/site-backend/internal/pkg/clock"
)

type Service interface {
	// Login verifies the credentials and returns the account on
	// success. Unknown usernames and bad passwords both surface as
	// ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*Admin, error)

	GetByID(ctx context.Context, id string) (*Admin, error)
	Create(ctx context.Context, username, password string, isSuper bool) (*Admin, error)

	// EnsureDefault seeds the bootstrap account when the admins table
	// is empty, so a fresh deployment can log in.
	EnsureDefault(ctx context.Context, username, password string) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
	clock  clock.Clock
	logger *zap.Logger

	minPasswordLength int
}

func NewService(repo Repository, hasher auth.PasswordHasher, clk clock.Clock, logger *zap.Logger) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		clock:             clk,
		logger:            logger,
		minPasswordLength: 8,
	}
}

func (s *service) Login(ctx context.Context, username, password string) (*Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("fetch admin by username: %w", err)
	}

	if err := s.hasher.Compare(a.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort; a failed timestamp update must not block login.
	now := s.clock.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, a.ID, now); err != nil {
		s.logger.Warn("failed to record admin login time",
			zap.String("admin_id", a.ID),
			zap.Error(err))
	}

	return a, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Admin, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, username, password string, isSuper bool) (*Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := &Admin{
		Username:     username,
		PasswordHash: hash,
		IsSuper:      isSuper,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) EnsureDefault(ctx context.Context, username, password string) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return nil
	}

	if _, err := s.Create(ctx, username, password, true); err != nil {
		// Lost a race against another instance doing the same seed.
		if errors.Is(err, ErrUsernameAlreadyUsed) {
			return nil
		}
		return fmt.Errorf("seed default admin: %w", err)
	}
	s.logger.Info("seeded default admin account", zap.String("username", username))
	return nil
}

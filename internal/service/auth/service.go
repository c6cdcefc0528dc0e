package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/JainishBorsaniya/transaction-wallet-app/internal/domain"
	"github.com/JainishBorsaniya/transaction-wallet-app/internal/repository"
	"github.com/JainishBorsaniya/transaction-wallet-app/pkg/config"
	"github.com/JainishBorsaniya/transaction-wallet-app/pkg/crypto"
	jwtpkg "github.com/JainishBorsaniya/transaction-wallet-app/pkg/jwt"
)

// Service handles registration, authentication, and profile workflows.
type Service struct {
	users    repository.UserRepository
	accounts repository.AccountRepository
	logger   *slog.Logger
	cfg      config.APIConfig
	// dummyHash absorbs a bcrypt comparison when the username does not
	// exist, so the not-found and wrong-password paths cost about the same.
	dummyHash []byte
}

// New constructs a Service.
func New(users repository.UserRepository, accounts repository.AccountRepository, logger *slog.Logger, cfg config.APIConfig) Service {
	dummy, err := crypto.HashPassword("timing-equalizer", cfg.BcryptCost)
	if err != nil {
		// Only reachable with an out-of-range cost; fall back to the default.
		dummy, _ = crypto.HashPassword("timing-equalizer", 0)
	}
	return Service{users: users, accounts: accounts, logger: logger, cfg: cfg, dummyHash: dummy}
}

// Register validates the signup input, provisions the user together with its
// ledger account in one transaction, and returns the user and a signed token.
func (s Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	if err := in.Validate(); err != nil {
		return nil, "", err
	}

	if _, err := s.users.GetUserByUsername(ctx, in.Username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("%w: username lookup: %v", ErrProvisioning, err)
	}

	hash, err := crypto.HashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		CreatedAt:    now,
	}
	account := &domain.Account{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		BalanceCents: s.initialBalance(),
		CreatedAt:    now,
	}
	if err := s.users.CreateUserWithAccount(ctx, user, account); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// A concurrent registration won the race; the constraint, not
			// the pre-check, is the authority.
			return nil, "", ErrUsernameTaken
		}
		return nil, "", fmt.Errorf("%w: %v", ErrProvisioning, err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: token issuance: %v", ErrProvisioning, err)
	}
	s.logger.Info("user registered", "user_id", user.ID, "account_id", account.ID)
	return user, token, nil
}

// Login verifies credentials and returns the user and a signed token.
func (s Service) Login(ctx context.Context, in LoginInput) (*domain.User, string, error) {
	if err := in.Validate(); err != nil {
		return nil, "", err
	}

	user, err := s.users.GetUserByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_, _ = crypto.VerifyPassword(in.Password, s.dummyHash)
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("username lookup: %w", err)
	}

	ok, err := crypto.VerifyPassword(in.Password, user.PasswordHash)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// Authorize validates a bearer token and returns the associated user and claims.
func (s Service) Authorize(ctx context.Context, token string) (*domain.User, *jwtpkg.Claims, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, nil, errors.New("token required")
	}
	claims, err := jwtpkg.Parse(trimmed, s.cfg.JWTSecret)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	return user, claims, nil
}

// UpdateProfile applies a partial update to the authenticated user's record.
// The target is always the token-derived identifier, never one from the body.
func (s Service) UpdateProfile(ctx context.Context, userID string, in UpdateInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	update := domain.UserUpdate{
		UserID:    userID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if in.Password != nil {
		hash, err := crypto.HashPassword(*in.Password, s.cfg.BcryptCost)
		if err != nil {
			return err
		}
		update.PasswordHash = hash
	}
	if update.Empty() {
		return nil
	}

	if err := s.users.UpdateUser(ctx, update); err != nil {
		return fmt.Errorf("%w: %v", ErrUpdate, err)
	}
	s.logger.Info("user profile updated", "user_id", userID, "password_changed", update.PasswordHash != nil)
	return nil
}

// Profile returns the user record and its ledger account.
func (s Service) Profile(ctx context.Context, userID string) (*domain.User, *domain.Account, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	account, err := s.accounts.GetAccountByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, account, nil
}

func (s Service) issueToken(userID string) (string, error) {
	return jwtpkg.GenerateToken(userID, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
}

package repository

import (
	"context"

	"github.com/JainishBorsaniya/transaction-wallet-app/internal/domain"
)

// UserRepository persists users.
type UserRepository interface {
	// CreateUserWithAccount inserts the user and its account as one
	// transaction; neither record survives a failure of the other.
	// A username collision surfaces as ErrConflict.
	CreateUserWithAccount(ctx context.Context, user *domain.User, account *domain.Account) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, update domain.UserUpdate) error
}

// AccountRepository persists ledger accounts.
type AccountRepository interface {
	GetAccountByUserID(ctx context.Context, userID string) (*domain.Account, error)
}

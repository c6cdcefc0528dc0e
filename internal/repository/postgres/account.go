package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/JainishBorsaniya/transaction-wallet-app/internal/domain"
	"github.com/JainishBorsaniya/transaction-wallet-app/internal/repository"
)

// GetAccountByUserID fetches the ledger account owned by the given user.
func (r *Repository) GetAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	const query = `SELECT id, user_id, balance_cents, created_at
		FROM accounts WHERE user_id = $1`
	row := r.pool.QueryRow(ctx, query, userID)
	var a domain.Account
	if err := row.Scan(&a.ID, &a.UserID, &a.BalanceCents, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/JainishBorsaniya/transaction-wallet-app/internal/domain"
	"github.com/JainishBorsaniya/transaction-wallet-app/internal/repository"
)

// CreateUserWithAccount inserts the user and its ledger account inside a
// single transaction. The users.username unique index is the authoritative
// guard against concurrent registrations; a violation rolls back both inserts
// and surfaces as repository.ErrConflict.
func (r *Repository) CreateUserWithAccount(ctx context.Context, user *domain.User, account *domain.Account) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin provisioning tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insertUser = `INSERT INTO users (id, username, password_hash, first_name, last_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := tx.Exec(ctx, insertUser, user.ID, user.Username, user.PasswordHash, user.FirstName, user.LastName, user.CreatedAt); err != nil {
		return mapConstraintError(err)
	}

	const insertAccount = `INSERT INTO accounts (id, user_id, balance_cents, created_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, insertAccount, account.ID, account.UserID, account.BalanceCents, account.CreatedAt); err != nil {
		return mapConstraintError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit provisioning tx: %w", err)
	}
	return nil
}

// GetUserByUsername fetches a user by its normalized username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT id, username, password_hash, first_name, last_name, created_at
		FROM users WHERE username = $1`
	row := r.pool.QueryRow(ctx, query, username)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetUserByID retrieves a user by identifier.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT id, username, password_hash, first_name, last_name, created_at
		FROM users WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateUser applies a partial mutation keyed by user ID. Absent fields keep
// their stored values.
func (r *Repository) UpdateUser(ctx context.Context, update domain.UserUpdate) error {
	if update.Empty() {
		return nil
	}
	set := make([]string, 0, 3)
	args := make([]any, 0, 4)
	arg := 1
	if update.PasswordHash != nil {
		set = append(set, fmt.Sprintf("password_hash = $%d", arg))
		args = append(args, update.PasswordHash)
		arg++
	}
	if update.FirstName != nil {
		set = append(set, fmt.Sprintf("first_name = $%d", arg))
		args = append(args, *update.FirstName)
		arg++
	}
	if update.LastName != nil {
		set = append(set, fmt.Sprintf("last_name = $%d", arg))
		args = append(args, *update.LastName)
		arg++
	}
	args = append(args, update.UserID)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(set, ", "), arg)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

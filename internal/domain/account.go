package domain

import "time"

// Account is a monetary ledger record owned by exactly one User.
type Account struct {
	ID     string
	UserID string
	// BalanceCents is stored in minor units (cents).
	BalanceCents int64
	CreatedAt    time.Time
}

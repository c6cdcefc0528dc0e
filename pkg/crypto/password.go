package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashing marks bcrypt failures that are not a plain mismatch, such as a
// malformed stored hash or an out-of-range cost.
var ErrHashing = errors.New("crypto: password hashing failed")

// HashPassword hashes plaintext using bcrypt with the given cost.
func HashPassword(plain string, cost int) ([]byte, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHashing, err)
	}
	return hash, nil
}

// VerifyPassword compares the supplied plaintext against a stored bcrypt hash.
// It returns (false, nil) on a mismatch and a wrapped ErrHashing when the
// comparison itself could not be performed.
func VerifyPassword(plain string, hash []byte) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hash, []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrHashing, err)
}

package domain

import "time"

// User represents an account holder's identity record. PasswordHash is never
// serialized or logged.
type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	FirstName    string
	LastName     string
	CreatedAt    time.Time
}

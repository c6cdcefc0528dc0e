package repository

import "errors"

// ErrNotFound indicates an entity was not located.
var ErrNotFound = errors.New("repository: not found")

// ErrConflict indicates a unique constraint rejected the write.
var ErrConflict = errors.New("repository: conflict")

package domain

// UserUpdate describes a partial user mutation. Nil fields are left untouched.
type UserUpdate struct {
	UserID       string
	PasswordHash []byte
	FirstName    *string
	LastName     *string
}

// Empty reports whether the update carries no field changes.
func (u UserUpdate) Empty() bool {
	return u.PasswordHash == nil && u.FirstName == nil && u.LastName == nil
}

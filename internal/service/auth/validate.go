package auth

import "strings"

// Validation policy. The password minimum is a single consistent threshold
// shared by signup, signin, and profile update.
const (
	usernameMinLen = 3
	passwordMinLen = 4
	nameMaxLen     = 100
)

// RegisterInput is the raw signup request body.
type RegisterInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginInput is the raw signin request body.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateInput is the raw profile update body. All fields are optional;
// absent fields are left untouched.
type UpdateInput struct {
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// normalizeUsername applies the canonical username form used everywhere:
// trimmed and lowercased.
func normalizeUsername(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func normalizeName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func validateUsername(v *ValidationError, username string) {
	if username == "" {
		v.add("username", "username is required")
		return
	}
	if len(username) < usernameMinLen {
		v.add("username", "username must be at least 3 characters")
	}
}

func validatePassword(v *ValidationError, password string) {
	if password == "" {
		v.add("password", "password is required")
		return
	}
	if len(password) < passwordMinLen {
		v.add("password", "password must be at least 4 characters")
	}
}

func validateName(v *ValidationError, field, name string, required bool) {
	if name == "" {
		if required {
			v.add(field, field+" is required")
		}
		return
	}
	if len(name) > nameMaxLen {
		v.add(field, field+" must be at most 100 characters")
	}
}

// Validate normalizes the input in place and returns a ValidationError
// listing every violation, or nil.
func (in *RegisterInput) Validate() error {
	in.Username = normalizeUsername(in.Username)
	in.FirstName = normalizeName(in.FirstName)
	in.LastName = normalizeName(in.LastName)

	v := &ValidationError{}
	validateUsername(v, in.Username)
	validatePassword(v, in.Password)
	validateName(v, "firstName", in.FirstName, true)
	validateName(v, "lastName", in.LastName, false)
	return v.orNil()
}

// Validate normalizes and checks the signin body.
func (in *LoginInput) Validate() error {
	in.Username = normalizeUsername(in.Username)

	v := &ValidationError{}
	validateUsername(v, in.Username)
	validatePassword(v, in.Password)
	return v.orNil()
}

// Validate checks only the fields present in a partial update.
func (in *UpdateInput) Validate() error {
	v := &ValidationError{}
	if in.Password != nil {
		validatePassword(v, *in.Password)
	}
	if in.FirstName != nil {
		name := normalizeName(*in.FirstName)
		in.FirstName = &name
		validateName(v, "firstName", name, true)
	}
	if in.LastName != nil {
		name := normalizeName(*in.LastName)
		in.LastName = &name
		validateName(v, "lastName", name, false)
	}
	return v.orNil()
}

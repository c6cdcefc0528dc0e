package auth

import (
	"errors"
	"testing"
)

func fieldsByName(err error, t *testing.T) map[string]string {
	t.Helper()
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	out := make(map[string]string, len(validation.Fields))
	for _, f := range validation.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestRegisterInputNormalizes(t *testing.T) {
	in := RegisterInput{Username: "  MixedCase ", Password: "pass1234", FirstName: " First ", LastName: " LAST "}
	if err := in.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if in.Username != "mixedcase" {
		t.Fatalf("username = %q", in.Username)
	}
	if in.FirstName != "first" || in.LastName != "last" {
		t.Fatalf("names = %q %q", in.FirstName, in.LastName)
	}
}

func TestRegisterInputReportsEveryField(t *testing.T) {
	in := RegisterInput{Username: "ab", Password: "", FirstName: ""}
	fields := fieldsByName(in.Validate(), t)
	for _, want := range []string{"username", "password", "firstName"} {
		if _, ok := fields[want]; !ok {
			t.Fatalf("missing %s violation in %v", want, fields)
		}
	}
}

func TestRegisterInputNameLengthLimit(t *testing.T) {
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}
	in := RegisterInput{Username: "abc", Password: "pass1234", FirstName: string(long), LastName: string(long)}
	fields := fieldsByName(in.Validate(), t)
	if _, ok := fields["firstName"]; !ok {
		t.Fatal("expected firstName length violation")
	}
	if _, ok := fields["lastName"]; !ok {
		t.Fatal("expected lastName length violation")
	}
}

func TestRegisterInputLastNameOptional(t *testing.T) {
	in := RegisterInput{Username: "abc", Password: "pass1234", FirstName: "a"}
	if err := in.Validate(); err != nil {
		t.Fatalf("lastName should be optional, got %v", err)
	}
}

func TestLoginInputPasswordPolicyMatchesSignup(t *testing.T) {
	in := LoginInput{Username: "abc", Password: "abc"}
	fields := fieldsByName(in.Validate(), t)
	if _, ok := fields["password"]; !ok {
		t.Fatal("expected password violation for 3-character password")
	}
}

func TestUpdateInputIgnoresAbsentFields(t *testing.T) {
	in := UpdateInput{}
	if err := in.Validate(); err != nil {
		t.Fatalf("all-absent update should validate, got %v", err)
	}
}

func TestUpdateInputNormalizesPresentNames(t *testing.T) {
	name := " NewName "
	in := UpdateInput{FirstName: &name}
	if err := in.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if *in.FirstName != "newname" {
		t.Fatalf("firstName = %q", *in.FirstName)
	}
}

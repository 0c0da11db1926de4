package domain

import (
	"net/mail"
	"strings"
)

// MinPasswordLength is the shortest password the login form accepts.
const MinPasswordLength = 6

// Credentials are the email/password pair exchanged for a session token.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FieldError describes a single invalid form field.
type FieldError struct {
	Field   string
	Message string
}

// Validate checks the login form rules and returns ErrValidation with the
// failing fields as details. The email is trimmed in place.
func (c *Credentials) Validate() error {
	c.Email = strings.TrimSpace(c.Email)

	var fields []FieldError
	switch {
	case c.Email == "":
		fields = append(fields, FieldError{Field: "email", Message: "enter an email"})
	case !isEmail(c.Email):
		fields = append(fields, FieldError{Field: "email", Message: "invalid email"})
	}

	switch {
	case c.Password == "":
		fields = append(fields, FieldError{Field: "password", Message: "enter your password"})
	case len(c.Password) < MinPasswordLength:
		fields = append(fields, FieldError{Field: "password", Message: "password too short"})
	}

	return validationError(fields)
}

// isEmail accepts a bare address only; display names are rejected.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s && strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".")
}

func validationError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return ErrValidation.WithDetails(strings.Join(parts, "; "))
}

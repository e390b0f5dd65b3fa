// Package validation holds the client-side input checks that run before
// any network call: a failed check surfaces immediately and no request is
// made. The backend revalidates everything; these rules only exist to
// short-circuit the obvious mistakes.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/estatekeeper/internal/client/models"
	"github.com/dmitrijs2005/estatekeeper/internal/common"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\d{10,11}$`)
)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsValidPassword requires at least 6 characters.
func IsValidPassword(s string) bool {
	return len(s) >= 6
}

// IsValidPhone requires 10–11 digits.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, msg)
}

// CheckSignIn validates the sign-in form.
func CheckSignIn(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return invalid("email and password are required")
	}
	if !IsValidEmail(email) {
		return invalid("email address is malformed")
	}
	return nil
}

// CheckRegister validates the registration form.
func CheckRegister(email, password, name, phone string) error {
	if strings.TrimSpace(email) == "" || password == "" || strings.TrimSpace(name) == "" || strings.TrimSpace(phone) == "" {
		return invalid("all fields are required")
	}
	if !IsValidEmail(email) {
		return invalid("email address is malformed")
	}
	if !IsValidPassword(password) {
		return invalid("password must be at least 6 characters")
	}
	if !IsValidPhone(phone) {
		return invalid("phone must be 10-11 digits")
	}
	return nil
}

// CheckDraft validates a new-listing form.
func CheckDraft(d models.Draft) error {
	if strings.TrimSpace(d.Title) == "" {
		return invalid("title is required")
	}
	if strings.TrimSpace(d.Location) == "" {
		return invalid("location is required")
	}
	if !d.PropertyType.Valid() {
		return invalid("property type must be one of apartment, house, villa, land")
	}
	if d.Price <= 0 {
		return invalid("price must be positive")
	}
	if d.Area < 0 {
		return invalid("area cannot be negative")
	}
	if d.Bedrooms < 0 || d.Bathrooms < 0 {
		return invalid("room counts cannot be negative")
	}
	if d.Status != "" && !d.Status.Valid() {
		return invalid("status must be one of available, sold, rented")
	}
	return nil
}

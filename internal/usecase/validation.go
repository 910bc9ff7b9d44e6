package usecase

import (
	"regexp"
	"strings"

	domainErrors "github.com/fixpoint/fixpoint/internal/domain/errors"
)

const (
	minUsernameLen = 2
	minPasswordLen = 9
	minRating      = 1
	maxRating      = 5
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 -]{4,19}$`)

// ValidateCredentials checks registration input against the account rules.
func ValidateCredentials(username, password string) error {
	if len(strings.TrimSpace(username)) < minUsernameLen {
		return domainErrors.Validation("username must be at least 2 characters")
	}
	if len(password) < minPasswordLen {
		return domainErrors.Validation("password must be at least 9 characters")
	}
	return nil
}

// ValidatePhone accepts an empty phone or a loosely formatted phone number.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phonePattern.MatchString(phone) {
		return domainErrors.Validation("invalid phone number")
	}
	return nil
}

// ValidateRating checks the 1..5 rating bounds.
func ValidateRating(rating int) error {
	if rating < minRating || rating > maxRating {
		return domainErrors.Validation("rating must be between 1 and 5")
	}
	return nil
}

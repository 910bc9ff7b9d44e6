package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/fixpoint/fixpoint/internal/domain/errors"
)

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		ok       bool
	}{
		{"valid", "bob", "longenough1", true},
		{"two char username", "bo", "longenough1", true},
		{"short username", "b", "longenough1", false},
		{"whitespace username", "   ", "longenough1", false},
		{"short password", "bob", "12345678", false},
		{"nine char password", "bob", "123456789", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.username, tt.password)
			if tt.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.ok && !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"", "+7 900 123-45-67", "89001234567", "12345"}
	for _, phone := range valid {
		if err := ValidatePhone(phone); err != nil {
			t.Errorf("ValidatePhone(%q) = %v, want nil", phone, err)
		}
	}
	invalid := []string{"abc", "+", "123", "+7(900)1234567", "1234567890123456789012345"}
	for _, phone := range invalid {
		if err := ValidatePhone(phone); !errors.Is(err, domainErrors.ErrValidation) {
			t.Errorf("ValidatePhone(%q) = %v, want ErrValidation", phone, err)
		}
	}
}

func TestValidateRating(t *testing.T) {
	for _, rating := range []int{1, 3, 5} {
		if err := ValidateRating(rating); err != nil {
			t.Errorf("ValidateRating(%d) = %v, want nil", rating, err)
		}
	}
	for _, rating := range []int{0, -1, 6} {
		if err := ValidateRating(rating); !errors.Is(err, domainErrors.ErrValidation) {
			t.Errorf("ValidateRating(%d) = %v, want ErrValidation", rating, err)
		}
	}
}

func TestSubmitInputValidate(t *testing.T) {
	base := SubmitInput{Location: "Room 5", ContactPhone: "+7 900 123-45-67", Description: "leak"}

	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	missingLocation := base
	missingLocation.Location = "  "
	if err := missingLocation.Validate(); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	missingDescription := base
	missingDescription.Description = ""
	if err := missingDescription.Validate(); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	badPhone := base
	badPhone.ContactPhone = "nope"
	if err := badPhone.Validate(); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	noPhone := base
	noPhone.ContactPhone = ""
	if err := noPhone.Validate(); err != nil {
		t.Fatalf("phone is optional, got %v", err)
	}
}

package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestWrappersKeepSentinel(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
		reason   string
	}{
		{Validation("rating must be between 1 and 5"), ErrValidation, "rating must be between 1 and 5"},
		{Forbidden("only the assigned technician may finish"), ErrForbidden, "only the assigned technician may finish"},
		{InvalidTransition("order already cancelled"), ErrInvalidTransition, "order already cancelled"},
	}

	for _, tc := range cases {
		if !stderrors.Is(tc.err, tc.sentinel) {
			t.Fatalf("expected %v to match sentinel %v", tc.err, tc.sentinel)
		}
		if !strings.Contains(tc.err.Error(), tc.reason) {
			t.Fatalf("expected reason %q in %q", tc.reason, tc.err.Error())
		}
	}
}

func TestStorage(t *testing.T) {
	if Storage(nil) != nil {
		t.Fatal("expected nil for nil input")
	}

	cause := stderrors.New("connection refused")
	err := Storage(cause)
	if !stderrors.Is(err, ErrStorageFailure) {
		t.Fatalf("expected storage failure sentinel, got %v", err)
	}
	if !stderrors.Is(err, cause) {
		t.Fatalf("expected original cause to be preserved, got %v", err)
	}
}

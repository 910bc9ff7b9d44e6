package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasherClampsCost(t *testing.T) {
	for _, cost := range []int{0, -1, bcrypt.MaxCost + 1} {
		hasher := NewBcryptHasher(cost)
		if hasher.cost != bcrypt.DefaultCost {
			t.Fatalf("cost %d: expected default, got %d", cost, hasher.cost)
		}
	}

	custom := bcrypt.DefaultCost + 2
	if hasher := NewBcryptHasher(custom); hasher.cost != custom {
		t.Fatalf("expected cost %d, got %d", custom, hasher.cost)
	}
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "" || hash == "secret" {
		t.Fatalf("unexpected hash %q", hash)
	}
	if err := hasher.Compare(hash, "secret"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := hasher.Compare(hash, "wrong"); err == nil {
		t.Fatal("expected compare error for wrong password")
	}
}

func TestBcryptHasherHashError(t *testing.T) {
	hasher := &BcryptHasher{cost: bcrypt.MaxCost + 1}
	if _, err := hasher.Hash("password"); err == nil {
		t.Fatal("expected hash error for invalid cost")
	}
}

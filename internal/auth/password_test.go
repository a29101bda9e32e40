package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndCompare(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := h.Compare(hash, "correct horse battery staple"); err != nil {
		t.Fatalf("Compare failed for correct password: %v", err)
	}

	err = h.Compare(hash, "wrong password")
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestPasswordHasher_CompareMalformedHash(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)

	err := h.Compare("not-a-bcrypt-hash", "whatever")
	if err == nil {
		t.Fatal("expected error for malformed hash")
	}
	if errors.Is(err, ErrPasswordMismatch) {
		t.Fatal("malformed hash should not be reported as a mismatch")
	}
}

func TestNewPasswordHasher_OutOfRangeCost(t *testing.T) {
	t.Parallel()

	if got := NewPasswordHasher(1).cost; got != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want default %d", got, bcrypt.DefaultCost)
	}
	if got := NewPasswordHasher(99).cost; got != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want default %d", got, bcrypt.DefaultCost)
	}
}

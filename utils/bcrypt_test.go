package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundtrip(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hashed == "" || hashed == "s3cret" {
		t.Fatalf("hash looks unhashed: %q", hashed)
	}
	if err := CheckPassword(hashed, "s3cret"); err != nil {
		t.Errorf("CheckPassword on matching password: %v", err)
	}
	if err := CheckPassword(hashed, "wrong"); err != bcrypt.ErrMismatchedHashAndPassword {
		t.Errorf("CheckPassword on wrong password = %v, want ErrMismatchedHashAndPassword", err)
	}
}

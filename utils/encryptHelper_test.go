package utils

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestEncryptorRoundTrip(t *testing.T) {
	enc, err := NewEncryptor("test-secret")
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}

	plaintexts := []string{
		"",
		"hello",
		"<html><body>Invoice #INV-2025-001</body></html>",
		strings.Repeat("x", 64*1024),
	}

	for _, plaintext := range plaintexts {
		token, err := enc.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt: %v", err)
		}
		if token == plaintext && plaintext != "" {
			t.Fatal("token equals plaintext")
		}
		if _, err := base64.StdEncoding.DecodeString(token); err != nil {
			t.Fatalf("token is not base64: %v", err)
		}

		got, err := enc.Decrypt(token)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if got != plaintext {
			t.Errorf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(plaintext))
		}
	}
}

// Each call uses a fresh nonce, so the same plaintext must never produce the
// same token twice.
func TestEncryptorNonceVariation(t *testing.T) {
	enc, err := NewEncryptor("test-secret")
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}

	first, err := enc.Encrypt("same input")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	second, err := enc.Encrypt("same input")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if first == second {
		t.Error("two encryptions of the same plaintext produced identical tokens")
	}
}

func TestNewEncryptorEmptyKey(t *testing.T) {
	_, err := NewEncryptor("")
	if err == nil {
		t.Fatal("expected error for empty key")
	}
	if !errors.Is(err, ErrorEncryption) {
		t.Errorf("error %v is not ErrorEncryption", err)
	}
}

func TestEncryptorDecryptRejectsBadInput(t *testing.T) {
	enc, err := NewEncryptor("test-secret")
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"too short", base64.StdEncoding.EncodeToString([]byte("abc"))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := enc.Decrypt(tc.token); !errors.Is(err, ErrorEncryption) {
				t.Errorf("Decrypt(%q) err = %v, want ErrorEncryption", tc.token, err)
			}
		})
	}
}

func TestEncryptorDecryptRejectsTampering(t *testing.T) {
	enc, err := NewEncryptor("test-secret")
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}

	token, err := enc.Encrypt("authentic content")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	raw, _ := base64.StdEncoding.DecodeString(token)
	raw[len(raw)-1] ^= 0x01
	tampered := base64.StdEncoding.EncodeToString(raw)

	if _, err := enc.Decrypt(tampered); !errors.Is(err, ErrorEncryption) {
		t.Errorf("tampered token err = %v, want ErrorEncryption", err)
	}
}

func TestEncryptorKeysAreIndependent(t *testing.T) {
	encA, _ := NewEncryptor("key-a")
	encB, _ := NewEncryptor("key-b")

	token, err := encA.Encrypt("secret")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := encB.Decrypt(token); err == nil {
		t.Error("token encrypted with key-a decrypted with key-b")
	}
}

package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/payinvoflow/billing_backend/config"
)

// Encryptor is the preview transport channel: AES-256-GCM with a random
// nonce prefixed to the ciphertext, base64-encoded into one opaque token.
// Previews are intentionally never persisted; the token is the only copy.
type Encryptor struct {
	gcm cipher.AEAD
}

func NewEncryptor(key string) (*Encryptor, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: encryption key cannot be empty", ErrorEncryption)
	}

	// Hash the key so any configured secret yields 32 bytes for AES-256.
	hash := sha256.Sum256([]byte(key))

	block, err := aes.NewCipher(hash[:])
	if err != nil {
		return nil, fmt.Errorf("%w: create AES cipher: %v", ErrorEncryption, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: create GCM cipher: %v", ErrorEncryption, err)
	}

	return &Encryptor{gcm: gcm}, nil
}

func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: generate nonce: %v", ErrorEncryption, err)
	}

	ciphertext := e.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt is the exact inverse of Encrypt. The generation pipeline never
// calls it; it exists for the surface that displays the preview.
func (e *Encryptor) Decrypt(token string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %v", ErrorEncryption, err)
	}

	nonceSize := e.gcm.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("%w: token too short", ErrorEncryption)
	}
	nonce, cipherData := data[:nonceSize], data[nonceSize:]

	plaintext, err := e.gcm.Open(nil, nonce, cipherData, nil)
	if err != nil {
		return "", fmt.Errorf("%w: decrypt: %v", ErrorEncryption, err)
	}
	return string(plaintext), nil
}

var previewEncryptor *Encryptor

// InitPreviewEncryptor builds the process-wide encryptor from configuration.
// A missing ENCRYPTION_KEY is a fatal startup error, not a per-request one.
func InitPreviewEncryptor() error {
	enc, err := NewEncryptor(config.EncryptionKey())
	if err != nil {
		return err
	}
	previewEncryptor = enc
	return nil
}

func EncryptPreview(html string) (string, error) {
	if previewEncryptor == nil {
		return "", fmt.Errorf("%w: preview encryptor not initialized", ErrorEncryption)
	}
	return previewEncryptor.Encrypt(html)
}

func DecryptPreview(token string) (string, error) {
	if previewEncryptor == nil {
		return "", fmt.Errorf("%w: preview encryptor not initialized", ErrorEncryption)
	}
	return previewEncryptor.Decrypt(token)
}

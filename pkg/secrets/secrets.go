// Package secrets encrypts TOTP secrets for storage. The wire form is
// base64(nonce || AES-256-GCM ciphertext); the AES key is derived from
// the configured passphrase with PBKDF2-SHA256.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// ErrDecryptionFailed is returned when a stored ciphertext cannot be
// decrypted, either because it is malformed or because it was produced
// with a different key.
var ErrDecryptionFailed = errors.New("decryption failed")

const (
	keyIterations = 10000
	keyLength     = 32
	minKeyLength  = 16
)

// Static salt: ciphertexts must stay decryptable across restarts, so
// the derivation cannot be randomized per process.
var derivationSalt = []byte("panel-secrets-salt")

// EncryptionService seals and opens TOTP secrets with a key derived
// once at construction time.
type EncryptionService struct {
	aead cipher.AEAD
}

// NewEncryptionService derives the AES key from the passphrase and
// prepares the AEAD used by Encrypt and Decrypt.
func NewEncryptionService(encryptionKey string) (*EncryptionService, error) {
	if encryptionKey == "" {
		return nil, fmt.Errorf("encryption key cannot be empty")
	}

	key := pbkdf2.Key([]byte(encryptionKey), derivationSalt, keyIterations, keyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &EncryptionService{aead: aead}, nil
}

// Encrypt seals the plaintext under a fresh random nonce and returns
// the base64 wire form.
func (e *EncryptionService) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("plaintext cannot be empty")
	}

	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := e.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a ciphertext produced by Encrypt. Every failure mode
// wraps ErrDecryptionFailed so callers can treat a bad ciphertext as a
// single condition.
func (e *EncryptionService) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", fmt.Errorf("ciphertext cannot be empty")
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: failed to decode base64: %v", ErrDecryptionFailed, err)
	}

	nonceSize := e.aead.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecryptionFailed)
	}

	plaintext, err := e.aead.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}

// ValidateEncryptionKey checks that a key is strong enough to use
func ValidateEncryptionKey(key string) error {
	if len(key) < minKeyLength {
		return fmt.Errorf("encryption key must be at least %d characters long", minKeyLength)
	}
	return nil
}

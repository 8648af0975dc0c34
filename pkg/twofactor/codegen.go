package twofactor

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/bcrypt"
)

const (
	// RecoveryCodeCount is the number of codes issued when 2FA is enabled
	RecoveryCodeCount = 10
	// RecoveryCodeLength is the length of each plaintext code
	RecoveryCodeLength = 10

	codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// CodeGenerator produces plaintext recovery codes
type CodeGenerator interface {
	Generate() (string, error)
}

// CryptoCodeGenerator generates random alphanumeric codes from the
// given randomness source. Tests substitute a deterministic reader.
type CryptoCodeGenerator struct {
	random io.Reader
	length int
}

// NewCodeGenerator creates a generator backed by crypto/rand
func NewCodeGenerator() *CryptoCodeGenerator {
	return &CryptoCodeGenerator{
		random: rand.Reader,
		length: RecoveryCodeLength,
	}
}

// NewCodeGeneratorWithSource creates a generator reading randomness
// from the given source
func NewCodeGeneratorWithSource(random io.Reader) *CryptoCodeGenerator {
	return &CryptoCodeGenerator{
		random: random,
		length: RecoveryCodeLength,
	}
}

// Generate returns one random alphanumeric code
func (g *CryptoCodeGenerator) Generate() (string, error) {
	buf := make([]byte, g.length)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", fmt.Errorf("failed to read randomness: %w", err)
	}

	code := make([]byte, g.length)
	for i, b := range buf {
		code[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}

	return string(code), nil
}

// RecoveryCodeHasher hashes recovery codes before storage and verifies
// submitted plaintexts against stored hashes
type RecoveryCodeHasher interface {
	Hash(code string) (string, error)
	Verify(code, hash string) (bool, error)
}

// BcryptCodeHasher implements RecoveryCodeHasher using bcrypt, which
// salts each hash and keeps comparison adaptive
type BcryptCodeHasher struct{}

// Hash implements RecoveryCodeHasher.Hash
func (h *BcryptCodeHasher) Hash(code string) (string, error) {
	if code == "" {
		return "", errors.New("code cannot be empty")
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// Verify implements RecoveryCodeHasher.Verify
func (h *BcryptCodeHasher) Verify(code, hash string) (bool, error) {
	if code == "" || hash == "" {
		return false, errors.New("code and hash cannot be empty")
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil // Code doesn't match, but not an error
		}
		return false, err
	}

	return true, nil
}

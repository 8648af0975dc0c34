package twofactor

import (
	"bytes"
	"strings"
	"testing"
)

func TestCodeGeneratorLengthAndAlphabet(t *testing.T) {
	gen := NewCodeGenerator()

	for i := 0; i < 20; i++ {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("Failed to generate code: %v", err)
		}

		if len(code) != RecoveryCodeLength {
			t.Errorf("Expected code length %d, got %d", RecoveryCodeLength, len(code))
		}

		for _, c := range code {
			if !strings.ContainsRune(codeAlphabet, c) {
				t.Errorf("Code %q contains character %q outside the alphabet", code, c)
			}
		}
	}
}

func TestCodeGeneratorDeterministicSource(t *testing.T) {
	// A fixed randomness source must produce a fixed code
	source := bytes.NewReader([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	gen := NewCodeGeneratorWithSource(source)

	code, err := gen.Generate()
	if err != nil {
		t.Fatalf("Failed to generate code: %v", err)
	}

	if code != "abcdefghij" {
		t.Errorf("Expected deterministic code abcdefghij, got %q", code)
	}
}

func TestCodeGeneratorExhaustedSource(t *testing.T) {
	// Too few random bytes must surface as an error, never a short code
	source := bytes.NewReader([]byte{1, 2, 3})
	gen := NewCodeGeneratorWithSource(source)

	if _, err := gen.Generate(); err == nil {
		t.Error("Expected error from exhausted randomness source, got nil")
	}
}

func TestBcryptCodeHasher(t *testing.T) {
	hasher := &BcryptCodeHasher{}

	hash, err := hasher.Hash("abc123XYZ0")
	if err != nil {
		t.Fatalf("Failed to hash code: %v", err)
	}

	if hash == "abc123XYZ0" {
		t.Error("Hash must not equal the plaintext")
	}

	ok, err := hasher.Verify("abc123XYZ0", hash)
	if err != nil {
		t.Fatalf("Failed to verify code: %v", err)
	}
	if !ok {
		t.Error("Expected matching code to verify")
	}

	ok, err = hasher.Verify("wrong-code", hash)
	if err != nil {
		t.Fatalf("Verify returned error for mismatch: %v", err)
	}
	if ok {
		t.Error("Expected mismatched code to fail verification")
	}
}

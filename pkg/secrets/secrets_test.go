package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	svc, err := NewEncryptionService("a-sufficiently-long-key")
	require.NoError(t, err)

	ciphertext, err := svc.Encrypt("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	assert.NotEqual(t, "JBSWY3DPEHPK3PXP", ciphertext)

	plaintext, err := svc.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", plaintext)
}

func TestEncryptProducesFreshNonces(t *testing.T) {
	svc, err := NewEncryptionService("a-sufficiently-long-key")
	require.NoError(t, err)

	first, err := svc.Encrypt("same input")
	require.NoError(t, err)
	second, err := svc.Encrypt("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDecryptWithWrongKey(t *testing.T) {
	svc, err := NewEncryptionService("the-original-encryption-key")
	require.NoError(t, err)
	other, err := NewEncryptionService("a-completely-different-key")
	require.NoError(t, err)

	ciphertext, err := svc.Encrypt("secret value")
	require.NoError(t, err)

	_, err = other.Decrypt(ciphertext)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDecryptMalformedInput(t *testing.T) {
	svc, err := NewEncryptionService("a-sufficiently-long-key")
	require.NoError(t, err)

	_, err = svc.Decrypt("not-base64!!!")
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	// Valid base64 but far too short to hold a nonce
	_, err = svc.Decrypt("AAAA")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestValidateEncryptionKey(t *testing.T) {
	assert.Error(t, ValidateEncryptionKey("short"))
	assert.NoError(t, ValidateEncryptionKey("exactly-16-chars"))
}

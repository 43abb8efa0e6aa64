package vault

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestSealOpen(t *testing.T) {
	sealed, err := Seal(testMnemonic, "secure-password", LightParams)
	require.NoError(t, err)

	assert.Equal(t, "aes-256-gcm", sealed.Crypto.Cipher)
	assert.Equal(t, "scrypt", sealed.Crypto.KDF)
	assert.Equal(t, LightParams.N, sealed.Crypto.KDFParams.N)

	plaintext, err := Open(sealed, "secure-password")
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, plaintext)

	_, err = Open(sealed, "wrong-password")
	assert.True(t, errors.Is(err, ErrMACMismatch))
}

func TestFileSaveLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "vault.json")

	sealed, err := Seal(testMnemonic, "123456", LightParams)
	require.NoError(t, err)
	require.NoError(t, sealed.SaveToFile(filename))

	loaded, err := LoadFromFile(filename)
	require.NoError(t, err)
	assert.Equal(t, sealed.Id, loaded.Id)

	plaintext, err := Open(loaded, "123456")
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, plaintext)
}

func TestOpenRejectsUnknownFormat(t *testing.T) {
	sealed, err := Seal("x", "p", LightParams)
	require.NoError(t, err)
	sealed.Crypto.Cipher = "aes-128-ctr"

	_, err = Open(sealed, "p")
	assert.Error(t, err)
}

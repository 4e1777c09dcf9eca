package keystore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iulianbarbu/solana-social-dapp/internal/cryptox"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

func passphrase(p string) PassphraseFunc {
	return func() ([]byte, error) { return []byte(p), nil }
}

func TestSaveLoad_Plain(t *testing.T) {
	kp, err := pubkey.GenerateKeypair()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "keys", "id.json")

	require.NoError(t, Save(path, kp, nil))
	assert.True(t, Exists(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, byte('['), raw[0])

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, kp.Public(), got.Public())

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestSaveLoad_Sealed(t *testing.T) {
	kp, err := pubkey.GenerateKeypair()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "id.json")

	require.NoError(t, Save(path, kp, []byte("hunter2")))

	_, err = Load(path, nil)
	require.ErrorIs(t, err, ErrPassphraseRequired)

	_, err = Load(path, passphrase("wrong"))
	require.ErrorIs(t, err, cryptox.ErrDecrypt)

	got, err := Load(path, passphrase("hunter2"))
	require.NoError(t, err)
	assert.Equal(t, kp.Secret(), got.Secret())
}

func TestLoad_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")
	assert.False(t, Exists(path))

	_, err := Load(path, nil)
	require.ErrorIs(t, err, ErrNoKeypair)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "  "},
		{"not json", "garbage"},
		{"short key", "[1,2,3]"},
		{"sealed without payload", `{"pubkey":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), passphrase("p"))
			require.Error(t, err)
		})
	}
}

func TestParse_PassphraseError(t *testing.T) {
	kp, err := pubkey.GenerateKeypair()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, Save(path, kp, []byte("p")))

	boom := errors.New("no tty")
	_, err = Load(path, func() ([]byte, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
}

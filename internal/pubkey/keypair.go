package pubkey

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"
)

// Keypair is an ed25519 signing key together with its public identity.
type Keypair struct {
	private ed25519.PrivateKey
}

// GenerateKeypair creates a fresh random keypair.
func GenerateKeypair() (*Keypair, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Keypair{private: priv}, nil
}

// KeypairFromSecret builds a keypair from a 64-byte secret key
// (seed followed by public key, the layout used by keypair files).
func KeypairFromSecret(secret []byte) (*Keypair, error) {
	if len(secret) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("secret key must be %d bytes, got %d", ed25519.PrivateKeySize, len(secret))
	}
	priv := ed25519.NewKeyFromSeed(secret[:ed25519.SeedSize])
	if string(priv[ed25519.SeedSize:]) != string(secret[ed25519.SeedSize:]) {
		return nil, fmt.Errorf("secret key public half does not match its seed")
	}
	return &Keypair{private: priv}, nil
}

// Public returns the identity of the keypair.
func (k *Keypair) Public() Pubkey {
	var p Pubkey
	copy(p[:], k.private[ed25519.SeedSize:])
	return p
}

// Secret returns a copy of the 64-byte secret key.
func (k *Keypair) Secret() []byte {
	out := make([]byte, len(k.private))
	copy(out, k.private)
	return out
}

// Sign signs message with the private key.
func (k *Keypair) Sign(message []byte) []byte {
	return ed25519.Sign(k.private, message)
}

// MarshalJSON encodes the secret key as a JSON array of byte values.
func (k *Keypair) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(k.private))
	for i, b := range k.private {
		ints[i] = int(b)
	}
	return json.Marshal(ints)
}

// UnmarshalJSON decodes a JSON array of byte values into the keypair.
func (k *Keypair) UnmarshalJSON(data []byte) error {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	secret := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return fmt.Errorf("secret key byte %d out of range: %d", i, v)
		}
		secret[i] = byte(v)
	}
	parsed, err := KeypairFromSecret(secret)
	if err != nil {
		return err
	}
	k.private = parsed.private
	return nil
}

// Verify reports whether sig is a valid signature of message by p.
func Verify(p Pubkey, message, sig []byte) bool {
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p[:]), message, sig)
}

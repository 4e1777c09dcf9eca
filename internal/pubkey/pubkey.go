// Package pubkey defines account identities: 32-byte ed25519 public keys
// rendered as base58 strings, plus the seed-based address derivation used
// to locate a user's state account.
package pubkey

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// Size is the length in bytes of a public key.
const Size = 32

// MaxSeedLen is the longest seed accepted by CreateWithSeed.
const MaxSeedLen = 32

var (
	ErrInvalidPubkey = errors.New("invalid public key")
	ErrSeedTooLong   = errors.New("seed too long")
)

// Pubkey identifies an account. The zero value is the all-zero key.
type Pubkey [Size]byte

// String returns the base58 form of the key.
func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// Bytes returns a copy of the raw key bytes.
func (p Pubkey) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, p[:])
	return b
}

// IsZero reports whether p is the all-zero key.
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// MarshalText implements encoding.TextMarshaler.
func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pubkey) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Parse decodes a base58 string into a Pubkey.
func Parse(s string) (Pubkey, error) {
	var p Pubkey
	if s == "" {
		return p, ErrInvalidPubkey
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidPubkey, err)
	}
	if len(raw) != Size {
		return p, fmt.Errorf("%w: decoded length %d", ErrInvalidPubkey, len(raw))
	}
	copy(p[:], raw)
	return p, nil
}

// MustParse is Parse for constants and tests; it panics on bad input.
func MustParse(s string) Pubkey {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// FromBytes converts a raw 32-byte slice into a Pubkey.
func FromBytes(b []byte) (Pubkey, error) {
	var p Pubkey
	if len(b) != Size {
		return p, fmt.Errorf("%w: length %d", ErrInvalidPubkey, len(b))
	}
	copy(p[:], b)
	return p, nil
}

// CreateWithSeed derives the address of an account owned by program and
// controlled by base: sha256(base || seed || program).
func CreateWithSeed(base Pubkey, seed string, program Pubkey) (Pubkey, error) {
	if len(seed) > MaxSeedLen {
		return Pubkey{}, ErrSeedTooLong
	}
	h := sha256.New()
	h.Write(base[:])
	h.Write([]byte(seed))
	h.Write(program[:])

	var p Pubkey
	copy(p[:], h.Sum(nil))
	return p, nil
}

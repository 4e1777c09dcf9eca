// Package keystore reads and writes the CLI's identity file.
//
// A plain file is the JSON array of the 64 secret key bytes, the format the
// Solana tooling uses. A sealed file is a JSON object holding the same array
// encrypted with cryptox under a passphrase.
package keystore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/cryptox"
	"github.com/iulianbarbu/solana-social-dapp/internal/filex"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

var (
	ErrNoKeypair          = errors.New("keypair file not found")
	ErrPassphraseRequired = errors.New("keypair file is sealed, passphrase required")
)

// PassphraseFunc supplies the passphrase for a sealed file.
type PassphraseFunc func() ([]byte, error)

type sealedFile struct {
	Pubkey string          `json:"pubkey"`
	Sealed *cryptox.Sealed `json:"sealed"`
}

// Exists reports whether path names a regular file.
func Exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// Save writes kp to path. An empty passphrase stores the key in the clear.
func Save(path string, kp *pubkey.Keypair, passphrase []byte) error {
	plain, err := json.Marshal(kp)
	if err != nil {
		return err
	}

	data := plain
	if len(passphrase) > 0 {
		defer common.WipeByteArray(plain)
		sealed, err := cryptox.Seal(plain, passphrase)
		if err != nil {
			return fmt.Errorf("sealing keypair: %w", err)
		}
		data, err = json.Marshal(sealedFile{Pubkey: kp.Public().String(), Sealed: sealed})
		if err != nil {
			return err
		}
	}

	if err := filex.WriteFileAtomic(path, data, 0o600); err != nil {
		return fmt.Errorf("writing keypair %s: %w", path, err)
	}
	return nil
}

// Load reads the keypair stored at path. passphrase is only called for a
// sealed file.
func Load(path string, passphrase PassphraseFunc) (*pubkey.Keypair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoKeypair, path)
		}
		return nil, err
	}
	return Parse(data, passphrase)
}

// Parse decodes the content of a keypair file.
func Parse(data []byte, passphrase PassphraseFunc) (*pubkey.Keypair, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty keypair file")
	}

	if data[0] != '{' {
		var kp pubkey.Keypair
		if err := json.Unmarshal(data, &kp); err != nil {
			return nil, fmt.Errorf("parsing keypair: %w", err)
		}
		return &kp, nil
	}

	var sf sealedFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing sealed keypair: %w", err)
	}
	if sf.Sealed == nil {
		return nil, errors.New("sealed keypair file has no payload")
	}
	if passphrase == nil {
		return nil, ErrPassphraseRequired
	}

	pass, err := passphrase()
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(pass)

	plain, err := cryptox.Open(sf.Sealed, pass)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(plain)

	var kp pubkey.Keypair
	if err := json.Unmarshal(plain, &kp); err != nil {
		return nil, fmt.Errorf("parsing keypair: %w", err)
	}
	if sf.Pubkey != "" && sf.Pubkey != kp.Public().String() {
		return nil, fmt.Errorf("sealed keypair does not match recorded pubkey %s", sf.Pubkey)
	}
	return &kp, nil
}

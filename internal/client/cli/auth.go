package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/iulianbarbu/solana-social-dapp/internal/client/client"
	"github.com/iulianbarbu/solana-social-dapp/internal/client/keystore"
	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

// getPassword and confirm are indirections used to facilitate testing.
var (
	getPassword = GetPassword
	confirm     = Confirm
)

var errPassphraseMismatch = errors.New("passphrases do not match")

func (a *App) passphrase() ([]byte, error) {
	return getPassword(a.out, "Keypair passphrase: ")
}

// loadOrCreateKeypair reads the configured keypair file. When it is missing
// the user may generate a new keypair and optionally seal it.
func (a *App) loadOrCreateKeypair() (*pubkey.Keypair, error) {
	path := a.config.KeypairPath
	if keystore.Exists(path) {
		return keystore.Load(path, a.passphrase)
	}

	ok, err := confirm(a.reader, fmt.Sprintf("No keypair at %s. Generate a new one?", path), a.out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, keystore.ErrNoKeypair
	}

	kp, err := pubkey.GenerateKeypair()
	if err != nil {
		return nil, err
	}

	var pass []byte
	seal, err := confirm(a.reader, "Seal it with a passphrase?", a.out)
	if err != nil {
		return nil, err
	}
	if seal {
		if pass, err = a.readNewPassphrase(); err != nil {
			return nil, err
		}
		defer common.WipeByteArray(pass)
	}

	if err := keystore.Save(path, kp, pass); err != nil {
		return nil, err
	}
	a.printf("Keypair written to %s\n", path)
	return kp, nil
}

func (a *App) readNewPassphrase() ([]byte, error) {
	first, err := getPassword(a.out, "New passphrase: ")
	if err != nil {
		return nil, err
	}
	second, err := getPassword(a.out, "Repeat passphrase: ")
	if err != nil {
		common.WipeByteArray(first)
		return nil, err
	}
	defer common.WipeByteArray(second)
	if !bytes.Equal(first, second) {
		common.WipeByteArray(first)
		return nil, errPassphraseMismatch
	}
	return first, nil
}

// Register announces the keypair's identity to the node, generating the
// keypair file first if needed, and then logs in.
func (a *App) Register(ctx context.Context) error {
	kp, err := a.loadOrCreateKeypair()
	if err != nil {
		return err
	}

	created, err := a.social.Register(ctx, kp)
	if err != nil {
		return err
	}
	if created {
		a.printf("Registered %s\n", kp.Public())
	} else {
		a.printf("%s is already registered\n", kp.Public())
	}
	return a.login(ctx, kp)
}

// Login authenticates with the keypair file.
//
// When the node is unavailable it falls back to the locally cached session.
// On success the mode is:
//   - ModeOnline if the node accepted the login,
//   - ModeOffline if only local data was available.
//
// If both fail the mode is ModeDisabled and the error is returned.
func (a *App) Login(ctx context.Context) error {
	kp, err := keystore.Load(a.config.KeypairPath, a.passphrase)
	if errors.Is(err, keystore.ErrNoKeypair) {
		return fmt.Errorf("%w, run register first", err)
	}
	if err != nil {
		return err
	}
	return a.login(ctx, kp)
}

func (a *App) login(ctx context.Context, kp *pubkey.Keypair) error {
	err := a.social.Login(ctx, kp)
	if errors.Is(err, client.ErrUnavailable) {
		a.logger.Warn(ctx, "node unavailable, trying offline login")
		if err := a.social.UseOffline(ctx, kp); err != nil {
			a.logger.Error(ctx, "offline login unsuccessful", "error", err)
			a.setMode(ModeDisabled)
			return err
		}
		a.setLoggedIn(true)
		a.setMode(ModeOffline)
		a.printf("Logged in as %s (offline)\n", kp.Public())
		return nil
	}
	if err != nil {
		a.logger.Error(ctx, "login unsuccessful", "error", err)
		return err
	}

	a.setLoggedIn(true)
	a.setMode(ModeOnline)
	a.printf("Logged in as %s\n", kp.Public())

	addr, created, err := a.social.EnsureStateAccount(ctx)
	if err != nil {
		return err
	}
	if created {
		a.printf("Created state account %s\n", addr)
	} else {
		a.printf("State account %s\n", addr)
	}
	return nil
}

// Logout forgets the session and the locally cached identity.
func (a *App) Logout(ctx context.Context) error {
	if err := a.social.Logout(ctx); err != nil {
		return err
	}
	a.setLoggedIn(false)
	a.setMode(ModeDisabled)
	a.printf("Logged out\n")
	return nil
}

// Whoami prints the session identity and its state account.
func (a *App) Whoami(context.Context) error {
	me, ok := a.social.Identity()
	if !ok {
		return errNotLoggedIn
	}
	a.printf("Identity:      %s\n", me)
	if addr, ok := a.social.StateAddress(); ok {
		a.printf("State account: %s\n", addr)
	}
	a.printf("Mode:          %s\n", a.Mode())
	return nil
}

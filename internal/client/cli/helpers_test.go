package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iulianbarbu/solana-social-dapp/internal/client/config"
	"github.com/iulianbarbu/solana-social-dapp/internal/client/services"
	"github.com/iulianbarbu/solana-social-dapp/internal/logging"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

// fakeSocial implements socialService with canned results.
type fakeSocial struct {
	pingErr       error
	registerErr   error
	loginErr      error
	offlineErr    error
	ensureErr     error
	txErr         error
	showErr       error
	exportErr     error
	created       bool
	stateCreated  bool
	outcome       *services.TxOutcome
	view          *services.View
	export        *services.Export
	stateAddr     pubkey.Pubkey
	kp            *pubkey.Keypair
	registered    []pubkey.Pubkey
	offlineHits   int
	logoutHits    int
	closeHits     int
	friendTargets []pubkey.Pubkey
	statuses      []bool
}

func (f *fakeSocial) Ping(context.Context) error { return f.pingErr }

func (f *fakeSocial) Identity() (pubkey.Pubkey, bool) {
	if f.kp == nil {
		return pubkey.Pubkey{}, false
	}
	return f.kp.Public(), true
}

func (f *fakeSocial) StateAddress() (pubkey.Pubkey, bool) {
	return f.stateAddr, !f.stateAddr.IsZero()
}

func (f *fakeSocial) Register(_ context.Context, kp *pubkey.Keypair) (bool, error) {
	if f.registerErr != nil {
		return false, f.registerErr
	}
	f.registered = append(f.registered, kp.Public())
	return f.created, nil
}

func (f *fakeSocial) Login(_ context.Context, kp *pubkey.Keypair) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.kp = kp
	return nil
}

func (f *fakeSocial) UseOffline(_ context.Context, kp *pubkey.Keypair) error {
	f.offlineHits++
	if f.offlineErr != nil {
		return f.offlineErr
	}
	f.kp = kp
	return nil
}

func (f *fakeSocial) EnsureStateAccount(context.Context) (pubkey.Pubkey, bool, error) {
	if f.ensureErr != nil {
		return pubkey.Pubkey{}, false, f.ensureErr
	}
	return f.stateAddr, f.stateCreated, nil
}

func (f *fakeSocial) AddFriend(_ context.Context, target pubkey.Pubkey) (*services.TxOutcome, error) {
	f.friendTargets = append(f.friendTargets, target)
	return f.outcome, f.txErr
}

func (f *fakeSocial) RemoveFriend(_ context.Context, target pubkey.Pubkey) (*services.TxOutcome, error) {
	f.friendTargets = append(f.friendTargets, target)
	return f.outcome, f.txErr
}

func (f *fakeSocial) SetStatus(_ context.Context, online bool) (*services.TxOutcome, error) {
	f.statuses = append(f.statuses, online)
	return f.outcome, f.txErr
}

func (f *fakeSocial) Show(context.Context) (*services.View, error) { return f.view, f.showErr }

func (f *fakeSocial) Export(context.Context) (*services.Export, error) {
	return f.export, f.exportErr
}

func (f *fakeSocial) Logout(context.Context) error {
	f.logoutHits++
	f.kp = nil
	return nil
}

func (f *fakeSocial) Close() error { f.closeHits++; return nil }

var testStateAddr = pubkey.MustParse("Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS")

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ServerEndpointAddr:  "127.0.0.1:0",
		OnlineCheckInterval: time.Hour,
		KeypairPath:         filepath.Join(t.TempDir(), "id.json"),
		CacheDSN:            ":memory:",
		RequestTimeout:      time.Second,
	}
}

// newTestApp returns an app reading input from the given lines and the
// buffer it writes to.
func newTestApp(t *testing.T, f *fakeSocial, input ...string) (*App, *bytes.Buffer, *logging.Recorder) {
	t.Helper()
	var out bytes.Buffer
	rec := logging.NewRecorder(nil)
	in := strings.NewReader(strings.Join(input, "\n"))
	return newApp(testConfig(t), f, rec, in, &out), &out, rec
}

func newKeypair(t *testing.T) *pubkey.Keypair {
	t.Helper()
	kp, err := pubkey.GenerateKeypair()
	require.NoError(t, err)
	return kp
}

// stubPasswords makes getPassword return the given answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	old := getPassword
	t.Cleanup(func() { getPassword = old })
	getPassword = func(w io.Writer, _ string) ([]byte, error) {
		require.NotEmpty(t, answers, "unexpected passphrase prompt")
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}
}

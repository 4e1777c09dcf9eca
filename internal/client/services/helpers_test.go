package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iulianbarbu/solana-social-dapp/internal/client/client"
	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/rpc"

	_ "modernc.org/sqlite"
)

var testProgramID = pubkey.MustParse("Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS")

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, client.RunMigrations(context.Background(), db))
	return db
}

func newKeypair(t *testing.T) *pubkey.Keypair {
	t.Helper()
	kp, err := pubkey.GenerateKeypair()
	require.NoError(t, err)
	return kp
}

// fakeClient implements client.Client for unit tests. The state account it
// hands out is derived the way the node derives it.
type fakeClient struct {
	pingErr error

	registered map[pubkey.Pubkey]bool
	lookupErr  error

	loginErr       error
	loginPubkey    pubkey.Pubkey
	loginTimestamp int64
	loginSig       []byte

	createAddr *pubkey.Pubkey
	createErr  error

	account    *rpc.GetAccountResponse
	accountErr error

	sendResp  *rpc.SendTransactionResponse
	sendErr   error
	sent      [][]rpc.AccountMeta
	sentData  [][]byte
	closeHits int

	exportResp *rpc.ExportAccountResponse
	exportErr  error
}

func (f *fakeClient) Close() error { f.closeHits++; return nil }

func (f *fakeClient) Ping(context.Context) (*rpc.PingResponse, error) {
	if f.pingErr != nil {
		return nil, f.pingErr
	}
	return &rpc.PingResponse{ProgramID: testProgramID, OpcodeSet: "current"}, nil
}

func (f *fakeClient) RegisterIdentity(_ context.Context, p pubkey.Pubkey) (bool, error) {
	if f.registered == nil {
		f.registered = map[pubkey.Pubkey]bool{}
	}
	if f.registered[p] {
		return false, nil
	}
	f.registered[p] = true
	return true, nil
}

func (f *fakeClient) LookupIdentity(_ context.Context, p pubkey.Pubkey) (bool, error) {
	return f.registered[p], f.lookupErr
}

func (f *fakeClient) Login(_ context.Context, p pubkey.Pubkey, ts int64, sig []byte) error {
	f.loginPubkey, f.loginTimestamp, f.loginSig = p, ts, sig
	return f.loginErr
}

func (f *fakeClient) CreateStateAccount(context.Context) (pubkey.Pubkey, bool, error) {
	if f.createErr != nil {
		return pubkey.Pubkey{}, false, f.createErr
	}
	if f.createAddr != nil {
		return *f.createAddr, true, nil
	}
	addr, err := pubkey.CreateWithSeed(f.loginPubkey, common.StateAccountSeed, testProgramID)
	return addr, true, err
}

func (f *fakeClient) GetAccount(context.Context, pubkey.Pubkey) (*rpc.GetAccountResponse, error) {
	return f.account, f.accountErr
}

func (f *fakeClient) SendTransaction(_ context.Context, metas []rpc.AccountMeta, data []byte) (*rpc.SendTransactionResponse, error) {
	f.sent = append(f.sent, metas)
	f.sentData = append(f.sentData, data)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	if f.sendResp == nil {
		return &rpc.SendTransactionResponse{Changed: true}, nil
	}
	return f.sendResp, nil
}

func (f *fakeClient) ExportAccount(context.Context, pubkey.Pubkey) (*rpc.ExportAccountResponse, error) {
	return f.exportResp, f.exportErr
}

// loggedIn returns a service with an active session for kp.
func loggedIn(t *testing.T, f *fakeClient, kp *pubkey.Keypair) *SocialService {
	t.Helper()
	s := NewSocialService(f, setupDB(t))
	s.now = func() time.Time { return time.Unix(1_700_000_000, 0) }
	require.NoError(t, s.Login(context.Background(), kp))
	return s
}

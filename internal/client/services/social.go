// Package services contains the application services of the social CLI.
// SocialService holds the session (identity, program, state account) and
// turns user intents into node calls and transactions.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/iulianbarbu/solana-social-dapp/internal/client/client"
	"github.com/iulianbarbu/solana-social-dapp/internal/client/repositories/metadata"
	"github.com/iulianbarbu/solana-social-dapp/internal/client/repositories/snapshots"
	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/dbx"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/rpc"
)

var (
	ErrNotLoggedIn          = errors.New("not logged in")
	ErrStateAddressMismatch = errors.New("node returned an unexpected state account")
)

// SocialService is safe for concurrent use; the connectivity watcher pings
// through it while commands run.
type SocialService struct {
	client     client.Client
	db         *sql.DB
	httpClient *http.Client
	now        func() time.Time

	mu        sync.RWMutex
	keypair   *pubkey.Keypair
	programID pubkey.Pubkey
	stateAddr pubkey.Pubkey
	lastLogin int64
}

// NewSocialService binds the service to a node client and the local cache.
func NewSocialService(c client.Client, db *sql.DB) *SocialService {
	return &SocialService{
		client:     c,
		db:         db,
		httpClient: http.DefaultClient,
		now:        time.Now,
	}
}

func (s *SocialService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *SocialService) getSnapshotRepo(db dbx.DBTX) snapshots.Repository {
	return snapshots.NewSQLiteRepository(db)
}

// Ping checks that the node is reachable and remembers its program id.
func (s *SocialService) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.programID = resp.ProgramID
	s.mu.Unlock()
	return nil
}

// Identity returns the logged in pubkey.
func (s *SocialService) Identity() (pubkey.Pubkey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.keypair == nil {
		return pubkey.Pubkey{}, false
	}
	return s.keypair.Public(), true
}

// StateAddress returns the state account of the session, if known.
func (s *SocialService) StateAddress() (pubkey.Pubkey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateAddr, !s.stateAddr.IsZero()
}

// Register records kp's identity with the node. created is false when it
// was already registered.
func (s *SocialService) Register(ctx context.Context, kp *pubkey.Keypair) (bool, error) {
	created, err := s.client.RegisterIdentity(ctx, kp.Public())
	if err != nil {
		return false, fmt.Errorf("register error: %w", err)
	}
	return created, nil
}

// Login proves possession of kp to the node and starts a session. The
// node rejects a login timestamp it has already seen for the identity, so
// logins within one second use the next free second.
func (s *SocialService) Login(ctx context.Context, kp *pubkey.Keypair) error {
	p := kp.Public()

	s.mu.Lock()
	ts := s.now().Unix()
	if ts <= s.lastLogin {
		ts = s.lastLogin + 1
	}
	s.lastLogin = ts
	s.mu.Unlock()

	if err := s.client.Login(ctx, p, ts, kp.Sign(rpc.LoginMessage(p, ts))); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	s.mu.Lock()
	if s.keypair == nil || s.keypair.Public() != p {
		s.stateAddr = pubkey.Pubkey{}
	}
	s.keypair = kp
	s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.getMetadataRepo(tx)
		saved, err := repo.Get(ctx, metadata.KeyIdentity)
		if err != nil {
			return err
		}
		if string(saved) != p.String() {
			for _, k := range []string{metadata.KeyStateAddress, metadata.KeyProgramID} {
				if err := repo.Delete(ctx, k); err != nil {
					return err
				}
			}
		}
		return repo.Set(ctx, metadata.KeyIdentity, []byte(p.String()))
	})
	if err != nil {
		return fmt.Errorf("offline data saving error: %w", err)
	}
	return nil
}

// UseOffline starts a session from local data only. It requires a
// previous online login with the same identity. A cached state address is
// used only when it derives from kp and the cached program id.
func (s *SocialService) UseOffline(ctx context.Context, kp *pubkey.Keypair) error {
	repo := s.getMetadataRepo(s.db)

	saved, err := repo.Get(ctx, metadata.KeyIdentity)
	if err != nil {
		return err
	}
	if saved == nil || string(saved) != kp.Public().String() {
		return client.ErrLocalDataNotAvailable
	}

	addrRaw, err := repo.Get(ctx, metadata.KeyStateAddress)
	if err != nil {
		return err
	}
	var addr pubkey.Pubkey
	if addrRaw != nil {
		if addr, err = pubkey.Parse(string(addrRaw)); err != nil {
			return fmt.Errorf("cached state address: %w", err)
		}
		programRaw, err := repo.Get(ctx, metadata.KeyProgramID)
		if err != nil {
			return err
		}
		programID, err := pubkey.Parse(string(programRaw))
		if err != nil {
			return fmt.Errorf("cached program id: %w", err)
		}
		want, err := pubkey.CreateWithSeed(kp.Public(), common.StateAccountSeed, programID)
		if err != nil {
			return err
		}
		if addr != want {
			return client.ErrLocalDataNotAvailable
		}
	}

	s.mu.Lock()
	s.keypair = kp
	s.stateAddr = addr
	s.mu.Unlock()
	return nil
}

// EnsureStateAccount provisions the session's state account on the node
// and checks it is the address derived from the identity and the program.
func (s *SocialService) EnsureStateAccount(ctx context.Context) (pubkey.Pubkey, bool, error) {
	me, ok := s.Identity()
	if !ok {
		return pubkey.Pubkey{}, false, ErrNotLoggedIn
	}

	s.mu.RLock()
	programID := s.programID
	s.mu.RUnlock()
	if programID.IsZero() {
		if err := s.Ping(ctx); err != nil {
			return pubkey.Pubkey{}, false, err
		}
		s.mu.RLock()
		programID = s.programID
		s.mu.RUnlock()
	}

	addr, created, err := s.client.CreateStateAccount(ctx)
	if err != nil {
		return pubkey.Pubkey{}, false, fmt.Errorf("create state account error: %w", err)
	}

	want, err := pubkey.CreateWithSeed(me, common.StateAccountSeed, programID)
	if err != nil {
		return pubkey.Pubkey{}, false, err
	}
	if addr != want {
		return pubkey.Pubkey{}, false, fmt.Errorf("%w: got %s, derived %s", ErrStateAddressMismatch, addr, want)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.getMetadataRepo(tx)
		if err := repo.Set(ctx, metadata.KeyProgramID, []byte(programID.String())); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyStateAddress, []byte(addr.String()))
	})
	if err != nil {
		return pubkey.Pubkey{}, false, fmt.Errorf("offline data saving error: %w", err)
	}

	s.mu.Lock()
	s.stateAddr = addr
	s.mu.Unlock()
	return addr, created, nil
}

// session returns the identity and state account, provisioning the
// account on first use.
func (s *SocialService) session(ctx context.Context) (*pubkey.Keypair, pubkey.Pubkey, error) {
	s.mu.RLock()
	kp, addr := s.keypair, s.stateAddr
	s.mu.RUnlock()

	if kp == nil {
		return nil, pubkey.Pubkey{}, ErrNotLoggedIn
	}
	if addr.IsZero() {
		var err error
		if addr, _, err = s.EnsureStateAccount(ctx); err != nil {
			return nil, pubkey.Pubkey{}, err
		}
	}
	return kp, addr, nil
}

// Logout ends the session and forgets the cached identity.
func (s *SocialService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.keypair = nil
	s.stateAddr = pubkey.Pubkey{}
	s.mu.Unlock()
	return s.getMetadataRepo(s.db).Clear(ctx)
}

// Close releases the node connection and the cache.
func (s *SocialService) Close() error {
	return errors.Join(s.client.Close(), s.db.Close())
}

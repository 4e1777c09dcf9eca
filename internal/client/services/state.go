package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iulianbarbu/solana-social-dapp/internal/client/client"
	"github.com/iulianbarbu/solana-social-dapp/internal/client/models"
	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/netx"
	"github.com/iulianbarbu/solana-social-dapp/internal/program/slotcodec"
	"github.com/iulianbarbu/solana-social-dapp/internal/program/state"
)

// View is a record as shown to the user. Cached is set when the node was
// unreachable and the snapshot came from the local cache.
type View struct {
	Snapshot *models.Snapshot
	Cached   bool
}

// Export is a downloaded copy of the state account.
type Export struct {
	ObjectKey string
	URL       string
	ExpiresAt time.Time
	Size      int
	Record    *state.Record
}

// Show fetches and decodes the session's state account. When the node is
// unreachable the last cached snapshot is returned instead.
func (s *SocialService) Show(ctx context.Context) (*View, error) {
	s.mu.RLock()
	kp, addr := s.keypair, s.stateAddr
	s.mu.RUnlock()
	if kp == nil {
		return nil, ErrNotLoggedIn
	}

	if addr.IsZero() {
		var err error
		if addr, _, err = s.EnsureStateAccount(ctx); err != nil {
			return nil, err
		}
	}

	acc, err := s.client.GetAccount(ctx, addr)
	if errors.Is(err, client.ErrUnavailable) {
		snap, cerr := s.getSnapshotRepo(s.db).Get(ctx, addr)
		if errors.Is(cerr, common.ErrorNotFound) {
			return nil, client.ErrLocalDataNotAvailable
		}
		if cerr != nil {
			return nil, cerr
		}
		return &View{Snapshot: snap, Cached: true}, nil
	}
	if err != nil {
		return nil, err
	}

	rec, err := slotcodec.Decode(acc.Data)
	if err != nil {
		return nil, fmt.Errorf("decoding state account %s: %w", addr, err)
	}

	snap := &models.Snapshot{Address: addr, Owner: acc.Owner, Record: rec, FetchedAt: s.now().UTC()}
	if err := s.getSnapshotRepo(s.db).Save(ctx, snap); err != nil {
		return nil, err
	}
	return &View{Snapshot: snap}, nil
}

// Export asks the node to publish the state account and downloads it back
// through the presigned link.
func (s *SocialService) Export(ctx context.Context) (*Export, error) {
	_, addr, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.ExportAccount(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("export error: %w", err)
	}

	body, err := netx.DownloadPresigned(ctx, s.httpClient, resp.URL)
	if err != nil {
		return nil, fmt.Errorf("download error: %w", err)
	}
	if len(body) != resp.Size {
		return nil, fmt.Errorf("download error: got %d bytes, node reported %d", len(body), resp.Size)
	}

	rec, err := slotcodec.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("decoding export: %w", err)
	}

	return &Export{
		ObjectKey: resp.ObjectKey,
		URL:       resp.URL,
		ExpiresAt: resp.ExpiresAt,
		Size:      len(body),
		Record:    rec,
	}, nil
}

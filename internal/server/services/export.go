package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/program/slotcodec"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/models"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/repositories/repomanager"
)

// ObjectStore is the blob storage exports are written to.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Export describes an uploaded snapshot of a state slot.
type Export struct {
	ObjectKey string
	URL       string
	Size      int
	ExpiresAt time.Time
}

// ExportService uploads the meaningful part of a state slot and hands out
// a time-limited download link.
type ExportService struct {
	repomanager repomanager.RepositoryManager
	store       ObjectStore
	ttl         time.Duration
	now         func() time.Time
}

func NewExportService(m repomanager.RepositoryManager, store ObjectStore, ttl time.Duration) *ExportService {
	return &ExportService{
		repomanager: m,
		store:       store,
		ttl:         ttl,
		now:         time.Now,
	}
}

// GetRandomStorageKey returns a fresh object key under owner's prefix.
func GetRandomStorageKey(owner pubkey.Pubkey, d time.Time) string {
	return fmt.Sprintf("exports/%s/%d/%02d/%02d/%v.bin", owner, d.Year(), d.Month(), d.Day(), uuid.New())
}

// ExportAccount exports key, which must be owned by caller. Only the
// length prefix and the payload it declares are uploaded.
func (s *ExportService) ExportAccount(ctx context.Context, caller, key pubkey.Pubkey) (*Export, error) {
	var acc *models.Account
	err := s.repomanager.InTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		var err error
		acc, err = r.Accounts().Get(ctx, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	if acc.Owner != caller {
		return nil, common.ErrPermissionDenied
	}

	span, err := slotcodec.Span(acc.Data)
	if err != nil {
		return nil, fmt.Errorf("error reading slot: %w", err)
	}

	now := s.now()
	objectKey := GetRandomStorageKey(caller, now)
	if err := s.store.Put(ctx, objectKey, span); err != nil {
		return nil, fmt.Errorf("error uploading export: %w", err)
	}

	url, err := s.store.PresignGet(ctx, objectKey, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("error presigning export: %w", err)
	}

	return &Export{
		ObjectKey: objectKey,
		URL:       url,
		Size:      len(span),
		ExpiresAt: now.Add(s.ttl),
	}, nil
}

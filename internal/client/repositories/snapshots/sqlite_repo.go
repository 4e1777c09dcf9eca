package snapshots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iulianbarbu/solana-social-dapp/internal/client/models"
	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/dbx"
	"github.com/iulianbarbu/solana-social-dapp/internal/program/slotcodec"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts s. The record is stored in its serialized form.
func (r *SQLiteRepository) Save(ctx context.Context, s *models.Snapshot) error {
	payload, err := slotcodec.MarshalRecord(s.Record)
	if err != nil {
		return fmt.Errorf("failed to save snapshot[%s]: %w", s.Address, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (address, owner, payload, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(address) DO UPDATE SET
			owner = excluded.owner,
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`, s.Address.String(), s.Owner.String(), payload, s.FetchedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save snapshot[%s]: %w", s.Address, err)
	}
	return nil
}

// Get returns the snapshot of address or common.ErrorNotFound.
func (r *SQLiteRepository) Get(ctx context.Context, address pubkey.Pubkey) (*models.Snapshot, error) {
	var (
		owner     string
		payload   []byte
		fetchedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT owner, payload, fetched_at FROM snapshots WHERE address = ?`, address.String(),
	).Scan(&owner, &payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot[%s]: %w", address, err)
	}

	ownerKey, err := pubkey.Parse(owner)
	if err != nil {
		return nil, fmt.Errorf("snapshot[%s] owner: %w", address, err)
	}
	rec, err := slotcodec.UnmarshalRecord(payload)
	if err != nil {
		return nil, fmt.Errorf("snapshot[%s] record: %w", address, err)
	}

	return &models.Snapshot{
		Address:   address,
		Owner:     ownerKey,
		Record:    rec,
		FetchedAt: time.UnixMilli(fetchedAt).UTC(),
	}, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, address pubkey.Pubkey) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE address = ?`, address.String())
	if err != nil {
		return fmt.Errorf("failed to delete snapshot[%s]: %w", address, err)
	}
	return nil
}

package accounts

import (
	"context"
	"time"

	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/models"
)

// MemoryTable holds accounts in process memory. Access is serialized by the
// repository manager, so GetForUpdate needs no lock of its own.
type MemoryTable struct {
	rows map[pubkey.Pubkey]*models.Account
}

func NewMemoryTable() *MemoryTable {
	return &MemoryTable{rows: make(map[pubkey.Pubkey]*models.Account)}
}

// Clone copies the row index. Slot bytes are shared until a row is
// rewritten; UpdateData always installs a fresh slice.
func (t *MemoryTable) Clone() *MemoryTable {
	c := NewMemoryTable()
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}

type MemoryRepository struct {
	t *MemoryTable
}

func NewMemoryRepository(t *MemoryTable) *MemoryRepository {
	return &MemoryRepository{t: t}
}

func (r *MemoryRepository) Create(_ context.Context, acc *models.Account) (bool, error) {
	if _, ok := r.t.rows[acc.Key]; ok {
		return false, nil
	}
	row := acc.Clone()
	row.UpdatedAt = time.Now()
	r.t.rows[acc.Key] = row
	return true, nil
}

func (r *MemoryRepository) Get(_ context.Context, key pubkey.Pubkey) (*models.Account, error) {
	row, ok := r.t.rows[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return row.Clone(), nil
}

func (r *MemoryRepository) GetForUpdate(ctx context.Context, key pubkey.Pubkey) (*models.Account, error) {
	return r.Get(ctx, key)
}

func (r *MemoryRepository) UpdateData(_ context.Context, key pubkey.Pubkey, data []byte) error {
	row, ok := r.t.rows[key]
	if !ok {
		return common.ErrorNotFound
	}
	updated := &models.Account{
		Key:       row.Key,
		Owner:     row.Owner,
		Data:      append([]byte(nil), data...),
		UpdatedAt: time.Now(),
	}
	r.t.rows[key] = updated
	return nil
}

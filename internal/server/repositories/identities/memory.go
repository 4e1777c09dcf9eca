package identities

import (
	"context"
	"time"

	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

// MemoryTable holds identities in process memory. Access is serialized by
// the repository manager.
type MemoryTable struct {
	rows map[pubkey.Pubkey]row
}

type row struct {
	createdAt time.Time
	lastLogin int64
}

func NewMemoryTable() *MemoryTable {
	return &MemoryTable{rows: make(map[pubkey.Pubkey]row)}
}

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

func (r *MemoryRepository) Create(_ context.Context, p pubkey.Pubkey) (bool, error) {
	if _, ok := r.t.rows[p]; ok {
		return false, nil
	}
	r.t.rows[p] = row{createdAt: time.Now()}
	return true, nil
}

func (r *MemoryRepository) Exists(_ context.Context, p pubkey.Pubkey) (bool, error) {
	_, ok := r.t.rows[p]
	return ok, nil
}

func (r *MemoryRepository) AdvanceLogin(_ context.Context, p pubkey.Pubkey, unix int64) (bool, error) {
	cur, ok := r.t.rows[p]
	if !ok || unix <= cur.lastLogin {
		return false, nil
	}
	cur.lastLogin = unix
	r.t.rows[p] = cur
	return true, nil
}

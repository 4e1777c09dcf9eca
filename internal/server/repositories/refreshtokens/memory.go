package refreshtokens

import (
	"context"
	"time"

	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/models"
)

// MemoryTable holds refresh tokens in process memory. It is not safe for
// concurrent use; the repository manager serializes access.
type MemoryTable struct {
	rows map[string]models.RefreshToken
}

func NewMemoryTable() *MemoryTable {
	return &MemoryTable{rows: make(map[string]models.RefreshToken)}
}

func (t *MemoryTable) Clone() *MemoryTable {
	c := NewMemoryTable()
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}

type MemoryRepository struct {
	t   *MemoryTable
	now func() time.Time
}

func NewMemoryRepository(t *MemoryTable) *MemoryRepository {
	return &MemoryRepository{t: t, now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, owner pubkey.Pubkey, token string, validity time.Duration) error {
	now := r.now()
	r.t.rows[token] = models.RefreshToken{Owner: owner, Token: token, Expires: now.Add(validity), CreatedAt: now}
	return nil
}

func (r *MemoryRepository) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := r.t.rows[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &rt, nil
}

func (r *MemoryRepository) Delete(_ context.Context, token string) error {
	delete(r.t.rows, token)
	return nil
}

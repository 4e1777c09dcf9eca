package repomanager

import (
	"context"
	"sync"

	"github.com/iulianbarbu/solana-social-dapp/internal/server/repositories/accounts"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/repositories/identities"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/repositories/refreshtokens"
)

// MemoryRepositoryManager keeps all rows in process memory. Units of work
// run one at a time against copies of the tables; the copies replace the
// live tables only when fn succeeds.
type MemoryRepositoryManager struct {
	mu            sync.Mutex
	identities    *identities.MemoryTable
	accounts      *accounts.MemoryTable
	refreshTokens *refreshtokens.MemoryTable
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		identities:    identities.NewMemoryTable(),
		accounts:      accounts.NewMemoryTable(),
		refreshTokens: refreshtokens.NewMemoryTable(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error {
	return nil
}

func (m *MemoryRepositoryManager) InTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.identities.Clone()
	accs := m.accounts.Clone()
	rts := m.refreshTokens.Clone()

	err := fn(ctx, &repositories{
		identities:    identities.NewMemoryRepository(ids),
		accounts:      accounts.NewMemoryRepository(accs),
		refreshTokens: refreshtokens.NewMemoryRepository(rts),
	})
	if err != nil {
		return err
	}

	m.identities, m.accounts, m.refreshTokens = ids, accs, rts
	return nil
}

func (m *MemoryRepositoryManager) Close() error {
	return nil
}

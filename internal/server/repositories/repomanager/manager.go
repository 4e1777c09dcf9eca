// Package repomanager opens the node's storage and hands out repositories
// bound to a single transaction.
package repomanager

import (
	"context"
	"fmt"

	"github.com/iulianbarbu/solana-social-dapp/internal/server/repositories/accounts"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/repositories/identities"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/repositories/refreshtokens"
)

// MemoryDSN selects the in-process backend.
const MemoryDSN = "memory"

// Repositories is the set of repositories visible inside one transaction.
type Repositories interface {
	Identities() identities.Repository
	Accounts() accounts.Repository
	RefreshTokens() refreshtokens.Repository
}

// RepositoryManager runs units of work against the backing store. fn passed
// to InTx may be called more than once and must not keep r after returning.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	InTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	Close() error
}

// Open returns the backend named by dsn.
func Open(dsn string) (RepositoryManager, error) {
	if dsn == MemoryDSN {
		return NewMemoryRepositoryManager(), nil
	}
	m, err := OpenPostgres(dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return m, nil
}

type repositories struct {
	identities    identities.Repository
	accounts      accounts.Repository
	refreshTokens refreshtokens.Repository
}

func (r *repositories) Identities() identities.Repository       { return r.identities }
func (r *repositories) Accounts() accounts.Repository           { return r.accounts }
func (r *repositories) RefreshTokens() refreshtokens.Repository { return r.refreshTokens }

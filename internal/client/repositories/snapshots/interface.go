// Package snapshots keeps the last decoded record per state account so the
// CLI can show it while the node is unreachable.
package snapshots

import (
	"context"

	"github.com/iulianbarbu/solana-social-dapp/internal/client/models"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

type Repository interface {
	Save(ctx context.Context, s *models.Snapshot) error
	Get(ctx context.Context, address pubkey.Pubkey) (*models.Snapshot, error)
	Delete(ctx context.Context, address pubkey.Pubkey) error
}

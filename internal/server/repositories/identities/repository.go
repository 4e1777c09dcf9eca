// Package identities stores the public keys allowed to log in.
package identities

import (
	"context"

	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

type Repository interface {
	// Create registers p and reports whether it was new.
	Create(ctx context.Context, p pubkey.Pubkey) (bool, error)
	Exists(ctx context.Context, p pubkey.Pubkey) (bool, error)
	// AdvanceLogin records unix as the last accepted login timestamp of p.
	// It reports false, leaving the stored value alone, when unix is not
	// newer than it or p is unknown.
	AdvanceLogin(ctx context.Context, p pubkey.Pubkey, unix int64) (bool, error)
}

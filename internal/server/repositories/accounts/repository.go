// Package accounts stores state accounts and their slot bytes.
package accounts

import (
	"context"

	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/models"
)

type Repository interface {
	// Create inserts acc unless its key is taken and reports whether it did.
	Create(ctx context.Context, acc *models.Account) (bool, error)

	// Get returns common.ErrorNotFound for an unknown key.
	Get(ctx context.Context, key pubkey.Pubkey) (*models.Account, error)

	// GetForUpdate is Get that also locks the row until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, key pubkey.Pubkey) (*models.Account, error)

	// UpdateData replaces the slot bytes of key.
	UpdateData(ctx context.Context, key pubkey.Pubkey, data []byte) error
}

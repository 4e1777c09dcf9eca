package models

import (
	"time"

	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

// Identity is a registered public key allowed to log in.
type Identity struct {
	Pubkey    pubkey.Pubkey
	CreatedAt time.Time
}

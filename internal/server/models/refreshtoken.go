package models

import (
	"time"

	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

type RefreshToken struct {
	Owner     pubkey.Pubkey
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}

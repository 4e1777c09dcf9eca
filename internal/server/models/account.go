// Package models holds the rows persisted by the node.
package models

import (
	"time"

	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

// Account is a stored state account: a fixed-size slot owned by one
// identity.
type Account struct {
	Key       pubkey.Pubkey
	Owner     pubkey.Pubkey
	Data      []byte
	UpdatedAt time.Time
}

// Clone returns a copy that does not share Data with a.
func (a *Account) Clone() *Account {
	c := *a
	c.Data = append([]byte(nil), a.Data...)
	return &c
}

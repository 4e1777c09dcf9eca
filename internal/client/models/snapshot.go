// Package models defines client-side data models used by the social CLI.
package models

import (
	"time"

	"github.com/iulianbarbu/solana-social-dapp/internal/program/state"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

// Snapshot is the last decoded record of a state account seen by the CLI.
type Snapshot struct {
	Address   pubkey.Pubkey
	Owner     pubkey.Pubkey
	Record    *state.Record
	FetchedAt time.Time
}

package instruction

import "github.com/iulianbarbu/solana-social-dapp/internal/pubkey"

// AccountInfo is one account handle passed to the processor. Data is the
// account's mutable buffer; the processor writes into it in place.
type AccountInfo struct {
	Key        pubkey.Pubkey
	IsSigner   bool
	IsWritable bool
	Data       []byte
}

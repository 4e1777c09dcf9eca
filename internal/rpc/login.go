package rpc

import (
	"fmt"

	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

// LoginMessage is the byte string a client signs to log in.
func LoginMessage(p pubkey.Pubkey, unix int64) []byte {
	return []byte(fmt.Sprintf("login:%s:%d", p, unix))
}

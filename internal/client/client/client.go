package client

import (
	"context"

	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/rpc"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) (*rpc.PingResponse, error)
	RegisterIdentity(ctx context.Context, p pubkey.Pubkey) (bool, error)
	LookupIdentity(ctx context.Context, p pubkey.Pubkey) (bool, error)
	Login(ctx context.Context, p pubkey.Pubkey, timestamp int64, signature []byte) error
	CreateStateAccount(ctx context.Context) (pubkey.Pubkey, bool, error)
	GetAccount(ctx context.Context, key pubkey.Pubkey) (*rpc.GetAccountResponse, error)
	SendTransaction(ctx context.Context, accounts []rpc.AccountMeta, data []byte) (*rpc.SendTransactionResponse, error)
	ExportAccount(ctx context.Context, key pubkey.Pubkey) (*rpc.ExportAccountResponse, error)
}

package rpc

import (
	"time"

	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

type PingRequest struct{}

type PingResponse struct {
	ProgramID pubkey.Pubkey `cbor:"program_id"`
	OpcodeSet string        `cbor:"opcode_set"`
	SlotSize  int           `cbor:"slot_size"`
}

type RegisterIdentityRequest struct {
	Pubkey pubkey.Pubkey `cbor:"pubkey"`
}

type RegisterIdentityResponse struct {
	Created bool `cbor:"created"`
}

type LookupIdentityRequest struct {
	Pubkey pubkey.Pubkey `cbor:"pubkey"`
}

type LookupIdentityResponse struct {
	Registered bool `cbor:"registered"`
}

// LoginRequest proves possession of the identity's private key: Signature
// is an ed25519 signature over LoginMessage(Pubkey, Timestamp).
type LoginRequest struct {
	Pubkey    pubkey.Pubkey `cbor:"pubkey"`
	Timestamp int64         `cbor:"timestamp"`
	Signature []byte        `cbor:"signature"`
}

type LoginResponse struct {
	AccessToken  string `cbor:"access_token"`
	RefreshToken string `cbor:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `cbor:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `cbor:"access_token"`
	RefreshToken string `cbor:"refresh_token"`
}

type CreateStateAccountRequest struct{}

type CreateStateAccountResponse struct {
	Address pubkey.Pubkey `cbor:"address"`
	Created bool          `cbor:"created"`
}

type GetAccountRequest struct {
	Key pubkey.Pubkey `cbor:"key"`
}

type GetAccountResponse struct {
	Key       pubkey.Pubkey `cbor:"key"`
	Owner     pubkey.Pubkey `cbor:"owner"`
	Data      []byte        `cbor:"data"`
	UpdatedAt time.Time     `cbor:"updated_at"`
}

// AccountMeta names an account taking part in a transaction.
type AccountMeta struct {
	Key        pubkey.Pubkey `cbor:"key"`
	IsSigner   bool          `cbor:"is_signer"`
	IsWritable bool          `cbor:"is_writable"`
}

type SendTransactionRequest struct {
	Accounts []AccountMeta `cbor:"accounts"`
	Data     []byte        `cbor:"data"`
}

// SendTransactionResponse reports a processed transaction. A program
// failure is not an RPC error: StatusCode is non-zero and Error holds its
// text.
type SendTransactionResponse struct {
	StatusCode uint64   `cbor:"status_code"`
	Error      string   `cbor:"error,omitempty"`
	Logs       []string `cbor:"logs"`
	Changed    bool     `cbor:"changed"`
}

type ExportAccountRequest struct {
	Key pubkey.Pubkey `cbor:"key"`
}

type ExportAccountResponse struct {
	ObjectKey string    `cbor:"object_key"`
	URL       string    `cbor:"url"`
	Size      int       `cbor:"size"`
	ExpiresAt time.Time `cbor:"expires_at"`
}

package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// LedgerClient is the client API of the Ledger service.
type LedgerClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	RegisterIdentity(ctx context.Context, in *RegisterIdentityRequest, opts ...grpc.CallOption) (*RegisterIdentityResponse, error)
	LookupIdentity(ctx context.Context, in *LookupIdentityRequest, opts ...grpc.CallOption) (*LookupIdentityResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	CreateStateAccount(ctx context.Context, in *CreateStateAccountRequest, opts ...grpc.CallOption) (*CreateStateAccountResponse, error)
	GetAccount(ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption) (*GetAccountResponse, error)
	SendTransaction(ctx context.Context, in *SendTransactionRequest, opts ...grpc.CallOption) (*SendTransactionResponse, error)
	ExportAccount(ctx context.Context, in *ExportAccountRequest, opts ...grpc.CallOption) (*ExportAccountResponse, error)
}

type ledgerClient struct {
	cc grpc.ClientConnInterface
}

// NewLedgerClient wraps cc. Every call is sent with the CBOR content
// subtype.
func NewLedgerClient(cc grpc.ClientConnInterface) LedgerClient {
	return &ledgerClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, Ledger_Ping_FullMethodName, in, opts)
}

func (c *ledgerClient) RegisterIdentity(ctx context.Context, in *RegisterIdentityRequest, opts ...grpc.CallOption) (*RegisterIdentityResponse, error) {
	return invoke[RegisterIdentityResponse](ctx, c.cc, Ledger_RegisterIdentity_FullMethodName, in, opts)
}

func (c *ledgerClient) LookupIdentity(ctx context.Context, in *LookupIdentityRequest, opts ...grpc.CallOption) (*LookupIdentityResponse, error) {
	return invoke[LookupIdentityResponse](ctx, c.cc, Ledger_LookupIdentity_FullMethodName, in, opts)
}

func (c *ledgerClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, Ledger_Login_FullMethodName, in, opts)
}

func (c *ledgerClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, Ledger_RefreshToken_FullMethodName, in, opts)
}

func (c *ledgerClient) CreateStateAccount(ctx context.Context, in *CreateStateAccountRequest, opts ...grpc.CallOption) (*CreateStateAccountResponse, error) {
	return invoke[CreateStateAccountResponse](ctx, c.cc, Ledger_CreateStateAccount_FullMethodName, in, opts)
}

func (c *ledgerClient) GetAccount(ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption) (*GetAccountResponse, error) {
	return invoke[GetAccountResponse](ctx, c.cc, Ledger_GetAccount_FullMethodName, in, opts)
}

func (c *ledgerClient) SendTransaction(ctx context.Context, in *SendTransactionRequest, opts ...grpc.CallOption) (*SendTransactionResponse, error) {
	return invoke[SendTransactionResponse](ctx, c.cc, Ledger_SendTransaction_FullMethodName, in, opts)
}

func (c *ledgerClient) ExportAccount(ctx context.Context, in *ExportAccountRequest, opts ...grpc.CallOption) (*ExportAccountResponse, error) {
	return invoke[ExportAccountResponse](ctx, c.cc, Ledger_ExportAccount_FullMethodName, in, opts)
}

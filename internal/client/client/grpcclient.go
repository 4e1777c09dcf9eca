package client

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/rpc"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.LedgerClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	access, refresh := s.tokens()

	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refresh == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &rpc.RefreshTokenRequest{RefreshToken: refresh})
	if rerr != nil {
		return rerr
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)

	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

// NewGRPCClient dials endpointURL without transport security. Extra dial
// options are appended after the defaults.
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(rpc.MaxMessageSize),
			grpc.MaxCallSendMsgSize(rpc.MaxMessageSize),
		),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = rpc.NewLedgerClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) (*rpc.PingResponse, error) {
	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.ProgramID.IsZero() {
		return nil, fmt.Errorf("%w: node reported no program", ErrUnavailable)
	}
	return resp, nil
}

func (s *GRPCClient) RegisterIdentity(ctx context.Context, p pubkey.Pubkey) (bool, error) {
	resp, err := s.client.RegisterIdentity(ctx, &rpc.RegisterIdentityRequest{Pubkey: p})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Created, nil
}

func (s *GRPCClient) LookupIdentity(ctx context.Context, p pubkey.Pubkey) (bool, error) {
	resp, err := s.client.LookupIdentity(ctx, &rpc.LookupIdentityRequest{Pubkey: p})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Registered, nil
}

func (s *GRPCClient) Login(ctx context.Context, p pubkey.Pubkey, timestamp int64, signature []byte) error {
	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Pubkey: p, Timestamp: timestamp, Signature: signature})
	if err != nil {
		return s.mapError(err)
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

func (s *GRPCClient) CreateStateAccount(ctx context.Context) (pubkey.Pubkey, bool, error) {
	resp, err := s.client.CreateStateAccount(ctx, &rpc.CreateStateAccountRequest{})
	if err != nil {
		return pubkey.Pubkey{}, false, s.mapError(err)
	}
	return resp.Address, resp.Created, nil
}

func (s *GRPCClient) GetAccount(ctx context.Context, key pubkey.Pubkey) (*rpc.GetAccountResponse, error) {
	resp, err := s.client.GetAccount(ctx, &rpc.GetAccountRequest{Key: key})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) SendTransaction(ctx context.Context, accounts []rpc.AccountMeta, data []byte) (*rpc.SendTransactionResponse, error) {
	resp, err := s.client.SendTransaction(ctx, &rpc.SendTransactionRequest{Accounts: accounts, Data: data})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ExportAccount(ctx context.Context, key pubkey.Pubkey) (*rpc.ExportAccountResponse, error) {
	resp, err := s.client.ExportAccount(ctx, &rpc.ExportAccountRequest{Key: key})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s", common.ErrPermissionDenied, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

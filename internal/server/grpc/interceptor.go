package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/rpc"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/auth"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/metrics"
)

type ctxKey string

// CallerKey holds the authenticated pubkey.Pubkey of the request.
const CallerKey ctxKey = "caller"

// protectedMethods need a valid access token.
var protectedMethods = map[string]bool{
	rpc.Ledger_CreateStateAccount_FullMethodName: true,
	rpc.Ledger_SendTransaction_FullMethodName:    true,
	rpc.Ledger_ExportAccount_FullMethodName:      true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	caller, err := auth.PubkeyFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	return handler(context.WithValue(ctx, CallerKey, caller), req)
}

func (s *GRPCServer) metricsInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	resp, err := handler(ctx, req)
	metrics.RPCRequestsTotal.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
	return resp, err
}

func callerFromContext(ctx context.Context) (pubkey.Pubkey, error) {
	p, ok := ctx.Value(CallerKey).(pubkey.Pubkey)
	if !ok {
		return pubkey.Pubkey{}, status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return p, nil
}

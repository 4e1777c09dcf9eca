// Package grpc exposes the node's services over gRPC.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"github.com/iulianbarbu/solana-social-dapp/internal/logging"
	"github.com/iulianbarbu/solana-social-dapp/internal/program/instruction"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/rpc"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/models"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/services"
)

// AuthServicer is the part of services.AuthService the handlers use.
type AuthServicer interface {
	RegisterIdentity(ctx context.Context, p pubkey.Pubkey) (bool, error)
	IdentityExists(ctx context.Context, p pubkey.Pubkey) (bool, error)
	Login(ctx context.Context, p pubkey.Pubkey, unix int64, sig []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

// LedgerServicer is the part of services.LedgerService the handlers use.
type LedgerServicer interface {
	ProgramID() pubkey.Pubkey
	OpcodeSet() instruction.OpcodeSet
	CreateStateAccount(ctx context.Context, owner pubkey.Pubkey) (pubkey.Pubkey, bool, error)
	GetAccount(ctx context.Context, key pubkey.Pubkey) (*models.Account, error)
	SendTransaction(ctx context.Context, caller pubkey.Pubkey, refs []services.AccountRef, data []byte) (*services.TxResult, error)
}

// ExportServicer is the part of services.ExportService the handlers use.
type ExportServicer interface {
	ExportAccount(ctx context.Context, caller, key pubkey.Pubkey) (*services.Export, error)
}

type GRPCServer struct {
	rpc.UnimplementedLedgerServer
	address   string
	auth      AuthServicer
	ledger    LedgerServicer
	export    ExportServicer
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, as AuthServicer, ls LedgerServicer, es ExportServicer, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		auth:      as,
		ledger:    ls,
		export:    es,
		jwtSecret: []byte(secretKey),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.metricsInterceptor, s.accessTokenInterceptor),
		grpc.MaxRecvMsgSize(rpc.MaxMessageSize),
		grpc.MaxSendMsgSize(rpc.MaxMessageSize),
	)
	rpc.RegisterLedgerServer(srv, s)

	served := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			srv.GracefulStop()
		case <-served:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	err := srv.Serve(lis)
	close(served)
	<-stopped
	return err
}

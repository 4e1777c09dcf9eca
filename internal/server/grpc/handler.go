package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/program/slotcodec"
	"github.com/iulianbarbu/solana-social-dapp/internal/rpc"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/services"
)

// maxTxAccounts bounds the account list of a single transaction.
const maxTxAccounts = 8

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{
		ProgramID: s.ledger.ProgramID(),
		OpcodeSet: s.ledger.OpcodeSet().String(),
		SlotSize:  slotcodec.SlotSize,
	}, nil
}

func (s *GRPCServer) RegisterIdentity(ctx context.Context, req *rpc.RegisterIdentityRequest) (*rpc.RegisterIdentityResponse, error) {
	if req.Pubkey.IsZero() {
		return nil, status.Error(codes.InvalidArgument, "pubkey required")
	}

	created, err := s.auth.RegisterIdentity(ctx, req.Pubkey)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, toStatus(err)
	}

	if created {
		s.logger.Info(ctx, "Registered", "pubkey", req.Pubkey.String())
	}
	return &rpc.RegisterIdentityResponse{Created: created}, nil
}

func (s *GRPCServer) LookupIdentity(ctx context.Context, req *rpc.LookupIdentityRequest) (*rpc.LookupIdentityResponse, error) {
	ok, err := s.auth.IdentityExists(ctx, req.Pubkey)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, toStatus(err)
	}
	return &rpc.LookupIdentityResponse{Registered: ok}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	tokens, err := s.auth.Login(ctx, req.Pubkey, req.Timestamp, req.Signature)
	if err != nil {
		s.logger.Warn(ctx, "login failed", "pubkey", req.Pubkey.String(), "error", err)
		return nil, toStatus(err)
	}
	return &rpc.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *rpc.RefreshTokenRequest) (*rpc.RefreshTokenResponse, error) {
	tokens, err := s.auth.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) CreateStateAccount(ctx context.Context, req *rpc.CreateStateAccountRequest) (*rpc.CreateStateAccountResponse, error) {
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	addr, created, err := s.ledger.CreateStateAccount(ctx, caller)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, toStatus(err)
	}
	return &rpc.CreateStateAccountResponse{Address: addr, Created: created}, nil
}

func (s *GRPCServer) GetAccount(ctx context.Context, req *rpc.GetAccountRequest) (*rpc.GetAccountResponse, error) {
	acc, err := s.ledger.GetAccount(ctx, req.Key)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.GetAccountResponse{
		Key:       acc.Key,
		Owner:     acc.Owner,
		Data:      acc.Data,
		UpdatedAt: acc.UpdatedAt,
	}, nil
}

func (s *GRPCServer) SendTransaction(ctx context.Context, req *rpc.SendTransactionRequest) (*rpc.SendTransactionResponse, error) {
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(req.Accounts) > maxTxAccounts {
		return nil, status.Errorf(codes.InvalidArgument, "too many accounts: %d", len(req.Accounts))
	}

	refs := make([]services.AccountRef, len(req.Accounts))
	for i, a := range req.Accounts {
		refs[i] = services.AccountRef{Key: a.Key, IsSigner: a.IsSigner, IsWritable: a.IsWritable}
	}

	res, err := s.ledger.SendTransaction(ctx, caller, refs, req.Data)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, toStatus(err)
	}

	resp := &rpc.SendTransactionResponse{
		StatusCode: res.StatusCode,
		Logs:       res.Logs,
		Changed:    res.Changed,
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	return resp, nil
}

func (s *GRPCServer) ExportAccount(ctx context.Context, req *rpc.ExportAccountRequest) (*rpc.ExportAccountResponse, error) {
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	exp, err := s.export.ExportAccount(ctx, caller, req.Key)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, toStatus(err)
	}
	return &rpc.ExportAccountResponse{
		ObjectKey: exp.ObjectKey,
		URL:       exp.URL,
		Size:      exp.Size,
		ExpiresAt: exp.ExpiresAt,
	}, nil
}

// toStatus maps service errors to gRPC status errors. Unknown errors are
// reported as Internal without their text.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrInvalidSignature),
		errors.Is(err, common.ErrStaleLogin),
		errors.Is(err, common.ErrLoginReplayed),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "socialdapp.v1.Ledger"

const (
	Ledger_Ping_FullMethodName               = "/" + ServiceName + "/Ping"
	Ledger_RegisterIdentity_FullMethodName   = "/" + ServiceName + "/RegisterIdentity"
	Ledger_LookupIdentity_FullMethodName     = "/" + ServiceName + "/LookupIdentity"
	Ledger_Login_FullMethodName              = "/" + ServiceName + "/Login"
	Ledger_RefreshToken_FullMethodName       = "/" + ServiceName + "/RefreshToken"
	Ledger_CreateStateAccount_FullMethodName = "/" + ServiceName + "/CreateStateAccount"
	Ledger_GetAccount_FullMethodName         = "/" + ServiceName + "/GetAccount"
	Ledger_SendTransaction_FullMethodName    = "/" + ServiceName + "/SendTransaction"
	Ledger_ExportAccount_FullMethodName      = "/" + ServiceName + "/ExportAccount"
)

// LedgerServer is the server API of the Ledger service.
type LedgerServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	RegisterIdentity(context.Context, *RegisterIdentityRequest) (*RegisterIdentityResponse, error)
	LookupIdentity(context.Context, *LookupIdentityRequest) (*LookupIdentityResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	CreateStateAccount(context.Context, *CreateStateAccountRequest) (*CreateStateAccountResponse, error)
	GetAccount(context.Context, *GetAccountRequest) (*GetAccountResponse, error)
	SendTransaction(context.Context, *SendTransactionRequest) (*SendTransactionResponse, error)
	ExportAccount(context.Context, *ExportAccountRequest) (*ExportAccountResponse, error)
}

// UnimplementedLedgerServer answers every method with codes.Unimplemented.
// Embed it to stay source compatible when methods are added.
type UnimplementedLedgerServer struct{}

func (UnimplementedLedgerServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedLedgerServer) RegisterIdentity(context.Context, *RegisterIdentityRequest) (*RegisterIdentityResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterIdentity not implemented")
}
func (UnimplementedLedgerServer) LookupIdentity(context.Context, *LookupIdentityRequest) (*LookupIdentityResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method LookupIdentity not implemented")
}
func (UnimplementedLedgerServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedLedgerServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedLedgerServer) CreateStateAccount(context.Context, *CreateStateAccountRequest) (*CreateStateAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateStateAccount not implemented")
}
func (UnimplementedLedgerServer) GetAccount(context.Context, *GetAccountRequest) (*GetAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAccount not implemented")
}
func (UnimplementedLedgerServer) SendTransaction(context.Context, *SendTransactionRequest) (*SendTransactionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SendTransaction not implemented")
}
func (UnimplementedLedgerServer) ExportAccount(context.Context, *ExportAccountRequest) (*ExportAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ExportAccount not implemented")
}

// RegisterLedgerServer attaches srv to s.
func RegisterLedgerServer(s grpc.ServiceRegistrar, srv LedgerServer) {
	s.RegisterService(&Ledger_ServiceDesc, srv)
}

// unary builds a MethodDesc the way generated code does: decode the
// request, then hand it to the interceptor chain if there is one.
func unary[Req, Resp any](name string, call func(LedgerServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LedgerServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LedgerServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Ledger_ServiceDesc describes the Ledger service for grpc.Server.
var Ledger_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", LedgerServer.Ping),
		unary("RegisterIdentity", LedgerServer.RegisterIdentity),
		unary("LookupIdentity", LedgerServer.LookupIdentity),
		unary("Login", LedgerServer.Login),
		unary("RefreshToken", LedgerServer.RefreshToken),
		unary("CreateStateAccount", LedgerServer.CreateStateAccount),
		unary("GetAccount", LedgerServer.GetAccount),
		unary("SendTransaction", LedgerServer.SendTransaction),
		unary("ExportAccount", LedgerServer.ExportAccount),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "socialdapp/v1/ledger",
}

// Package client contains the CLI's transport and local storage bootstrap.
//
// # Overview
//
//  1. The Client interface is the node API as the CLI sees it: identity
//     registration and lookup, login, state account provisioning, account
//     reads, transactions and exports.
//  2. GRPCClient implements it over the Ledger gRPC service. An interceptor
//     attaches the access token to every call and transparently refreshes
//     it once when the node reports it expired. gRPC status codes are mapped
//     to sentinel errors.
//  3. InitDatabase and RunMigrations open the SQLite snapshot cache and apply
//     the embedded goose migrations.
//
// # Error Handling
//
// Callers match ErrUnavailable, ErrUnauthorized, ErrLocalDataNotAvailable,
// common.ErrPermissionDenied and common.ErrorNotFound with errors.Is.
//
// GRPCClient is safe for concurrent use; the connectivity watcher pings
// while commands run.
package client

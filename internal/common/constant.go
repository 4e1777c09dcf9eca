// Package common contains shared constants and sentinel errors used across
// the node and the CLI.
package common

const (
	// AccessTokenHeaderName is the gRPC metadata key used to carry the
	// access token on outbound requests.
	AccessTokenHeaderName = "access_token"

	// StateAccountSeed is mixed with the owner and program keys to derive
	// the owner's state account address.
	StateAccountSeed = "INITIALIZE_STATE"
)

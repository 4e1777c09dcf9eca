// Package metadata stores small named values of the CLI session, such as
// the last identity and the node's program id, in the local cache.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyIdentity     = "identity"
	KeyProgramID    = "program_id"
	KeyStateAddress = "state_address"
)

// Repository is a key/value store. Get returns nil for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

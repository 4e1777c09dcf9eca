// Package mutation applies the four idempotent state transitions to a
// decoded record.
package mutation

import (
	"fmt"

	"github.com/iulianbarbu/solana-social-dapp/internal/program/state"
)

// Outcome describes what an operation did. Message is the human readable
// status line; Changed is false for the no-op branches.
type Outcome struct {
	Changed bool
	Message string
}

// AddFriend inserts target into the friend set of the record owned by
// initializer.
func AddFriend(rec *state.Record, initializer, target string) Outcome {
	if rec.HasFriend(target) {
		return Outcome{Message: fmt.Sprintf("%s is already a friend to %s.", target, initializer)}
	}
	rec.AddFriend(target)
	return Outcome{Changed: true, Message: fmt.Sprintf("Added %s as a friend to %s.", target, initializer)}
}

// RemoveFriend drops target from the friend set.
func RemoveFriend(rec *state.Record, initializer, target string) Outcome {
	if !rec.RemoveFriend(target) {
		return Outcome{Message: fmt.Sprintf("%s is not a friend of %s.", target, initializer)}
	}
	return Outcome{Changed: true, Message: fmt.Sprintf("Removed %s from friends list of %s.", target, initializer)}
}

// SetOnline flips the flag from offline to online. Any other stored value
// is left alone and reported as already online.
func SetOnline(rec *state.Record, initializer string) Outcome {
	if rec.Online != state.Offline {
		return Outcome{Message: fmt.Sprintf("Status of %s already set as online.", initializer)}
	}
	rec.Online = state.Online
	return Outcome{Changed: true, Message: fmt.Sprintf("Set status of %s as online.", initializer)}
}

// SetOffline flips the flag from online to offline.
func SetOffline(rec *state.Record, initializer string) Outcome {
	if rec.Online != state.Online {
		return Outcome{Message: fmt.Sprintf("Status of %s already set as offline.", initializer)}
	}
	rec.Online = state.Offline
	return Outcome{Changed: true, Message: fmt.Sprintf("Set status of %s as offline.", initializer)}
}

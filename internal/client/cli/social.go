package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iulianbarbu/solana-social-dapp/internal/client/services"
	"github.com/iulianbarbu/solana-social-dapp/internal/program/state"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

var errNotLoggedIn = errors.New("not logged in, use login or register")

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	return nil
}

// AddFriend adds the base58 pubkey arg to the friend list.
func (a *App) AddFriend(ctx context.Context, arg string) error {
	return a.friendCmd(ctx, arg, a.social.AddFriend)
}

// RemoveFriend drops the base58 pubkey arg from the friend list.
func (a *App) RemoveFriend(ctx context.Context, arg string) error {
	return a.friendCmd(ctx, arg, a.social.RemoveFriend)
}

func (a *App) friendCmd(ctx context.Context, arg string, fn func(context.Context, pubkey.Pubkey) (*services.TxOutcome, error)) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	target, err := pubkey.Parse(arg)
	if err != nil {
		return fmt.Errorf("invalid pubkey %q: %w", arg, err)
	}
	out, err := fn(ctx, target)
	return a.printOutcome(out, err)
}

// SetStatus publishes the online flag.
func (a *App) SetStatus(ctx context.Context, online bool) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	out, err := a.social.SetStatus(ctx, online)
	return a.printOutcome(out, err)
}

func (a *App) printOutcome(out *services.TxOutcome, err error) error {
	var txErr *services.TxError
	if errors.As(err, &txErr) {
		a.printLogs(txErr.Logs)
		return err
	}
	if err != nil {
		return err
	}
	a.printLogs(out.Logs)
	if !out.Changed {
		a.printf("Nothing to change\n")
	}
	return nil
}

func (a *App) printLogs(logs []string) {
	for _, l := range logs {
		a.printf("  %s\n", l)
	}
}

// Show prints the decoded state account.
func (a *App) Show(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	view, err := a.social.Show(ctx)
	if err != nil {
		return err
	}

	snap := view.Snapshot
	a.printf("State account: %s\n", snap.Address)
	if view.Cached {
		a.printf("(cached snapshot from %s)\n", snap.FetchedAt.Local().Format(time.DateTime))
	}
	a.printRecord(snap.Record)
	return nil
}

// Export publishes the state account to object storage and prints where it
// can be downloaded.
func (a *App) Export(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	exp, err := a.social.Export(ctx)
	if err != nil {
		return err
	}

	a.printf("Exported %d bytes as %s\n", exp.Size, exp.ObjectKey)
	a.printf("URL: %s\n", exp.URL)
	a.printf("Expires: %s\n", exp.ExpiresAt.Local().Format(time.DateTime))
	a.printRecord(exp.Record)
	return nil
}

func (a *App) printRecord(rec *state.Record) {
	status := "offline"
	if rec.IsOnline() {
		status = "online"
	}
	a.printf("Status: %s\n", status)

	ids := rec.FriendIDs()
	a.printf("Friends (%d):\n", len(ids))
	for _, id := range ids {
		a.printf("  %s\n", id)
	}
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/iulianbarbu/solana-social-dapp/internal/program/instruction"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/rpc"
)

// ErrUnknownIdentity is returned before sending a friend transaction for a
// target the node has never seen.
var ErrUnknownIdentity = errors.New("cannot find the target user")

// TxError is a transaction the program rejected.
type TxError struct {
	Code    uint64
	Message string
	Logs    []string
}

func (e *TxError) Error() string {
	return fmt.Sprintf("transaction failed with status %#x: %s", e.Code, e.Message)
}

// TxOutcome is an accepted transaction. Changed is false for the no-op
// branches, e.g. adding a friend twice.
type TxOutcome struct {
	Changed bool
	Logs    []string
}

// AddFriend adds target to the friend list of the session identity.
func (s *SocialService) AddFriend(ctx context.Context, target pubkey.Pubkey) (*TxOutcome, error) {
	return s.friendTx(ctx, instruction.AddFriend, target)
}

// RemoveFriend drops target from the friend list.
func (s *SocialService) RemoveFriend(ctx context.Context, target pubkey.Pubkey) (*TxOutcome, error) {
	return s.friendTx(ctx, instruction.RemoveFriend, target)
}

// SetStatus sets the online flag of the session identity.
func (s *SocialService) SetStatus(ctx context.Context, online bool) (*TxOutcome, error) {
	kp, addr, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	op := instruction.SetStatusOffline
	if online {
		op = instruction.SetStatusOnline
	}
	return s.send(ctx, op, accountMetas(kp.Public(), addr, nil))
}

func (s *SocialService) friendTx(ctx context.Context, op instruction.Opcode, target pubkey.Pubkey) (*TxOutcome, error) {
	kp, addr, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	registered, err := s.client.LookupIdentity(ctx, target)
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIdentity, target)
	}

	return s.send(ctx, op, accountMetas(kp.Public(), addr, &target))
}

// accountMetas lists the accounts of an instruction in program order:
// initializer, its state account, then the target if any.
func accountMetas(initializer, state pubkey.Pubkey, target *pubkey.Pubkey) []rpc.AccountMeta {
	metas := []rpc.AccountMeta{
		{Key: initializer, IsSigner: true},
		{Key: state, IsWritable: true},
	}
	if target != nil {
		metas = append(metas, rpc.AccountMeta{Key: *target})
	}
	return metas
}

func (s *SocialService) send(ctx context.Context, op instruction.Opcode, metas []rpc.AccountMeta) (*TxOutcome, error) {
	resp, err := s.client.SendTransaction(ctx, metas, []byte{byte(op)})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode != 0 {
		return nil, &TxError{Code: resp.StatusCode, Message: resp.Error, Logs: resp.Logs}
	}
	return &TxOutcome{Changed: resp.Changed, Logs: resp.Logs}, nil
}

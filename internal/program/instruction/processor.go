// Package instruction validates an instruction against its accounts and
// applies it to the caller's state slot.
package instruction

import (
	"context"
	"fmt"

	"github.com/iulianbarbu/solana-social-dapp/internal/logging"
	"github.com/iulianbarbu/solana-social-dapp/internal/program/mutation"
	"github.com/iulianbarbu/solana-social-dapp/internal/program/slotcodec"
	"github.com/iulianbarbu/solana-social-dapp/internal/program/state"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

// Result reports what a successful Process call did.
type Result struct {
	Opcode  Opcode
	Outcome mutation.Outcome
	// PayloadLen is the encoded record size after the call. It is only set
	// when the slot was rewritten.
	PayloadLen int
}

// Processor is stateless; one value can serve any number of calls, but the
// caller must not run two calls against the same slot concurrently.
type Processor struct {
	set OpcodeSet
	log logging.Logger
}

func NewProcessor(set OpcodeSet, log logging.Logger) *Processor {
	if log == nil {
		log = logging.Nop()
	}
	return &Processor{set: set, log: log}
}

// Process runs one instruction.
//
// accounts[0] is the initializer and must have signed, accounts[1] is its
// state slot and friend instructions carry the target as accounts[2].
// Every check happens before the slot is touched, so a returned error means
// the slot is unchanged. The slot is also left as is when the operation is
// a no-op.
func (p *Processor) Process(ctx context.Context, programID pubkey.Pubkey, accounts []AccountInfo, data []byte) (Result, error) {
	res, err := p.process(ctx, accounts, data)
	if err != nil {
		p.log.Warn(ctx, fmt.Sprintf("Program %s failed: %v", programID, err), "code", StatusCode(err))
		return Result{}, err
	}
	return res, nil
}

func (p *Processor) process(ctx context.Context, accounts []AccountInfo, data []byte) (Result, error) {
	if len(data) != 1 {
		return Result{}, ErrInvalidInstructionData
	}

	op := Opcode(data[0])
	if !p.set.Contains(op) {
		return Result{}, &UnknownInstructionError{Opcode: data[0]}
	}

	if len(accounts) != op.Arity() {
		return Result{}, ErrInsufficientAccountsForInstruction
	}

	initializer := accounts[0]
	if !initializer.IsSigner {
		return Result{}, ErrMissingRequiredSignature
	}

	slot := accounts[1].Data
	if len(slot) != slotcodec.SlotSize {
		return Result{}, ErrInvalidUserStateDataLength
	}

	rec, err := slotcodec.Decode(slot)
	if err != nil {
		return Result{}, err
	}

	res := Result{Opcode: op}
	initKey := initializer.Key.String()

	switch op.Kind() {
	case KindFriend:
		target := accounts[2].Key.String()
		switch op {
		case AddFriend:
			res.Outcome = mutation.AddFriend(rec, initKey, target)
		case RemoveFriend:
			res.Outcome = mutation.RemoveFriend(rec, initKey, target)
		default:
			return Result{}, HandleFriendInstruction
		}
	case KindStatus:
		switch op {
		case SetStatusOnline:
			res.Outcome = mutation.SetOnline(rec, initKey)
		case SetStatusOffline:
			res.Outcome = mutation.SetOffline(rec, initKey)
		default:
			return Result{}, HandleStatusInstruction
		}
	case KindQuery:
		res.Outcome = describe(rec, initKey)
	default:
		return Result{}, &UnknownInstructionError{Opcode: data[0]}
	}

	if res.Outcome.Changed {
		n, err := slotcodec.Encode(rec, slot)
		if err != nil {
			return Result{}, err
		}
		res.PayloadLen = n
	}

	p.log.Info(ctx, res.Outcome.Message, "opcode", op.String(), "changed", res.Outcome.Changed)
	return res, nil
}

func describe(rec *state.Record, initializer string) mutation.Outcome {
	return mutation.Outcome{
		Message: fmt.Sprintf("State of %s decoded: online=%d, %d friends.", initializer, rec.Online, len(rec.Friends)),
	}
}

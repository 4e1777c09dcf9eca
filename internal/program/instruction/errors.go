package instruction

import (
	"errors"
	"fmt"

	"github.com/iulianbarbu/solana-social-dapp/internal/program/slotcodec"
)

// ProgramError is a program-defined failure. Its value is the custom status
// code reported to the host.
type ProgramError uint32

const (
	InvalidUserStateDataLength ProgramError = iota
	HandleFriendInstruction
	HandleStatusInstruction
	InsufficientAccountsForInstruction
	UnknownInstruction
)

func (e ProgramError) Error() string {
	switch e {
	case InvalidUserStateDataLength:
		return "invalid user state data length"
	case HandleFriendInstruction:
		return "handle friend instruction"
	case HandleStatusInstruction:
		return "handle status instruction"
	case InsufficientAccountsForInstruction:
		return "insufficient accounts for instruction"
	case UnknownInstruction:
		return "unknown instruction"
	default:
		return fmt.Sprintf("program error %d", uint32(e))
	}
}

var (
	ErrInvalidUserStateDataLength         error = InvalidUserStateDataLength
	ErrInsufficientAccountsForInstruction error = InsufficientAccountsForInstruction
	ErrUnknownInstruction                 error = UnknownInstruction

	// Host level failures.
	ErrInvalidInstructionData   = errors.New("invalid instruction data")
	ErrMissingRequiredSignature = errors.New("missing required signature")
)

// UnknownInstructionError rejects an opcode outside the processor's set.
type UnknownInstructionError struct {
	Opcode uint8
}

func (e *UnknownInstructionError) Error() string {
	return fmt.Sprintf("unknown instruction: opcode %d", e.Opcode)
}

func (e *UnknownInstructionError) Is(target error) bool {
	return target == ErrUnknownInstruction
}

// Status codes for failures that are not program-defined. Custom codes live
// in the low 32 bits, these in the high ones, so the two never collide.
const (
	CodeSuccess                  uint64 = 0
	CodeCustomZero               uint64 = 1 << 32
	CodeInvalidArgument          uint64 = 2 << 32
	CodeInvalidInstructionData   uint64 = 3 << 32
	CodeAccountDataTooSmall      uint64 = 5 << 32
	CodeMissingRequiredSignature uint64 = 8 << 32
)

// StatusCode maps err to the numeric code a host reports. A nil error is
// CodeSuccess. Custom code 0 is reported as CodeCustomZero so that it
// cannot be confused with success.
func StatusCode(err error) uint64 {
	if err == nil {
		return CodeSuccess
	}

	var unknown *UnknownInstructionError
	if errors.As(err, &unknown) {
		return customCode(uint32(unknown.Opcode))
	}

	var perr ProgramError
	if errors.As(err, &perr) {
		return customCode(uint32(perr))
	}

	switch {
	case errors.Is(err, ErrInvalidInstructionData):
		return CodeInvalidInstructionData
	case errors.Is(err, ErrMissingRequiredSignature):
		return CodeMissingRequiredSignature
	case errors.Is(err, slotcodec.ErrCapacityExceeded):
		return CodeAccountDataTooSmall
	default:
		return CodeInvalidArgument
	}
}

func customCode(c uint32) uint64 {
	if c == 0 {
		return CodeCustomZero
	}
	return uint64(c)
}

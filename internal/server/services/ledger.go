package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/logging"
	"github.com/iulianbarbu/solana-social-dapp/internal/program/instruction"
	"github.com/iulianbarbu/solana-social-dapp/internal/program/slotcodec"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/metrics"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/models"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/repositories/repomanager"
)

// ErrReadonlyDataModified is reported when an instruction rewrites a slot
// the transaction did not mark writable.
var ErrReadonlyDataModified = errors.New("instruction modified data of a read-only account")

// AccountRef names an account taking part in a transaction.
type AccountRef struct {
	Key        pubkey.Pubkey
	IsSigner   bool
	IsWritable bool
}

// TxResult is the outcome of one processed transaction. Err is the program
// failure, if any; it is reported to the caller, not returned as an error.
type TxResult struct {
	StatusCode uint64
	Err        error
	Logs       []string
	Changed    bool
}

// LedgerService owns state accounts and runs transactions against them.
type LedgerService struct {
	repomanager repomanager.RepositoryManager
	programID   pubkey.Pubkey
	opcodes     instruction.OpcodeSet
	log         logging.Logger
}

func NewLedgerService(m repomanager.RepositoryManager, programID pubkey.Pubkey, opcodes instruction.OpcodeSet, log logging.Logger) *LedgerService {
	if log == nil {
		log = logging.Nop()
	}
	return &LedgerService{
		repomanager: m,
		programID:   programID,
		opcodes:     opcodes,
		log:         log,
	}
}

func (s *LedgerService) ProgramID() pubkey.Pubkey { return s.programID }

func (s *LedgerService) OpcodeSet() instruction.OpcodeSet { return s.opcodes }

// StateAddress derives the state account of owner.
func (s *LedgerService) StateAddress(owner pubkey.Pubkey) (pubkey.Pubkey, error) {
	return pubkey.CreateWithSeed(owner, common.StateAccountSeed, s.programID)
}

// CreateStateAccount provisions the state account derived from owner,
// zero-filled to the slot size. Calling it again returns the same address
// with created set to false.
func (s *LedgerService) CreateStateAccount(ctx context.Context, owner pubkey.Pubkey) (pubkey.Pubkey, bool, error) {
	addr, err := s.StateAddress(owner)
	if err != nil {
		return pubkey.Pubkey{}, false, err
	}

	var created bool
	err = s.repomanager.InTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		var err error
		created, err = r.Accounts().Create(ctx, &models.Account{
			Key:   addr,
			Owner: owner,
			Data:  make([]byte, slotcodec.SlotSize),
		})
		return err
	})
	if err != nil {
		return pubkey.Pubkey{}, false, fmt.Errorf("error creating state account: %w", err)
	}
	if created {
		s.log.Info(ctx, "state account created", "address", addr.String(), "owner", owner.String())
	}
	return addr, created, nil
}

// GetAccount returns the stored account or common.ErrorNotFound.
func (s *LedgerService) GetAccount(ctx context.Context, key pubkey.Pubkey) (*models.Account, error) {
	var acc *models.Account
	err := s.repomanager.InTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		var err error
		acc, err = r.Accounts().Get(ctx, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// SendTransaction runs one instruction on behalf of caller.
//
// Only caller can sign, so the signer flag of every other account is
// cleared. Writable accounts must belong to caller and are locked for the
// rest of the transaction. Accounts that are not stored are passed with
// empty data. The instruction's slot is persisted only when it changed.
func (s *LedgerService) SendTransaction(ctx context.Context, caller pubkey.Pubkey, refs []AccountRef, data []byte) (*TxResult, error) {
	var (
		res  *TxResult
		last instruction.Result
	)
	err := s.repomanager.InTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		infos, err := s.loadAccounts(ctx, r, caller, refs)
		if err != nil {
			return err
		}

		rec := logging.NewRecorder(s.log.With("program", s.programID.String()))
		proc := instruction.NewProcessor(s.opcodes, rec)

		out, perr := proc.Process(ctx, s.programID, infos, data)
		if perr == nil && out.Outcome.Changed {
			if !infos[1].IsWritable {
				perr = ErrReadonlyDataModified
				rec.Warn(ctx, fmt.Sprintf("Program %s failed: %v", s.programID, perr))
			} else if err := r.Accounts().UpdateData(ctx, infos[1].Key, infos[1].Data); err != nil {
				return fmt.Errorf("error storing slot: %w", err)
			}
		}

		last = out
		res = &TxResult{
			StatusCode: instruction.StatusCode(perr),
			Err:        perr,
			Logs:       rec.Lines(),
			Changed:    perr == nil && out.Outcome.Changed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.observe(data, last, res)
	return res, nil
}

func (s *LedgerService) loadAccounts(ctx context.Context, r repomanager.Repositories, caller pubkey.Pubkey, refs []AccountRef) ([]instruction.AccountInfo, error) {
	repo := r.Accounts()
	infos := make([]instruction.AccountInfo, len(refs))
	for i, ref := range refs {
		info := instruction.AccountInfo{
			Key:        ref.Key,
			IsSigner:   ref.IsSigner && ref.Key == caller,
			IsWritable: ref.IsWritable,
		}

		var (
			acc *models.Account
			err error
		)
		if ref.IsWritable {
			acc, err = repo.GetForUpdate(ctx, ref.Key)
		} else {
			acc, err = repo.Get(ctx, ref.Key)
		}
		switch {
		case errors.Is(err, common.ErrorNotFound):
		case err != nil:
			return nil, fmt.Errorf("error loading account %s: %w", ref.Key, err)
		default:
			if ref.IsWritable && acc.Owner != caller {
				return nil, fmt.Errorf("%w: account %s", common.ErrPermissionDenied, ref.Key)
			}
			info.Data = acc.Data
		}
		infos[i] = info
	}
	return infos, nil
}

func (s *LedgerService) observe(data []byte, out instruction.Result, res *TxResult) {
	label := "invalid"
	if len(data) == 1 {
		label = instruction.Opcode(data[0]).String()
	}
	switch {
	case res.Err != nil:
		metrics.ObserveInstruction(label, metrics.ResultFailed, 0)
	case res.Changed:
		metrics.ObserveInstruction(label, metrics.ResultChanged, out.PayloadLen)
	default:
		metrics.ObserveInstruction(label, metrics.ResultNoop, 0)
	}
}

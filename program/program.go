// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package program is the balance ledger state machine. It validates
// Initialize, Deposit and Withdraw against a record account and applies
// them atomically: every new value is computed before anything is written.
package program

import (
	"fmt"

	"github.com/ava-labs/ledgervm/account"
	"github.com/ava-labs/ledgervm/codec"

	safemath "github.com/ava-labs/avalanchego/utils/math"
)

// WithdrawDivisor selects the share of the balance paid out by a withdraw.
const WithdrawDivisor = 10

// Transition holds the values an operation will write. It is produced by
// [Apply] without touching any account and applied with [Transition.Commit].
type Transition struct {
	Operation Operation
	// Amount is the number of lamports moved between the two accounts.
	Amount uint64

	Record         Record
	TargetLamports uint64
	CallerLamports uint64

	data      []byte
	hasCaller bool
}

// Commit writes the transition into [target] and, for Deposit and Withdraw,
// [caller]. Both must be the accounts passed to [Apply].
func (t *Transition) Commit(target, caller *account.Info) {
	copy(target.Data, t.data)
	target.Lamports = t.TargetLamports
	if t.hasCaller {
		caller.Lamports = t.CallerLamports
	}
}

// Apply validates [op] against [target] and [caller] and returns the values
// the operation would write. It never mutates its arguments. [target] must be
// owned by [programID]. [caller] is ignored by Initialize and required by
// Deposit and Withdraw.
func Apply(
	programID codec.Address,
	op Operation,
	target *account.Info,
	caller *account.Info,
	exemption ExemptionChecker,
) (*Transition, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: record account", ErrMissingAccount)
	}
	if err := checkOwner(programID, target); err != nil {
		return nil, err
	}
	switch op.(type) {
	case Initialize:
		return initialize(target, exemption)
	case Deposit:
		return deposit(target, caller)
	case Withdraw:
		return withdraw(target, caller)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownOperation, op)
	}
}

// Process is the program entrypoint. The first account is the record
// account and must be owned by [programID]; Deposit and Withdraw consume a
// second, counterparty account. On success the accounts are updated in place
// and the applied transition is returned. On failure nothing is modified.
func Process(
	programID codec.Address,
	accounts []*account.Info,
	instructionData []byte,
	exemption ExemptionChecker,
) (*Transition, error) {
	it := account.NewIterator(accounts)
	target, err := it.Next()
	if err != nil {
		return nil, fmt.Errorf("%w: record account: %w", ErrMissingAccount, err)
	}
	// Ownership is checked before the tag is decoded.
	if err := checkOwner(programID, target); err != nil {
		return nil, err
	}
	op, err := ParseOperation(instructionData)
	if err != nil {
		return nil, err
	}

	var caller *account.Info
	if op.accounts() > 1 {
		caller, err = it.Next()
		if err != nil {
			return nil, fmt.Errorf("%w: %s counterparty: %w", ErrMissingAccount, op, err)
		}
	}

	t, err := Apply(programID, op, target, caller, exemption)
	if err != nil {
		return nil, err
	}
	t.Commit(target, caller)
	return t, nil
}

func initialize(target *account.Info, exemption ExemptionChecker) (*Transition, error) {
	if !exemption.IsExempt(target.Lamports, len(target.Data)) {
		return nil, fmt.Errorf(
			"%w: lamports=%d dataLen=%d",
			ErrNotRentExempt,
			target.Lamports,
			len(target.Data),
		)
	}
	record, err := DecodeRecord(target.Data)
	if err != nil {
		return nil, err
	}

	// Re-initializing a funded record zeroes its balance without moving
	// lamports. This is the program's defined behavior.
	record.Balance = 0
	return newTransition(Initialize{}, 0, record, target.Lamports, 0, false)
}

func deposit(target *account.Info, depositor *account.Info) (*Transition, error) {
	if err := checkCounterparty(target, depositor); err != nil {
		return nil, err
	}
	record, err := DecodeRecord(target.Data)
	if err != nil {
		return nil, err
	}

	// The instruction carries no amount: the depositor's entire balance is
	// swept into the record.
	amount := depositor.Lamports
	targetLamports, err := safemath.Add(target.Lamports, amount)
	if err != nil {
		return nil, fmt.Errorf("%w: lamports=%d amount=%d", ErrOverflow, target.Lamports, amount)
	}
	balance, err := safemath.Add(record.Balance, amount)
	if err != nil {
		return nil, fmt.Errorf("%w: balance=%d amount=%d", ErrOverflow, record.Balance, amount)
	}
	record.Balance = balance
	return newTransition(Deposit{}, amount, record, targetLamports, 0, true)
}

func withdraw(target *account.Info, withdrawer *account.Info) (*Transition, error) {
	if err := checkCounterparty(target, withdrawer); err != nil {
		return nil, err
	}
	record, err := DecodeRecord(target.Data)
	if err != nil {
		return nil, err
	}

	amount := record.Balance / WithdrawDivisor
	targetLamports, err := safemath.Sub(target.Lamports, amount)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: lamports=%d balance=%d amount=%d",
			ErrInsufficientFunds,
			target.Lamports,
			record.Balance,
			amount,
		)
	}
	callerLamports, err := safemath.Add(withdrawer.Lamports, amount)
	if err != nil {
		return nil, fmt.Errorf("%w: lamports=%d amount=%d", ErrOverflow, withdrawer.Lamports, amount)
	}
	record.Balance -= amount
	return newTransition(Withdraw{}, amount, record, targetLamports, callerLamports, true)
}

func checkOwner(programID codec.Address, target *account.Info) error {
	if target.Owner != programID {
		return fmt.Errorf("%w: owner=%s program=%s", ErrNotOwned, target.Owner, programID)
	}
	return nil
}

func checkCounterparty(target *account.Info, caller *account.Info) error {
	if caller == nil {
		return fmt.Errorf("%w: counterparty", ErrMissingAccount)
	}
	if !caller.IsSigner {
		return fmt.Errorf("%w: %s", ErrMissingSignature, caller.Key)
	}
	if caller.Key == target.Key {
		return fmt.Errorf("%w: %s", ErrAccountAliased, caller.Key)
	}
	return nil
}

func newTransition(
	op Operation,
	amount uint64,
	record Record,
	targetLamports uint64,
	callerLamports uint64,
	hasCaller bool,
) (*Transition, error) {
	data, err := record.Encode()
	if err != nil {
		return nil, err
	}
	return &Transition{
		Operation:      op,
		Amount:         amount,
		Record:         record,
		TargetLamports: targetLamports,
		CallerLamports: callerLamports,
		data:           data,
		hasCaller:      hasCaller,
	}, nil
}

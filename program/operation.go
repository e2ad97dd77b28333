// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import "fmt"

// Tag is the first byte of the instruction data.
type Tag uint8

const (
	InitializeTag Tag = 0
	DepositTag    Tag = 1
	WithdrawTag   Tag = 2
)

// Operation is one of [Initialize], [Deposit] or [Withdraw]. The set is
// closed: the interface cannot be implemented outside this package.
type Operation interface {
	Tag() Tag
	String() string

	// accounts is the number of accounts the operation consumes.
	accounts() int
}

var (
	_ Operation = Initialize{}
	_ Operation = Deposit{}
	_ Operation = Withdraw{}
)

// Initialize commits a zero balance to the record account.
type Initialize struct{}

func (Initialize) Tag() Tag       { return InitializeTag }
func (Initialize) String() string { return "initialize" }
func (Initialize) accounts() int  { return 1 }

// Deposit sweeps every lamport held by the depositor into the record.
type Deposit struct{}

func (Deposit) Tag() Tag       { return DepositTag }
func (Deposit) String() string { return "deposit" }
func (Deposit) accounts() int  { return 2 }

// Withdraw pays out a tenth of the record balance to the withdrawer.
type Withdraw struct{}

func (Withdraw) Tag() Tag       { return WithdrawTag }
func (Withdraw) String() string { return "withdraw" }
func (Withdraw) accounts() int  { return 2 }

// ParseOperation decodes the operation tag from the first byte of [data].
// Bytes after the tag are ignored.
func ParseOperation(data []byte) (Operation, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty instruction data", ErrUnknownOperation)
	}
	switch Tag(data[0]) {
	case InitializeTag:
		return Initialize{}, nil
	case DepositTag:
		return Deposit{}, nil
	case WithdrawTag:
		return Withdraw{}, nil
	default:
		return nil, fmt.Errorf("%w: tag=%d", ErrUnknownOperation, data[0])
	}
}

// Instruction returns the instruction data selecting [op].
func Instruction(op Operation) []byte {
	return []byte{byte(op.Tag())}
}

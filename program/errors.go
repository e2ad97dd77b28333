// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import "errors"

var (
	ErrNotOwned          = errors.New("account is not owned by the program")
	ErrUnknownOperation  = errors.New("unknown operation")
	ErrMissingAccount    = errors.New("missing account")
	ErrNotRentExempt     = errors.New("account is not rent exempt")
	ErrMissingSignature  = errors.New("missing required signature")
	ErrDecode            = errors.New("unable to decode record")
	ErrEncode            = errors.New("unable to encode record")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountAliased    = errors.New("counterparty is the record account")
	ErrOverflow          = errors.New("arithmetic overflow")
)

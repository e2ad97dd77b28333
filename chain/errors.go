// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	// Parsing
	ErrMisalignedTime   = errors.New("misaligned time")
	ErrTooManyAccounts  = errors.New("too many accounts")
	ErrTooManySigners   = errors.New("too many signatures")
	ErrDuplicateSigner  = errors.New("duplicate signature")
	ErrInvalidObject    = errors.New("invalid object")
	ErrDuplicateAccount = errors.New("duplicate account")

	// Execution
	ErrTimestampTooLate  = errors.New("timestamp too late")
	ErrTimestampTooEarly = errors.New("timestamp too early")
	ErrInvalidChainID    = errors.New("invalid chain ID")
)

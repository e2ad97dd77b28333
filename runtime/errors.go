// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import "errors"

var (
	ErrUnknownProgram        = errors.New("unknown program")
	ErrReadonlyModified      = errors.New("read-only account modified")
	ErrExternalDataModified  = errors.New("data of account not owned by program modified")
	ErrUnbalancedInstruction = errors.New("sum of account lamports changed")
)

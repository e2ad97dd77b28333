// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import "errors"

var (
	ErrDuplicateTx = errors.New("duplicate transaction")
	ErrClosed      = errors.New("node closed")
)

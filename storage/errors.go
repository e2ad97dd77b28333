// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrInvalidAccount = errors.New("invalid account")
	ErrDataTooLarge   = errors.New("account data too large")
)

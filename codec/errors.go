// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "errors"

var (
	// ErrFieldNotPopulated is reported when a required field unpacks to its
	// zero value.
	ErrFieldNotPopulated = errors.New("field is not populated")
	ErrInvalidSize       = errors.New("invalid size")
	ErrExtraBytes        = errors.New("extra bytes")
)

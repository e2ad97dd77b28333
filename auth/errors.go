// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import "errors"

var (
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrMissingSignature    = errors.New("missing signature")
	ErrUnexpectedSignature = errors.New("signature from account outside instruction")
)

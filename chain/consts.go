// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/crypto/ed25519"
)

const (
	BaseSize        = consts.Int64Len + consts.IDLen
	AccountMetaSize = codec.AddressLen + consts.BoolLen*2
	SignatureSize   = ed25519.PublicKeyLen + ed25519.SignatureLen

	// MaxInstructionDataLen bounds the opaque data handed to a program.
	MaxInstructionDataLen = 1_232
	// MaxSignatures bounds the signatures attached to a transaction. Only
	// accounts referenced by the instruction can sign.
	MaxSignatures = consts.MaxInstructionAccounts
)

// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	// Name is the JSON-RPC service name and the default log prefix.
	Name = "ledgervm"

	ByteLen   = 1
	BoolLen   = 1
	IntLen    = 4
	Uint64Len = 8
	Int64Len  = 8
	IDLen     = 32

	MaxUint8  = ^uint8(0)
	MaxUint64 = ^uint64(0)

	// NetworkSizeLimit bounds any message read from the wire.
	NetworkSizeLimit = 2_044_723 // 1.95 MiB

	// MaxInstructionAccounts bounds the account list of a single instruction.
	MaxInstructionAccounts = 32
	// MaxAccountDataLen bounds the raw data buffer of a stored account.
	MaxAccountDataLen = 10 * 1024 * 1024
)

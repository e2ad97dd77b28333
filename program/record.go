// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"fmt"

	"github.com/near/borsh-go"

	"github.com/ava-labs/ledgervm/consts"
)

// RecordSize is the exact length of an account data buffer holding a
// [Record].
const RecordSize = consts.Uint64Len

// Record is the program state stored in the data buffer of a record
// account. It is borsh encoded, so the layout is a single little-endian
// uint64.
type Record struct {
	Balance uint64
}

// DecodeRecord parses [data] as a [Record]. A zero-filled buffer of the
// right size is a valid empty record; any other length is rejected.
func DecodeRecord(data []byte) (Record, error) {
	var r Record
	if len(data) != RecordSize {
		return r, fmt.Errorf("%w: expected %d bytes but found %d", ErrDecode, RecordSize, len(data))
	}
	if err := borsh.Deserialize(&r, data); err != nil {
		return r, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return r, nil
}

func (r Record) Encode() ([]byte, error) {
	b, err := borsh.Serialize(r)
	if err != nil {
		return nil, err
	}
	if len(b) != RecordSize {
		return nil, fmt.Errorf("%w: encoded %d bytes", ErrEncode, len(b))
	}
	return b, nil
}

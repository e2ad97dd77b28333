// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/state"
	"github.com/ava-labs/ledgervm/storage"
)

// AccountMeta references one account of an instruction. [IsSigner] is a
// claim: it only holds if the transaction carries a valid signature from
// [Address].
type AccountMeta struct {
	Address    codec.Address `json:"address"`
	IsSigner   bool          `json:"isSigner"`
	IsWritable bool          `json:"isWritable"`
}

// Instruction invokes [ProgramID] with an ordered account list and opaque
// data.
type Instruction struct {
	ProgramID codec.Address  `json:"programId"`
	Accounts  []*AccountMeta `json:"accounts"`
	Data      codec.Bytes    `json:"data"`
}

func (i *Instruction) Size() int {
	return codec.AddressLen +
		consts.IntLen + len(i.Accounts)*AccountMetaSize +
		codec.BytesLen(i.Data)
}

// Signers returns the addresses claimed as signers, in account order.
func (i *Instruction) Signers() []codec.Address {
	signers := make([]codec.Address, 0, len(i.Accounts))
	for _, meta := range i.Accounts {
		if meta.IsSigner {
			signers = append(signers, meta.Address)
		}
	}
	return signers
}

// StateKeys returns the storage keys touched by the instruction. Writable
// accounts get write access, every other account is read-only.
func (i *Instruction) StateKeys() state.Keys {
	keys := make(state.Keys, len(i.Accounts))
	for _, meta := range i.Accounts {
		perm := state.Read
		if meta.IsWritable {
			perm = state.Write
		}
		keys.Add(string(storage.AccountKey(meta.Address)), perm)
	}
	return keys
}

func (i *Instruction) Marshal(p *codec.Packer) {
	p.PackAddress(i.ProgramID)
	p.PackInt(uint32(len(i.Accounts)))
	for _, meta := range i.Accounts {
		p.PackAddress(meta.Address)
		p.PackBool(meta.IsSigner)
		p.PackBool(meta.IsWritable)
	}
	p.PackBytes(i.Data)
}

func UnmarshalInstruction(p *codec.Packer) (*Instruction, error) {
	var ix Instruction
	p.UnpackAddress(true, &ix.ProgramID)
	count := int(p.UnpackInt(false))
	if count > consts.MaxInstructionAccounts {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyAccounts, count, consts.MaxInstructionAccounts)
	}
	seen := set.NewSet[codec.Address](count)
	ix.Accounts = make([]*AccountMeta, 0, count)
	for j := 0; j < count; j++ {
		var meta AccountMeta
		p.UnpackAddress(false, &meta.Address)
		meta.IsSigner = p.UnpackBool()
		meta.IsWritable = p.UnpackBool()
		if err := p.Err(); err != nil {
			return nil, err
		}
		if seen.Contains(meta.Address) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, meta.Address)
		}
		seen.Add(meta.Address)
		ix.Accounts = append(ix.Accounts, &meta)
	}
	var data []byte
	p.UnpackBytes(MaxInstructionDataLen, false, &data)
	ix.Data = data
	return &ix, p.Err()
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package account defines the handle the host runtime hands to a program
// for every account an instruction references.
package account

import (
	"fmt"

	"github.com/ava-labs/ledgervm/codec"
)

// Info is a loaded account. The host owns it for the duration of one
// instruction: it fills every field before invoking the program and reads
// [Lamports] and [Data] back afterwards.
type Info struct {
	// Key is the account's identity (its storage location).
	Key codec.Address
	// Owner is the program allowed to mutate [Data].
	Owner codec.Address
	// Lamports is the native value attached to the account.
	Lamports uint64
	// IsSigner is set by the host only after verifying a signature by [Key].
	IsSigner bool
	// IsWritable reports whether the transaction allows changes to this
	// account.
	IsWritable bool
	// Data is the raw storage buffer. Its length is fixed when the account
	// is allocated.
	Data []byte
}

// Clone returns a deep copy of i.
func (i *Info) Clone() *Info {
	c := *i
	c.Data = append([]byte(nil), i.Data...)
	return &c
}

func (i *Info) String() string {
	return fmt.Sprintf(
		"account{key=%s owner=%s lamports=%d signer=%t writable=%t dataLen=%d}",
		i.Key,
		i.Owner,
		i.Lamports,
		i.IsSigner,
		i.IsWritable,
		len(i.Data),
	)
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/ledgervm/account"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/state"
)

type ReadState func(context.Context, [][]byte) ([][]byte, []error)

// State
// 0x0/ (account)
//   -> [address] => owner|lamports|data
// 0x1/ (genesis)
//   -> genesis digest, present once allocations were written
// 0x2/ (processed)
//   -> number of transactions applied

const (
	accountPrefix byte = iota
	genesisPrefix
	processedPrefix
)

// Account is the persisted form of an account. The signer and writable
// flags are per transaction and never stored.
type Account struct {
	Owner    codec.Address
	Lamports uint64
	Data     []byte
}

// [accountPrefix] + [address]
func AccountKey(addr codec.Address) []byte {
	k := make([]byte, consts.ByteLen+codec.AddressLen)
	k[0] = accountPrefix
	copy(k[1:], addr[:])
	return k
}

func GenesisKey() []byte {
	return []byte{genesisPrefix}
}

func ProcessedKey() []byte {
	return []byte{processedPrefix}
}

func (a *Account) Marshal() ([]byte, error) {
	if len(a.Data) > consts.MaxAccountDataLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrDataTooLarge, len(a.Data))
	}
	p := codec.NewWriter(
		codec.AddressLen+consts.Uint64Len+consts.IntLen+len(a.Data),
		consts.MaxAccountDataLen+codec.AddressLen+consts.Uint64Len+consts.IntLen,
	)
	p.PackAddress(a.Owner)
	p.PackUint64(a.Lamports)
	p.PackBytes(a.Data)
	return p.Bytes(), p.Err()
}

func UnmarshalAccount(b []byte) (*Account, error) {
	var a Account
	p := codec.NewReader(b, consts.MaxAccountDataLen+codec.AddressLen+consts.Uint64Len+consts.IntLen)
	p.UnpackAddress(false, &a.Owner)
	a.Lamports = p.UnpackUint64(false)
	p.UnpackBytes(consts.MaxAccountDataLen, false, &a.Data)
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAccount, err)
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAccount, codec.ErrExtraBytes)
	}
	return &a, nil
}

// Info converts a stored account into the handle given to a program.
func (a *Account) Info(key codec.Address, isSigner, isWritable bool) *account.Info {
	return &account.Info{
		Key:        key,
		Owner:      a.Owner,
		Lamports:   a.Lamports,
		IsSigner:   isSigner,
		IsWritable: isWritable,
		Data:       append([]byte(nil), a.Data...),
	}
}

// FromInfo captures the persisted fields of [info].
func FromInfo(info *account.Info) *Account {
	return &Account{
		Owner:    info.Owner,
		Lamports: info.Lamports,
		Data:     append([]byte(nil), info.Data...),
	}
}

// GetAccount returns the account stored at [addr]. An address that was never
// written is an empty system account with no lamports and no data.
func GetAccount(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) (*Account, bool, error) {
	return innerGetAccount(im.GetValue(ctx, AccountKey(addr)))
}

// Used to serve RPC queries
func GetAccountFromState(
	ctx context.Context,
	f ReadState,
	addr codec.Address,
) (*Account, bool, error) {
	values, errs := f(ctx, [][]byte{AccountKey(addr)})
	return innerGetAccount(values[0], errs[0])
}

func innerGetAccount(v []byte, err error) (*Account, bool, error) {
	if errors.Is(err, database.ErrNotFound) {
		return &Account{}, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	a, err := UnmarshalAccount(v)
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

// SetAccount persists [a] at [addr]. An account left with no lamports and no
// data is deleted instead of stored.
func SetAccount(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	a *Account,
) error {
	k := AccountKey(addr)
	if a.Lamports == 0 && len(a.Data) == 0 && a.Owner == codec.EmptyAddress {
		return mu.Remove(ctx, k)
	}
	v, err := a.Marshal()
	if err != nil {
		return err
	}
	return mu.Insert(ctx, k, v)
}

func GetProcessed(ctx context.Context, im state.Immutable) (uint64, error) {
	v, err := im.GetValue(ctx, ProcessedKey())
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return database.ParseUInt64(v)
}

func SetProcessed(ctx context.Context, mu state.Mutable, n uint64) error {
	return mu.Insert(ctx, ProcessedKey(), database.PackUInt64(n))
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package account

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ledgervm/codec"
)

func TestIterator(t *testing.T) {
	require := require.New(t)

	a := &Info{Key: codec.Address{1}}
	b := &Info{Key: codec.Address{2}}
	it := NewIterator([]*Info{a, b})

	got, err := it.Next()
	require.NoError(err)
	require.Same(a, got)
	got, err = it.Next()
	require.NoError(err)
	require.Same(b, got)

	_, err = it.Next()
	require.ErrorIs(err, ErrNotEnoughAccounts)
	_, err = it.Next()
	require.ErrorIs(err, ErrNotEnoughAccounts)
}

func TestClone(t *testing.T) {
	require := require.New(t)

	orig := &Info{Key: codec.Address{1}, Lamports: 5, Data: []byte{1, 2}}
	c := orig.Clone()
	c.Data[0] = 9
	c.Lamports = 6
	require.Equal([]byte{1, 2}, orig.Data)
	require.Equal(uint64(5), orig.Lamports)
}

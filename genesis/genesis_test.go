// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/state"
	"github.com/ava-labs/ledgervm/storage"
	"github.com/ava-labs/ledgervm/trace"
)

var (
	recordAddr = codec.Address{1}
	userAddr   = codec.Address{2}
	programID  = codec.Address{0xaa}
)

func testGenesis() *Genesis {
	return &Genesis{Allocations: []*Allocation{
		{Address: recordAddr.String(), Owner: programID.String(), Lamports: 946_560, Space: 8},
		{Address: userAddr.String(), Lamports: 1_000},
	}}
}

func TestInitializeState(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()

	mu := state.MutableStorage{}
	require.NoError(testGenesis().InitializeState(ctx, trace.Noop("test"), mu))

	record, exists, err := storage.GetAccount(ctx, mu, recordAddr)
	require.NoError(err)
	require.True(exists)
	require.Equal(programID, record.Owner)
	require.Equal(uint64(946_560), record.Lamports)
	require.Equal(make([]byte, 8), record.Data)

	user, exists, err := storage.GetAccount(ctx, mu, userAddr)
	require.NoError(err)
	require.True(exists)
	require.Equal(codec.EmptyAddress, user.Owner)
	require.Equal(uint64(1_000), user.Lamports)

	supply, err := testGenesis().Supply()
	require.NoError(err)
	require.Equal(uint64(947_560), supply)
}

func TestInitializeStateErrors(t *testing.T) {
	tests := []struct {
		name  string
		alloc []*Allocation
		err   error
	}{
		{
			name: "Duplicate",
			alloc: []*Allocation{
				{Address: userAddr.String(), Lamports: 1},
				{Address: userAddr.String(), Lamports: 2},
			},
			err: ErrDuplicateAllocation,
		},
		{
			name:  "NegativeSpace",
			alloc: []*Allocation{{Address: userAddr.String(), Space: -1}},
			err:   ErrInvalidSpace,
		},
		{
			name:  "BadAddress",
			alloc: []*Allocation{{Address: "0x1234"}},
			err:   codec.ErrInvalidSize,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Genesis{Allocations: tt.alloc}
			require.ErrorIs(t, g.InitializeState(context.TODO(), trace.Noop("test"), state.MutableStorage{}), tt.err)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	for _, ext := range []string{".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			require := require.New(t)

			path := filepath.Join(t.TempDir(), "genesis"+ext)
			require.NoError(testGenesis().Save(path))
			g, err := LoadFile(path)
			require.NoError(err)
			require.Equal(testGenesis(), g)
		})
	}
}

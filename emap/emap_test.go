// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package emap

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

type TestTx struct {
	id ids.ID
	t  int64
}

func (tx *TestTx) ID() ids.ID    { return tx.id }
func (tx *TestTx) Expiry() int64 { return tx.t }

func TestEmapNew(t *testing.T) {
	require := require.New(t)

	e := NewEMap[*TestTx]()
	require.Zero(e.Len())
	require.Empty(e.Expiries())
	require.Empty(e.SetMin(1_000_000))
}

func TestEmapAddIDGenesis(t *testing.T) {
	require := require.New(t)

	e := NewEMap[*TestTx]()
	tx := &TestTx{id: ids.GenerateTestID(), t: 0}
	e.Add([]*TestTx{tx})
	require.False(e.Any([]*TestTx{tx}))
	require.Zero(e.Len())
}

func TestEmapAddDuplicate(t *testing.T) {
	require := require.New(t)

	e := NewEMap[*TestTx]()
	tx := &TestTx{id: ids.GenerateTestID(), t: 3_000}
	e.Add([]*TestTx{tx, tx})
	require.True(e.Any([]*TestTx{tx}))
	require.Equal(1, e.Len())
	require.Equal([]int64{3_000}, e.Expiries())
}

func TestEmapSharedBucket(t *testing.T) {
	require := require.New(t)

	e := NewEMap[*TestTx]()
	tx1 := &TestTx{id: ids.GenerateTestID(), t: 3_000}
	tx2 := &TestTx{id: ids.GenerateTestID(), t: 3_400}
	e.Add([]*TestTx{tx1, tx2})
	require.Equal([]int64{3_000}, e.Expiries())
	require.ElementsMatch([]ids.ID{tx1.id, tx2.id}, e.SetMin(4_000))
	require.Zero(e.Len())
}

func TestEmapSetMin(t *testing.T) {
	require := require.New(t)

	e := NewEMap[*TestTx]()
	txs := []*TestTx{
		{id: ids.GenerateTestID(), t: 5_000},
		{id: ids.GenerateTestID(), t: 1_000},
		{id: ids.GenerateTestID(), t: 3_000},
		{id: ids.GenerateTestID(), t: 9_000},
	}
	e.Add(txs)
	require.Equal([]int64{1_000, 3_000, 5_000, 9_000}, e.Expiries())

	// Items expiring exactly at the minimum are kept.
	evicted := e.SetMin(5_000)
	require.Equal([]ids.ID{txs[1].id, txs[2].id}, evicted)
	require.False(e.Any(txs[1:3]))
	require.True(e.Any([]*TestTx{txs[0]}))
	require.True(e.Any([]*TestTx{txs[3]}))
	require.Equal([]int64{5_000, 9_000}, e.Expiries())

	// Evicted IDs may be added again.
	e.Add([]*TestTx{txs[1]})
	require.True(e.Any([]*TestTx{txs[1]}))
}

func TestEmapAnyEmpty(t *testing.T) {
	require.False(t, NewEMap[*TestTx]().Any([]*TestTx{{id: ids.GenerateTestID(), t: 1_000}}))
}

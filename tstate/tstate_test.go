// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ledgervm/state"
)

var (
	testKey = []byte("key")
	testVal = []byte("value")

	key1 = []byte("key1")
	key2 = []byte("key2")
	key3 = []byte("key3")
)

func TestScope(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	// No Scope
	tsv := ts.NewView(state.Keys{}, map[string][]byte{})
	val, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, ErrInvalidKeyOrPermission)
	require.Nil(val)
	require.ErrorIs(tsv.Insert(ctx, testKey, testVal), ErrInvalidKeyOrPermission)
	require.ErrorIs(tsv.Remove(ctx, testKey), ErrInvalidKeyOrPermission)
}

func TestReadOnlyScope(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.Read}, map[string][]byte{string(testKey): testVal})
	val, err := tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(testVal, val)
	require.ErrorIs(tsv.Insert(ctx, testKey, []byte("other")), ErrInvalidKeyOrPermission)
	require.ErrorIs(tsv.Remove(ctx, testKey), ErrInvalidKeyOrPermission)
	require.Zero(tsv.OpIndex())
}

func TestGetValueNoStorage(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.All}, map[string][]byte{})
	_, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestDeleteCommitGet(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.All}, map[string][]byte{string(testKey): testVal})
	require.NoError(tsv.Remove(ctx, testKey))
	tsv.Commit()

	// A later view over the same stale storage sees the removal.
	tsv = ts.NewView(state.Keys{string(testKey): state.All}, map[string][]byte{string(testKey): testVal})
	val, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound)
	require.Nil(val)
}

func TestInsertRemoveInsertRollback(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.All}, map[string][]byte{})
	require.NoError(tsv.Insert(ctx, testKey, testVal))
	require.NoError(tsv.Remove(ctx, testKey))
	require.NoError(tsv.Insert(ctx, testKey, testVal))
	require.Equal(3, tsv.OpIndex())
	require.Equal(1, tsv.PendingChanges())

	tsv.Rollback(ctx, 2)
	_, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound)

	tsv.Rollback(ctx, 1)
	v, err := tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(testVal, v)

	tsv.Rollback(ctx, 0)
	_, err = tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound)
	require.Zero(tsv.PendingChanges())
}

func TestRestoreModified(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	keys := [][]byte{key1, key2, key3}
	scope := state.Keys{}
	storage := map[string][]byte{}
	for _, k := range keys {
		scope.Add(string(k), state.All)
		storage[string(k)] = []byte("original")
	}

	tsv := ts.NewView(scope, storage)
	for _, k := range keys {
		require.NoError(tsv.Insert(ctx, k, []byte("updated")))
	}
	require.NoError(tsv.Insert(ctx, key1, []byte("twice")))
	require.Equal(4, tsv.OpIndex())

	// Undo the second write to key1 and the write to key3.
	tsv.Rollback(ctx, 2)
	v, err := tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal([]byte("updated"), v)
	v, err = tsv.GetValue(ctx, key3)
	require.NoError(err)
	require.Equal([]byte("original"), v)
	require.Equal(2, tsv.PendingChanges())
}

func TestUncommittedViewInvisible(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	scope := state.Keys{string(testKey): state.All}

	tsv := ts.NewView(scope, map[string][]byte{})
	require.NoError(tsv.Insert(ctx, testKey, testVal))

	other := ts.NewView(scope, map[string][]byte{})
	_, err := other.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound)
	require.Zero(ts.PendingChanges())

	tsv.Commit()
	v, err := other.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(testVal, v)
	require.Equal(1, ts.OpIndex())
}

func TestWriteChanges(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	db := state.MutableStorage{string(key2): []byte("stale")}

	tsv := ts.NewView(state.Keys{string(key1): state.All, string(key2): state.All}, map[string][]byte(db))
	require.NoError(tsv.Insert(ctx, key1, testVal))
	require.NoError(tsv.Remove(ctx, key2))
	tsv.Commit()

	require.NoError(ts.WriteChanges(ctx, db))
	require.Equal(testVal, db[string(key1)])
	_, ok := db[string(key2)]
	require.False(ok)
}

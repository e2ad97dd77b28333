// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"sync"

	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/ava-labs/ledgervm/state"
)

// TState collects the changes committed by [TStateView]s until they are
// written to the underlying store.
type TState struct {
	l           sync.RWMutex
	ops         int
	changedKeys map[string]maybe.Maybe[[]byte]
}

// New returns a new instance of TState. [changedSize] is an estimate of the
// number of keys that will be changed.
func New(changedSize int) *TState {
	return &TState{
		changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize),
	}
}

func (ts *TState) getChangedValue(_ context.Context, key string) ([]byte, bool, bool) {
	ts.l.RLock()
	defer ts.l.RUnlock()

	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

// OpIndex returns the number of operations committed by views.
func (ts *TState) OpIndex() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return ts.ops
}

// PendingChanges returns the number of keys that will be written by
// [WriteChanges].
func (ts *TState) PendingChanges() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return len(ts.changedKeys)
}

// WriteChanges applies every committed change to [mu].
//
// Once [WriteChanges] is called, [TState] should not be used again.
func (ts *TState) WriteChanges(ctx context.Context, mu state.Mutable) error {
	ts.l.Lock()
	defer ts.l.Unlock()

	for k, v := range ts.changedKeys {
		if v.IsNothing() {
			if err := mu.Remove(ctx, []byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := mu.Insert(ctx, []byte(k), v.Value()); err != nil {
			return err
		}
	}
	return nil
}

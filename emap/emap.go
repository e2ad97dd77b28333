// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package emap remembers transaction IDs until they expire so a transaction
// can be applied at most once.
package emap

import (
	"sync"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/heap"
	"github.com/ava-labs/avalanchego/utils/set"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// timeModulus is used to modulo all the timestamps passed to emap to avoid an
// explosion of items in internal structs (we only need second-level precision).
const timeModulus = 1000 // ms -> s

func reducePrecision(t int64) int64 {
	return t - t%timeModulus
}

type bucket struct {
	t     int64    // Timestamp
	items []ids.ID // Array of AvalancheGo ids
}

// Item defines an interface accepted by EMap
type Item interface {
	ID() ids.ID    // method for returning an id of the item
	Expiry() int64 // method for returning this items timestamp
}

// An EMap is an eviction map that stores the IDs of applied transactions
// together with their expiry. IDs are dropped once [SetMin] moves past
// their expiry.
type EMap[T Item] struct {
	mu sync.RWMutex

	bh    heap.Queue[*bucket]
	seen  set.Set[ids.ID]   // Stores a set of unique tx ids
	times map[int64]*bucket // Uses timestamp as keys to map to buckets of ids.
}

// NewEMap returns a pointer to a instance of an empty EMap struct.
func NewEMap[T Item]() *EMap[T] {
	return &EMap[T]{
		bh: heap.NewQueue[*bucket](func(a, b *bucket) bool {
			return a.t < b.t
		}),
		seen:  set.Set[ids.ID]{},
		times: make(map[int64]*bucket),
	}
}

// Add adds a list of txs to the EMap.
func (e *EMap[T]) Add(items []T) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, item := range items {
		e.add(item.ID(), reducePrecision(item.Expiry()))
	}
}

// add records [id] in the bucket for [t]. Genesis items (t == 0) and IDs
// already present are ignored.
func (e *EMap[T]) add(id ids.ID, t int64) {
	// Assume genesis txs can't be placed in seen tracker
	if t == 0 {
		return
	}
	if e.seen.Contains(id) {
		return
	}
	e.seen.Add(id)

	if b, ok := e.times[t]; ok {
		b.items = append(b.items, id)
		return
	}
	b := &bucket{
		t:     t,
		items: []ids.ID{id},
	}
	e.times[t] = b
	e.bh.Push(b)
}

// SetMin removes all buckets with a lower timestamp than [t] and returns the
// IDs they held.
func (e *EMap[T]) SetMin(t int64) []ids.ID {
	e.mu.Lock()
	defer e.mu.Unlock()

	t = reducePrecision(t)
	evicted := []ids.ID{}
	for {
		b, ok := e.bh.Peek()
		if !ok || b.t >= t {
			break
		}
		_, _ = e.bh.Pop()
		for _, id := range b.items {
			e.seen.Remove(id)
			evicted = append(evicted, id)
		}
		delete(e.times, b.t)
	}
	return evicted
}

// Any returns true if any items have been seen by EMap.
func (e *EMap[T]) Any(items []T) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, item := range items {
		if e.seen.Contains(item.ID()) {
			return true
		}
	}
	return false
}

// Len returns the number of IDs currently remembered.
func (e *EMap[T]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.seen.Len()
}

// Expiries returns the distinct expiry buckets in ascending order.
func (e *EMap[T]) Expiries() []int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	times := maps.Keys(e.times)
	slices.Sort(times)
	return times
}

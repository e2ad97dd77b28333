// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/ledgervm/state"
)

var _ state.Mutable = (*Database)(nil)

type Config struct {
	CacheSize                   int  `json:"cacheSize"`
	BytesPerSync                int  `json:"bytesPerSync"`
	WALBytesPerSync             int  `json:"walBytesPerSync"` // 0 means no background syncing
	MemTableStopWritesThreshold int  `json:"memTableStopWritesThreshold"`
	MemTableSize                int  `json:"memTableSize"`
	MaxOpenFiles                int  `json:"maxOpenFiles"`
	ConcurrentCompactions       int  `json:"concurrentCompactions"`
	Sync                        bool `json:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   256 * 1024 * 1024,
		BytesPerSync:                1024 * 1024,
		WALBytesPerSync:             1024 * 1024,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                16 * 1024 * 1024,
		MaxOpenFiles:                4_096,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

// Database is the persistent key/value store holding committed account
// state.
type Database struct {
	db      *pebble.DB
	metrics *metrics

	writeOpts *pebble.WriteOptions

	closing chan struct{}
	closed  sync.WaitGroup
	l       sync.Mutex
	done    bool
}

func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	// These default settings are based on https://github.com/ethereum/go-ethereum/blob/master/ethdb/pebble/pebble.go
	d := &Database{closing: make(chan struct{}), writeOpts: pebble.NoSync}
	if cfg.Sync {
		d.writeOpts = pebble.Sync
	}
	opts := &pebble.Options{
		Cache:                       pebble.NewCache(int64(cfg.CacheSize)),
		BytesPerSync:                cfg.BytesPerSync,
		Comparer:                    pebble.DefaultComparer,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                uint64(cfg.MemTableSize),
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions: func() int {
			return cfg.ConcurrentCompactions
		},
	}
	// Don't re-trigger compactions on reads
	opts.Experimental.ReadSamplingMultiplier = -1
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d.metrics = metrics
	opts.EventListener = &pebble.EventListener{
		CompactionBegin: d.onCompactionBegin,
		CompactionEnd:   d.onCompactionEnd,
		WriteStallBegin: d.onWriteStallBegin,
		WriteStallEnd:   d.onWriteStallEnd,
	}
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db
	d.closed.Add(1)
	go func() {
		defer d.closed.Done()
		d.collectMetrics()
	}()
	return d, registry, nil
}

// Get returns a copy of the value stored at [key] or database.ErrNotFound.
func (db *Database) Get(key []byte) ([]byte, error) {
	start := time.Now()
	defer func() {
		db.metrics.getLatency.Observe(float64(time.Since(start)))
	}()

	data, closer, err := db.db.Get(key)
	if err != nil {
		return nil, updateError(err)
	}
	v := make([]byte, len(data))
	copy(v, data)
	return v, closer.Close()
}

func (db *Database) Has(key []byte) (bool, error) {
	_, closer, err := db.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, closer.Close()
}

func (db *Database) Put(key []byte, value []byte) error {
	return db.db.Set(key, value, db.writeOpts)
}

func (db *Database) Delete(key []byte) error {
	return db.db.Delete(key, db.writeOpts)
}

func (db *Database) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return db.Get(key)
}

func (db *Database) Insert(_ context.Context, key []byte, value []byte) error {
	return db.Put(key, value)
}

func (db *Database) Remove(_ context.Context, key []byte) error {
	return db.Delete(key)
}

func (db *Database) NewBatch() *Batch {
	return &Batch{db: db, batch: db.db.NewBatch()}
}

func (db *Database) Close() error {
	db.l.Lock()
	if db.done {
		db.l.Unlock()
		return database.ErrClosed
	}
	db.done = true
	db.l.Unlock()

	close(db.closing)
	db.closed.Wait()
	return updateError(db.db.Close())
}

// Batch buffers writes until [Write] applies them atomically. It implements
// [state.Mutable] so committed instruction state can be flushed through it;
// reads are served from the database and do not observe pending writes.
type Batch struct {
	db    *Database
	batch *pebble.Batch
}

var _ state.Mutable = (*Batch)(nil)

func (b *Batch) Put(key []byte, value []byte) error {
	return b.batch.Set(key, value, nil)
}

func (b *Batch) Delete(key []byte) error {
	return b.batch.Delete(key, nil)
}

func (b *Batch) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return b.db.Get(key)
}

func (b *Batch) Insert(_ context.Context, key []byte, value []byte) error {
	return b.Put(key, value)
}

func (b *Batch) Remove(_ context.Context, key []byte) error {
	return b.Delete(key)
}

// Size is the number of bytes buffered by the batch.
func (b *Batch) Size() int {
	return b.batch.Len()
}

func (b *Batch) Write() error {
	return b.batch.Commit(b.db.writeOpts)
}

func updateError(err error) error {
	switch {
	case errors.Is(err, pebble.ErrClosed):
		return database.ErrClosed
	case errors.Is(err, pebble.ErrNotFound):
		return database.ErrNotFound
	default:
		return err
	}
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package node orders transactions, executes them one at a time and
// persists the results.
package node

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/ava-labs/ledgervm/auth"
	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/config"
	"github.com/ava-labs/ledgervm/emap"
	"github.com/ava-labs/ledgervm/genesis"
	"github.com/ava-labs/ledgervm/pebble"
	"github.com/ava-labs/ledgervm/program"
	"github.com/ava-labs/ledgervm/rent"
	"github.com/ava-labs/ledgervm/runtime"
	"github.com/ava-labs/ledgervm/storage"
	"github.com/ava-labs/ledgervm/tstate"
)

type Node struct {
	cfg    *config.Config
	log    logging.Logger
	tracer trace.Tracer

	db      *pebble.Database
	runtime *runtime.Runtime
	seen    *emap.EMap[*chain.Transaction]

	// l serializes every state transition: transactions are applied in the
	// order they acquire it.
	l      sync.Mutex
	closed bool

	processed atomic.Uint64
	rejected  atomic.Uint64

	now func() int64
}

// New opens a node over [db]. [g] is written to state the first time the
// node starts on an empty database and ignored afterwards.
func New(
	ctx context.Context,
	cfg *config.Config,
	log logging.Logger,
	tracer trace.Tracer,
	db *pebble.Database,
	g *genesis.Genesis,
	registerer prometheus.Registerer,
) (*Node, error) {
	rt, err := runtime.New(cfg.ProgramID, cfg.Rent, log, tracer, registerer)
	if err != nil {
		return nil, err
	}
	n := &Node{
		cfg:     cfg,
		log:     log,
		tracer:  tracer,
		db:      db,
		runtime: rt,
		seen:    emap.NewEMap[*chain.Transaction](),
		now: func() int64 {
			return time.Now().UnixMilli()
		},
	}
	if err := n.initialize(ctx, g); err != nil {
		return nil, err
	}
	processed, err := storage.GetProcessed(ctx, db)
	if err != nil {
		return nil, err
	}
	n.processed.Store(processed)
	log.Info("node started",
		zap.Stringer("chainID", cfg.ChainID),
		zap.Stringer("programID", cfg.ProgramID),
		zap.Uint64("processed", processed),
	)
	return n, nil
}

func (n *Node) initialize(ctx context.Context, g *genesis.Genesis) error {
	has, err := n.db.Has(storage.GenesisKey())
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	if g == nil {
		g = &genesis.Genesis{}
	}
	batch := n.db.NewBatch()
	if err := g.InitializeState(ctx, n.tracer, batch); err != nil {
		return fmt.Errorf("could not initialize genesis: %w", err)
	}
	supply, err := g.Supply()
	if err != nil {
		return err
	}
	if err := batch.Insert(ctx, storage.GenesisKey(), database.PackUInt64(supply)); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	n.log.Info("initialized genesis",
		zap.Int("allocations", len(g.Allocations)),
		zap.Uint64("supply", supply),
	)
	return nil
}

// Submit verifies [tx] and applies it. Transactions are applied one at a
// time; a rejected transaction leaves no trace in state.
func (n *Node) Submit(ctx context.Context, tx *chain.Transaction) (*program.Transition, error) {
	ctx, span := n.tracer.Start(ctx, "Node.Submit")
	defer span.End()

	n.l.Lock()
	defer n.l.Unlock()

	if n.closed {
		return nil, ErrClosed
	}
	t, err := n.submit(ctx, tx)
	if err != nil {
		n.rejected.Inc()
		n.log.Debug("rejected transaction",
			zap.Stringer("txID", tx.ID()),
			zap.Error(err),
		)
		return nil, err
	}
	n.log.Info("applied transaction",
		zap.Stringer("txID", tx.ID()),
		zap.Stringer("operation", t.Operation),
		zap.Uint64("amount", t.Amount),
	)
	return t, nil
}

func (n *Node) submit(ctx context.Context, tx *chain.Transaction) (*program.Transition, error) {
	now := n.now()
	n.seen.SetMin(now)
	if err := tx.Base.Execute(n.cfg.ChainID, n.cfg.ValidityWindow, now); err != nil {
		return nil, err
	}
	if n.seen.Any([]*chain.Transaction{tx}) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTx, tx.ID())
	}
	signers, err := auth.Signers(tx)
	if err != nil {
		return nil, err
	}

	ts := tstate.New(len(tx.Instruction.Accounts))
	t, err := n.runtime.Execute(ctx, n.db, ts, tx, signers)
	if err != nil {
		return nil, err
	}

	batch := n.db.NewBatch()
	if err := ts.WriteChanges(ctx, batch); err != nil {
		return nil, err
	}
	processed := n.processed.Load() + 1
	if err := storage.SetProcessed(ctx, batch, processed); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, err
	}
	n.seen.Add([]*chain.Transaction{tx})
	n.processed.Store(processed)
	return t, nil
}

// GetAccount returns the committed state of [addr].
func (n *Node) GetAccount(ctx context.Context, addr codec.Address) (*storage.Account, bool, error) {
	return storage.GetAccountFromState(ctx, n.ReadState, addr)
}

// GetRecord decodes the ledger record stored at [addr].
func (n *Node) GetRecord(ctx context.Context, addr codec.Address) (program.Record, error) {
	a, exists, err := n.GetAccount(ctx, addr)
	if err != nil {
		return program.Record{}, err
	}
	if !exists {
		return program.Record{}, fmt.Errorf("%w: %s", database.ErrNotFound, addr)
	}
	if a.Owner != n.cfg.ProgramID {
		return program.Record{}, fmt.Errorf("%w: owner=%s", program.ErrNotOwned, a.Owner)
	}
	return program.DecodeRecord(a.Data)
}

func (n *Node) ReadState(_ context.Context, keys [][]byte) ([][]byte, []error) {
	values := make([][]byte, len(keys))
	errs := make([]error, len(keys))
	for i, k := range keys {
		values[i], errs[i] = n.db.Get(k)
	}
	return values, errs
}

func (n *Node) ChainID() ids.ID { return n.cfg.ChainID }

func (n *Node) ProgramID() codec.Address { return n.cfg.ProgramID }

func (n *Node) Rent() rent.Rent { return n.cfg.Rent }

func (n *Node) ValidityWindow() int64 { return n.cfg.ValidityWindow }

// Processed returns the number of transactions applied since genesis.
func (n *Node) Processed() uint64 { return n.processed.Load() }

// Rejected returns the number of transactions rejected since start.
func (n *Node) Rejected() uint64 { return n.rejected.Load() }

// Close stops accepting transactions. The database is owned by the caller.
func (n *Node) Close() error {
	n.l.Lock()
	defer n.l.Unlock()

	if n.closed {
		return ErrClosed
	}
	n.closed = true
	n.log.Info("node closed", zap.Uint64("processed", n.processed.Load()))
	return nil
}

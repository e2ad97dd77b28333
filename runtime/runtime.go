// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package runtime hosts the ledger program: it loads the accounts referenced
// by a transaction, invokes the program and persists the result only if the
// instruction succeeded and kept every host rule.
package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/ledgervm/account"
	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/program"
	"github.com/ava-labs/ledgervm/state"
	"github.com/ava-labs/ledgervm/storage"
	"github.com/ava-labs/ledgervm/tstate"

	safemath "github.com/ava-labs/avalanchego/utils/math"
)

type Runtime struct {
	programID codec.Address
	exemption program.ExemptionChecker

	log     logging.Logger
	tracer  trace.Tracer
	metrics *metrics
}

func New(
	programID codec.Address,
	exemption program.ExemptionChecker,
	log logging.Logger,
	tracer trace.Tracer,
	registerer prometheus.Registerer,
) (*Runtime, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Runtime{
		programID: programID,
		exemption: exemption,
		log:       log,
		tracer:    tracer,
		metrics:   m,
	}, nil
}

func (r *Runtime) ProgramID() codec.Address {
	return r.programID
}

// Execute runs the instruction of [tx] against the accounts stored in [im]
// and, on success, commits the updated accounts into [ts]. [signers] are the
// addresses with a verified signature on [tx]. On error [ts] is unchanged.
func (r *Runtime) Execute(
	ctx context.Context,
	im state.Immutable,
	ts *tstate.TState,
	tx *chain.Transaction,
	signers set.Set[codec.Address],
) (*program.Transition, error) {
	ctx, span := r.tracer.Start(ctx, "Runtime.Execute")
	defer span.End()

	start := time.Now()
	defer func() {
		r.metrics.execute.Observe(float64(time.Since(start)))
	}()

	ix := tx.Instruction
	t, err := r.execute(ctx, im, ts, ix, signers)
	operation := operationName(ix.Data)
	if err != nil {
		r.metrics.instructions.WithLabelValues(operation, "failure").Inc()
		r.log.Debug("instruction failed",
			zap.Stringer("txID", tx.ID()),
			zap.String("operation", operation),
			zap.Error(err),
		)
		return nil, err
	}
	r.metrics.instructions.WithLabelValues(operation, "success").Inc()
	r.metrics.moved.WithLabelValues(operation).Add(float64(t.Amount))
	r.log.Debug("instruction applied",
		zap.Stringer("txID", tx.ID()),
		zap.String("operation", operation),
		zap.Uint64("amount", t.Amount),
		zap.Uint64("balance", t.Record.Balance),
	)
	return t, nil
}

func (r *Runtime) execute(
	ctx context.Context,
	im state.Immutable,
	ts *tstate.TState,
	ix *chain.Instruction,
	signers set.Set[codec.Address],
) (*program.Transition, error) {
	if ix.ProgramID != r.programID {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProgram, ix.ProgramID)
	}

	scope := ix.StateKeys()
	prefetched, err := prefetch(ctx, im, scope)
	if err != nil {
		return nil, err
	}
	view := ts.NewView(scope, prefetched)

	accounts := make([]*account.Info, len(ix.Accounts))
	before := make([]*account.Info, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		stored, _, err := storage.GetAccount(ctx, view, meta.Address)
		if err != nil {
			return nil, err
		}
		accounts[i] = stored.Info(meta.Address, signers.Contains(meta.Address), meta.IsWritable)
		before[i] = accounts[i].Clone()
	}

	t, err := program.Process(r.programID, accounts, ix.Data, r.exemption)
	if err != nil {
		return nil, err
	}
	if err := r.verify(before, accounts); err != nil {
		return nil, err
	}

	for i, info := range accounts {
		if equal(before[i], info) {
			continue
		}
		if err := storage.SetAccount(ctx, view, info.Key, storage.FromInfo(info)); err != nil {
			view.Rollback(ctx, 0)
			return nil, err
		}
	}
	view.Commit()
	return t, nil
}

// verify enforces the rules the host holds every program to.
func (r *Runtime) verify(before, after []*account.Info) error {
	var sumBefore, sumAfter uint64
	for i, pre := range before {
		post := after[i]
		var err error
		if sumBefore, err = safemath.Add(sumBefore, pre.Lamports); err != nil {
			return fmt.Errorf("%w: %w", ErrUnbalancedInstruction, err)
		}
		if sumAfter, err = safemath.Add(sumAfter, post.Lamports); err != nil {
			return fmt.Errorf("%w: %w", ErrUnbalancedInstruction, err)
		}
		if equal(pre, post) {
			continue
		}
		if !pre.IsWritable {
			return fmt.Errorf("%w: %s", ErrReadonlyModified, pre.Key)
		}
		if pre.Owner != r.programID && !bytes.Equal(pre.Data, post.Data) {
			return fmt.Errorf("%w: %s", ErrExternalDataModified, pre.Key)
		}
	}
	if sumBefore != sumAfter {
		return fmt.Errorf("%w: before=%d after=%d", ErrUnbalancedInstruction, sumBefore, sumAfter)
	}
	return nil
}

func prefetch(ctx context.Context, im state.Immutable, scope state.Keys) (map[string][]byte, error) {
	values := make(map[string][]byte, len(scope))
	for k := range scope {
		v, err := im.GetValue(ctx, []byte(k))
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		values[k] = v
	}
	return values, nil
}

func equal(a, b *account.Info) bool {
	return a.Owner == b.Owner && a.Lamports == b.Lamports && bytes.Equal(a.Data, b.Data)
}

func operationName(data []byte) string {
	op, err := program.ParseOperation(data)
	if err != nil {
		return "unknown"
	}
	return op.String()
}

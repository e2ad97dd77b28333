// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/config"
	"github.com/ava-labs/ledgervm/crypto/ed25519"
	"github.com/ava-labs/ledgervm/genesis"
	"github.com/ava-labs/ledgervm/node"
	"github.com/ava-labs/ledgervm/program"
	"github.com/ava-labs/ledgervm/storage"
	"github.com/ava-labs/ledgervm/trace"
)

var recordAddr = codec.Address{1}

func newTestClient(t *testing.T) (*JSONRPCClient, ed25519.PrivateKey) {
	require := require.New(t)
	ctx := context.TODO()

	cfg, err := config.New(nil)
	require.NoError(err)
	cfg.ChainID = ids.ID{7}
	cfg.Pebble.CacheSize = 1024 * 1024
	cfg.Pebble.Sync = false

	user, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	db, _, err := storage.New(cfg.Pebble, t.TempDir())
	require.NoError(err)
	t.Cleanup(func() {
		require.NoError(db.Close())
	})
	minimum, err := cfg.Rent.MinimumBalance(program.RecordSize)
	require.NoError(err)
	g := &genesis.Genesis{Allocations: []*genesis.Allocation{
		{
			Address:  recordAddr.String(),
			Owner:    cfg.ProgramID.String(),
			Lamports: minimum,
			Space:    program.RecordSize,
		},
		{Address: user.Address().String(), Lamports: 5_000},
	}}
	tracer := trace.Noop("test")
	n, err := node.New(ctx, cfg, logging.NoLog{}, tracer, db, g, prometheus.NewRegistry())
	require.NoError(err)

	handler, err := NewHandler(n, logging.NoLog{}, tracer)
	require.NoError(err)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewJSONRPCClient(srv.URL), user
}

func TestClientRoundTrip(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	cli, user := newTestClient(t)

	ok, err := cli.Ping(ctx)
	require.NoError(err)
	require.True(ok)

	network, err := cli.Network(ctx)
	require.NoError(err)
	require.Equal(ids.ID{7}, network.ChainID)
	require.Equal(config.DefaultProgramID, network.ProgramID)

	rent, err := cli.Rent(ctx, program.RecordSize)
	require.NoError(err)
	require.Equal(uint64(946_560), rent.MinimumBalance)

	_, err = cli.Rent(ctx, -1)
	require.ErrorContains(err, "invalid data length")

	_, reply, err := cli.Apply(ctx, program.Initialize{}, recordAddr, user)
	require.NoError(err)
	require.Equal("initialize", reply.Operation)

	txID, reply, err := cli.Apply(ctx, program.Deposit{}, recordAddr, user)
	require.NoError(err)
	require.NotEqual(ids.Empty, txID)
	require.Equal(txID, reply.TxID)
	require.Equal(uint64(5_000), reply.Amount)
	require.Equal(uint64(5_000), reply.Balance)

	_, reply, err = cli.Apply(ctx, program.Withdraw{}, recordAddr, user)
	require.NoError(err)
	require.Equal(uint64(500), reply.Amount)

	balance, err := cli.GetRecord(ctx, recordAddr)
	require.NoError(err)
	require.Equal(uint64(4_500), balance)

	account, err := cli.GetAccount(ctx, user.Address())
	require.NoError(err)
	require.True(account.Exists)
	require.Equal(uint64(500), account.Lamports)

	record, err := cli.GetAccount(ctx, recordAddr)
	require.NoError(err)
	require.Equal(config.DefaultProgramID, record.Owner)
	require.Len(record.Data, program.RecordSize)

	stats, err := cli.Stats(ctx)
	require.NoError(err)
	require.Equal(uint64(3), stats.Processed)
	require.Zero(stats.Rejected)
}

func TestClientErrors(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	cli, user := newTestClient(t)

	_, err := cli.SubmitTx(ctx, []byte{1, 2, 3})
	require.ErrorContains(err, "could not unmarshal base")

	stranger, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	// An address that was never written has no owner.
	_, _, err = cli.Apply(ctx, program.Withdraw{}, stranger.Address(), user)
	require.ErrorContains(err, program.ErrNotOwned.Error())

	_, err = cli.GetRecord(ctx, user.Address())
	require.ErrorContains(err, program.ErrNotOwned.Error())

	stats, err := cli.Stats(ctx)
	require.NoError(err)
	require.Equal(uint64(1), stats.Rejected)
}

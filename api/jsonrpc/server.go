// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/program"
	"github.com/ava-labs/ledgervm/rent"
	"github.com/ava-labs/ledgervm/server"
	"github.com/ava-labs/ledgervm/storage"
)

const Endpoint = "/rpc"

// Node is the state machine host served over JSON-RPC.
type Node interface {
	Submit(context.Context, *chain.Transaction) (*program.Transition, error)
	GetAccount(context.Context, codec.Address) (*storage.Account, bool, error)
	GetRecord(context.Context, codec.Address) (program.Record, error)

	ChainID() ids.ID
	ProgramID() codec.Address
	Rent() rent.Rent
	ValidityWindow() int64
	Processed() uint64
	Rejected() uint64
}

// NewHandler returns the HTTP handler serving [node] under [consts.Name].
func NewHandler(node Node, log logging.Logger, tracer trace.Tracer) (http.Handler, error) {
	return server.NewHandler(NewJSONRPCServer(node, log, tracer), consts.Name)
}

type JSONRPCServer struct {
	node   Node
	log    logging.Logger
	tracer trace.Tracer
}

func NewJSONRPCServer(node Node, log logging.Logger, tracer trace.Tracer) *JSONRPCServer {
	return &JSONRPCServer{node: node, log: log, tracer: tracer}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.log.Info("ping")
	reply.Success = true
	return nil
}

type NetworkReply struct {
	ChainID        ids.ID        `json:"chainId"`
	ProgramID      codec.Address `json:"programId"`
	ValidityWindow int64         `json:"validityWindow"`
}

func (j *JSONRPCServer) Network(_ *http.Request, _ *struct{}, reply *NetworkReply) (err error) {
	reply.ChainID = j.node.ChainID()
	reply.ProgramID = j.node.ProgramID()
	reply.ValidityWindow = j.node.ValidityWindow()
	return nil
}

type SubmitTxArgs struct {
	Tx codec.Bytes `json:"tx"`
}

type SubmitTxReply struct {
	TxID      ids.ID `json:"txId"`
	Operation string `json:"operation"`
	Amount    uint64 `json:"amount"`
	Balance   uint64 `json:"balance"`
}

func (j *JSONRPCServer) SubmitTx(
	req *http.Request,
	args *SubmitTxArgs,
	reply *SubmitTxReply,
) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.SubmitTx")
	defer span.End()

	tx, err := chain.ParseTx(args.Tx)
	if err != nil {
		return err
	}
	t, err := j.node.Submit(ctx, tx)
	if err != nil {
		j.log.Debug("submit failed",
			zap.Stringer("txID", tx.ID()),
			zap.Error(err),
		)
		return err
	}
	reply.TxID = tx.ID()
	reply.Operation = t.Operation.String()
	reply.Amount = t.Amount
	reply.Balance = t.Record.Balance
	return nil
}

type AddressArgs struct {
	Address codec.Address `json:"address"`
}

type AccountReply struct {
	Exists   bool          `json:"exists"`
	Owner    codec.Address `json:"owner"`
	Lamports uint64        `json:"lamports"`
	Data     codec.Bytes   `json:"data"`
}

func (j *JSONRPCServer) GetAccount(req *http.Request, args *AddressArgs, reply *AccountReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.GetAccount")
	defer span.End()

	a, exists, err := j.node.GetAccount(ctx, args.Address)
	if err != nil {
		return err
	}
	reply.Exists = exists
	reply.Owner = a.Owner
	reply.Lamports = a.Lamports
	reply.Data = a.Data
	return nil
}

type RecordReply struct {
	Balance uint64 `json:"balance"`
}

func (j *JSONRPCServer) GetRecord(req *http.Request, args *AddressArgs, reply *RecordReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.GetRecord")
	defer span.End()

	r, err := j.node.GetRecord(ctx, args.Address)
	if err != nil {
		return err
	}
	reply.Balance = r.Balance
	return nil
}

type RentArgs struct {
	DataLen int `json:"dataLen"`
}

type RentReply struct {
	Rent           rent.Rent `json:"rent"`
	MinimumBalance uint64    `json:"minimumBalance"`
}

func (j *JSONRPCServer) Rent(_ *http.Request, args *RentArgs, reply *RentReply) error {
	r := j.node.Rent()
	minimum, err := r.MinimumBalance(args.DataLen)
	if err != nil {
		return err
	}
	reply.Rent = r
	reply.MinimumBalance = minimum
	return nil
}

type StatsReply struct {
	Processed uint64 `json:"processed"`
	Rejected  uint64 `json:"rejected"`
}

func (j *JSONRPCServer) Stats(_ *http.Request, _ *struct{}, reply *StatsReply) error {
	reply.Processed = j.node.Processed()
	reply.Rejected = j.node.Rejected()
	return nil
}

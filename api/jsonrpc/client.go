// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/crypto/ed25519"
	"github.com/ava-labs/ledgervm/program"
	"github.com/ava-labs/ledgervm/utils"
)

type JSONRPCClient struct {
	requester rpc.EndpointRequester

	network *NetworkReply
}

// NewJSONRPCClient connects to the node serving its API at [uri], e.g.
// http://127.0.0.1:9650/ext/ledgervm.
func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += Endpoint
	return &JSONRPCClient{requester: rpc.NewEndpointRequester(uri)}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		consts.Name+".ping",
		nil,
		resp,
	)
	return resp.Success, err
}

// Network returns the chain parameters of the node. The reply is cached.
func (cli *JSONRPCClient) Network(ctx context.Context) (*NetworkReply, error) {
	if cli.network != nil {
		return cli.network, nil
	}
	resp := new(NetworkReply)
	err := cli.requester.SendRequest(
		ctx,
		consts.Name+".network",
		nil,
		resp,
	)
	if err != nil {
		return nil, err
	}
	cli.network = resp
	return resp, nil
}

func (cli *JSONRPCClient) SubmitTx(ctx context.Context, d []byte) (*SubmitTxReply, error) {
	resp := new(SubmitTxReply)
	err := cli.requester.SendRequest(
		ctx,
		consts.Name+".submitTx",
		&SubmitTxArgs{Tx: d},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) GetAccount(ctx context.Context, addr codec.Address) (*AccountReply, error) {
	resp := new(AccountReply)
	err := cli.requester.SendRequest(
		ctx,
		consts.Name+".getAccount",
		&AddressArgs{Address: addr},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) GetRecord(ctx context.Context, addr codec.Address) (uint64, error) {
	resp := new(RecordReply)
	err := cli.requester.SendRequest(
		ctx,
		consts.Name+".getRecord",
		&AddressArgs{Address: addr},
		resp,
	)
	return resp.Balance, err
}

func (cli *JSONRPCClient) Rent(ctx context.Context, dataLen int) (*RentReply, error) {
	resp := new(RentReply)
	err := cli.requester.SendRequest(
		ctx,
		consts.Name+".rent",
		&RentArgs{DataLen: dataLen},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) Stats(ctx context.Context) (*StatsReply, error) {
	resp := new(StatsReply)
	err := cli.requester.SendRequest(
		ctx,
		consts.Name+".stats",
		nil,
		resp,
	)
	return resp, err
}

// GenerateTransaction builds and signs a transaction applying [op] to the
// record at [record]. Deposit and Withdraw are signed by [caller]; it is
// ignored for Initialize.
func (cli *JSONRPCClient) GenerateTransaction(
	ctx context.Context,
	op program.Operation,
	record codec.Address,
	caller ed25519.PrivateKey,
) (*chain.Transaction, error) {
	network, err := cli.Network(ctx)
	if err != nil {
		return nil, err
	}
	metas := []*chain.AccountMeta{{Address: record, IsWritable: true}}
	var signers []ed25519.PrivateKey
	if op.Tag() != program.InitializeTag {
		metas = append(metas, &chain.AccountMeta{
			Address:    caller.Address(),
			IsSigner:   true,
			IsWritable: true,
		})
		signers = append(signers, caller)
	}
	base := &chain.Base{
		Timestamp: utils.UnixRMilli(-1, network.ValidityWindow),
		ChainID:   network.ChainID,
	}
	ix := &chain.Instruction{
		ProgramID: network.ProgramID,
		Accounts:  metas,
		Data:      program.Instruction(op),
	}
	return chain.NewTx(base, ix).Sign(signers...)
}

// Apply generates, signs and submits [op].
func (cli *JSONRPCClient) Apply(
	ctx context.Context,
	op program.Operation,
	record codec.Address,
	caller ed25519.PrivateKey,
) (ids.ID, *SubmitTxReply, error) {
	tx, err := cli.GenerateTransaction(ctx, op, record, caller)
	if err != nil {
		return ids.Empty, nil, err
	}
	reply, err := cli.SubmitTx(ctx, tx.Bytes())
	return tx.ID(), reply, err
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/ledgervm/cli/prompt"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/program"
	"github.com/ava-labs/ledgervm/utils"
)

var errAborted = errors.New("aborted")

func operationCmd(op program.Operation, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   op.String() + " [record]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, args, op)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func runOperation(cmd *cobra.Command, args []string, op program.Operation) error {
	ctx := context.Background()
	isJSON, err := isJSONOutputRequested(cmd)
	if err != nil {
		return err
	}
	key, err := getKey(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	record, ok, err := addressArg(args, 0)
	if err != nil {
		return err
	}
	if !ok {
		if isJSON {
			return errors.New("record address is required")
		}
		record, err = prompt.Address("record")
		if err != nil {
			return err
		}
	}

	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return err
	}
	if _, ok := op.(program.Deposit); ok && !yes && !isJSON {
		// Deposits carry no amount: everything the key holds is moved.
		account, err := client.GetAccount(ctx, key.Address())
		if err != nil {
			return fmt.Errorf("failed to get account: %w", err)
		}
		utils.Outf(
			"{{yellow}}deposit moves the entire balance of{{/}} %s{{yellow}}:{{/}} %s\n",
			key.Address(),
			utils.FormatBalance(account.Lamports),
		)
		cont, err := prompt.Continue()
		if err != nil {
			return err
		}
		if !cont {
			return errAborted
		}
	}

	txID, reply, err := client.Apply(ctx, op, record, key)
	if err != nil {
		return fmt.Errorf("%s failed: %w", op, err)
	}
	return printValue(cmd, operationResponse{
		TxID:      txID.String(),
		Record:    record,
		Operation: reply.Operation,
		Amount:    reply.Amount,
		Balance:   reply.Balance,
	})
}

type operationResponse struct {
	TxID      string        `json:"txId"`
	Record    codec.Address `json:"record"`
	Operation string        `json:"operation"`
	Amount    uint64        `json:"amount"`
	Balance   uint64        `json:"balance"`
}

func (r operationResponse) String() string {
	return fmt.Sprintf(
		"%s %s: moved=%s balance=%s (txID=%s)",
		r.Operation,
		r.Record,
		utils.FormatBalance(r.Amount),
		utils.FormatBalance(r.Balance),
		r.TxID,
	)
}

func init() {
	rootCmd.AddCommand(
		operationCmd(program.Initialize{}, "Initialize a rent exempt record with a zero balance"),
		operationCmd(program.Deposit{}, "Move the entire balance of the key into a record"),
		operationCmd(program.Withdraw{}, "Withdraw a tenth of a record's balance to the key"),
	)
}

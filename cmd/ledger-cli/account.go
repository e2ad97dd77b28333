// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/program"
	"github.com/ava-labs/ledgervm/utils"
)

var accountCmd = &cobra.Command{
	Use:   "account [address]",
	Short: "Print an account; defaults to the address of the current key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		addr, ok, err := addressArg(args, 0)
		if err != nil {
			return err
		}
		if !ok {
			key, err := getKey(cmd)
			if err != nil {
				return err
			}
			addr = key.Address()
		}
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		network, err := client.Network(ctx)
		if err != nil {
			return fmt.Errorf("failed to get network: %w", err)
		}
		account, err := client.GetAccount(ctx, addr)
		if err != nil {
			return fmt.Errorf("failed to get account: %w", err)
		}
		r := accountResponse{
			Address:  addr,
			Exists:   account.Exists,
			Owner:    account.Owner,
			Lamports: account.Lamports,
			DataLen:  len(account.Data),
		}
		if account.Exists && account.Owner == network.ProgramID {
			record, err := program.DecodeRecord(account.Data)
			if err != nil {
				return err
			}
			r.Balance = &record.Balance
		}
		return printValue(cmd, r)
	},
}

type accountResponse struct {
	Address  codec.Address `json:"address"`
	Exists   bool          `json:"exists"`
	Owner    codec.Address `json:"owner"`
	Lamports uint64        `json:"lamports"`
	DataLen  int           `json:"dataLen"`
	Balance  *uint64       `json:"balance,omitempty"`
}

func (r accountResponse) String() string {
	if !r.Exists {
		return r.Address.String() + ": not found"
	}
	s := fmt.Sprintf(
		"%s: owner=%s lamports=%s data=%dB",
		r.Address,
		r.Owner,
		utils.FormatBalance(r.Lamports),
		r.DataLen,
	)
	if r.Balance != nil {
		s += " record balance=" + utils.FormatBalance(*r.Balance)
	}
	return s
}

func init() {
	rootCmd.AddCommand(accountCmd)
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/ledgervm/cli/prompt"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/config"
	"github.com/ava-labs/ledgervm/crypto/ed25519"
	"github.com/ava-labs/ledgervm/genesis"
	"github.com/ava-labs/ledgervm/program"
	"github.com/ava-labs/ledgervm/rent"
	"github.com/ava-labs/ledgervm/utils"
)

var genesisCmd = &cobra.Command{
	Use:   "genesis [file] [record]",
	Short: "Write a genesis funding the current key and one rent exempt record",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := "genesis.yaml"
		if len(args) > 0 {
			file = args[0]
		}
		key, err := getKey(cmd)
		if err != nil {
			return err
		}
		rawFunds, err := cmd.Flags().GetString("funds")
		if err != nil {
			return err
		}
		var funds uint64
		if len(rawFunds) == 0 {
			funds, err = prompt.Lamports("funds for " + key.Address().String())
		} else {
			funds, err = utils.ParseBalance(rawFunds)
		}
		if err != nil {
			return fmt.Errorf("failed to parse funds: %w", err)
		}
		programID := config.DefaultProgramID
		if raw, _ := cmd.Flags().GetString("program"); raw != "" {
			programID, err = codec.StringToAddress(raw)
			if err != nil {
				return fmt.Errorf("failed to parse program: %w", err)
			}
		}

		record, ok, err := addressArg(args, 1)
		if err != nil {
			return err
		}
		if !ok {
			// The record is never signed for, so any fresh address works.
			recordKey, err := ed25519.GeneratePrivateKey()
			if err != nil {
				return err
			}
			record = recordKey.Address()
		}

		minimum, err := rent.Default().MinimumBalance(program.RecordSize)
		if err != nil {
			return err
		}
		g := &genesis.Genesis{Allocations: []*genesis.Allocation{
			{
				Address:  record.String(),
				Owner:    programID.String(),
				Lamports: minimum,
				Space:    program.RecordSize,
			},
			{
				Address:  key.Address().String(),
				Lamports: funds,
			},
		}}
		if err := g.Save(file); err != nil {
			return fmt.Errorf("failed to save genesis: %w", err)
		}
		supply, err := g.Supply()
		if err != nil {
			return err
		}
		return printValue(cmd, genesisResponse{
			File:   file,
			Record: record,
			Supply: supply,
		})
	},
}

type genesisResponse struct {
	File   string        `json:"file"`
	Record codec.Address `json:"record"`
	Supply uint64        `json:"supply"`
}

func (r genesisResponse) String() string {
	return fmt.Sprintf("wrote %s: record=%s supply=%s", r.File, r.Record, utils.FormatBalance(r.Supply))
}

func init() {
	rootCmd.AddCommand(genesisCmd)
	genesisCmd.Flags().String("funds", "", "Balance allocated to the current key; prompted for when empty")
	genesisCmd.Flags().String("program", "", "Owner of the record; defaults to the built-in program ID")
}

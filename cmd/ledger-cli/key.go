// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/crypto/ed25519"
	"github.com/ava-labs/ledgervm/utils"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage keys",
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new key and store it in the config",
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := ed25519.GeneratePrivateKey()
		if err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			if err := utils.SaveBytes(file, []byte(codec.ToHex(key[:]))); err != nil {
				return fmt.Errorf("failed to save key: %w", err)
			}
		}
		if err := setConfigValue("key", codec.ToHex(key[:])); err != nil {
			return fmt.Errorf("failed to update config: %w", err)
		}
		return printValue(cmd, newKeyResponse(key))
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the address and public key of the current key",
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := getKey(cmd)
		if err != nil {
			return err
		}
		return printValue(cmd, newKeyResponse(key))
	},
}

type keyResponse struct {
	Address   codec.Address     `json:"address"`
	PublicKey ed25519.PublicKey `json:"publicKey"`
}

func newKeyResponse(key ed25519.PrivateKey) keyResponse {
	return keyResponse{
		Address:   key.Address(),
		PublicKey: key.PublicKey(),
	}
}

func (r keyResponse) String() string {
	return r.Address.String()
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keyGenerateCmd, keyShowCmd)
	keyGenerateCmd.Flags().String("file", "", "Also write the hex encoded key to this file")
}

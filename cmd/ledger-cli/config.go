// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/crypto/ed25519"
	"github.com/ava-labs/ledgervm/utils"
)

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error getting home directory:", err)
		os.Exit(1)
	}

	configDir := filepath.Join(homeDir, ".ledger-cli")
	if err := os.MkdirAll(configDir, perms.ReadWriteExecute); err != nil {
		fmt.Fprintln(os.Stderr, "Error creating config directory:", err)
		os.Exit(1)
	}

	configFile := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.OpenFile(configFile, os.O_CREATE|os.O_WRONLY, perms.ReadWrite)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error creating config file:", err)
			os.Exit(1)
		}
		_ = f.Close()
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config:", err)
			os.Exit(1)
		}
	}
}

func isJSONOutputRequested(cmd *cobra.Command) (bool, error) {
	output, err := getConfigValue(cmd, "output", false)
	if err != nil {
		return false, fmt.Errorf("failed to get output format: %w", err)
	}
	return strings.ToLower(output) == "json", nil
}

func printValue(cmd *cobra.Command, v fmt.Stringer) error {
	isJSON, err := isJSONOutputRequested(cmd)
	if err != nil {
		return err
	}

	if isJSON {
		jsonBytes, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(jsonBytes))
		return nil
	}
	fmt.Println(v.String())
	return nil
}

// getConfigValue prefers an explicit flag over the saved config.
func getConfigValue(cmd *cobra.Command, key string, required bool) (string, error) {
	if value, err := cmd.Flags().GetString(key); err == nil && value != "" {
		return value, nil
	}
	if value := viper.GetString(key); value != "" {
		return value, nil
	}
	if required {
		return "", fmt.Errorf("required value for %s not found", key)
	}
	return "", nil
}

func setConfigValue(key, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

func privateKeyFromString(s string) (ed25519.PrivateKey, error) {
	if b, err := utils.LoadBytes(s, -1); err == nil {
		s = strings.TrimSpace(string(b))
	}
	return ed25519.HexToPrivateKey(s)
}

func getKey(cmd *cobra.Command) (ed25519.PrivateKey, error) {
	keyString, err := getConfigValue(cmd, "key", true)
	if err != nil {
		return ed25519.EmptyPrivateKey, fmt.Errorf("failed to get key: %w", err)
	}
	key, err := privateKeyFromString(keyString)
	if err != nil {
		return ed25519.EmptyPrivateKey, fmt.Errorf("failed to decode key: %w", err)
	}
	return key, nil
}

func addressArg(args []string, i int) (codec.Address, bool, error) {
	if len(args) <= i {
		return codec.EmptyAddress, false, nil
	}
	addr, err := codec.StringToAddress(args[i])
	if err != nil {
		return codec.EmptyAddress, false, fmt.Errorf("failed to parse address: %w", err)
	}
	return addr, true, nil
}

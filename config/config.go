// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/pebble"
	"github.com/ava-labs/ledgervm/rent"
	"github.com/ava-labs/ledgervm/server"
	"github.com/ava-labs/ledgervm/trace"
)

const (
	DefaultHTTPHost       = "127.0.0.1"
	DefaultHTTPPort       = 9650
	DefaultValidityWindow = int64(time.Minute / time.Millisecond)
)

// DefaultProgramID is the address the ledger program is hosted at unless
// configured otherwise.
var DefaultProgramID = codec.Address{'l', 'e', 'd', 'g', 'e', 'r'}

var (
	ErrInvalidValidityWindow = errors.New("validity window must be positive")
	ErrMissingDataDir        = errors.New("data dir must be set")
)

type Config struct {
	// Logging
	LogLevel     logging.Level `json:"logLevel"`
	LogDir       string        `json:"logDir"` // empty disables file logging
	LogMaxSizeMB int           `json:"logMaxSizeMB"`
	LogMaxFiles  int           `json:"logMaxFiles"`

	// Storage
	DataDir string        `json:"dataDir"`
	Pebble  pebble.Config `json:"pebble"`

	// Ledger
	ChainID        ids.ID        `json:"chainId"`
	ProgramID      codec.Address `json:"programId"`
	Rent           rent.Rent     `json:"rent"`
	ValidityWindow int64         `json:"validityWindow"` // ms
	GenesisFile    string        `json:"genesisFile"`

	// API
	HTTPHost string        `json:"httpHost"`
	HTTPPort uint16        `json:"httpPort"`
	HTTP     server.Config `json:"http"`

	Trace trace.Config `json:"trace"`
}

func New(b []byte) (*Config, error) {
	c := &Config{
		LogLevel:       logging.Info,
		LogMaxSizeMB:   64,
		LogMaxFiles:    4,
		DataDir:        ".ledgervm",
		Pebble:         pebble.NewDefaultConfig(),
		ChainID:        ids.Empty,
		ProgramID:      DefaultProgramID,
		Rent:           rent.Default(),
		ValidityWindow: DefaultValidityWindow,
		HTTPHost:       DefaultHTTPHost,
		HTTPPort:       DefaultHTTPPort,
		HTTP:           server.NewDefaultConfig(),
		Trace: trace.Config{
			AppName:         "ledgervm",
			TraceSampleRate: 0.1,
		},
	}

	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, err
		}
	}
	return c, c.Verify()
}

// Load reads the config at [path]. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if len(path) == 0 {
		return New(nil)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(b)
}

func (c *Config) Verify() error {
	if c.ValidityWindow <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidValidityWindow, c.ValidityWindow)
	}
	if len(c.DataDir) == 0 {
		return ErrMissingDataDir
	}
	return c.Rent.Verify()
}

func (c *Config) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

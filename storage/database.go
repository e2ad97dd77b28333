// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/ledgervm/pebble"
	"github.com/ava-labs/ledgervm/utils"
)

// New opens the account database under [dataDir]/[Namespace] and returns the
// registry carrying its metrics.
func New(cfg pebble.Config, dataDir string) (*pebble.Database, *prometheus.Registry, error) {
	path, err := utils.InitSubDirectory(dataDir, Namespace)
	if err != nil {
		return nil, nil, err
	}
	return pebble.New(path, cfg)
}

// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

// Namespace is the subdirectory of the data dir holding account state.
const Namespace = "statedb"

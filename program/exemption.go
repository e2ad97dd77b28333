// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

// ExemptionChecker is the storage-exemption rule supplied by the host
// ledger. [rent.Rent] is the production implementation.
type ExemptionChecker interface {
	IsExempt(lamports uint64, dataLen int) bool
}

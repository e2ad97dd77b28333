// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rent implements the storage-exemption rule: an account must hold
// enough lamports to pay for its storage for [DefaultExemptionThreshold]
// years before program data may be committed to it.
package rent

import (
	"errors"
	"fmt"
	"math"

	safemath "github.com/ava-labs/avalanchego/utils/math"
)

const (
	// AccountStorageOverhead is charged on top of the data length of every
	// account to cover its metadata.
	AccountStorageOverhead = 128

	DefaultLamportsPerByteYear uint64 = 1_000_000_000 / 100 * 365 / (1024 * 1024)
	DefaultExemptionThreshold         = 2.0
)

var (
	ErrInvalidRent    = errors.New("invalid rent")
	ErrInvalidDataLen = errors.New("invalid data length")
	ErrOverflow       = errors.New("minimum balance overflows")
)

type Rent struct {
	LamportsPerByteYear uint64  `json:"lamportsPerByteYear"`
	ExemptionThreshold  float64 `json:"exemptionThreshold"`
}

func Default() Rent {
	return Rent{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionThreshold:  DefaultExemptionThreshold,
	}
}

func (r Rent) Verify() error {
	if r.ExemptionThreshold < 0 {
		return fmt.Errorf("%w: negative exemption threshold %f", ErrInvalidRent, r.ExemptionThreshold)
	}
	return nil
}

// MinimumBalance is the smallest lamport balance that makes an account
// holding [dataLen] bytes exempt.
func (r Rent) MinimumBalance(dataLen int) (uint64, error) {
	if dataLen < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDataLen, dataLen)
	}
	bytes, err := safemath.Add(uint64(AccountStorageOverhead), uint64(dataLen))
	if err != nil {
		return 0, fmt.Errorf("%w: dataLen=%d", ErrOverflow, dataLen)
	}
	perYear, err := safemath.Mul(bytes, r.LamportsPerByteYear)
	if err != nil {
		return 0, fmt.Errorf("%w: bytes=%d lamportsPerByteYear=%d", ErrOverflow, bytes, r.LamportsPerByteYear)
	}
	minimum := float64(perYear) * r.ExemptionThreshold
	// float64(MaxUint64) rounds up to 2^64, which does not fit.
	if minimum >= math.MaxUint64 {
		return 0, fmt.Errorf("%w: threshold=%f", ErrOverflow, r.ExemptionThreshold)
	}
	return uint64(minimum), nil
}

// IsExempt reports whether [lamports] covers the storage of [dataLen] bytes.
// No balance is exempt when the minimum cannot be computed.
func (r Rent) IsExempt(lamports uint64, dataLen int) bool {
	minimum, err := r.MinimumBalance(dataLen)
	if err != nil {
		return false
	}
	return lamports >= minimum
}

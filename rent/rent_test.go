// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rent

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultMinimumBalance(t *testing.T) {
	require := require.New(t)

	r := Default()
	require.Equal(uint64(3480), r.LamportsPerByteYear)
	require.NoError(r.Verify())

	// (128 + 8) * 3480 * 2
	minimum, err := r.MinimumBalance(8)
	require.NoError(err)
	require.Equal(uint64(946_560), minimum)
	minimum, err = r.MinimumBalance(0)
	require.NoError(err)
	require.Equal(uint64(890_880), minimum)
}

func TestMinimumBalanceInvalid(t *testing.T) {
	tests := []struct {
		name        string
		rent        Rent
		dataLen     int
		expectedErr error
	}{
		{
			name:        "negative data length",
			rent:        Default(),
			dataLen:     -1,
			expectedErr: ErrInvalidDataLen,
		},
		{
			name:        "negative below overhead",
			rent:        Default(),
			dataLen:     -AccountStorageOverhead - 1,
			expectedErr: ErrInvalidDataLen,
		},
		{
			name:        "per year overflow",
			rent:        Rent{LamportsPerByteYear: math.MaxUint64, ExemptionThreshold: 1},
			dataLen:     8,
			expectedErr: ErrOverflow,
		},
		{
			name:        "threshold overflow",
			rent:        Rent{LamportsPerByteYear: math.MaxUint64 / 256, ExemptionThreshold: 1000},
			dataLen:     8,
			expectedErr: ErrOverflow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			_, err := tt.rent.MinimumBalance(tt.dataLen)
			require.ErrorIs(err, tt.expectedErr)
			require.False(tt.rent.IsExempt(math.MaxUint64, tt.dataLen))
		})
	}
}

func TestIsExempt(t *testing.T) {
	tests := []struct {
		name     string
		lamports uint64
		dataLen  int
		exempt   bool
	}{
		{name: "exactly minimum", lamports: 946_560, dataLen: 8, exempt: true},
		{name: "one below", lamports: 946_559, dataLen: 8, exempt: false},
		{name: "empty account", lamports: 0, dataLen: 8, exempt: false},
		{name: "larger data", lamports: 946_560, dataLen: 9, exempt: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.exempt, Default().IsExempt(tt.lamports, tt.dataLen))
		})
	}
}

func TestFreeRent(t *testing.T) {
	require := require.New(t)

	r := Rent{LamportsPerByteYear: 0, ExemptionThreshold: DefaultExemptionThreshold}
	require.True(r.IsExempt(0, 1024))
}

func TestVerify(t *testing.T) {
	r := Default()
	r.ExemptionThreshold = -1
	require.ErrorIs(t, r.Verify(), ErrInvalidRent)
}

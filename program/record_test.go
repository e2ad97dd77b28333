// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordLittleEndian(t *testing.T) {
	require := require.New(t)

	b, err := Record{Balance: 0x0102030405060708}.Encode()
	require.NoError(err)
	require.Equal([]byte{8, 7, 6, 5, 4, 3, 2, 1}, b)

	r, err := DecodeRecord(b)
	require.NoError(err)
	require.Equal(uint64(0x0102030405060708), r.Balance)
}

func TestDecodeZeroedRecord(t *testing.T) {
	r, err := DecodeRecord(make([]byte, RecordSize))
	require.NoError(t, err)
	require.Zero(t, r.Balance)
}

func TestDecodeRecordInvalidLength(t *testing.T) {
	for _, size := range []int{0, 1, RecordSize - 1, RecordSize + 1, 64} {
		_, err := DecodeRecord(make([]byte, size))
		require.ErrorIs(t, err, ErrDecode, "size=%d", size)
	}
}

func TestRecordEncodeFixedSize(t *testing.T) {
	require := require.New(t)

	for _, balance := range []uint64{0, 1, 1 << 63} {
		b, err := Record{Balance: balance}.Encode()
		require.NoError(err)
		require.Len(b, RecordSize)
	}
	// Encoding failures are not reported as decode failures.
	require.NotErrorIs(ErrEncode, ErrDecode)
}

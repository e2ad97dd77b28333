// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/crypto/ed25519"
)

func newKeys(t *testing.T, n int) []ed25519.PrivateKey {
	keys := make([]ed25519.PrivateKey, n)
	for i := range keys {
		k, err := ed25519.GeneratePrivateKey()
		require.NoError(t, err)
		keys[i] = k
	}
	return keys
}

func unsignedTx(metas ...*chain.AccountMeta) *chain.Transaction {
	return chain.NewTx(
		&chain.Base{Timestamp: 1_000, ChainID: ids.ID{1}},
		&chain.Instruction{ProgramID: codec.Address{0xaa}, Accounts: metas, Data: []byte{2}},
	)
}

func TestSigners(t *testing.T) {
	keys := newKeys(t, 6)
	record := &chain.AccountMeta{Address: codec.Address{1}, IsWritable: true}

	tests := []struct {
		name    string
		metas   []*chain.AccountMeta
		signers []ed25519.PrivateKey
		want    []codec.Address
		err     error
	}{
		{
			name:  "NoSigners",
			metas: []*chain.AccountMeta{record},
		},
		{
			name:    "ClaimedAndSigned",
			metas:   []*chain.AccountMeta{record, {Address: keys[0].Address(), IsSigner: true}},
			signers: keys[:1],
			want:    []codec.Address{keys[0].Address()},
		},
		{
			name:    "SignedWithoutClaim",
			metas:   []*chain.AccountMeta{record, {Address: keys[0].Address()}},
			signers: keys[:1],
			want:    []codec.Address{keys[0].Address()},
		},
		{
			name:  "ClaimedNotSigned",
			metas: []*chain.AccountMeta{record, {Address: keys[0].Address(), IsSigner: true}},
			err:   ErrMissingSignature,
		},
		{
			name:    "Outsider",
			metas:   []*chain.AccountMeta{record},
			signers: keys[:1],
			err:     ErrUnexpectedSignature,
		},
		{
			name: "Batch",
			metas: func() []*chain.AccountMeta {
				metas := []*chain.AccountMeta{record}
				for _, k := range keys {
					metas = append(metas, &chain.AccountMeta{Address: k.Address(), IsSigner: true})
				}
				return metas
			}(),
			signers: keys,
			want: func() []codec.Address {
				addrs := make([]codec.Address, 0, len(keys))
				for _, k := range keys {
					addrs = append(addrs, k.Address())
				}
				return addrs
			}(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			tx, err := unsignedTx(tt.metas...).Sign(tt.signers...)
			require.NoError(err)
			signers, err := Signers(tx)
			require.ErrorIs(err, tt.err)
			if tt.err != nil {
				return
			}
			require.Len(signers, len(tt.want))
			for _, addr := range tt.want {
				require.True(signers.Contains(addr))
			}
		})
	}
}

func TestForgedSignature(t *testing.T) {
	for _, n := range []int{1, ed25519.MinBatchSize + 1} {
		require := require.New(t)

		keys := newKeys(t, n)
		metas := make([]*chain.AccountMeta, 0, n)
		for _, k := range keys {
			metas = append(metas, &chain.AccountMeta{Address: k.Address(), IsSigner: true})
		}
		tx, err := unsignedTx(metas...).Sign(keys...)
		require.NoError(err)

		tx.Signatures[n-1].Signature[0] ^= 0xff
		_, err = Signers(tx)
		require.ErrorIs(err, ErrInvalidSignature)
	}
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package auth turns the signatures attached to a transaction into the
// signer flags handed to a program.
package auth

import (
	"fmt"

	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/crypto/ed25519"
)

// Signers verifies every signature carried by [tx] and returns the addresses
// that signed. Every account meta claiming to be a signer must be backed by a
// valid signature, and every signature must come from an account referenced
// by the instruction.
func Signers(tx *chain.Transaction) (set.Set[codec.Address], error) {
	msg, err := tx.Digest()
	if err != nil {
		return nil, err
	}
	if err := verify(msg, tx.Signatures); err != nil {
		return nil, err
	}

	signers := set.NewSet[codec.Address](len(tx.Signatures))
	for _, sig := range tx.Signatures {
		signers.Add(sig.Signer.Address())
	}
	referenced := set.NewSet[codec.Address](len(tx.Instruction.Accounts))
	for _, meta := range tx.Instruction.Accounts {
		referenced.Add(meta.Address)
		if meta.IsSigner && !signers.Contains(meta.Address) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSignature, meta.Address)
		}
	}
	for signer := range signers {
		if !referenced.Contains(signer) {
			return nil, fmt.Errorf("%w: %s", ErrUnexpectedSignature, signer)
		}
	}
	return signers, nil
}

// verify checks [sigs] one at a time when there are few of them and with a
// batch verifier otherwise.
func verify(msg []byte, sigs []*chain.Signature) error {
	if len(sigs) < ed25519.MinBatchSize {
		for _, sig := range sigs {
			if !ed25519.Verify(msg, sig.Signer, sig.Signature) {
				return fmt.Errorf("%w: %s", ErrInvalidSignature, sig.Signer.Address())
			}
		}
		return nil
	}
	batch := ed25519.NewBatch(len(sigs))
	for _, sig := range sigs {
		batch.Add(msg, sig.Signer, sig.Signature)
	}
	if err := batch.VerifyAsync()(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	return nil
}

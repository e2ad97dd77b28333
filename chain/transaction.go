// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/crypto/ed25519"
	"github.com/ava-labs/ledgervm/state"
	"github.com/ava-labs/ledgervm/utils"
)

// Signature is an ed25519 signature over the transaction digest.
type Signature struct {
	Signer    ed25519.PublicKey `json:"signer"`
	Signature ed25519.Signature `json:"signature"`
}

type Transaction struct {
	Base        *Base        `json:"base"`
	Instruction *Instruction `json:"instruction"`

	Signatures []*Signature `json:"signatures"`

	digest []byte
	bytes  []byte
	size   int
	id     ids.ID
}

func NewTx(base *Base, ix *Instruction) *Transaction {
	return &Transaction{
		Base:        base,
		Instruction: ix,
	}
}

// Digest is the message every signer signs.
func (t *Transaction) Digest() ([]byte, error) {
	if len(t.digest) > 0 {
		return t.digest, nil
	}
	p := codec.NewWriter(t.Base.Size()+t.Instruction.Size(), consts.NetworkSizeLimit)
	t.Base.Marshal(p)
	t.Instruction.Marshal(p)
	return p.Bytes(), p.Err()
}

// Sign attaches a signature from every key in [keys] and reloads the
// transaction from its bytes so [ID] and [Bytes] are populated.
func (t *Transaction) Sign(keys ...ed25519.PrivateKey) (*Transaction, error) {
	msg, err := t.Digest()
	if err != nil {
		return nil, err
	}
	t.Signatures = make([]*Signature, 0, len(keys))
	for _, k := range keys {
		t.Signatures = append(t.Signatures, &Signature{
			Signer:    k.PublicKey(),
			Signature: ed25519.Sign(msg, k),
		})
	}

	// Ensure transaction is fully initialized and correct by reloading it from
	// bytes
	p := codec.NewWriter(t.signedSize(len(msg)), consts.NetworkSizeLimit)
	if err := t.Marshal(p); err != nil {
		return nil, err
	}
	return UnmarshalTx(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit))
}

func (t *Transaction) signedSize(digestLen int) int {
	return digestLen + consts.ByteLen + len(t.Signatures)*SignatureSize
}

func (t *Transaction) Bytes() []byte { return t.bytes }

func (t *Transaction) Size() int { return t.size }

func (t *Transaction) ID() ids.ID { return t.id }

func (t *Transaction) Expiry() int64 { return t.Base.Timestamp }

// StateKeys returns the storage keys the transaction may touch.
func (t *Transaction) StateKeys() state.Keys {
	return t.Instruction.StateKeys()
}

func (t *Transaction) Marshal(p *codec.Packer) error {
	if len(t.bytes) > 0 {
		p.PackFixedBytes(t.bytes)
		return p.Err()
	}
	t.Base.Marshal(p)
	t.Instruction.Marshal(p)
	p.PackByte(uint8(len(t.Signatures)))
	for _, sig := range t.Signatures {
		p.PackFixedBytes(sig.Signer[:])
		p.PackFixedBytes(sig.Signature[:])
	}
	return p.Err()
}

func UnmarshalTx(p *codec.Packer) (*Transaction, error) {
	start := p.Offset()
	base, err := UnmarshalBase(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal base", err)
	}
	ix, err := UnmarshalInstruction(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal instruction", err)
	}
	digest := p.Offset()
	count := int(p.UnpackByte())
	if count > MaxSignatures {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManySigners, count, MaxSignatures)
	}
	signers := set.NewSet[ed25519.PublicKey](count)
	sigs := make([]*Signature, 0, count)
	for i := 0; i < count; i++ {
		var (
			sig Signature
			pk  []byte
			s   []byte
		)
		p.UnpackFixedBytes(ed25519.PublicKeyLen, &pk)
		p.UnpackFixedBytes(ed25519.SignatureLen, &s)
		if err := p.Err(); err != nil {
			return nil, fmt.Errorf("%w: could not unmarshal signature: %w", ErrInvalidObject, err)
		}
		copy(sig.Signer[:], pk)
		copy(sig.Signature[:], s)
		if signers.Contains(sig.Signer) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSigner, sig.Signer.Address())
		}
		signers.Add(sig.Signer)
		sigs = append(sigs, &sig)
	}
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidObject, err)
	}

	tx := NewTx(base, ix)
	tx.Signatures = sigs
	codecBytes := p.Bytes()
	tx.digest = codecBytes[start:digest]
	tx.bytes = codecBytes[start:p.Offset()] // ensure errors handled before grabbing memory
	tx.size = len(tx.bytes)
	tx.id = utils.ToID(tx.bytes)
	return tx, nil
}

// ParseTx decodes a transaction that must span all of [b].
func ParseTx(b []byte) (*Transaction, error) {
	p := codec.NewReader(b, consts.NetworkSizeLimit)
	tx, err := UnmarshalTx(p)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidObject, codec.ErrExtraBytes)
	}
	return tx, nil
}

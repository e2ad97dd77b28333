// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"crypto/ed25519"
	"errors"

	"github.com/hdevalence/ed25519consensus"

	"github.com/ava-labs/ledgervm/codec"
)

type (
	PublicKey  [ed25519.PublicKeySize]byte
	PrivateKey [ed25519.PrivateKeySize]byte
	Signature  [ed25519.SignatureSize]byte
)

// Signatures are verified with the ZIP-215 rules
// (https://zips.z.cash/zip-0215) so single and batch verification
// accept exactly the same set of signatures.
const (
	PublicKeyLen  = ed25519.PublicKeySize
	PrivateKeyLen = ed25519.PrivateKeySize
	// PrivateKeySeedLen is defined because ed25519.PrivateKey
	// is formatted as privateKey = seed|publicKey. We use this const
	// to extract the publicKey below.
	PrivateKeySeedLen = ed25519.SeedSize
	SignatureLen      = ed25519.SignatureSize

	MinBatchSize = 4
)

var (
	ErrInvalidPrivateKey = errors.New("invalid private key")
	ErrInvalidSignature  = errors.New("invalid signature")

	EmptyPublicKey  = [ed25519.PublicKeySize]byte{}
	EmptyPrivateKey = [ed25519.PrivateKeySize]byte{}
	EmptySignature  = [ed25519.SignatureSize]byte{}
)

// GeneratePrivateKey returns a Ed25519 PrivateKey.
func GeneratePrivateKey() (PrivateKey, error) {
	_, k, err := ed25519.GenerateKey(nil)
	if err != nil {
		return EmptyPrivateKey, err
	}
	return PrivateKey(k), nil
}

// PublicKey returns a PublicKey associated with the Ed25519 PrivateKey p.
// The PublicKey is the last 32 bytes of p.
func (p PrivateKey) PublicKey() PublicKey {
	return PublicKey(p[PrivateKeySeedLen:])
}

// Address is the account identity controlled by p.
func (p PrivateKey) Address() codec.Address {
	return p.PublicKey().Address()
}

// Address converts the public key into the account identity it controls.
func (p PublicKey) Address() codec.Address {
	return codec.Address(p)
}

// HexToPrivateKey parses a hex encoded private key.
func HexToPrivateKey(s string) (PrivateKey, error) {
	b, err := codec.LoadHex(s, PrivateKeyLen)
	if err != nil {
		return EmptyPrivateKey, ErrInvalidPrivateKey
	}
	return PrivateKey(b), nil
}

// Sign returns a valid signature for msg using pk.
func Sign(msg []byte, pk PrivateKey) Signature {
	sig := ed25519.Sign(pk[:], msg)
	return Signature(sig)
}

// Verify returns whether s is a valid signature of msg by p.
func Verify(msg []byte, p PublicKey, s Signature) bool {
	return ed25519consensus.Verify(p[:], msg, s[:])
}

type Batch struct {
	bv ed25519consensus.BatchVerifier
}

func NewBatch(size int) *Batch {
	return &Batch{bv: ed25519consensus.NewPreallocatedBatchVerifier(size)}
}

func (b *Batch) Add(msg []byte, p PublicKey, s Signature) {
	b.bv.Add(p[:], msg, s[:])
}

func (b *Batch) Verify() bool {
	return b.bv.Verify()
}

func (b *Batch) VerifyAsync() func() error {
	return func() error {
		if !b.Verify() {
			return ErrInvalidSignature
		}
		return nil
	}
}

func (p PublicKey) MarshalText() ([]byte, error) {
	return []byte(codec.ToHex(p[:])), nil
}

func (p *PublicKey) UnmarshalText(text []byte) error {
	b, err := codec.LoadHex(string(text), PublicKeyLen)
	if err != nil {
		return err
	}
	copy(p[:], b)
	return nil
}

func (s Signature) MarshalText() ([]byte, error) {
	return []byte(codec.ToHex(s[:])), nil
}

func (s *Signature) UnmarshalText(text []byte) error {
	b, err := codec.LoadHex(string(text), SignatureLen)
	if err != nil {
		return ErrInvalidSignature
	}
	copy(s[:], b)
	return nil
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"fmt"
)

// AddressLen is the size of an account identity. Account addresses are
// ed25519 public keys and program identities share the same space.
const AddressLen = 32

// Address identifies an account slot, an account owner or a program.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// ToAddress copies [b] into an [Address]. It errors if [b] is not exactly
// [AddressLen] bytes.
func ToAddress(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLen {
		return a, fmt.Errorf("%w: expected %d bytes but found %d", ErrInvalidSize, AddressLen, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// StringToAddress parses a hex address with an optional 0x prefix.
func StringToAddress(s string) (Address, error) {
	b, err := LoadHex(s, -1)
	if err != nil {
		return EmptyAddress, err
	}
	return ToAddress(b)
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return hexPrefix + hex.EncodeToString(a[:])
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a hex-encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := StringToAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

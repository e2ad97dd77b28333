// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const hexPrefix = "0x"

// ToHex encodes [b] without a prefix.
func ToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// LoadHex decodes [s], with or without a 0x prefix. Unless [expectedSize] is
// -1, the decoded value must be exactly that long.
func LoadHex(s string, expectedSize int) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, hexPrefix))
	if err != nil {
		return nil, err
	}
	if expectedSize != -1 && len(b) != expectedSize {
		return nil, fmt.Errorf("%w: expected %d bytes but found %d", ErrInvalidSize, expectedSize, len(b))
	}
	return b, nil
}

// Bytes is a byte slice that is hex encoded in JSON and YAML. It carries
// transaction bytes and account data over the API.
type Bytes []byte

func (b Bytes) String() string {
	return hexPrefix + ToHex(b)
}

func (b Bytes) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bytes) UnmarshalText(text []byte) error {
	decoded, err := LoadHex(string(text), -1)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

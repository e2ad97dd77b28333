// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "github.com/ava-labs/ledgervm/consts"

// BytesLen is the packed size of a length-prefixed byte slice.
func BytesLen(msg []byte) int {
	return consts.IntLen + len(msg)
}

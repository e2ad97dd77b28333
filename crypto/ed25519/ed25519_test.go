// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	TestPrivateKey = PrivateKey(
		[PrivateKeyLen]byte{
			32, 241, 118, 222, 210, 13, 164, 128, 3, 18,
			109, 215, 176, 215, 168, 171, 194, 181, 4, 11,
			253, 199, 173, 240, 107, 148, 127, 190, 48, 164,
			12, 48, 115, 50, 124, 153, 59, 53, 196, 150, 168,
			143, 151, 235, 222, 128, 136, 161, 9, 40, 139, 85,
			182, 153, 68, 135, 62, 166, 45, 235, 251, 246, 69, 7,
		},
	)
	TestPublicKey = []byte{
		115, 50, 124, 153, 59, 53, 196, 150, 168, 143, 151, 235,
		222, 128, 136, 161, 9, 40, 139, 85, 182, 153, 68, 135,
		62, 166, 45, 235, 251, 246, 69, 7,
	}
)

func TestGeneratePrivateKeyFormat(t *testing.T) {
	require := require.New(t)
	priv, err := GeneratePrivateKey()
	require.NoError(err, "Error Generating PrivateKey")
	require.NotEqual(priv, EmptyPrivateKey, "PrivateKey is empty")
	require.Len(priv, PrivateKeyLen, "PrivateKey has incorrect length")
}

func TestPublicKeyValid(t *testing.T) {
	require := require.New(t)
	// Hardcoded test values
	var expectedPubKey PublicKey
	copy(expectedPubKey[:], TestPublicKey)
	pubKey := TestPrivateKey.PublicKey()
	require.Equal(expectedPubKey, pubKey, "PublicKey not equal to Expected PublicKey")
}

func TestPublicKeyFormat(t *testing.T) {
	require := require.New(t)
	priv, err := GeneratePrivateKey()
	require.NoError(err, "Error during call to GeneratePrivateKey")
	pubKey := priv.PublicKey()
	require.NotEqual(pubKey, EmptyPublicKey, "PublicKey is empty")
	require.Len(pubKey, PublicKeyLen, "PublicKey has incorrect length")
}

func TestSignSignatureValid(t *testing.T) {
	require := require.New(t)

	msg := []byte("msg")
	// Sign using ed25519
	ed25519Sign := ed25519.Sign(TestPrivateKey[:], msg)
	var expectedSig Signature
	copy(expectedSig[:], ed25519Sign)
	// Sign using crypto
	sig := Sign(msg, TestPrivateKey)
	require.Equal(expectedSig, sig, "Signature was incorrect")
}

func TestVerifyValidParams(t *testing.T) {
	require := require.New(t)
	msg := []byte("msg")
	sig := Sign(msg, TestPrivateKey)
	require.True(Verify(msg, TestPrivateKey.PublicKey(), sig),
		"Signature was invalid")
}

func TestVerifyInvalidParams(t *testing.T) {
	require := require.New(t)

	msg := []byte("msg")

	difMsg := []byte("diff msg")
	sig := Sign(msg, TestPrivateKey)

	require.False(Verify(difMsg, TestPrivateKey.PublicKey(), sig),
		"Verify incorrectly verified a message")
}

func TestAddressRoundTrip(t *testing.T) {
	require := require.New(t)

	addr := TestPrivateKey.Address()
	require.Equal(TestPublicKey, addr[:])
	require.Equal(TestPrivateKey.PublicKey(), PublicKey(addr))
}

func TestHexToPrivateKey(t *testing.T) {
	require := require.New(t)

	parsed, err := HexToPrivateKey("0x" + hex.EncodeToString(TestPrivateKey[:]))
	require.NoError(err)
	require.Equal(TestPrivateKey, parsed)

	_, err = HexToPrivateKey("0x1234")
	require.ErrorIs(err, ErrInvalidPrivateKey)
}

func signedBatch(t *testing.T, numItems int, corrupt int) *Batch {
	require := require.New(t)
	bv := NewBatch(numItems)
	for i := 0; i < numItems; i++ {
		priv, err := GeneratePrivateKey()
		require.NoError(err)
		msg := make([]byte, 128)
		_, err = rand.Read(msg)
		require.NoError(err)
		sig := Sign(msg, priv)
		if i == corrupt {
			sig[0]++
		}
		bv.Add(msg, priv.PublicKey(), sig)
	}
	return bv
}

func TestBatchVerify(t *testing.T) {
	require := require.New(t)

	require.True(signedBatch(t, 64, -1).Verify())
	require.False(signedBatch(t, 64, 10).Verify())
	require.ErrorIs(signedBatch(t, MinBatchSize, 0).VerifyAsync()(), ErrInvalidSignature)
}

// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func sampleTx() UserTransaction {
	return UserTransaction{
		From:      common.HexToAddress("0x1111111111111111111111111111111111111111"),
		To:        common.HexToAddress("0x2222222222222222222222222222222222222222"),
		Value:     uint256.NewInt(1000),
		Nonce:     7,
		GasPrice:  uint256.NewInt(42),
		GasLimit:  21000,
		Timestamp: 1_700_000_000_000,
	}
}

func TestHashDeterministic(t *testing.T) {
	tx := sampleTx()
	require.Equal(t, tx.Hash(), tx.Hash())
}

func TestHashIgnoresGasLimitAndSignature(t *testing.T) {
	a := sampleTx()
	b := sampleTx()
	b.GasLimit = a.GasLimit + 1
	b.Signature[0] = 0xFF
	require.Equal(t, a.Hash(), b.Hash())
}

func TestHashChangesWithCoveredFields(t *testing.T) {
	base := sampleTx()
	baseHash := base.Hash()

	mutated := sampleTx()
	mutated.Nonce++
	require.NotEqual(t, baseHash, mutated.Hash())

	mutated = sampleTx()
	mutated.Value = uint256.NewInt(1001)
	require.NotEqual(t, baseHash, mutated.Hash())

	mutated = sampleTx()
	mutated.GasPrice = uint256.NewInt(43)
	require.NotEqual(t, baseHash, mutated.Hash())

	mutated = sampleTx()
	mutated.Timestamp++
	require.NotEqual(t, baseHash, mutated.Hash())

	mutated = sampleTx()
	mutated.BoostBid = uint256.NewInt(1)
	require.NotEqual(t, baseHash, mutated.Hash())
}

func TestHashMissingBoostBidEqualsZero(t *testing.T) {
	withNil := sampleTx()
	withZero := sampleTx()
	withZero.BoostBid = uint256.NewInt(0)
	require.Equal(t, withNil.Hash(), withZero.Hash())
}

func TestTransactionGasLimit(t *testing.T) {
	normal := WrapNormal(UserTransaction{GasLimit: 21000})
	require.Equal(t, uint64(21000), normal.GasLimit())
	require.False(t, normal.IsForced())

	forced := WrapForced(ForcedTransaction{GasLimit: 50000})
	require.Equal(t, uint64(50000), forced.GasLimit())
	require.True(t, forced.IsForced())
}

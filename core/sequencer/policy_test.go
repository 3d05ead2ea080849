// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func txWith(nonce uint64, gasPrice uint64, timestamp uint64, boost *uint64) UserTransaction {
	tx := UserTransaction{
		Nonce:     nonce,
		GasPrice:  uint256.NewInt(gasPrice),
		Timestamp: timestamp,
	}
	if boost != nil {
		tx.BoostBid = uint256.NewInt(*boost)
	}
	return tx
}

func u64p(v uint64) *uint64 { return &v }

func TestFCFSPreservesInputOrder(t *testing.T) {
	in := []UserTransaction{
		txWith(1, 100, 1000, nil),
		txWith(2, 500, 2000, nil),
		txWith(3, 50, 3000, nil),
	}
	out := FCFSPolicy{}.Order(in)
	require.Equal(t, in, out)
}

func TestFeePriorityOrdersDescendingStable(t *testing.T) {
	in := []UserTransaction{
		txWith(1, 100, 1000, nil),
		txWith(2, 500, 2000, nil),
		txWith(3, 50, 3000, nil),
		txWith(4, 500, 4000, nil), // tie with #2 on gas price
	}
	out := FeePriorityPolicy{}.Order(in)
	require.Equal(t, []uint64{2, 4, 1, 3}, nonces(out))
}

func TestFairBFTOrdersByTimestampAscendingStable(t *testing.T) {
	in := []UserTransaction{
		txWith(1, 500, 5000, nil),
		txWith(2, 100, 1000, nil),
		txWith(3, 300, 3000, nil),
	}
	out := FairBFTPolicy{}.Order(in)
	require.Equal(t, []uint64{2, 3, 1}, nonces(out))
}

func TestTimeBoostGroupsByWindowThenBidThenGasPrice(t *testing.T) {
	in := []UserTransaction{
		txWith(1, 100, 1000, nil),
		txWith(2, 100, 2000, u64p(500)),
		txWith(3, 100, 3000, u64p(200)),
		txWith(4, 100, 4000, u64p(800)),
	}
	out := TimeBoostPolicy{WindowMS: 5000}.Order(in)
	require.Equal(t, []uint64{4, 2, 3, 1}, nonces(out))
}

func TestTimeBoostSeparatesWindows(t *testing.T) {
	in := []UserTransaction{
		txWith(1, 100, 1000, nil),  // window 0
		txWith(2, 200, 6000, nil),  // window 1
		txWith(3, 300, 12000, nil), // window 2
		txWith(4, 150, 2000, nil),  // window 0
	}
	out := TimeBoostPolicy{WindowMS: 5000}.Order(in)
	// Window 0 holds #1 (gas price 100) and #4 (gas price 150); within a
	// window ties on bid fall back to gas price descending, so #4 sorts
	// ahead of #1.
	require.Equal(t, []uint64{4, 1, 2, 3}, nonces(out))
}

func TestTimeBoostMissingBidEqualsZero(t *testing.T) {
	in := []UserTransaction{
		txWith(1, 100, 1000, u64p(0)),
		txWith(2, 100, 1000, nil),
	}
	out := TimeBoostPolicy{WindowMS: 5000}.Order(in)
	// Equal effective bid (both zero): falls back to input order.
	require.Equal(t, []uint64{1, 2}, nonces(out))
}

func nonces(txs []UserTransaction) []uint64 {
	out := make([]uint64, len(txs))
	for i, tx := range txs {
		out[i] = tx.Nonce
	}
	return out
}

func TestNewPolicyFactory(t *testing.T) {
	require.Equal(t, "FCFS", NewPolicy(PolicyType{Kind: PolicyFCFS}).Name())
	require.Equal(t, "FeePriority", NewPolicy(PolicyType{Kind: PolicyFeePriority}).Name())
	require.Equal(t, "TimeBoost", NewPolicy(PolicyType{Kind: PolicyTimeBoost, WindowMS: 5000}).Name())
	require.Equal(t, "FairBFT", NewPolicy(PolicyType{Kind: PolicyFairBFT}).Name())
}

// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"sort"

	"github.com/holiman/uint256"
)

// Policy orders the normal (non-forced) half of a batch. Implementations
// are pure: no I/O, no mutable state, and must sort stably so that ties
// fall back to input (FCFS) order.
type Policy interface {
	// Order returns a newly ordered copy of txs; the input slice is left
	// untouched.
	Order(txs []UserTransaction) []UserTransaction

	// Name identifies the policy in BatchMetadata.SchedulingPolicy.
	Name() string
}

// PolicyType is the closed set of selectable scheduling policies, chosen
// at orchestrator construction time.
type PolicyType struct {
	Kind        PolicyKind
	WindowMS    uint64 // only meaningful when Kind == PolicyTimeBoost
}

// PolicyKind tags which of the four strategies a PolicyType selects.
type PolicyKind uint8

const (
	PolicyFCFS PolicyKind = iota
	PolicyFeePriority
	PolicyTimeBoost
	PolicyFairBFT
)

// NewPolicy is the factory that turns a PolicyType into a concrete Policy,
// grounded on the original sequencer's create_policy factory.
func NewPolicy(t PolicyType) Policy {
	switch t.Kind {
	case PolicyFeePriority:
		return FeePriorityPolicy{}
	case PolicyTimeBoost:
		return TimeBoostPolicy{WindowMS: t.WindowMS}
	case PolicyFairBFT:
		return FairBFTPolicy{}
	default:
		return FCFSPolicy{}
	}
}

// FCFSPolicy is the identity ordering: input order is preserved exactly.
type FCFSPolicy struct{}

func (FCFSPolicy) Name() string { return "FCFS" }

func (FCFSPolicy) Order(txs []UserTransaction) []UserTransaction {
	out := make([]UserTransaction, len(txs))
	copy(out, txs)
	return out
}

// FeePriorityPolicy orders by gas_price descending, ties broken by input
// order.
type FeePriorityPolicy struct{}

func (FeePriorityPolicy) Name() string { return "FeePriority" }

func (FeePriorityPolicy) Order(txs []UserTransaction) []UserTransaction {
	out := make([]UserTransaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GasPrice.Gt(out[j].GasPrice)
	})
	return out
}

// TimeBoostPolicy groups transactions into windows of WindowMS
// milliseconds (floor(timestamp / WindowMS), ascending), and within a
// window orders by boost_bid descending (a missing bid counts as zero),
// then gas_price descending.
type TimeBoostPolicy struct {
	WindowMS uint64
}

func (TimeBoostPolicy) Name() string { return "TimeBoost" }

func (p TimeBoostPolicy) Order(txs []UserTransaction) []UserTransaction {
	out := make([]UserTransaction, len(txs))
	copy(out, txs)

	window := func(tx UserTransaction) uint64 {
		if p.WindowMS == 0 {
			return tx.Timestamp
		}
		return tx.Timestamp / p.WindowMS
	}
	bid := func(tx UserTransaction) *uint256.Int {
		if tx.BoostBid == nil {
			return uint256.NewInt(0)
		}
		return tx.BoostBid
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		wa, wb := window(a), window(b)
		if wa != wb {
			return wa < wb
		}
		if cmp := bid(a).Cmp(bid(b)); cmp != 0 {
			return cmp > 0
		}
		return a.GasPrice.Gt(b.GasPrice)
	})
	return out
}

// FairBFTPolicy orders by timestamp ascending, ties broken by input
// order.
type FairBFTPolicy struct{}

func (FairBFTPolicy) Name() string { return "FairBFT" }

func (FairBFTPolicy) Order(txs []UserTransaction) []UserTransaction {
	out := make([]UserTransaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

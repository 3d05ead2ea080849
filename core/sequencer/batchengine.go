// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"math"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// BatchEngine owns the sequential batch-id generator and the cumulative
// gas-budget gate. It is single-writer, exclusively owned by the
// orchestrator.
type BatchEngine struct {
	nextBatchID uint64
	maxGasLimit uint64
}

// NewBatchEngine returns a BatchEngine that will mint batch ids starting
// at 1 and gate on maxGasLimit cumulative gas per batch.
func NewBatchEngine(maxGasLimit uint64) *BatchEngine {
	return &BatchEngine{nextBatchID: 1, maxGasLimit: maxGasLimit}
}

// CanAdd reports whether candidate's gas limit fits underneath
// maxGasLimit alongside the already-accepted current transactions, using
// saturating addition so a pathological sum never wraps around.
func (e *BatchEngine) CanAdd(current []Transaction, candidate Transaction) bool {
	var sum uint64
	for _, tx := range current {
		sum = saturatingAddUint64(sum, tx.GasLimit())
	}
	return saturatingAddUint64(sum, candidate.GasLimit()) <= e.maxGasLimit
}

// Seal builds and returns the next Batch from ordered, advancing the
// batch-id counter.
func (e *BatchEngine) Seal(ordered []Transaction) Batch {
	batch := Batch{
		BatchID:       e.nextBatchID,
		Transactions:  ordered,
		PrevStateRoot: common.Hash{},
		Timestamp:     uint64(time.Now().UnixMilli()),
	}
	e.nextBatchID++
	return batch
}

func saturatingAddUint64(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

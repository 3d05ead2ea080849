// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/luxfi/sequencer-core/core/sequencer/metrics"
)

// pollInterval is the fixed loop tick, matching the ~100ms poll used by
// the original sequencer's orchestrator loop.
const pollInterval = 100 * time.Millisecond

// BatchConfig is the subset of the configuration surface the
// orchestrator and batch engine consume (spec §6.5).
type BatchConfig struct {
	MaxBatchSize      int
	TimeoutIntervalMS uint64
	MinBatchSize      int // advisory only; see spec §9 decision #3
	MaxGasLimit       uint64
}

// BatchSink receives every sealed (Batch, BatchMetadata) pair.
type BatchSink interface {
	Seal(ctx context.Context, batch Batch, metadata BatchMetadata) error
}

// Orchestrator runs the timer-driven loop that drains the forced queue
// and the normal pool, enforces count and gas caps, invokes the
// scheduler and batch engine, and emits sealed batches.
type Orchestrator struct {
	forced    *ForcedQueue
	pool      *TxPool
	scheduler *Scheduler
	engine    *BatchEngine
	config    BatchConfig
	sink      BatchSink
	metrics   *metrics.Metrics
}

// NewOrchestrator wires the forced queue, normal pool, scheduler, batch
// engine, and sink into an Orchestrator. metrics may be nil.
func NewOrchestrator(
	forced *ForcedQueue,
	pool *TxPool,
	scheduler *Scheduler,
	engine *BatchEngine,
	config BatchConfig,
	sink BatchSink,
	m *metrics.Metrics,
) *Orchestrator {
	return &Orchestrator{
		forced:    forced,
		pool:      pool,
		scheduler: scheduler,
		engine:    engine,
		config:    config,
		sink:      sink,
		metrics:   m,
	}
}

// Run executes the main loop until ctx is cancelled. It sleeps for a
// short fixed poll interval, and once timeout_interval_ms has elapsed
// since the last seal (successful or empty), invokes produceBatch. The
// timer is reset after every production attempt except one that errored,
// so a failed production retries on the next tick.
func (o *Orchestrator) Run(ctx context.Context) {
	log.Info("batch orchestrator starting",
		"maxBatchSize", o.config.MaxBatchSize,
		"timeoutIntervalMS", o.config.TimeoutIntervalMS,
		"minBatchSize", o.config.MinBatchSize,
		"maxGasLimit", o.config.MaxGasLimit,
	)

	timeout := time.Duration(o.config.TimeoutIntervalMS) * time.Millisecond
	lastSeal := time.Now()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("batch orchestrator stopping")
			return
		case now := <-ticker.C:
			if now.Sub(lastSeal) < timeout {
				continue
			}

			batch, metadata, err := o.produceBatch()
			if err != nil {
				log.Warn("failed to produce batch", "err", err)
				continue // do not reset lastSeal; retry next tick
			}
			lastSeal = time.Now()

			if batch == nil {
				log.Debug("no transactions available for batching")
				continue
			}

			log.Info("batch sealed", "batchID", metadata.BatchID, "txCount", metadata.TxCount, "forcedTxCount", metadata.ForcedTxCount)
			if err := o.sink.Seal(ctx, *batch, *metadata); err != nil {
				log.Warn("failed to hand off sealed batch", "batchID", metadata.BatchID, "err", err)
			}
		}
	}
}

// produceBatch implements spec §4.8: drain forced transactions gating on
// gas, drain up to the remaining count budget from the normal pool
// gating on gas (stopping at the first overflow), schedule, and seal.
// Returns (nil, nil, nil) when there is nothing to batch.
func (o *Orchestrator) produceBatch() (*Batch, *BatchMetadata, error) {
	forcedTxs := o.forced.DrainAll()

	acceptedForced := make([]ForcedTransaction, 0, len(forcedTxs))
	wrappedForced := make([]Transaction, 0, len(forcedTxs))
	for _, tx := range forcedTxs {
		wrapped := WrapForced(tx)
		if o.engine.CanAdd(wrappedForced, wrapped) {
			acceptedForced = append(acceptedForced, tx)
			wrappedForced = append(wrappedForced, wrapped)
			continue
		}
		// Open question (spec §9): dropped rather than re-queued. It is
		// the L1 collaborator's responsibility to re-emit.
		log.Warn("forced transaction exceeds gas limit, dropping from this batch", "l1TxHash", tx.L1TxHash, "l1Block", tx.L1BlockNumber)
		if o.metrics != nil {
			o.metrics.ForcedTxDropped.Inc()
		}
	}

	remaining := o.config.MaxBatchSize - len(acceptedForced)
	if remaining < 0 {
		remaining = 0
	}
	normalTxs := o.pool.Drain(remaining)

	acceptedNormal := make([]UserTransaction, 0, len(normalTxs))
	combined := append([]Transaction{}, wrappedForced...)
	for _, tx := range normalTxs {
		wrapped := WrapNormal(tx)
		if !o.engine.CanAdd(combined, wrapped) {
			break // first overflow stops iteration; preserves FIFO contract
		}
		combined = append(combined, wrapped)
		acceptedNormal = append(acceptedNormal, tx)
	}

	// Drained transactions that did not fit go back to the front of the
	// pool, ahead of anything pushed since the drain, in their original order.
	if rest := normalTxs[len(acceptedNormal):]; len(rest) > 0 {
		o.pool.mu.Lock()
		requeued := make([]UserTransaction, 0, len(rest)+len(o.pool.txs))
		o.pool.txs = append(append(requeued, rest...), o.pool.txs...)
		o.pool.mu.Unlock()
	}

	if o.metrics != nil {
		o.metrics.PoolDepth.Set(float64(o.pool.Len()))
		o.metrics.ForcedQueueDepth.Set(float64(o.forced.Len()))
	}

	if len(acceptedForced) == 0 && len(acceptedNormal) == 0 {
		return nil, nil, nil
	}

	ordered := o.scheduler.Schedule(acceptedForced, acceptedNormal)
	batch := o.engine.Seal(ordered)

	metadata := BatchMetadata{
		BatchID:          batch.BatchID,
		TxCount:          len(ordered),
		ForcedTxCount:    len(acceptedForced),
		Timestamp:        batch.Timestamp,
		SchedulingPolicy: o.scheduler.PolicyName(),
	}

	if o.metrics != nil {
		o.metrics.BatchesSealed.Inc()
		o.metrics.BatchTxCount.Observe(float64(metadata.TxCount))

		var gas uint64
		for _, tx := range ordered {
			gas = saturatingAddUint64(gas, tx.GasLimit())
		}
		o.metrics.BatchGasUsed.Observe(float64(gas))

		if metadata.TxCount < o.config.MinBatchSize {
			o.metrics.BatchesBelowMin.Inc()
		}
	}

	return &batch, &metadata, nil
}

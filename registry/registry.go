// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry is the persistent batch-metadata registry collaborator:
// out of scope for the sequencer core, which only consumes a Sink.
// Grounded on original_source/src/registry/database.rs, which stubs the
// same planned-but-unimplemented database-backed store.
package registry

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/log"

	"github.com/luxfi/sequencer-core/core/sequencer"
)

// Sink receives BatchMetadata for every batch the orchestrator seals.
type Sink interface {
	Store(ctx context.Context, metadata sequencer.BatchMetadata) error
}

// MemoryRegistry is an in-memory Sink, sufficient until a real database
// (SQLite/Postgres, as sketched by the original's TODOs) is wired in.
type MemoryRegistry struct {
	mu      sync.RWMutex
	batches []sequencer.BatchMetadata
}

// NewMemoryRegistry returns an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{}
}

// Store appends metadata to the registry.
func (r *MemoryRegistry) Store(_ context.Context, metadata sequencer.BatchMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.batches = append(r.batches, metadata)
	return nil
}

// All returns a snapshot of every stored BatchMetadata, in storage order.
func (r *MemoryRegistry) All() []sequencer.BatchMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sequencer.BatchMetadata, len(r.batches))
	copy(out, r.batches)
	return out
}

// LoggingSink decorates an inner Sink, logging every stored batch before
// delegating, the way the teacher's service layers log around every
// externally-visible side effect.
type LoggingSink struct {
	Inner Sink
}

// Store logs metadata then delegates to the inner sink.
func (s *LoggingSink) Store(ctx context.Context, metadata sequencer.BatchMetadata) error {
	log.Info("batch metadata stored",
		"batchID", metadata.BatchID,
		"txCount", metadata.TxCount,
		"forcedTxCount", metadata.ForcedTxCount,
		"policy", metadata.SchedulingPolicy,
	)
	return s.Inner.Store(ctx, metadata)
}

// BatchSinkAdapter satisfies sequencer.BatchSink (which hands over both
// the full Batch and its BatchMetadata) by forwarding only the metadata
// to an underlying Sink — the registry is metadata-only by design (spec
// §6.3); full batch bodies are not persisted here.
type BatchSinkAdapter struct {
	Sink Sink
}

// Seal implements sequencer.BatchSink.
func (a *BatchSinkAdapter) Seal(ctx context.Context, _ sequencer.Batch, metadata sequencer.BatchMetadata) error {
	return a.Sink.Store(ctx, metadata)
}

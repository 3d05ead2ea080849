// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package l1 is the L1 event subscriber collaborator: out of scope for
// the sequencer core, which only consumes the forced queue's Push
// operation. Grounded on original_source/src/l1/listener.rs, a
// deliberately unfinished collaborator in the original — kept unfinished
// here for the same reason, since subscribing to a live L1 RPC endpoint
// is explicitly out of scope for this spec.
package l1

import (
	"context"

	"github.com/ethereum/go-ethereum/log"

	"github.com/luxfi/sequencer-core/config"
	"github.com/luxfi/sequencer-core/core/sequencer"
)

// ForcedQueue is the subset of sequencer.ForcedQueue the listener needs.
type ForcedQueue interface {
	Push(tx sequencer.ForcedTransaction)
}

// Listener watches an L1 bridge contract for Deposit and ForcedExit
// events and forwards them to a ForcedQueue. Connection, subscription,
// and reorg handling are out of scope for this spec (spec §1); Start is
// a placeholder a real L1 client wires into.
type Listener struct {
	cfg   config.L1Config
	queue ForcedQueue
}

// NewListener returns a Listener that will push decoded forced
// transactions onto queue.
func NewListener(cfg config.L1Config, queue ForcedQueue) *Listener {
	return &Listener{cfg: cfg, queue: queue}
}

// Start would dial cfg.RPCURL and subscribe to bridge events at
// cfg.BridgeAddress starting from cfg.StartBlock. Left unimplemented:
// connecting to a live L1 node and decoding bridge logs is the external
// collaborator's concern, not the sequencer core's.
func (l *Listener) Start(ctx context.Context) error {
	log.Info("L1 listener starting", "rpcURL", l.cfg.RPCURL, "bridge", l.cfg.BridgeAddress, "startBlock", l.cfg.StartBlock)
	<-ctx.Done()
	return ctx.Err()
}

// Ingest is the forced-ingestion entry point (spec §6.2): the caller
// guarantees uniqueness by L1TxHash, the queue does not deduplicate.
func (l *Listener) Ingest(tx sequencer.ForcedTransaction) {
	l.queue.Push(tx)
}

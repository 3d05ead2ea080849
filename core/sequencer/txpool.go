// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import "sync"

// TxPool is a bounded-by-memory FIFO of admitted user transactions.
// Writers hold the lock only for the duration of the append or drain;
// the orchestrator's drain briefly holds it exclusively.
type TxPool struct {
	mu  sync.Mutex
	txs []UserTransaction
}

// NewTxPool returns an empty transaction pool.
func NewTxPool() *TxPool {
	return &TxPool{}
}

// Push appends tx to the back of the pool.
func (p *TxPool) Push(tx UserTransaction) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.txs = append(p.txs, tx)
}

// Drain removes and returns up to n transactions from the front of the
// pool, in insertion order.
func (p *TxPool) Drain(n int) []UserTransaction {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n > len(p.txs) {
		n = len(p.txs)
	}
	out := make([]UserTransaction, n)
	copy(out, p.txs[:n])
	p.txs = p.txs[n:]
	return out
}

// Len reports the current number of pending transactions.
func (p *TxPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.txs)
}

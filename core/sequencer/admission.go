// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/luxfi/sequencer-core/core/sequencer/metrics"
)

// Admission is the façade exposed to the RPC collaborator: validate,
// advance the sender's nonce, enqueue, and confirm — exactly once per
// call.
type Admission struct {
	validator *Validator
	state     *StateCache
	pool      *TxPool
	metrics   *metrics.Metrics
}

// NewAdmission wires a Validator, StateCache, and TxPool into a single
// admission entry point. metrics may be nil to disable instrumentation.
func NewAdmission(validator *Validator, state *StateCache, pool *TxPool, m *metrics.Metrics) *Admission {
	return &Admission{validator: validator, state: state, pool: pool, metrics: m}
}

// Submit validates tx, and on success increments the sender's nonce
// before pushing tx onto the pool — so a second concurrent submission
// from the same sender observes the advanced nonce. It never returns an
// error for validation failures; those are encoded in the returned
// SoftConfirmation's status.
func (a *Admission) Submit(tx UserTransaction) SoftConfirmation {
	hash := tx.Hash()
	now := uint64(time.Now().UnixMilli())

	if err := a.validator.Validate(&tx); err != nil {
		log.Debug("transaction rejected", "hash", hash, "from", tx.From, "reason", err)
		if a.metrics != nil {
			a.metrics.AdmissionRejected.WithLabelValues(rejectReason(err)).Inc()
		}
		return SoftConfirmation{
			TxHash:    hash,
			Status:    ConfirmationStatus{Accepted: false, Reason: err.Error()},
			Timestamp: now,
		}
	}

	a.state.IncrementNonce(tx.From)
	a.pool.Push(tx)

	log.Debug("transaction admitted", "hash", hash, "from", tx.From, "nonce", tx.Nonce)
	if a.metrics != nil {
		a.metrics.AdmissionAccepted.Inc()
		a.metrics.PoolDepth.Set(float64(a.pool.Len()))
	}

	return SoftConfirmation{
		TxHash:    hash,
		Status:    ConfirmationStatus{Accepted: true},
		Timestamp: now,
	}
}

// rejectReason turns a validation error into a stable, low-cardinality
// metric label.
func rejectReason(err error) string {
	switch err.(type) {
	case *InvalidNonceError:
		return "invalid_nonce"
	case *InsufficientBalanceError:
		return "insufficient_balance"
	case *GasLimitExceededError:
		return "gas_limit_exceeded"
	default:
		if err == ErrInvalidSignature {
			return "invalid_signature"
		}
		return "unknown"
	}
}

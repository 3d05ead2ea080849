// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sequencer implements the core of an L2 rollup sequencer: admission
// of user transactions, ingestion of forced L1 transactions, pluggable
// ordering policies, and timer-driven batch sealing under count and gas
// budgets.
package sequencer

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// ForcedEventType distinguishes the two kinds of L1 events that force
// inclusion of a transaction.
type ForcedEventType uint8

const (
	ForcedEventDeposit ForcedEventType = iota
	ForcedEventForcedExit
)

func (t ForcedEventType) String() string {
	switch t {
	case ForcedEventDeposit:
		return "Deposit"
	case ForcedEventForcedExit:
		return "ForcedExit"
	default:
		return "Unknown"
	}
}

// UserTransaction is a transaction submitted by a user through the RPC
// admission entry point.
type UserTransaction struct {
	From      common.Address
	To        common.Address
	Value     *uint256.Int
	Nonce     uint64
	GasPrice  *uint256.Int
	GasLimit  uint64
	Signature [65]byte
	Timestamp uint64 // unix milliseconds

	// BoostBid is the optional TimeBoost bid; nil means "no bid", treated
	// as zero by every policy and by the hash.
	BoostBid *uint256.Int
}

// ForcedTransaction is a transaction originating from an L1 event (deposit
// or forced exit) that must be included regardless of validation.
type ForcedTransaction struct {
	TxHash        common.Hash
	From          common.Address
	To            common.Address
	Value         *uint256.Int
	Nonce         uint64
	GasLimit      uint64
	L1TxHash      common.Hash
	L1BlockNumber uint64
	EventType     ForcedEventType
	Timestamp     uint64
}

// Transaction is the tagged variant the scheduler and batch engine operate
// over: either a wrapped UserTransaction or a wrapped ForcedTransaction.
type Transaction struct {
	Normal *UserTransaction
	Forced *ForcedTransaction
}

// IsForced reports whether this entry wraps a forced transaction.
func (t Transaction) IsForced() bool {
	return t.Forced != nil
}

// GasLimit returns the gas limit of the wrapped transaction.
func (t Transaction) GasLimit() uint64 {
	if t.Forced != nil {
		return t.Forced.GasLimit
	}
	if t.Normal != nil {
		return t.Normal.GasLimit
	}
	return 0
}

// WrapNormal wraps a UserTransaction as a generic Transaction.
func WrapNormal(tx UserTransaction) Transaction {
	return Transaction{Normal: &tx}
}

// WrapForced wraps a ForcedTransaction as a generic Transaction.
func WrapForced(tx ForcedTransaction) Transaction {
	return Transaction{Forced: &tx}
}

// AccountState is the cached (balance, nonce) pair for one address.
type AccountState struct {
	Address common.Address
	Balance *uint256.Int
	Nonce   uint64
}

// Batch is a sealed, numbered group of ordered transactions.
type Batch struct {
	BatchID        uint64
	Transactions   []Transaction
	PrevStateRoot  common.Hash // currently always the zero hash
	Timestamp      uint64
}

// BatchMetadata is the lightweight summary of a sealed batch, handed to the
// registry sink.
type BatchMetadata struct {
	BatchID          uint64
	TxCount          int
	ForcedTxCount    int
	Timestamp        uint64
	SchedulingPolicy string
}

// ConfirmationStatus is the outcome of an admission attempt.
type ConfirmationStatus struct {
	Accepted bool
	Reason   string // populated only when Accepted is false
}

// SoftConfirmation is returned exactly once per admission call.
type SoftConfirmation struct {
	TxHash    common.Hash
	Status    ConfirmationStatus
	Timestamp uint64
}

// Hash returns the canonical hash covering every field listed in the spec:
// from || to || be256(value) || be64(nonce) || be256(gas_price) ||
// be64(timestamp) || be256(boost_bid_or_zero). gas_limit and signature are
// deliberately not covered.
func (tx *UserTransaction) Hash() common.Hash {
	var buf [20 + 20 + 32 + 8 + 32 + 8 + 32]byte
	off := 0
	copy(buf[off:], tx.From.Bytes())
	off += 20
	copy(buf[off:], tx.To.Bytes())
	off += 20

	writeU256(buf[off:off+32], tx.Value)
	off += 32

	binary.BigEndian.PutUint64(buf[off:off+8], tx.Nonce)
	off += 8

	writeU256(buf[off:off+32], tx.GasPrice)
	off += 32

	binary.BigEndian.PutUint64(buf[off:off+8], tx.Timestamp)
	off += 8

	writeU256(buf[off:off+32], tx.BoostBid)

	return common.BytesToHash(crypto.Keccak256(buf[:]))
}

// writeU256 writes v, big-endian, right-aligned into a 32-byte slot. A nil
// v (the "no boost bid" case) is encoded as 32 zero bytes.
func writeU256(dst []byte, v *uint256.Int) {
	if v == nil {
		return
	}
	b := v.Bytes32()
	copy(dst, b[:])
}

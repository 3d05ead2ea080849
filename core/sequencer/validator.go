// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// admissionGasEstimate is the fixed gas estimate used to compute the
// admission fee, independent of the transaction's own declared gas_limit.
const admissionGasEstimate = 21000

// Validator decides whether a UserTransaction may enter the pool. It holds
// a shared reference to the state cache and performs no mutation itself.
type Validator struct {
	state  *StateCache
	maxGas uint64 // 0 disables the gas-limit admission check
}

// NewValidator returns a Validator reading account state from cache. If
// maxGas is non-zero, transactions whose own GasLimit exceeds it are
// rejected at admission (spec §9, second open question).
func NewValidator(cache *StateCache, maxGas uint64) *Validator {
	return &Validator{state: cache, maxGas: maxGas}
}

// Validate runs the ordered checks from spec §4.2: signature, then nonce,
// then balance, followed by the gas-limit cap check when maxGas is
// non-zero. The first failing check wins.
func (v *Validator) Validate(tx *UserTransaction) error {
	if err := v.checkSignature(tx); err != nil {
		return err
	}

	expected := v.state.GetOrDefault(tx.From).Nonce
	if tx.Nonce != expected {
		return &InvalidNonceError{Expected: expected, Got: tx.Nonce}
	}

	if err := v.checkBalance(tx); err != nil {
		return err
	}

	// Additional admission-time check (spec §9 open question #2): a tx
	// whose own gas_limit already exceeds the batch gas cap can never be
	// sealed, so reject it here instead of letting it block forever.
	if v.maxGas != 0 && tx.GasLimit > v.maxGas {
		return &GasLimitExceededError{GasLimit: tx.GasLimit, MaxGas: v.maxGas}
	}

	return nil
}

func (v *Validator) checkSignature(tx *UserTransaction) error {
	hash := tx.Hash()
	pub, err := crypto.SigToPub(hash[:], tx.Signature[:])
	if err != nil {
		return ErrInvalidSignature
	}
	if crypto.PubkeyToAddress(*pub) != tx.From {
		return ErrInvalidSignature
	}
	return nil
}

func (v *Validator) checkBalance(tx *UserTransaction) error {
	acc := v.state.GetOrDefault(tx.From)

	fee, feeOverflow := new(uint256.Int).MulOverflow(tx.GasPrice, uint256.NewInt(admissionGasEstimate))

	required, overflow := new(uint256.Int).AddOverflow(tx.Value, fee)
	if overflow || feeOverflow {
		return &InsufficientBalanceError{Required: required, Available: acc.Balance}
	}
	if acc.Balance.Lt(required) {
		return &InsufficientBalanceError{Required: required, Available: acc.Balance}
	}
	return nil
}

// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

// ErrInvalidSignature is returned when signature recovery fails or the
// recovered signer does not match the claimed sender.
var ErrInvalidSignature = errors.New("invalid signature")

// InvalidNonceError is returned when a submitted nonce does not equal the
// sender's expected next nonce.
type InvalidNonceError struct {
	Expected uint64
	Got      uint64
}

func (e *InvalidNonceError) Error() string {
	return fmt.Sprintf("invalid nonce: expected %d, got %d", e.Expected, e.Got)
}

// InsufficientBalanceError is returned when balance < value + admission
// fee.
type InsufficientBalanceError struct {
	Required  *uint256.Int
	Available *uint256.Int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %s, available %s", e.Required, e.Available)
}

// GasLimitExceededError is returned when a transaction's own declared gas
// limit already exceeds the batch-level cap, which would otherwise admit a
// transaction that can never be sealed.
type GasLimitExceededError struct {
	GasLimit uint64
	MaxGas   uint64
}

func (e *GasLimitExceededError) Error() string {
	return fmt.Sprintf("gas limit %d exceeds maximum batch gas %d", e.GasLimit, e.MaxGas)
}

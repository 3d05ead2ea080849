// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// StateCache is a concurrent mapping from account address to (balance,
// nonce), shared by reference across the admission path, the L1
// collaborator, and the orchestrator.
//
// Many readers may run in parallel; a mutator excludes both readers and
// other mutators. A plain map guarded by a RWMutex is used deliberately
// instead of a bounded cache (e.g. an LRU): evicting an account would
// silently drop its nonce history and break the monotonic-nonce
// invariant admission depends on.
type StateCache struct {
	mu       sync.RWMutex
	accounts map[common.Address]AccountState
}

// NewStateCache returns an empty state cache.
func NewStateCache() *StateCache {
	return &StateCache{
		accounts: make(map[common.Address]AccountState),
	}
}

// GetOrDefault returns the stored account or, if absent, a zero-value
// account for address. It never inserts: new accounts appear in the cache
// only via a mutating call.
func (c *StateCache) GetOrDefault(address common.Address) AccountState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if acc, ok := c.accounts[address]; ok {
		return acc
	}
	return AccountState{Address: address, Balance: uint256.NewInt(0), Nonce: 0}
}

// IncrementNonce atomically bumps address's nonce by one, inserting a
// fresh zero-balance account at nonce 1 if address was previously unknown.
func (c *StateCache) IncrementNonce(address common.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()

	acc, ok := c.accounts[address]
	if !ok {
		c.accounts[address] = AccountState{Address: address, Balance: uint256.NewInt(0), Nonce: 1}
		return
	}
	acc.Nonce++
	c.accounts[address] = acc
}

// Upsert replaces the stored entry for state.Address.
func (c *StateCache) Upsert(state AccountState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accounts[state.Address] = state
}

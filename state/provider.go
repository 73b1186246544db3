// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"sync"

	"github.com/trailmark-inc/trailmarkd/address"
)

// Provider - the external ledger surface
//
// Get returns nil for an absent address; any non nil error is an I/O
// fault and is fatal for the surrounding action, never a validation
// outcome
type Provider interface {
	Get(addr address.Address) ([]byte, error)
	Set(addr address.Address, value []byte) error
}

// MemoryProvider - map backed provider for tests and simulations
type MemoryProvider struct {
	sync.RWMutex
	data map[address.Address][]byte
}

// NewMemoryProvider - create an empty in-memory ledger
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		data: make(map[address.Address][]byte),
	}
}

// Get - read a stored value
//
// this returns a copy so later writes cannot alias committed state
func (p *MemoryProvider) Get(addr address.Address) ([]byte, error) {
	p.RLock()
	defer p.RUnlock()
	value, ok := p.data[addr]
	if !ok {
		return nil, nil
	}
	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

// Set - store a value
func (p *MemoryProvider) Set(addr address.Address, value []byte) error {
	p.Lock()
	defer p.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	p.data[addr] = stored
	return nil
}

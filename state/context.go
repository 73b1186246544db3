// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"sort"

	cache "github.com/patrickmn/go-cache"

	"github.com/trailmark-inc/trailmarkd/address"
	"github.com/trailmark-inc/trailmarkd/fault"
)

// operation tags for cached entries
const (
	opRead = iota
	opPut
)

type cacheData struct {
	op    int
	value []byte
}

// Context - buffered view of one provider snapshot for one action
//
// not safe for concurrent use: action processing is single threaded
// by contract
type Context struct {
	provider Provider
	cache    *cache.Cache
	inputs   map[address.Address]struct{}
	outputs  map[address.Address]struct{}
}

// NewContext - wrap a provider for a single action
func NewContext(provider Provider) *Context {
	return &Context{
		provider: provider,
		cache:    cache.New(cache.NoExpiration, 0),
		inputs:   make(map[address.Address]struct{}),
		outputs:  make(map[address.Address]struct{}),
	}
}

// Get - read through the buffer
//
// a buffered write is visible to later reads within the same action;
// nil means the address is unoccupied
func (context *Context) Get(addr address.Address) ([]byte, error) {
	context.inputs[addr] = struct{}{}

	if obj, found := context.cache.Get(addr.String()); found {
		return obj.(cacheData).value, nil
	}

	value, err := context.provider.Get(addr)
	if nil != err {
		return nil, fault.StateReadFailed
	}
	context.cache.Set(addr.String(), cacheData{op: opRead, value: value}, cache.NoExpiration)
	return value, nil
}

// Set - buffer a write
//
// nothing reaches the provider until Commit
func (context *Context) Set(addr address.Address, value []byte) {
	context.outputs[addr] = struct{}{}
	context.cache.Set(addr.String(), cacheData{op: opPut, value: value}, cache.NoExpiration)
}

// Commit - apply every buffered write to the provider
//
// writes are applied in address order so identical actions produce
// identical provider call sequences
func (context *Context) Commit() error {
	for _, addr := range context.Outputs() {
		obj, found := context.cache.Get(addr.String())
		if !found || opPut != obj.(cacheData).op {
			continue
		}
		if err := context.provider.Set(addr, obj.(cacheData).value); nil != err {
			return fault.StateWriteFailed
		}
	}
	return nil
}

// Discard - drop every buffered write
//
// the provider is untouched; the context can not be reused afterwards
func (context *Context) Discard() {
	context.cache.Flush()
	context.outputs = make(map[address.Address]struct{})
}

// Inputs - every address read by the action, in address order
func (context *Context) Inputs() []address.Address {
	return sortedAddresses(context.inputs)
}

// Outputs - every address written by the action, in address order
func (context *Context) Outputs() []address.Address {
	return sortedAddresses(context.outputs)
}

func sortedAddresses(set map[address.Address]struct{}) []address.Address {
	result := make([]address.Address, 0, len(set))
	for addr := range set {
		result = append(result, addr)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].String() < result[j].String()
	})
	return result
}

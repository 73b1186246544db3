// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pike

import (
	"github.com/trailmark-inc/trailmarkd/address"
	"github.com/trailmark-inc/trailmarkd/fault"
)

// Getter - minimal read surface needed to resolve identities
//
// satisfied by a state context, so identity reads share the action's
// snapshot and show up in its declared inputs
type Getter interface {
	Get(addr address.Address) ([]byte, error)
}

// StateReader - Provider implementation decoding identity records
// from ledger state
type StateReader struct {
	state Getter
}

// NewStateReader - wrap a state getter
func NewStateReader(state Getter) *StateReader {
	return &StateReader{state: state}
}

// Agent - resolve a public key to a registered agent
func (reader *StateReader) Agent(publicKey string) (*Agent, error) {
	packed, err := reader.state.Get(address.ForAgent(publicKey))
	if nil != err {
		return nil, err
	}
	if nil == packed {
		return nil, fault.AgentNotFound
	}
	l, err := UnpackAgentList(packed)
	if nil != err {
		return nil, err
	}
	agent, ok := l.Find(publicKey)
	if !ok {
		return nil, fault.AgentNotFound
	}
	return &agent, nil
}

// Organization - resolve an organization id
func (reader *StateReader) Organization(id string) (*Organization, error) {
	packed, err := reader.state.Get(address.ForOrganization(id))
	if nil != err {
		return nil, err
	}
	if nil == packed {
		return nil, fault.OrganizationNotFound
	}
	l, err := UnpackOrganizationList(packed)
	if nil != err {
		return nil, err
	}
	org, ok := l.Find(id)
	if !ok {
		return nil, fault.OrganizationNotFound
	}
	return &org, nil
}

// HasPermission - true if the agent's organization roles grant the
// permission
//
// the admin role grants everything; other roles grant exactly the
// permission they name
func (reader *StateReader) HasPermission(agent *Agent, permission string) bool {
	if nil == agent {
		return false
	}
	for _, role := range agent.Roles {
		if AdminRole == role || role == permission {
			return true
		}
	}
	return false
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pike

import (
	"sort"

	"github.com/trailmark-inc/trailmarkd/fault"
	"github.com/trailmark-inc/trailmarkd/util"
)

// Packed - packed identity records are just a byte slice
type Packed []byte

const maximumListCount = 1 << 20

// Add - insert or replace an agent, keyed by public key
func (l AgentList) Add(agent Agent) AgentList {
	for i := range l {
		if l[i].PublicKey == agent.PublicKey {
			l[i] = agent
			return l
		}
	}
	l = append(l, agent)
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].PublicKey < l[j].PublicKey
	})
	return l
}

// Add - insert or replace an organization, keyed by id
func (l OrganizationList) Add(org Organization) OrganizationList {
	for i := range l {
		if l[i].Id == org.Id {
			l[i] = org
			return l
		}
	}
	l = append(l, org)
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Id < l[j].Id
	})
	return l
}

// Pack - wire form of an agent list container
func (l AgentList) Pack() Packed {
	buffer := util.ToVarint64(uint64(len(l)))
	for i := range l {
		buffer = util.AppendString(buffer, l[i].PublicKey)
		buffer = util.AppendString(buffer, l[i].OrgId)
		buffer = util.AppendBool(buffer, l[i].Active)
		buffer = util.AppendUint64(buffer, uint64(len(l[i].Roles)))
		for _, role := range l[i].Roles {
			buffer = util.AppendString(buffer, role)
		}
	}
	return buffer
}

// Pack - wire form of an organization list container
func (l OrganizationList) Pack() Packed {
	buffer := util.ToVarint64(uint64(len(l)))
	for i := range l {
		buffer = util.AppendString(buffer, l[i].Id)
		buffer = util.AppendString(buffer, l[i].Name)
		buffer = util.AppendString(buffer, l[i].Address)
	}
	return buffer
}

// UnpackAgentList - decode an agent list container
func UnpackAgentList(packed Packed) (AgentList, error) {
	u := util.NewUnpacker(packed)
	n := u.Uint64()
	if n > maximumListCount {
		return nil, fault.NotEntityPack
	}
	l := make(AgentList, n)
	for i := 0; i < int(n); i += 1 {
		l[i].PublicKey = u.String()
		l[i].OrgId = u.String()
		l[i].Active = u.Bool()
		roles := u.Uint64()
		if roles > maximumListCount {
			return nil, fault.NotEntityPack
		}
		if roles > 0 {
			l[i].Roles = make([]string, roles)
			for j := 0; j < int(roles); j += 1 {
				l[i].Roles[j] = u.String()
			}
		}
	}
	if nil != u.Error() {
		return nil, u.Error()
	}
	if !u.Done() {
		return nil, fault.NotEntityPack
	}
	return l, nil
}

// UnpackOrganizationList - decode an organization list container
func UnpackOrganizationList(packed Packed) (OrganizationList, error) {
	u := util.NewUnpacker(packed)
	n := u.Uint64()
	if n > maximumListCount {
		return nil, fault.NotEntityPack
	}
	l := make(OrganizationList, n)
	for i := 0; i < int(n); i += 1 {
		l[i].Id = u.String()
		l[i].Name = u.String()
		l[i].Address = u.String()
	}
	if nil != u.Error() {
		return nil, u.Error()
	}
	if !u.Done() {
		return nil, fault.NotEntityPack
	}
	return l, nil
}

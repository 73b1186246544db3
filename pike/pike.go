// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pike

// permissions checked by the schema registry
const (
	CanCreateSchema = "can_create_schema"
	CanUpdateSchema = "can_update_schema"
)

// AdminRole - grants every permission within the organization
const AdminRole = "admin"

// Agent - one registered signing identity
type Agent struct {
	PublicKey string   `json:"publicKey"`
	OrgId     string   `json:"orgId"`
	Active    bool     `json:"active"`
	Roles     []string `json:"roles"`
}

// Organization - one registered organization
type Organization struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Provider - the external authorization surface consumed by the
// handlers
//
// Agent and Organization return a not found fault for unregistered
// identities; I/O faults pass through unchanged
type Provider interface {
	Agent(publicKey string) (*Agent, error)
	Organization(id string) (*Organization, error)
	HasPermission(agent *Agent, permission string) bool
}

// AgentList - collision list ordered by public key
type AgentList []Agent

// OrganizationList - collision list ordered by organization id
type OrganizationList []Organization

// Find - locate an agent by public key
func (l AgentList) Find(publicKey string) (Agent, bool) {
	for i := range l {
		if l[i].PublicKey == publicKey {
			return l[i], true
		}
	}
	return Agent{}, false
}

// Find - locate an organization by id
func (l OrganizationList) Find(id string) (Organization, bool) {
	for i := range l {
		if l[i].Id == id {
			return l[i], true
		}
	}
	return Organization{}, false
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pike_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailmark-inc/trailmarkd/address"
	"github.com/trailmark-inc/trailmarkd/fault"
	"github.com/trailmark-inc/trailmarkd/pike"
	"github.com/trailmark-inc/trailmarkd/state"
)

func seedIdentity(t *testing.T, provider *state.MemoryProvider, agent pike.Agent, org pike.Organization) {
	t.Helper()

	agents := pike.AgentList{}.Add(agent)
	require.NoError(t, provider.Set(address.ForAgent(agent.PublicKey), agents.Pack()))

	orgs := pike.OrganizationList{}.Add(org)
	require.NoError(t, provider.Set(address.ForOrganization(org.Id), orgs.Pack()))
}

func TestStateReader(t *testing.T) {
	provider := state.NewMemoryProvider()
	seedIdentity(t, provider,
		pike.Agent{
			PublicKey: "02aaaa",
			OrgId:     "trailmark-farms",
			Active:    true,
			Roles:     []string{pike.CanCreateSchema},
		},
		pike.Organization{
			Id:      "trailmark-farms",
			Name:    "Trailmark Farms",
			Address: "1 Wharf Road",
		},
	)

	reader := pike.NewStateReader(state.NewContext(provider))

	agent, err := reader.Agent("02aaaa")
	require.NoError(t, err)
	assert.Equal(t, "trailmark-farms", agent.OrgId)
	assert.True(t, agent.Active)

	org, err := reader.Organization("trailmark-farms")
	require.NoError(t, err)
	assert.Equal(t, "Trailmark Farms", org.Name)

	_, err = reader.Agent("02zzzz")
	assert.Equal(t, fault.AgentNotFound, err)

	_, err = reader.Organization("nobody")
	assert.Equal(t, fault.OrganizationNotFound, err)
}

func TestHasPermission(t *testing.T) {
	reader := pike.NewStateReader(state.NewContext(state.NewMemoryProvider()))

	scoped := &pike.Agent{Roles: []string{pike.CanCreateSchema}}
	assert.True(t, reader.HasPermission(scoped, pike.CanCreateSchema))
	assert.False(t, reader.HasPermission(scoped, pike.CanUpdateSchema))

	admin := &pike.Agent{Roles: []string{pike.AdminRole}}
	assert.True(t, reader.HasPermission(admin, pike.CanCreateSchema))
	assert.True(t, reader.HasPermission(admin, pike.CanUpdateSchema))

	assert.False(t, reader.HasPermission(nil, pike.CanCreateSchema))
	assert.False(t, reader.HasPermission(&pike.Agent{}, pike.CanCreateSchema))
}

func TestIdentityRoundTrip(t *testing.T) {
	agents := pike.AgentList{}.
		Add(pike.Agent{PublicKey: "02bbbb", OrgId: "one", Active: true}).
		Add(pike.Agent{PublicKey: "02aaaa", OrgId: "two", Active: false, Roles: []string{"x", "y"}})

	// ordered by public key
	require.Equal(t, "02aaaa", agents[0].PublicKey)

	unpacked, err := pike.UnpackAgentList(agents.Pack())
	require.NoError(t, err)
	assert.Equal(t, agents, unpacked)

	orgs := pike.OrganizationList{}.
		Add(pike.Organization{Id: "one", Name: "One"}).
		Add(pike.Organization{Id: "one", Name: "One Replaced"})
	require.Equal(t, 1, len(orgs))

	unpackedOrgs, err := pike.UnpackOrganizationList(orgs.Pack())
	require.NoError(t, err)
	assert.Equal(t, orgs, unpackedOrgs)
}

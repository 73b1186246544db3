// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailmark-inc/trailmarkd/action"
	"github.com/trailmark-inc/trailmarkd/address"
	"github.com/trailmark-inc/trailmarkd/fault"
	"github.com/trailmark-inc/trailmarkd/pike"
	"github.com/trailmark-inc/trailmarkd/record"
)

func TestSchemaCreate(t *testing.T) {
	provider := newLedger(t)

	applyDeclared(t, provider, envelope(aliceKey, 1000, &action.SchemaCreate{
		Name:        fishSchemaName,
		Description: "wild caught fish",
		Properties:  fishDefinitions(),
	}))

	schema := readSchema(t, provider, fishSchemaName)
	assert.Equal(t, fishSchemaName, schema.Name)
	assert.Equal(t, "wild caught fish", schema.Description)
	assert.Equal(t, pacificOrg, schema.Owner, "owner must be the signer's organization")
	assert.Equal(t, fishDefinitions(), schema.Properties)
}

func TestSchemaCreateDuplicate(t *testing.T) {
	provider := newLedger(t)
	createFishSchema(t, provider)

	err := apply(t, provider, envelope(aliceKey, 1001, &action.SchemaCreate{
		Name:       fishSchemaName,
		Properties: fishDefinitions(),
	}))
	assert.Equal(t, fault.SchemaAlreadyExists, err)
}

func TestSchemaCreateAuthorization(t *testing.T) {
	provider := newLedger(t)

	create := func(signer string) error {
		return apply(t, provider, envelope(signer, 1000, &action.SchemaCreate{
			Name:       fishSchemaName,
			Properties: fishDefinitions(),
		}))
	}

	assert.Equal(t, fault.PermissionDenied, create(bobKey), "agent without schema roles")
	assert.Equal(t, fault.AgentNotActive, create(daveKey), "deactivated agent")
	assert.Equal(t, fault.AgentNotFound, create("02ff00000000000000000000000000000000000000000000000000000000ffff"))

	// an agent whose organization was never registered cannot create a
	// schema owned by it
	erinKey := "02e5000000000000000000000000000000000000000000000000000000000005"
	orphan := pike.AgentList{}.Add(pike.Agent{
		PublicKey: erinKey,
		OrgId:     "org-ghost",
		Active:    true,
		Roles:     []string{pike.CanCreateSchema},
	}).Pack()
	require.NoError(t, provider.Set(address.ForAgent(erinKey), []byte(orphan)))
	assert.Equal(t, fault.OrganizationNotFound, create(erinKey))
}

func TestSchemaCreateRejectsBadPayload(t *testing.T) {
	provider := newLedger(t)

	err := apply(t, provider, envelope(aliceKey, 1000, &action.SchemaCreate{
		Name:       "",
		Properties: fishDefinitions(),
	}))
	assert.Equal(t, fault.EmptySchemaName, err)

	err = apply(t, provider, envelope(aliceKey, 1000, &action.SchemaCreate{
		Name: fishSchemaName,
	}))
	assert.Equal(t, fault.EmptyProperties, err)

	err = apply(t, provider, envelope(aliceKey, 1000, &action.SchemaCreate{
		Name: fishSchemaName,
		Properties: []record.PropertyDefinition{
			{Name: "grade", DataType: record.EnumType},
		},
	}))
	assert.Equal(t, fault.EnumOptionsInvalid, err, "enum without options")

	// nothing was stored by any of the rejected attempts
	packed, getErr := provider.Get(address.ForSchema(fishSchemaName))
	require.NoError(t, getErr)
	assert.Nil(t, packed)
}

func TestSchemaUpdate(t *testing.T) {
	provider := newLedger(t)
	createFishSchema(t, provider)

	applyDeclared(t, provider, envelope(aliceKey, 1002, &action.SchemaUpdate{
		Name: fishSchemaName,
		Properties: []record.PropertyDefinition{
			{Name: "weight", DataType: record.NumberType, NumberExponent: -3},
		},
	}))

	schema := readSchema(t, provider, fishSchemaName)
	require.Equal(t, 4, len(schema.Properties))
	assert.Equal(t, "weight", schema.Properties[3].Name, "new definitions append after existing ones")
}

func TestSchemaUpdateDuplicateName(t *testing.T) {
	provider := newLedger(t)
	createFishSchema(t, provider)

	err := apply(t, provider, envelope(aliceKey, 1002, &action.SchemaUpdate{
		Name: fishSchemaName,
		Properties: []record.PropertyDefinition{
			{Name: "species", DataType: record.StringType},
		},
	}))
	assert.Equal(t, fault.DuplicatePropertyName, err)
}

func TestSchemaUpdateWrongOrganization(t *testing.T) {
	provider := newLedger(t)
	createFishSchema(t, provider)

	// carol holds the schema roles but in another organization
	err := apply(t, provider, envelope(carolKey, 1002, &action.SchemaUpdate{
		Name: fishSchemaName,
		Properties: []record.PropertyDefinition{
			{Name: "weight", DataType: record.NumberType},
		},
	}))
	assert.Equal(t, fault.WrongOwningOrganization, err)
}

func TestSchemaUpdateNotFound(t *testing.T) {
	provider := newLedger(t)

	err := apply(t, provider, envelope(aliceKey, 1002, &action.SchemaUpdate{
		Name: "no-such-schema",
		Properties: []record.PropertyDefinition{
			{Name: "weight", DataType: record.NumberType},
		},
	}))
	assert.Equal(t, fault.SchemaNotFound, err)
}

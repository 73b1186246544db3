// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/require"

	"github.com/trailmark-inc/trailmarkd/action"
	"github.com/trailmark-inc/trailmarkd/address"
	"github.com/trailmark-inc/trailmarkd/pager"
	"github.com/trailmark-inc/trailmarkd/pike"
	"github.com/trailmark-inc/trailmarkd/processor"
	"github.com/trailmark-inc/trailmarkd/record"
	"github.com/trailmark-inc/trailmarkd/state"
)

const testingDirName = "testing"

// Test main entrypoint
func TestMain(m *testing.M) {
	setup()
	result := m.Run()
	teardown()
	os.Exit(result)
}

func setup() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0o700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardown() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

// registered identities
const (
	aliceKey = "02a1000000000000000000000000000000000000000000000000000000000001"
	bobKey   = "02b2000000000000000000000000000000000000000000000000000000000002"
	carolKey = "02c3000000000000000000000000000000000000000000000000000000000003"
	daveKey  = "02d4000000000000000000000000000000000000000000000000000000000004"

	pacificOrg  = "org-pacific"
	atlanticOrg = "org-atlantic"
)

// ledger with identities already registered
//
//	alice: pacific admin
//	bob:   pacific, no organization roles
//	carol: atlantic, schema roles
//	dave:  pacific, deactivated
func newLedger(t *testing.T) *state.MemoryProvider {
	t.Helper()
	provider := state.NewMemoryProvider()

	agents := []pike.Agent{
		{PublicKey: aliceKey, OrgId: pacificOrg, Active: true, Roles: []string{pike.AdminRole}},
		{PublicKey: bobKey, OrgId: pacificOrg, Active: true},
		{PublicKey: carolKey, OrgId: atlanticOrg, Active: true, Roles: []string{pike.CanCreateSchema, pike.CanUpdateSchema}},
		{PublicKey: daveKey, OrgId: pacificOrg, Active: false},
	}
	for _, agent := range agents {
		packed := pike.AgentList{}.Add(agent).Pack()
		require.NoError(t, provider.Set(address.ForAgent(agent.PublicKey), []byte(packed)))
	}

	organizations := []pike.Organization{
		{Id: pacificOrg, Name: "Pacific Fisheries", Address: "1 Harbour Rd"},
		{Id: atlanticOrg, Name: "Atlantic Seafood", Address: "2 Wharf St"},
	}
	for _, org := range organizations {
		packed := pike.OrganizationList{}.Add(org).Pack()
		require.NoError(t, provider.Set(address.ForOrganization(org.Id), []byte(packed)))
	}
	return provider
}

func envelope(signer string, timestamp uint64, payload action.Action) *action.Envelope {
	return &action.Envelope{
		Signer:    signer,
		Timestamp: timestamp,
		Payload:   payload,
	}
}

// run one envelope against a fresh context, committing on success
func apply(t *testing.T, provider *state.MemoryProvider, envelope *action.Envelope) error {
	t.Helper()
	context := state.NewContext(provider)
	err := processor.New().Apply(envelope, context)
	if nil != err {
		context.Discard()
		return err
	}
	require.NoError(t, context.Commit())
	return nil
}

func mustApply(t *testing.T, provider *state.MemoryProvider, envelope *action.Envelope) {
	t.Helper()
	require.NoError(t, apply(t, provider, envelope))
}

// run one envelope and require that every address it actually touched
// was declared in advance against the same pre-state
func applyDeclared(t *testing.T, provider *state.MemoryProvider, envelope *action.Envelope) {
	t.Helper()

	declaredInputs, err := envelope.Payload.Inputs(envelope.Signer, state.NewContext(provider))
	require.NoError(t, err)
	declaredOutputs, err := envelope.Payload.Outputs(envelope.Signer, state.NewContext(provider))
	require.NoError(t, err)

	context := state.NewContext(provider)
	require.NoError(t, processor.New().Apply(envelope, context))

	for _, addr := range context.Inputs() {
		require.Contains(t, declaredInputs, addr, "undeclared input")
	}
	for _, addr := range context.Outputs() {
		require.Contains(t, declaredOutputs, addr, "undeclared output")
	}
	require.NoError(t, context.Commit())
}

// schema fixture: a required string, a scaled number and a gps struct
func fishDefinitions() []record.PropertyDefinition {
	return []record.PropertyDefinition{
		{
			Name:        "species",
			DataType:    record.StringType,
			Required:    true,
			Description: "scientific name",
		},
		{
			Name:           "temperature",
			DataType:       record.NumberType,
			NumberExponent: -6,
		},
		{
			Name:     "location",
			DataType: record.StructType,
			StructProperties: []record.PropertyDefinition{
				{Name: "latitude", DataType: record.NumberType, NumberExponent: -6},
				{Name: "longitude", DataType: record.NumberType, NumberExponent: -6},
			},
		},
	}
}

const fishSchemaName = "fishery-catch"

func createFishSchema(t *testing.T, provider *state.MemoryProvider) {
	t.Helper()
	mustApply(t, provider, envelope(aliceKey, 1000, &action.SchemaCreate{
		Name:        fishSchemaName,
		Description: "wild caught fish",
		Properties:  fishDefinitions(),
	}))
}

func createFishRecord(t *testing.T, provider *state.MemoryProvider, recordId string) {
	t.Helper()
	mustApply(t, provider, envelope(aliceKey, 1001, &action.CreateRecord{
		RecordId:   recordId,
		Schema:     fishSchemaName,
		Properties: []record.PropertyValue{stringValue("species", "Gadus morhua")},
	}))
}

func stringValue(name string, value string) record.PropertyValue {
	return record.PropertyValue{Name: name, DataType: record.StringType, StringValue: value}
}

func numberValue(name string, value int64) record.PropertyValue {
	return record.PropertyValue{Name: name, DataType: record.NumberType, NumberValue: value}
}

// read back committed entities, bypassing any context

func readRecord(t *testing.T, provider *state.MemoryProvider, recordId string) record.Record {
	t.Helper()
	packed, err := provider.Get(address.ForRecord(recordId))
	require.NoError(t, err)
	require.NotNil(t, packed, "record not stored")
	l, err := record.UnpackRecordList(packed)
	require.NoError(t, err)
	r, ok := l.Find(recordId)
	require.True(t, ok, "record not in collision list")
	return r
}

func readSchema(t *testing.T, provider *state.MemoryProvider, name string) record.Schema {
	t.Helper()
	packed, err := provider.Get(address.ForSchema(name))
	require.NoError(t, err)
	require.NotNil(t, packed, "schema not stored")
	l, err := record.UnpackSchemaList(packed)
	require.NoError(t, err)
	schema, ok := l.Find(name)
	require.True(t, ok, "schema not in collision list")
	return schema
}

func readProperty(t *testing.T, provider *state.MemoryProvider, recordId string, name string) record.Property {
	t.Helper()
	packed, err := provider.Get(address.ForProperty(recordId, name))
	require.NoError(t, err)
	require.NotNil(t, packed, "property header not stored")
	l, err := record.UnpackPropertyList(packed)
	require.NoError(t, err)
	property, ok := l.Find(recordId, name)
	require.True(t, ok, "property not in collision list")
	return property
}

func readPage(t *testing.T, provider *state.MemoryProvider, recordId string, name string, page uint16) record.PropertyPage {
	t.Helper()
	packed, err := provider.Get(address.ForPropertyPage(recordId, name, page))
	require.NoError(t, err)
	require.NotNil(t, packed, "page not stored")
	l, err := record.UnpackPropertyPageList(packed)
	require.NoError(t, err)
	p, ok := l.Find(recordId, name)
	require.True(t, ok, "page not in collision list")
	return p
}

func readProposal(t *testing.T, provider *state.MemoryProvider, recordId string, receivingAgent string) record.ProposalList {
	t.Helper()
	packed, err := provider.Get(address.ForProposal(recordId, receivingAgent))
	require.NoError(t, err)
	require.NotNil(t, packed, "proposal not stored")
	l, err := record.UnpackProposalList(packed)
	require.NoError(t, err)
	return l
}

// seed a record and one property directly, for ring buffer edge cases
// that would need tens of thousands of updates to reach organically
func seedPropertyAtPage(
	t *testing.T,
	provider *state.MemoryProvider,
	recordId string,
	name string,
	page pager.PageNumber,
	entries int,
	wrapped bool,
) {
	t.Helper()

	records := record.RecordList{}.Add(record.Record{
		RecordId: recordId,
		Schema:   fishSchemaName,
		Owners: []record.AssociatedAgent{
			{AgentId: aliceKey, Timestamp: 1},
		},
		Custodians: []record.AssociatedAgent{
			{AgentId: aliceKey, Timestamp: 1},
		},
	})
	require.NoError(t, provider.Set(address.ForRecord(recordId), []byte(records.Pack())))

	headers := record.PropertyList{}.Add(record.Property{
		Name:     name,
		RecordId: recordId,
		Definition: record.PropertyDefinition{
			Name:     name,
			DataType: record.NumberType,
		},
		Reporters: []record.Reporter{
			{PublicKey: aliceKey, Authorized: true, Index: 0},
		},
		CurrentPage: page,
		Wrapped:     wrapped,
	})
	require.NoError(t, provider.Set(address.ForProperty(recordId, name), []byte(headers.Pack())))

	values := make([]record.ReportedValue, entries)
	for i := range values {
		values[i] = record.ReportedValue{
			Timestamp: uint64(i + 1),
			Value:     numberValue(name, int64(i)),
		}
	}
	pages := record.PropertyPageList{}.Add(record.PropertyPage{
		Name:           name,
		RecordId:       recordId,
		ReportedValues: values,
	})
	require.NoError(t, provider.Set(address.ForPropertyPage(recordId, name, uint16(page)), []byte(pages.Pack())))
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"github.com/trailmark-inc/trailmarkd/action"
	"github.com/trailmark-inc/trailmarkd/address"
	"github.com/trailmark-inc/trailmarkd/fault"
	"github.com/trailmark-inc/trailmarkd/pike"
	"github.com/trailmark-inc/trailmarkd/record"
	"github.com/trailmark-inc/trailmarkd/state"
)

// register a new schema owned by the signer's organization
func (p *Processor) schemaCreate(
	envelope *action.Envelope,
	a *action.SchemaCreate,
	context *state.Context,
	identity *pike.StateReader,
) error {

	if "" == a.Name {
		return fault.EmptySchemaName
	}
	if 0 == len(a.Properties) {
		return fault.EmptyProperties
	}
	if err := record.CheckDefinitions(a.Properties); nil != err {
		return err
	}

	agent, err := activeAgent(identity, envelope.Signer)
	if nil != err {
		return err
	}
	if !identity.HasPermission(agent, pike.CanCreateSchema) {
		return fault.PermissionDenied
	}

	// the schema is owned by the agent's organization, which must be
	// registered
	if _, err := identity.Organization(agent.OrgId); nil != err {
		return err
	}

	addr := address.ForSchema(a.Name)
	l, err := loadSchemas(context, addr)
	if nil != err {
		return err
	}
	if _, ok := l.Find(a.Name); ok {
		return fault.SchemaAlreadyExists
	}

	l = l.Add(record.Schema{
		Name:        a.Name,
		Description: a.Description,
		Owner:       agent.OrgId,
		Properties:  a.Properties,
	})
	context.Set(addr, []byte(l.Pack()))
	return nil
}

// append definitions to a schema owned by the signer's organization
//
// existing definitions are immutable: only new names can be added, and
// records created before the update keep their original definition
// snapshots
func (p *Processor) schemaUpdate(
	envelope *action.Envelope,
	a *action.SchemaUpdate,
	context *state.Context,
	identity *pike.StateReader,
) error {

	if "" == a.Name {
		return fault.EmptySchemaName
	}
	if 0 == len(a.Properties) {
		return fault.EmptyProperties
	}

	agent, err := activeAgent(identity, envelope.Signer)
	if nil != err {
		return err
	}
	if !identity.HasPermission(agent, pike.CanUpdateSchema) {
		return fault.PermissionDenied
	}

	addr := address.ForSchema(a.Name)
	l, err := loadSchemas(context, addr)
	if nil != err {
		return err
	}
	schema, ok := l.Find(a.Name)
	if !ok {
		return fault.SchemaNotFound
	}
	if schema.Owner != agent.OrgId {
		return fault.WrongOwningOrganization
	}

	// checking old and new together rejects any clash with an
	// existing name
	combined := make([]record.PropertyDefinition, 0, len(schema.Properties)+len(a.Properties))
	combined = append(combined, schema.Properties...)
	combined = append(combined, a.Properties...)
	if err := record.CheckDefinitions(combined); nil != err {
		return err
	}

	schema.Properties = combined
	l = l.Add(schema)
	context.Set(addr, []byte(l.Pack()))
	return nil
}

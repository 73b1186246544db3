// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package action

import (
	"sort"

	"github.com/trailmark-inc/trailmarkd/address"
	"github.com/trailmark-inc/trailmarkd/pager"
	"github.com/trailmark-inc/trailmarkd/pike"
	"github.com/trailmark-inc/trailmarkd/record"
)

// address set builder: deduplicates and yields a fixed order
type addressSet map[address.Address]struct{}

func (set addressSet) add(addrs ...address.Address) {
	for _, addr := range addrs {
		set[addr] = struct{}{}
	}
}

func (set addressSet) list() []address.Address {
	result := make([]address.Address, 0, len(set))
	for addr := range set {
		result = append(result, addr)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].String() < result[j].String()
	})
	return result
}

// read and decode a property header, nil when absent
func loadProperty(state StateReader, recordId string, name string) (*record.Property, error) {
	packed, err := state.Get(address.ForProperty(recordId, name))
	if nil != err {
		return nil, err
	}
	if nil == packed {
		return nil, nil
	}
	l, err := record.UnpackPropertyList(packed)
	if nil != err {
		return nil, err
	}
	property, ok := l.Find(recordId, name)
	if !ok {
		return nil, nil
	}
	return &property, nil
}

// read and decode one history page, empty when absent
func loadPageCount(state StateReader, recordId string, name string, page pager.PageNumber) (int, error) {
	packed, err := state.Get(address.ForPropertyPage(recordId, name, uint16(page)))
	if nil != err {
		return 0, err
	}
	if nil == packed {
		return 0, nil
	}
	l, err := record.UnpackPropertyPageList(packed)
	if nil != err {
		return 0, err
	}
	p, ok := l.Find(recordId, name)
	if !ok {
		return 0, nil
	}
	return len(p.ReportedValues), nil
}

// read the signer's organization id, empty when unregistered
func loadAgentOrgId(state StateReader, publicKey string) (string, error) {
	packed, err := state.Get(address.ForAgent(publicKey))
	if nil != err {
		return "", err
	}
	if nil == packed {
		return "", nil
	}
	l, err := pike.UnpackAgentList(packed)
	if nil != err {
		return "", err
	}
	agent, ok := l.Find(publicKey)
	if !ok {
		return "", nil
	}
	return agent.OrgId, nil
}

// Inputs - addresses a schema create may read
//
// creation checks that the owning organization is registered, so the
// organization record is part of the read set
func (a *SchemaCreate) Inputs(signer string, state StateReader) ([]address.Address, error) {
	set := addressSet{}
	set.add(address.ForAgent(signer), address.ForSchema(a.Name))
	orgId, err := loadAgentOrgId(state, signer)
	if nil != err {
		return nil, err
	}
	if "" != orgId {
		set.add(address.ForOrganization(orgId))
	}
	return set.list(), nil
}

// Outputs - addresses a schema create may write
func (a *SchemaCreate) Outputs(signer string, state StateReader) ([]address.Address, error) {
	set := addressSet{}
	set.add(address.ForSchema(a.Name))
	return set.list(), nil
}

// Inputs - addresses a schema update may read
func (a *SchemaUpdate) Inputs(signer string, state StateReader) ([]address.Address, error) {
	set := addressSet{}
	set.add(address.ForAgent(signer), address.ForSchema(a.Name))
	return set.list(), nil
}

// Outputs - addresses a schema update may write
func (a *SchemaUpdate) Outputs(signer string, state StateReader) ([]address.Address, error) {
	set := addressSet{}
	set.add(address.ForSchema(a.Name))
	return set.list(), nil
}

// read and decode a schema, nil when absent
func loadSchema(state StateReader, name string) (*record.Schema, error) {
	packed, err := state.Get(address.ForSchema(name))
	if nil != err {
		return nil, err
	}
	if nil == packed {
		return nil, nil
	}
	l, err := record.UnpackSchemaList(packed)
	if nil != err {
		return nil, err
	}
	schema, ok := l.Find(name)
	if !ok {
		return nil, nil
	}
	return &schema, nil
}

// creation makes a property header for every schema definition and a
// first page for every definition given an initial value, so both
// declarations enumerate the schema
func (a *CreateRecord) touched(state StateReader) (addressSet, addressSet, error) {
	inputs := addressSet{}
	outputs := addressSet{}
	inputs.add(
		address.ForSchema(a.Schema),
		address.ForRecord(a.RecordId),
	)

	schema, err := loadSchema(state, a.Schema)
	if nil != err {
		return nil, nil, err
	}
	if nil == schema {
		// the handler fails before buffering any write
		return inputs, outputs, nil
	}

	outputs.add(address.ForRecord(a.RecordId))
	for i := range schema.Properties {
		name := schema.Properties[i].Name
		header := address.ForProperty(a.RecordId, name)
		inputs.add(header)
		outputs.add(header)
	}
	for i := range a.Properties {
		name := a.Properties[i].Name
		page := address.ForPropertyPage(a.RecordId, name, uint16(pager.FirstPage))
		inputs.add(page)
		outputs.add(page)
	}
	return inputs, outputs, nil
}

// Inputs - addresses a record create may read
func (a *CreateRecord) Inputs(signer string, state StateReader) ([]address.Address, error) {
	inputs, _, err := a.touched(state)
	if nil != err {
		return nil, err
	}
	inputs.add(address.ForAgent(signer))
	return inputs.list(), nil
}

// Outputs - addresses a record create may write
func (a *CreateRecord) Outputs(signer string, state StateReader) ([]address.Address, error) {
	_, outputs, err := a.touched(state)
	if nil != err {
		return nil, err
	}
	return outputs.list(), nil
}

// Inputs - addresses a finalize may read
func (a *FinalizeRecord) Inputs(signer string, state StateReader) ([]address.Address, error) {
	set := addressSet{}
	set.add(address.ForRecord(a.RecordId))
	return set.list(), nil
}

// Outputs - addresses a finalize may write
func (a *FinalizeRecord) Outputs(signer string, state StateReader) ([]address.Address, error) {
	set := addressSet{}
	set.add(address.ForRecord(a.RecordId))
	return set.list(), nil
}

// walk the value list the same way the handler will, reading the
// current page fill of every named property, to learn exactly which
// pages the appends will touch
func (a *UpdateProperties) touched(state StateReader) (addressSet, addressSet, error) {
	inputs := addressSet{}
	outputs := addressSet{}
	inputs.add(address.ForRecord(a.RecordId))

	type fill struct {
		page    pager.PageNumber
		entries int
	}
	fills := make(map[string]*fill)

	for i := range a.Properties {
		name := a.Properties[i].Name
		header := address.ForProperty(a.RecordId, name)
		inputs.add(header)

		f, ok := fills[name]
		if !ok {
			property, err := loadProperty(state, a.RecordId, name)
			if nil != err {
				return nil, nil, err
			}
			if nil == property {
				// the handler fails on this property before
				// buffering any write
				return inputs, outputs, nil
			}
			entries, err := loadPageCount(state, a.RecordId, name, property.CurrentPage)
			if nil != err {
				return nil, nil, err
			}
			inputs.add(address.ForPropertyPage(a.RecordId, name, uint16(property.CurrentPage)))
			f = &fill{page: property.CurrentPage, entries: entries}
			fills[name] = f
		}
		outputs.add(header)

		if pager.EntriesPerPage == f.entries {
			f.page, _ = f.page.Next()
			f.entries = 0
			inputs.add(address.ForPropertyPage(a.RecordId, name, uint16(f.page)))
		}
		f.entries += 1
		page := address.ForPropertyPage(a.RecordId, name, uint16(f.page))
		outputs.add(page)
	}
	return inputs, outputs, nil
}

// Inputs - addresses a property update may read
func (a *UpdateProperties) Inputs(signer string, state StateReader) ([]address.Address, error) {
	inputs, _, err := a.touched(state)
	if nil != err {
		return nil, err
	}
	return inputs.list(), nil
}

// Outputs - addresses a property update may write
func (a *UpdateProperties) Outputs(signer string, state StateReader) ([]address.Address, error) {
	_, outputs, err := a.touched(state)
	if nil != err {
		return nil, err
	}
	return outputs.list(), nil
}

// Inputs - addresses a revocation may read
func (a *RevokeReporter) Inputs(signer string, state StateReader) ([]address.Address, error) {
	set := addressSet{}
	set.add(address.ForRecord(a.RecordId))
	for _, name := range a.Properties {
		set.add(address.ForProperty(a.RecordId, name))
	}
	return set.list(), nil
}

// Outputs - addresses a revocation may write
func (a *RevokeReporter) Outputs(signer string, state StateReader) ([]address.Address, error) {
	set := addressSet{}
	for _, name := range a.Properties {
		set.add(address.ForProperty(a.RecordId, name))
	}
	return set.list(), nil
}

// Inputs - addresses a proposal create may read
func (a *CreateProposal) Inputs(signer string, state StateReader) ([]address.Address, error) {
	set := addressSet{}
	set.add(
		address.ForAgent(signer),
		address.ForAgent(a.ReceivingAgent),
		address.ForRecord(a.RecordId),
		address.ForProposal(a.RecordId, a.ReceivingAgent),
	)
	return set.list(), nil
}

// Outputs - addresses a proposal create may write
func (a *CreateProposal) Outputs(signer string, state StateReader) ([]address.Address, error) {
	set := addressSet{}
	set.add(address.ForProposal(a.RecordId, a.ReceivingAgent))
	return set.list(), nil
}

// read the open proposal this answer refers to, nil when absent
func (a *AnswerProposal) openProposal(state StateReader) (*record.Proposal, error) {
	packed, err := state.Get(address.ForProposal(a.RecordId, a.ReceivingAgent))
	if nil != err {
		return nil, err
	}
	if nil == packed {
		return nil, nil
	}
	l, err := record.UnpackProposalList(packed)
	if nil != err {
		return nil, err
	}
	i, ok := l.FindOpen(a.RecordId, a.ReceivingAgent, a.Role)
	if !ok {
		return nil, nil
	}
	return &l[i], nil
}

// Inputs - addresses answering may read
//
// accepting reads the record to re-validate the issuer's current
// role, and for reporter proposals reads every named property header
func (a *AnswerProposal) Inputs(signer string, state StateReader) ([]address.Address, error) {
	set := addressSet{}
	set.add(address.ForProposal(a.RecordId, a.ReceivingAgent))

	if Accept == a.Response {
		set.add(address.ForRecord(a.RecordId))
		proposal, err := a.openProposal(state)
		if nil != err {
			return nil, err
		}
		if nil != proposal && record.ReporterRole == proposal.Role {
			for _, name := range proposal.Properties {
				set.add(address.ForProperty(a.RecordId, name))
			}
		}
	}
	return set.list(), nil
}

// Outputs - addresses answering may write
func (a *AnswerProposal) Outputs(signer string, state StateReader) ([]address.Address, error) {
	set := addressSet{}
	set.add(address.ForProposal(a.RecordId, a.ReceivingAgent))

	if Accept == a.Response {
		proposal, err := a.openProposal(state)
		if nil != err {
			return nil, err
		}
		if nil != proposal {
			switch proposal.Role {
			case record.OwnerRole, record.CustodianRole:
				set.add(address.ForRecord(a.RecordId))
			case record.ReporterRole:
				for _, name := range proposal.Properties {
					set.add(address.ForProperty(a.RecordId, name))
				}
			}
		}
	}
	return set.list(), nil
}

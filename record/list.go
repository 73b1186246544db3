// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"sort"
)

// collision list containers
//
// insertion keeps each type's fixed sort order and replaces in place
// when an entity with a matching primary key is already present, so
// repeated store → load cycles are byte stable
type (
	// SchemaList - ordered by name
	SchemaList []Schema

	// RecordList - ordered by record id
	RecordList []Record

	// PropertyList - ordered by property name
	PropertyList []Property

	// PropertyPageList - ordered by property name
	PropertyPageList []PropertyPage

	// ProposalList - ordered by (record id, receiving agent, timestamp)
	ProposalList []Proposal
)

// Add - insert or replace a schema, keyed by name
func (l SchemaList) Add(schema Schema) SchemaList {
	for i := range l {
		if l[i].Name == schema.Name {
			l[i] = schema
			return l
		}
	}
	l = append(l, schema)
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Name < l[j].Name
	})
	return l
}

// Find - locate a schema by name
func (l SchemaList) Find(name string) (Schema, bool) {
	for i := range l {
		if l[i].Name == name {
			return l[i], true
		}
	}
	return Schema{}, false
}

// Add - insert or replace a record, keyed by record id
func (l RecordList) Add(record Record) RecordList {
	for i := range l {
		if l[i].RecordId == record.RecordId {
			l[i] = record
			return l
		}
	}
	l = append(l, record)
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].RecordId < l[j].RecordId
	})
	return l
}

// Find - locate a record by record id
func (l RecordList) Find(recordId string) (Record, bool) {
	for i := range l {
		if l[i].RecordId == recordId {
			return l[i], true
		}
	}
	return Record{}, false
}

// Add - insert or replace a property header, keyed by (record id, name)
func (l PropertyList) Add(property Property) PropertyList {
	for i := range l {
		if l[i].RecordId == property.RecordId && l[i].Name == property.Name {
			l[i] = property
			return l
		}
	}
	l = append(l, property)
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Name < l[j].Name
	})
	return l
}

// Find - locate a property header by (record id, name)
func (l PropertyList) Find(recordId string, name string) (Property, bool) {
	for i := range l {
		if l[i].RecordId == recordId && l[i].Name == name {
			return l[i], true
		}
	}
	return Property{}, false
}

// Add - insert or replace a page, keyed by (record id, name)
func (l PropertyPageList) Add(page PropertyPage) PropertyPageList {
	for i := range l {
		if l[i].RecordId == page.RecordId && l[i].Name == page.Name {
			l[i] = page
			return l
		}
	}
	l = append(l, page)
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Name < l[j].Name
	})
	return l
}

// Find - locate a page by (record id, name)
func (l PropertyPageList) Find(recordId string, name string) (PropertyPage, bool) {
	for i := range l {
		if l[i].RecordId == recordId && l[i].Name == name {
			return l[i], true
		}
	}
	return PropertyPage{}, false
}

// Add - insert or replace a proposal
//
// replaces the open proposal for the same (record id, receiving
// agent, role) triple when one exists; this is how answering closes
// a proposal in place while keeping it for audit
func (l ProposalList) Add(proposal Proposal) ProposalList {
	if i, ok := l.FindOpen(proposal.RecordId, proposal.ReceivingAgent, proposal.Role); ok {
		l[i] = proposal
		return l
	}
	l = append(l, proposal)
	sort.SliceStable(l, func(i, j int) bool {
		if l[i].RecordId != l[j].RecordId {
			return l[i].RecordId < l[j].RecordId
		}
		if l[i].ReceivingAgent != l[j].ReceivingAgent {
			return l[i].ReceivingAgent < l[j].ReceivingAgent
		}
		return l[i].Timestamp < l[j].Timestamp
	})
	return l
}

// FindOpen - index of the open proposal for a
// (record id, receiving agent, role) triple
//
// the open status invariant means at most one can match
func (l ProposalList) FindOpen(recordId string, receivingAgent string, role Role) (int, bool) {
	for i := range l {
		if OpenStatus == l[i].Status &&
			l[i].RecordId == recordId &&
			l[i].ReceivingAgent == receivingAgent &&
			l[i].Role == role {
			return i, true
		}
	}
	return 0, false
}

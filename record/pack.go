// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/trailmark-inc/trailmarkd/util"
)

// Packed - packed records are just a byte slice
type Packed []byte

// append one property definition: fields in struct order, nested
// definitions recurse
func packDefinition(buffer []byte, definition *PropertyDefinition) []byte {
	buffer = util.AppendString(buffer, definition.Name)
	buffer = util.AppendUint64(buffer, uint64(definition.DataType))
	buffer = util.AppendBool(buffer, definition.Required)
	buffer = util.AppendString(buffer, definition.Description)
	buffer = util.AppendInt64(buffer, int64(definition.NumberExponent))

	buffer = util.AppendUint64(buffer, uint64(len(definition.EnumOptions)))
	for _, option := range definition.EnumOptions {
		buffer = util.AppendString(buffer, option)
	}

	buffer = util.AppendUint64(buffer, uint64(len(definition.StructProperties)))
	for i := range definition.StructProperties {
		buffer = packDefinition(buffer, &definition.StructProperties[i])
	}
	return buffer
}

// append one property value: only the slot selected by the data type
// is coded
func packValue(buffer []byte, value *PropertyValue) []byte {
	buffer = util.AppendString(buffer, value.Name)
	buffer = util.AppendUint64(buffer, uint64(value.DataType))

	switch value.DataType {
	case BytesType:
		buffer = util.AppendBytes(buffer, value.BytesValue)
	case BooleanType:
		buffer = util.AppendBool(buffer, value.BooleanValue)
	case NumberType:
		buffer = util.AppendInt64(buffer, value.NumberValue)
	case StringType:
		buffer = util.AppendString(buffer, value.StringValue)
	case EnumType:
		buffer = util.AppendUint64(buffer, uint64(value.EnumValue))
	case StructType:
		buffer = util.AppendUint64(buffer, uint64(len(value.StructValues)))
		for i := range value.StructValues {
			buffer = packValue(buffer, &value.StructValues[i])
		}
	default:
		// NullType and out of range types code no slot; the
		// validator rejects them before anything is stored
	}
	return buffer
}

func packAgents(buffer []byte, agents []AssociatedAgent) []byte {
	buffer = util.AppendUint64(buffer, uint64(len(agents)))
	for _, agent := range agents {
		buffer = util.AppendString(buffer, agent.AgentId)
		buffer = util.AppendUint64(buffer, agent.Timestamp)
	}
	return buffer
}

func packSchema(buffer []byte, schema *Schema) []byte {
	buffer = util.AppendString(buffer, schema.Name)
	buffer = util.AppendString(buffer, schema.Description)
	buffer = util.AppendString(buffer, schema.Owner)
	buffer = util.AppendUint64(buffer, uint64(len(schema.Properties)))
	for i := range schema.Properties {
		buffer = packDefinition(buffer, &schema.Properties[i])
	}
	return buffer
}

func packRecord(buffer []byte, record *Record) []byte {
	buffer = util.AppendString(buffer, record.RecordId)
	buffer = util.AppendString(buffer, record.Schema)
	buffer = packAgents(buffer, record.Owners)
	buffer = packAgents(buffer, record.Custodians)
	buffer = util.AppendBool(buffer, record.Final)
	return buffer
}

func packProperty(buffer []byte, property *Property) []byte {
	buffer = util.AppendString(buffer, property.Name)
	buffer = util.AppendString(buffer, property.RecordId)
	buffer = packDefinition(buffer, &property.Definition)
	buffer = util.AppendUint64(buffer, uint64(len(property.Reporters)))
	for _, reporter := range property.Reporters {
		buffer = util.AppendString(buffer, reporter.PublicKey)
		buffer = util.AppendBool(buffer, reporter.Authorized)
		buffer = util.AppendUint64(buffer, uint64(reporter.Index))
	}
	buffer = util.AppendUint64(buffer, uint64(property.CurrentPage))
	buffer = util.AppendBool(buffer, property.Wrapped)
	return buffer
}

func packPage(buffer []byte, page *PropertyPage) []byte {
	buffer = util.AppendString(buffer, page.Name)
	buffer = util.AppendString(buffer, page.RecordId)
	buffer = util.AppendUint64(buffer, uint64(len(page.ReportedValues)))
	for i := range page.ReportedValues {
		reported := &page.ReportedValues[i]
		buffer = util.AppendUint64(buffer, uint64(reported.ReporterIndex))
		buffer = util.AppendUint64(buffer, reported.Timestamp)
		buffer = packValue(buffer, &reported.Value)
	}
	return buffer
}

func packProposal(buffer []byte, proposal *Proposal) []byte {
	buffer = util.AppendString(buffer, proposal.RecordId)
	buffer = util.AppendUint64(buffer, proposal.Timestamp)
	buffer = util.AppendString(buffer, proposal.IssuingAgent)
	buffer = util.AppendString(buffer, proposal.ReceivingAgent)
	buffer = util.AppendUint64(buffer, uint64(proposal.Role))
	buffer = util.AppendUint64(buffer, uint64(len(proposal.Properties)))
	for _, name := range proposal.Properties {
		buffer = util.AppendString(buffer, name)
	}
	buffer = util.AppendUint64(buffer, uint64(proposal.Status))
	buffer = util.AppendString(buffer, proposal.Terms)
	return buffer
}

// PackDefinition - append one property definition to a buffer
//
// shared with the action payload codec so schema actions and stored
// schemas stay byte compatible
func PackDefinition(buffer []byte, definition *PropertyDefinition) []byte {
	return packDefinition(buffer, definition)
}

// PackValue - append one property value to a buffer
func PackValue(buffer []byte, value *PropertyValue) []byte {
	return packValue(buffer, value)
}

// Pack - wire form of a schema list container
func (l SchemaList) Pack() Packed {
	buffer := util.ToVarint64(uint64(len(l)))
	for i := range l {
		buffer = packSchema(buffer, &l[i])
	}
	return buffer
}

// Pack - wire form of a record list container
func (l RecordList) Pack() Packed {
	buffer := util.ToVarint64(uint64(len(l)))
	for i := range l {
		buffer = packRecord(buffer, &l[i])
	}
	return buffer
}

// Pack - wire form of a property header list container
func (l PropertyList) Pack() Packed {
	buffer := util.ToVarint64(uint64(len(l)))
	for i := range l {
		buffer = packProperty(buffer, &l[i])
	}
	return buffer
}

// Pack - wire form of a property page list container
func (l PropertyPageList) Pack() Packed {
	buffer := util.ToVarint64(uint64(len(l)))
	for i := range l {
		buffer = packPage(buffer, &l[i])
	}
	return buffer
}

// Pack - wire form of a proposal list container
func (l ProposalList) Pack() Packed {
	buffer := util.ToVarint64(uint64(len(l)))
	for i := range l {
		buffer = packProposal(buffer, &l[i])
	}
	return buffer
}

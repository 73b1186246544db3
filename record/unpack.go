// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/trailmark-inc/trailmarkd/fault"
	"github.com/trailmark-inc/trailmarkd/pager"
	"github.com/trailmark-inc/trailmarkd/util"
)

// an arbitrary sanity bound on decoded list counts to stop a corrupt
// count field from causing a huge allocation
const maximumListCount = 1 << 20

func unpackCount(u *util.Unpacker) int {
	count := u.Uint64()
	if count > maximumListCount {
		u.Fail(fault.NotEntityPack)
		return 0
	}
	return int(count)
}

func unpackDefinition(u *util.Unpacker, definition *PropertyDefinition) {
	definition.Name = u.String()
	definition.DataType = DataType(u.Uint64())
	definition.Required = u.Bool()
	definition.Description = u.String()
	definition.NumberExponent = int32(u.Int64())

	if n := unpackCount(u); n > 0 {
		definition.EnumOptions = make([]string, n)
		for i := 0; i < n; i += 1 {
			definition.EnumOptions[i] = u.String()
		}
	}

	if n := unpackCount(u); n > 0 {
		definition.StructProperties = make([]PropertyDefinition, n)
		for i := 0; i < n; i += 1 {
			unpackDefinition(u, &definition.StructProperties[i])
		}
	}
}

func unpackValue(u *util.Unpacker, value *PropertyValue) {
	value.Name = u.String()
	value.DataType = DataType(u.Uint64())

	switch value.DataType {
	case BytesType:
		value.BytesValue = u.Bytes()
	case BooleanType:
		value.BooleanValue = u.Bool()
	case NumberType:
		value.NumberValue = u.Int64()
	case StringType:
		value.StringValue = u.String()
	case EnumType:
		value.EnumValue = uint32(u.Uint64())
	case StructType:
		if n := unpackCount(u); n > 0 {
			value.StructValues = make([]PropertyValue, n)
			for i := 0; i < n; i += 1 {
				unpackValue(u, &value.StructValues[i])
			}
		}
	default:
		// no slot coded
	}
}

func unpackAgents(u *util.Unpacker) []AssociatedAgent {
	n := unpackCount(u)
	if 0 == n {
		return nil
	}
	agents := make([]AssociatedAgent, n)
	for i := 0; i < n; i += 1 {
		agents[i].AgentId = u.String()
		agents[i].Timestamp = u.Uint64()
	}
	return agents
}

func unpackSchema(u *util.Unpacker, schema *Schema) {
	schema.Name = u.String()
	schema.Description = u.String()
	schema.Owner = u.String()
	if n := unpackCount(u); n > 0 {
		schema.Properties = make([]PropertyDefinition, n)
		for i := 0; i < n; i += 1 {
			unpackDefinition(u, &schema.Properties[i])
		}
	}
}

func unpackRecord(u *util.Unpacker, record *Record) {
	record.RecordId = u.String()
	record.Schema = u.String()
	record.Owners = unpackAgents(u)
	record.Custodians = unpackAgents(u)
	record.Final = u.Bool()
}

func unpackProperty(u *util.Unpacker, property *Property) {
	property.Name = u.String()
	property.RecordId = u.String()
	unpackDefinition(u, &property.Definition)
	if n := unpackCount(u); n > 0 {
		property.Reporters = make([]Reporter, n)
		for i := 0; i < n; i += 1 {
			property.Reporters[i].PublicKey = u.String()
			property.Reporters[i].Authorized = u.Bool()
			property.Reporters[i].Index = uint32(u.Uint64())
		}
	}
	property.CurrentPage = pager.PageNumber(u.Uint64())
	property.Wrapped = u.Bool()
}

func unpackPage(u *util.Unpacker, page *PropertyPage) {
	page.Name = u.String()
	page.RecordId = u.String()
	if n := unpackCount(u); n > 0 {
		page.ReportedValues = make([]ReportedValue, n)
		for i := 0; i < n; i += 1 {
			page.ReportedValues[i].ReporterIndex = uint32(u.Uint64())
			page.ReportedValues[i].Timestamp = u.Uint64()
			unpackValue(u, &page.ReportedValues[i].Value)
		}
	}
}

func unpackProposal(u *util.Unpacker, proposal *Proposal) {
	proposal.RecordId = u.String()
	proposal.Timestamp = u.Uint64()
	proposal.IssuingAgent = u.String()
	proposal.ReceivingAgent = u.String()
	proposal.Role = Role(u.Uint64())
	if n := unpackCount(u); n > 0 {
		proposal.Properties = make([]string, n)
		for i := 0; i < n; i += 1 {
			proposal.Properties[i] = u.String()
		}
	}
	proposal.Status = ProposalStatus(u.Uint64())
	proposal.Terms = u.String()
}

// UnpackDefinition - decode one property definition
func UnpackDefinition(u *util.Unpacker, definition *PropertyDefinition) {
	unpackDefinition(u, definition)
}

// UnpackValue - decode one property value
func UnpackValue(u *util.Unpacker, value *PropertyValue) {
	unpackValue(u, value)
}

// finish - a container decode must consume the whole buffer
func finish(u *util.Unpacker) error {
	if nil != u.Error() {
		return u.Error()
	}
	if !u.Done() {
		return fault.NotEntityPack
	}
	return nil
}

// UnpackSchemaList - decode a schema list container
func UnpackSchemaList(packed Packed) (SchemaList, error) {
	u := util.NewUnpacker(packed)
	n := unpackCount(u)
	l := make(SchemaList, n)
	for i := 0; i < n; i += 1 {
		unpackSchema(u, &l[i])
	}
	if err := finish(u); nil != err {
		return nil, err
	}
	return l, nil
}

// UnpackRecordList - decode a record list container
func UnpackRecordList(packed Packed) (RecordList, error) {
	u := util.NewUnpacker(packed)
	n := unpackCount(u)
	l := make(RecordList, n)
	for i := 0; i < n; i += 1 {
		unpackRecord(u, &l[i])
	}
	if err := finish(u); nil != err {
		return nil, err
	}
	return l, nil
}

// UnpackPropertyList - decode a property header list container
func UnpackPropertyList(packed Packed) (PropertyList, error) {
	u := util.NewUnpacker(packed)
	n := unpackCount(u)
	l := make(PropertyList, n)
	for i := 0; i < n; i += 1 {
		unpackProperty(u, &l[i])
	}
	if err := finish(u); nil != err {
		return nil, err
	}
	return l, nil
}

// UnpackPropertyPageList - decode a property page list container
func UnpackPropertyPageList(packed Packed) (PropertyPageList, error) {
	u := util.NewUnpacker(packed)
	n := unpackCount(u)
	l := make(PropertyPageList, n)
	for i := 0; i < n; i += 1 {
		unpackPage(u, &l[i])
	}
	if err := finish(u); nil != err {
		return nil, err
	}
	return l, nil
}

// UnpackProposalList - decode a proposal list container
func UnpackProposalList(packed Packed) (ProposalList, error) {
	u := util.NewUnpacker(packed)
	n := unpackCount(u)
	l := make(ProposalList, n)
	for i := 0; i < n; i += 1 {
		unpackProposal(u, &l[i])
	}
	if err := finish(u); nil != err {
		return nil, err
	}
	return l, nil
}

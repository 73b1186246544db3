// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"fmt"

	"github.com/trailmark-inc/trailmarkd/fault"
	"github.com/trailmark-inc/trailmarkd/pager"
)

// DataType - property data type enumeration
type DataType uint64

// possible data type values
const (
	NullType     DataType = iota // this must be the first value
	BytesType    DataType = iota
	BooleanType  DataType = iota
	NumberType   DataType = iota
	StringType   DataType = iota
	EnumType     DataType = iota
	StructType   DataType = iota
	maximumType  DataType = iota // this must be the last value
	firstType    DataType = NullType + 1
	lastType     DataType = maximumType - 1
)

// IsValid - valid data type if in range of first to last
func (dataType DataType) IsValid() bool {
	return dataType >= firstType && dataType <= lastType
}

// String - convert a data type to its name
func (dataType DataType) String() string {
	switch dataType {
	case BytesType:
		return "bytes"
	case BooleanType:
		return "boolean"
	case NumberType:
		return "number"
	case StringType:
		return "string"
	case EnumType:
		return "enum"
	case StructType:
		return "struct"
	default:
		return fmt.Sprintf("*unknown data type: %d*", uint64(dataType))
	}
}

// PropertyDefinition - one typed property of a schema
//
// NumberExponent is only meaningful for number types: the reported
// significand scales by 10^exponent
//
// a Required flag nested inside StructProperties is never honored:
// struct values are validated and stored atomically as a whole
type PropertyDefinition struct {
	Name             string               `json:"name"`
	DataType         DataType             `json:"dataType"`
	Required         bool                 `json:"required"`
	Description      string               `json:"description"`
	NumberExponent   int32                `json:"numberExponent"`
	EnumOptions      []string             `json:"enumOptions,omitempty"`
	StructProperties []PropertyDefinition `json:"structProperties,omitempty"`
}

// PropertyValue - one reported value, mirroring the shape of its
// definition with exactly one populated slot
type PropertyValue struct {
	Name         string          `json:"name"`
	DataType     DataType        `json:"dataType"`
	BytesValue   []byte          `json:"bytesValue,omitempty"`
	BooleanValue bool            `json:"booleanValue,omitempty"`
	NumberValue  int64           `json:"numberValue,omitempty"`
	StringValue  string          `json:"stringValue,omitempty"`
	EnumValue    uint32          `json:"enumValue,omitempty"`
	StructValues []PropertyValue `json:"structValues,omitempty"`
}

// Schema - a named, owned, ordered set of property definitions
type Schema struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Owner       string               `json:"owner"` // organization id
	Properties  []PropertyDefinition `json:"properties"`
}

// AssociatedAgent - one holder of a record role with the time the
// role was acquired
type AssociatedAgent struct {
	AgentId   string `json:"agentId"`
	Timestamp uint64 `json:"timestamp"`
}

// Record - a tracked item
//
// Owners and Custodians are append only and time ordered: the newest
// holder is always last; Final is monotonic false → true
type Record struct {
	RecordId   string            `json:"recordId"`
	Schema     string            `json:"schema"`
	Owners     []AssociatedAgent `json:"owners"`
	Custodians []AssociatedAgent `json:"custodians"`
	Final      bool              `json:"final"`
}

// Owner - the current owner's agent id, empty if none
//
// value receiver so the role can be read straight off a list lookup
func (record Record) Owner() string {
	if 0 == len(record.Owners) {
		return ""
	}
	return record.Owners[len(record.Owners)-1].AgentId
}

// Custodian - the current custodian's agent id, empty if none
func (record Record) Custodian() string {
	if 0 == len(record.Custodians) {
		return ""
	}
	return record.Custodians[len(record.Custodians)-1].AgentId
}

// Reporter - an agent authorized to report values for one property
//
// Index is permanent: revocation clears Authorized but the index is
// never reused or reordered, so old reported values stay attributable
type Reporter struct {
	PublicKey  string `json:"publicKey"`
	Authorized bool   `json:"authorized"`
	Index      uint32 `json:"index"`
}

// Property - per (record, property name) reporting state
//
// Definition is a snapshot of the schema definition at record
// creation; CurrentPage is the append target; Wrapped latches true
// once page 0001 has been overwritten and changes the oldest page
// computation
type Property struct {
	Name        string             `json:"name"`
	RecordId    string             `json:"recordId"`
	Definition  PropertyDefinition `json:"definition"`
	Reporters   []Reporter         `json:"reporters"`
	CurrentPage pager.PageNumber   `json:"currentPage"`
	Wrapped     bool               `json:"wrapped"`
}

// ReporterIndex - index of an authorized reporter, or an error if the
// public key is absent or revoked
func (property *Property) ReporterIndex(publicKey string) (uint32, error) {
	for _, reporter := range property.Reporters {
		if reporter.PublicKey == publicKey {
			if !reporter.Authorized {
				return 0, fault.UnauthorizedReporter
			}
			return reporter.Index, nil
		}
	}
	return 0, fault.UnauthorizedReporter
}

// ReportedValue - one historical value on a property page
type ReportedValue struct {
	ReporterIndex uint32        `json:"reporterIndex"`
	Timestamp     uint64        `json:"timestamp"`
	Value         PropertyValue `json:"value"`
}

// PropertyPage - one fixed capacity page of reported values,
// ordered by (timestamp, reporter index)
type PropertyPage struct {
	Name           string          `json:"name"`
	RecordId       string          `json:"recordId"`
	ReportedValues []ReportedValue `json:"reportedValues"`
}

// Role - transferable record role enumeration
type Role uint64

// possible role values
const (
	NullRole      Role = iota // this must be the first value
	OwnerRole     Role = iota
	CustodianRole Role = iota
	ReporterRole  Role = iota
	maximumRole   Role = iota // this must be the last value
)

// IsValid - valid role if in range
func (role Role) IsValid() bool {
	return role > NullRole && role < maximumRole
}

// String - convert a role to its name
func (role Role) String() string {
	switch role {
	case OwnerRole:
		return "owner"
	case CustodianRole:
		return "custodian"
	case ReporterRole:
		return "reporter"
	default:
		return fmt.Sprintf("*unknown role: %d*", uint64(role))
	}
}

// ProposalStatus - proposal state enumeration
//
// Open is the only non terminal status
type ProposalStatus uint64

// possible status values
const (
	NullStatus     ProposalStatus = iota // this must be the first value
	OpenStatus     ProposalStatus = iota
	AcceptedStatus ProposalStatus = iota
	RejectedStatus ProposalStatus = iota
	CanceledStatus ProposalStatus = iota
	maximumStatus  ProposalStatus = iota // this must be the last value
)

// IsValid - valid status if in range
func (status ProposalStatus) IsValid() bool {
	return status > NullStatus && status < maximumStatus
}

// String - convert a status to its name
func (status ProposalStatus) String() string {
	switch status {
	case OpenStatus:
		return "open"
	case AcceptedStatus:
		return "accepted"
	case RejectedStatus:
		return "rejected"
	case CanceledStatus:
		return "canceled"
	default:
		return fmt.Sprintf("*unknown status: %d*", uint64(status))
	}
}

// Proposal - a pending offer to transfer a record role
//
// Properties is only populated for reporter proposals; a proposal is
// retained for audit after leaving the open status
type Proposal struct {
	RecordId       string         `json:"recordId"`
	Timestamp      uint64         `json:"timestamp"`
	IssuingAgent   string         `json:"issuingAgent"`
	ReceivingAgent string         `json:"receivingAgent"`
	Role           Role           `json:"role"`
	Properties     []string       `json:"properties,omitempty"`
	Status         ProposalStatus `json:"status"`
	Terms          string         `json:"terms"`
}

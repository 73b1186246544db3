// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package action

import (
	"fmt"

	"github.com/trailmark-inc/trailmarkd/address"
	"github.com/trailmark-inc/trailmarkd/record"
)

// TagType - type code for action payloads
type TagType uint64

// enumerate the possible action payload types
// this is encoded as a Varint64 at the start of a packed envelope
const (
	// null marks beginning of list - not used as a payload type
	NullTag = TagType(iota)

	// valid payload types
	SchemaCreateTag     = TagType(iota)
	SchemaUpdateTag     = TagType(iota)
	CreateRecordTag     = TagType(iota)
	FinalizeRecordTag   = TagType(iota)
	UpdatePropertiesTag = TagType(iota)
	CreateProposalTag   = TagType(iota)
	AnswerProposalTag   = TagType(iota)
	RevokeReporterTag   = TagType(iota)

	// this item must be last
	InvalidTag = TagType(iota)
)

// String - convert a tag to its action name
func (tag TagType) String() string {
	switch tag {
	case SchemaCreateTag:
		return "schema-create"
	case SchemaUpdateTag:
		return "schema-update"
	case CreateRecordTag:
		return "create-record"
	case FinalizeRecordTag:
		return "finalize-record"
	case UpdatePropertiesTag:
		return "update-properties"
	case CreateProposalTag:
		return "create-proposal"
	case AnswerProposalTag:
		return "answer-proposal"
	case RevokeReporterTag:
		return "revoke-reporter"
	default:
		return fmt.Sprintf("*unknown tag: %d*", uint64(tag))
	}
}

// Packed - packed envelopes are just a byte slice
type Packed []byte

// StateReader - read access used to compute declared address sets
//
// declarations may depend on current state (the current page of a
// property, the contents of an open proposal), so they take the same
// snapshot the handler will run against
type StateReader interface {
	Get(addr address.Address) ([]byte, error)
}

// Action - generic action payload interface
//
// the unexported method closes the union to this package
type Action interface {
	Tag() TagType
	Inputs(signer string, state StateReader) ([]address.Address, error)
	Outputs(signer string, state StateReader) ([]address.Address, error)
	packPayload(buffer []byte) []byte
}

// Response - answer to an open proposal
type Response uint64

// possible response values
const (
	NullResponse   Response = iota // this must be the first value
	Accept         Response = iota
	Reject         Response = iota
	Cancel         Response = iota
	invalidAnswer  Response = iota // this must be the last value
)

// IsValid - valid response if in range
func (response Response) IsValid() bool {
	return response > NullResponse && response < invalidAnswer
}

// String - convert a response to its name
func (response Response) String() string {
	switch response {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	case Cancel:
		return "cancel"
	default:
		return fmt.Sprintf("*unknown response: %d*", uint64(response))
	}
}

// SchemaCreate - register a new schema
type SchemaCreate struct {
	Name        string                      `json:"name"`
	Description string                      `json:"description"`
	Properties  []record.PropertyDefinition `json:"properties"`
}

// SchemaUpdate - append property definitions to an owned schema
type SchemaUpdate struct {
	Name       string                      `json:"name"`
	Properties []record.PropertyDefinition `json:"properties"`
}

// CreateRecord - start tracking an item
type CreateRecord struct {
	RecordId   string                 `json:"recordId"`
	Schema     string                 `json:"schema"`
	Properties []record.PropertyValue `json:"properties"`
}

// FinalizeRecord - close a record forever
type FinalizeRecord struct {
	RecordId string `json:"recordId"`
}

// UpdateProperties - report new values for record properties
type UpdateProperties struct {
	RecordId   string                 `json:"recordId"`
	Properties []record.PropertyValue `json:"properties"`
}

// RevokeReporter - withdraw a reporter's authorization
type RevokeReporter struct {
	RecordId   string   `json:"recordId"`
	ReporterId string   `json:"reporterId"`
	Properties []string `json:"properties"`
}

// CreateProposal - offer a role transfer
type CreateProposal struct {
	RecordId       string      `json:"recordId"`
	ReceivingAgent string      `json:"receivingAgent"`
	Role           record.Role `json:"role"`
	Properties     []string    `json:"properties,omitempty"`
	Terms          string      `json:"terms"`
}

// AnswerProposal - accept, reject or cancel an open proposal
type AnswerProposal struct {
	RecordId       string      `json:"recordId"`
	ReceivingAgent string      `json:"receivingAgent"`
	Role           record.Role `json:"role"`
	Response       Response    `json:"response"`
}

// Tag - payload type codes
func (a *SchemaCreate) Tag() TagType     { return SchemaCreateTag }
func (a *SchemaUpdate) Tag() TagType     { return SchemaUpdateTag }
func (a *CreateRecord) Tag() TagType     { return CreateRecordTag }
func (a *FinalizeRecord) Tag() TagType   { return FinalizeRecordTag }
func (a *UpdateProperties) Tag() TagType { return UpdatePropertiesTag }
func (a *CreateProposal) Tag() TagType   { return CreateProposalTag }
func (a *AnswerProposal) Tag() TagType   { return AnswerProposalTag }
func (a *RevokeReporter) Tag() TagType   { return RevokeReporterTag }

// Envelope - one ordered, signature verified action
//
// the ordering layer rejects any envelope whose timestamp is ahead of
// the validator clock before it reaches this module
type Envelope struct {
	Signer    string `json:"signer"` // verified public key, hex
	Timestamp uint64 `json:"timestamp"`
	Payload   Action `json:"payload"`
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// ExistsError - to allow for different classes of errors
type ExistsError GenericError

// InvalidError - to allow for different classes of errors
type InvalidError GenericError

// LengthError - to allow for different classes of errors
type LengthError GenericError

// NotFoundError - to allow for different classes of errors
type NotFoundError GenericError

// ProcessError - to allow for different classes of errors
type ProcessError GenericError

// RecordError - to allow for different classes of errors
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	AgentNotActive           = InvalidError("agent is not active")
	AgentNotFound            = NotFoundError("agent not found")
	CancelByReceiverAgent    = InvalidError("receiving agent may not cancel a proposal")
	CustodianMismatch        = InvalidError("signer is not the record custodian")
	DataTypeMismatch         = InvalidError("value data type does not match definition")
	DuplicateOpenProposal    = ExistsError("open proposal already exists")
	DuplicatePropertyName    = ExistsError("property name already exists")
	DuplicatePropertyValue   = InvalidError("duplicated property value")
	EmptyProperties          = LengthError("properties cannot be empty")
	EmptyRecordId            = LengthError("record id cannot be empty")
	EmptySchemaName          = LengthError("schema name cannot be empty")
	EnumOptionsInvalid       = InvalidError("enum options only valid for enum type")
	EnumOutOfRange           = InvalidError("enum value is out of range")
	InvalidAction            = InvalidError("invalid action")
	InvalidDataType          = InvalidError("invalid property data type")
	InvalidPageNumber        = InvalidError("invalid page number")
	InvalidProposalResponse  = InvalidError("invalid proposal response")
	InvalidProposalRole      = InvalidError("invalid proposal role")
	IssuerNoLongerCustodian  = InvalidError("issuing agent is no longer the record custodian")
	IssuerNoLongerOwner      = InvalidError("issuing agent is no longer the record owner")
	MissingRequiredProperty  = InvalidError("required property has no value")
	NotActionPack            = RecordError("not an action pack")
	NotEntityPack            = RecordError("not an entity pack")
	NotProposalParty         = InvalidError("signer is neither issuing nor receiving agent")
	OrganizationNotFound     = NotFoundError("organization not found")
	OwnerMismatch            = InvalidError("signer is not the record owner")
	OwnerCustodianMismatch   = InvalidError("signer is not both record owner and custodian")
	PermissionDenied         = InvalidError("organization lacks the required permission")
	PropertyNotFound         = NotFoundError("property not found")
	ProposalNotFound         = NotFoundError("no matching open proposal")
	RecordFinal              = InvalidError("record is final")
	RecordIdInUse            = ExistsError("record id is already in use")
	RecordNotFound           = NotFoundError("record not found")
	ReporterNotAuthorized    = InvalidError("reporter is not currently authorized")
	ResponseByIssuingAgent   = InvalidError("issuing agent may only cancel a proposal")
	SchemaAlreadyExists      = ExistsError("schema already exists")
	SchemaNotFound           = NotFoundError("schema not found")
	StateReadFailed          = ProcessError("state read failed")
	StateWriteFailed         = ProcessError("state write failed")
	StructIncomplete         = InvalidError("struct value must supply every struct property")
	StructOptionsInvalid     = InvalidError("struct properties only valid for struct type")
	TruncatedPack            = RecordError("packed buffer is truncated")
	UnauthorizedReporter     = InvalidError("signer is not an authorized reporter")
	UnknownPropertyName      = InvalidError("value has no matching property definition")
	WrongOwningOrganization  = InvalidError("signer organization does not own the schema")
)

// Error - the error interface base method
func (e GenericError) Error() string { return string(e) }

// Error - the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine the class of an error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrLength - determine the class of an error
func IsErrLength(e error) bool { _, ok := e.(LengthError); return ok }

// IsErrNotFound - determine the class of an error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine the class of an error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// IsErrRecord - determine the class of an error
func IsErrRecord(e error) bool { _, ok := e.(RecordError); return ok }

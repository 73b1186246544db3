// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package action

import (
	"github.com/trailmark-inc/trailmarkd/record"
	"github.com/trailmark-inc/trailmarkd/util"
)

// Pack - wire form of an envelope
//
// Varint64(tag) then signer, timestamp, then payload fields in
// struct order
func (envelope *Envelope) Pack() Packed {
	buffer := util.ToVarint64(uint64(envelope.Payload.Tag()))
	buffer = util.AppendString(buffer, envelope.Signer)
	buffer = util.AppendUint64(buffer, envelope.Timestamp)
	return envelope.Payload.packPayload(buffer)
}

func packDefinitions(buffer []byte, definitions []record.PropertyDefinition) []byte {
	buffer = util.AppendUint64(buffer, uint64(len(definitions)))
	for i := range definitions {
		buffer = record.PackDefinition(buffer, &definitions[i])
	}
	return buffer
}

func packValues(buffer []byte, values []record.PropertyValue) []byte {
	buffer = util.AppendUint64(buffer, uint64(len(values)))
	for i := range values {
		buffer = record.PackValue(buffer, &values[i])
	}
	return buffer
}

func packNames(buffer []byte, names []string) []byte {
	buffer = util.AppendUint64(buffer, uint64(len(names)))
	for _, name := range names {
		buffer = util.AppendString(buffer, name)
	}
	return buffer
}

func (a *SchemaCreate) packPayload(buffer []byte) []byte {
	buffer = util.AppendString(buffer, a.Name)
	buffer = util.AppendString(buffer, a.Description)
	return packDefinitions(buffer, a.Properties)
}

func (a *SchemaUpdate) packPayload(buffer []byte) []byte {
	buffer = util.AppendString(buffer, a.Name)
	return packDefinitions(buffer, a.Properties)
}

func (a *CreateRecord) packPayload(buffer []byte) []byte {
	buffer = util.AppendString(buffer, a.RecordId)
	buffer = util.AppendString(buffer, a.Schema)
	return packValues(buffer, a.Properties)
}

func (a *FinalizeRecord) packPayload(buffer []byte) []byte {
	return util.AppendString(buffer, a.RecordId)
}

func (a *UpdateProperties) packPayload(buffer []byte) []byte {
	buffer = util.AppendString(buffer, a.RecordId)
	return packValues(buffer, a.Properties)
}

func (a *RevokeReporter) packPayload(buffer []byte) []byte {
	buffer = util.AppendString(buffer, a.RecordId)
	buffer = util.AppendString(buffer, a.ReporterId)
	return packNames(buffer, a.Properties)
}

func (a *CreateProposal) packPayload(buffer []byte) []byte {
	buffer = util.AppendString(buffer, a.RecordId)
	buffer = util.AppendString(buffer, a.ReceivingAgent)
	buffer = util.AppendUint64(buffer, uint64(a.Role))
	buffer = packNames(buffer, a.Properties)
	return util.AppendString(buffer, a.Terms)
}

func (a *AnswerProposal) packPayload(buffer []byte) []byte {
	buffer = util.AppendString(buffer, a.RecordId)
	buffer = util.AppendString(buffer, a.ReceivingAgent)
	buffer = util.AppendUint64(buffer, uint64(a.Role))
	return util.AppendUint64(buffer, uint64(a.Response))
}

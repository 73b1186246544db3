// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package action

import (
	"github.com/trailmark-inc/trailmarkd/fault"
	"github.com/trailmark-inc/trailmarkd/record"
	"github.com/trailmark-inc/trailmarkd/util"
)

const maximumListCount = 1 << 20

func unpackDefinitions(u *util.Unpacker) []record.PropertyDefinition {
	n := u.Uint64()
	if n > maximumListCount {
		u.Fail(fault.NotActionPack)
		return nil
	}
	if 0 == n {
		return nil
	}
	definitions := make([]record.PropertyDefinition, n)
	for i := 0; i < int(n); i += 1 {
		record.UnpackDefinition(u, &definitions[i])
	}
	return definitions
}

func unpackValues(u *util.Unpacker) []record.PropertyValue {
	n := u.Uint64()
	if n > maximumListCount {
		u.Fail(fault.NotActionPack)
		return nil
	}
	if 0 == n {
		return nil
	}
	values := make([]record.PropertyValue, n)
	for i := 0; i < int(n); i += 1 {
		record.UnpackValue(u, &values[i])
	}
	return values
}

func unpackNames(u *util.Unpacker) []string {
	n := u.Uint64()
	if n > maximumListCount {
		u.Fail(fault.NotActionPack)
		return nil
	}
	if 0 == n {
		return nil
	}
	names := make([]string, n)
	for i := 0; i < int(n); i += 1 {
		names[i] = u.String()
	}
	return names
}

// UnpackEnvelope - turn the head of a byte stream back into an
// envelope
//
// also returns the number of bytes consumed so envelopes can be
// decoded one after another from a batch buffer
func UnpackEnvelope(packed Packed) (*Envelope, int, error) {

	u := util.NewUnpacker(packed)

	tag := TagType(u.Uint64())
	signer := u.String()
	timestamp := u.Uint64()

	var payload Action

	switch tag {

	case SchemaCreateTag:
		payload = &SchemaCreate{
			Name:        u.String(),
			Description: u.String(),
			Properties:  unpackDefinitions(u),
		}

	case SchemaUpdateTag:
		payload = &SchemaUpdate{
			Name:       u.String(),
			Properties: unpackDefinitions(u),
		}

	case CreateRecordTag:
		payload = &CreateRecord{
			RecordId:   u.String(),
			Schema:     u.String(),
			Properties: unpackValues(u),
		}

	case FinalizeRecordTag:
		payload = &FinalizeRecord{
			RecordId: u.String(),
		}

	case UpdatePropertiesTag:
		payload = &UpdateProperties{
			RecordId:   u.String(),
			Properties: unpackValues(u),
		}

	case CreateProposalTag:
		payload = &CreateProposal{
			RecordId:       u.String(),
			ReceivingAgent: u.String(),
			Role:           record.Role(u.Uint64()),
			Properties:     unpackNames(u),
			Terms:          u.String(),
		}

	case AnswerProposalTag:
		payload = &AnswerProposal{
			RecordId:       u.String(),
			ReceivingAgent: u.String(),
			Role:           record.Role(u.Uint64()),
			Response:       Response(u.Uint64()),
		}

	case RevokeReporterTag:
		payload = &RevokeReporter{
			RecordId:   u.String(),
			ReporterId: u.String(),
			Properties: unpackNames(u),
		}

	default:
		return nil, 0, fault.NotActionPack
	}

	if nil != u.Error() {
		return nil, 0, u.Error()
	}

	return &Envelope{
		Signer:    signer,
		Timestamp: timestamp,
		Payload:   payload,
	}, u.Used(), nil
}

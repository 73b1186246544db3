// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"github.com/bitmark-inc/logger"

	"github.com/trailmark-inc/trailmarkd/action"
	"github.com/trailmark-inc/trailmarkd/address"
	"github.com/trailmark-inc/trailmarkd/fault"
	"github.com/trailmark-inc/trailmarkd/pike"
	"github.com/trailmark-inc/trailmarkd/record"
	"github.com/trailmark-inc/trailmarkd/state"
)

// Processor - applies ordered envelopes to ledger state
type Processor struct {
	log *logger.L
}

// New - create a processor
func New() *Processor {
	return &Processor{
		log: logger.New("processor"),
	}
}

// Apply - validate one envelope and buffer its writes into the context
//
// returns nil only when every rule passed; on error the context holds
// no writes worth committing and must be discarded
func (p *Processor) Apply(envelope *action.Envelope, context *state.Context) error {

	identity := pike.NewStateReader(context)

	var err error
	switch payload := envelope.Payload.(type) {

	case *action.SchemaCreate:
		err = p.schemaCreate(envelope, payload, context, identity)

	case *action.SchemaUpdate:
		err = p.schemaUpdate(envelope, payload, context, identity)

	case *action.CreateRecord:
		err = p.createRecord(envelope, payload, context, identity)

	case *action.FinalizeRecord:
		err = p.finalizeRecord(envelope, payload, context)

	case *action.UpdateProperties:
		err = p.updateProperties(envelope, payload, context)

	case *action.RevokeReporter:
		err = p.revokeReporter(envelope, payload, context)

	case *action.CreateProposal:
		err = p.createProposal(envelope, payload, context, identity)

	case *action.AnswerProposal:
		err = p.answerProposal(envelope, payload, context)

	default:
		err = fault.InvalidAction
	}

	if nil != err {
		p.log.Warnf("%s from %s rejected: %s", envelope.Payload.Tag(), envelope.Signer, err)
		return err
	}
	p.log.Debugf("%s from %s applied", envelope.Payload.Tag(), envelope.Signer)
	return nil
}

// resolve a signer that must be a registered, active agent
func activeAgent(identity *pike.StateReader, publicKey string) (*pike.Agent, error) {
	agent, err := identity.Agent(publicKey)
	if nil != err {
		return nil, err
	}
	if !agent.Active {
		return nil, fault.AgentNotActive
	}
	return agent, nil
}

// load helpers: each reads one address through the context buffer and
// decodes the collision list there, an unoccupied address is an empty
// list

func loadSchemas(context *state.Context, addr address.Address) (record.SchemaList, error) {
	packed, err := context.Get(addr)
	if nil != err {
		return nil, err
	}
	if nil == packed {
		return record.SchemaList{}, nil
	}
	return record.UnpackSchemaList(packed)
}

func loadRecords(context *state.Context, addr address.Address) (record.RecordList, error) {
	packed, err := context.Get(addr)
	if nil != err {
		return nil, err
	}
	if nil == packed {
		return record.RecordList{}, nil
	}
	return record.UnpackRecordList(packed)
}

func loadProperties(context *state.Context, addr address.Address) (record.PropertyList, error) {
	packed, err := context.Get(addr)
	if nil != err {
		return nil, err
	}
	if nil == packed {
		return record.PropertyList{}, nil
	}
	return record.UnpackPropertyList(packed)
}

func loadPages(context *state.Context, addr address.Address) (record.PropertyPageList, error) {
	packed, err := context.Get(addr)
	if nil != err {
		return nil, err
	}
	if nil == packed {
		return record.PropertyPageList{}, nil
	}
	return record.UnpackPropertyPageList(packed)
}

func loadProposals(context *state.Context, addr address.Address) (record.ProposalList, error) {
	packed, err := context.Get(addr)
	if nil != err {
		return nil, err
	}
	if nil == packed {
		return record.ProposalList{}, nil
	}
	return record.UnpackProposalList(packed)
}

// fetch a record that must already exist and not be final
func mutableRecord(context *state.Context, recordId string) (*record.Record, error) {
	l, err := loadRecords(context, address.ForRecord(recordId))
	if nil != err {
		return nil, err
	}
	r, ok := l.Find(recordId)
	if !ok {
		return nil, fault.RecordNotFound
	}
	if r.Final {
		return nil, fault.RecordFinal
	}
	return &r, nil
}

// replace one record in its collision list and buffer the write
func storeRecord(context *state.Context, r *record.Record) error {
	addr := address.ForRecord(r.RecordId)
	l, err := loadRecords(context, addr)
	if nil != err {
		return err
	}
	context.Set(addr, []byte(l.Add(*r).Pack()))
	return nil
}

// replace one property header in its collision list and buffer the
// write
func storeProperty(context *state.Context, property *record.Property) error {
	addr := address.ForProperty(property.RecordId, property.Name)
	l, err := loadProperties(context, addr)
	if nil != err {
		return err
	}
	context.Set(addr, []byte(l.Add(*property).Pack()))
	return nil
}

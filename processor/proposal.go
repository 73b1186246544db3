// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"github.com/trailmark-inc/trailmarkd/action"
	"github.com/trailmark-inc/trailmarkd/address"
	"github.com/trailmark-inc/trailmarkd/fault"
	"github.com/trailmark-inc/trailmarkd/pike"
	"github.com/trailmark-inc/trailmarkd/record"
	"github.com/trailmark-inc/trailmarkd/state"
)

// offer a role transfer to another agent
//
// owner and reporter proposals come from the current owner, custodian
// proposals from the current custodian
func (p *Processor) createProposal(
	envelope *action.Envelope,
	a *action.CreateProposal,
	context *state.Context,
	identity *pike.StateReader,
) error {

	if !a.Role.IsValid() {
		return fault.InvalidProposalRole
	}
	if record.ReporterRole == a.Role && 0 == len(a.Properties) {
		return fault.EmptyProperties
	}

	if _, err := activeAgent(identity, envelope.Signer); nil != err {
		return err
	}
	if _, err := activeAgent(identity, a.ReceivingAgent); nil != err {
		return err
	}

	r, err := mutableRecord(context, a.RecordId)
	if nil != err {
		return err
	}

	switch a.Role {
	case record.OwnerRole, record.ReporterRole:
		if r.Owner() != envelope.Signer {
			return fault.OwnerMismatch
		}
	case record.CustodianRole:
		if r.Custodian() != envelope.Signer {
			return fault.CustodianMismatch
		}
	}

	addr := address.ForProposal(a.RecordId, a.ReceivingAgent)
	proposals, err := loadProposals(context, addr)
	if nil != err {
		return err
	}
	if _, ok := proposals.FindOpen(a.RecordId, a.ReceivingAgent, a.Role); ok {
		return fault.DuplicateOpenProposal
	}

	proposals = proposals.Add(record.Proposal{
		RecordId:       a.RecordId,
		Timestamp:      envelope.Timestamp,
		IssuingAgent:   envelope.Signer,
		ReceivingAgent: a.ReceivingAgent,
		Role:           a.Role,
		Properties:     a.Properties,
		Status:         record.OpenStatus,
		Terms:          a.Terms,
	})
	context.Set(addr, []byte(proposals.Pack()))
	return nil
}

// accept, reject or cancel an open proposal
//
// the receiver may accept or reject, the issuer may only cancel;
// accepting re-validates that the issuer still holds the role being
// given away, so a stale acceptance after an intervening transfer
// fails instead of moving the role from the wrong agent
func (p *Processor) answerProposal(
	envelope *action.Envelope,
	a *action.AnswerProposal,
	context *state.Context,
) error {

	if !a.Response.IsValid() {
		return fault.InvalidProposalResponse
	}
	if !a.Role.IsValid() {
		return fault.InvalidProposalRole
	}

	addr := address.ForProposal(a.RecordId, a.ReceivingAgent)
	proposals, err := loadProposals(context, addr)
	if nil != err {
		return err
	}
	i, ok := proposals.FindOpen(a.RecordId, a.ReceivingAgent, a.Role)
	if !ok {
		return fault.ProposalNotFound
	}
	proposal := proposals[i]

	switch envelope.Signer {
	case proposal.IssuingAgent:
		if action.Cancel != a.Response {
			return fault.ResponseByIssuingAgent
		}
	case proposal.ReceivingAgent:
		if action.Cancel == a.Response {
			return fault.CancelByReceiverAgent
		}
	default:
		return fault.NotProposalParty
	}

	switch a.Response {

	case action.Cancel:
		proposal.Status = record.CanceledStatus

	case action.Reject:
		proposal.Status = record.RejectedStatus

	case action.Accept:
		if err := p.acceptProposal(envelope, &proposal, context); nil != err {
			return err
		}
		proposal.Status = record.AcceptedStatus
	}

	proposals = proposals.Add(proposal)
	context.Set(addr, []byte(proposals.Pack()))
	return nil
}

// carry out the role transfer of an accepted proposal
func (p *Processor) acceptProposal(
	envelope *action.Envelope,
	proposal *record.Proposal,
	context *state.Context,
) error {

	r, err := mutableRecord(context, proposal.RecordId)
	if nil != err {
		return err
	}

	holder := record.AssociatedAgent{
		AgentId:   proposal.ReceivingAgent,
		Timestamp: envelope.Timestamp,
	}

	switch proposal.Role {

	case record.OwnerRole:
		if r.Owner() != proposal.IssuingAgent {
			return fault.IssuerNoLongerOwner
		}
		r.Owners = append(r.Owners, holder)
		return storeRecord(context, r)

	case record.CustodianRole:
		if r.Custodian() != proposal.IssuingAgent {
			return fault.IssuerNoLongerCustodian
		}
		r.Custodians = append(r.Custodians, holder)
		return storeRecord(context, r)

	case record.ReporterRole:
		if r.Owner() != proposal.IssuingAgent {
			return fault.IssuerNoLongerOwner
		}
		return authorizeReporter(context, proposal)
	}
	return fault.InvalidProposalRole
}

// grant the receiving agent reporter authorization on every property
// the proposal names
//
// a previously revoked reporter gets its old entry re-enabled and
// keeps its permanent index
func authorizeReporter(context *state.Context, proposal *record.Proposal) error {

	for _, name := range proposal.Properties {
		headerAddress := address.ForProperty(proposal.RecordId, name)
		headers, err := loadProperties(context, headerAddress)
		if nil != err {
			return err
		}
		property, ok := headers.Find(proposal.RecordId, name)
		if !ok {
			return fault.PropertyNotFound
		}

		found := false
		for i := range property.Reporters {
			if property.Reporters[i].PublicKey == proposal.ReceivingAgent {
				property.Reporters[i].Authorized = true
				found = true
				break
			}
		}
		if !found {
			property.Reporters = append(property.Reporters, record.Reporter{
				PublicKey:  proposal.ReceivingAgent,
				Authorized: true,
				Index:      uint32(len(property.Reporters)),
			})
		}

		headers = headers.Add(property)
		context.Set(headerAddress, []byte(headers.Pack()))
	}
	return nil
}

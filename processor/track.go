// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"sort"

	"github.com/trailmark-inc/trailmarkd/action"
	"github.com/trailmark-inc/trailmarkd/address"
	"github.com/trailmark-inc/trailmarkd/fault"
	"github.com/trailmark-inc/trailmarkd/pager"
	"github.com/trailmark-inc/trailmarkd/pike"
	"github.com/trailmark-inc/trailmarkd/record"
	"github.com/trailmark-inc/trailmarkd/state"
)

// start tracking an item: the signer becomes owner, custodian and the
// reporter of every property
func (p *Processor) createRecord(
	envelope *action.Envelope,
	a *action.CreateRecord,
	context *state.Context,
	identity *pike.StateReader,
) error {

	if "" == a.RecordId {
		return fault.EmptyRecordId
	}

	if _, err := activeAgent(identity, envelope.Signer); nil != err {
		return err
	}

	schemas, err := loadSchemas(context, address.ForSchema(a.Schema))
	if nil != err {
		return err
	}
	schema, ok := schemas.Find(a.Schema)
	if !ok {
		return fault.SchemaNotFound
	}

	recordAddress := address.ForRecord(a.RecordId)
	records, err := loadRecords(context, recordAddress)
	if nil != err {
		return err
	}
	if _, ok := records.Find(a.RecordId); ok {
		return fault.RecordIdInUse
	}

	if err := record.Validate(a.Properties, schema.Properties); nil != err {
		return err
	}

	holder := record.AssociatedAgent{
		AgentId:   envelope.Signer,
		Timestamp: envelope.Timestamp,
	}
	records = records.Add(record.Record{
		RecordId:   a.RecordId,
		Schema:     a.Schema,
		Owners:     []record.AssociatedAgent{holder},
		Custodians: []record.AssociatedAgent{holder},
	})
	context.Set(recordAddress, []byte(records.Pack()))

	// a header for every schema definition, even the ones with no
	// initial value, so later updates only touch the one property
	for i := range schema.Properties {
		property := record.Property{
			Name:       schema.Properties[i].Name,
			RecordId:   a.RecordId,
			Definition: schema.Properties[i],
			Reporters: []record.Reporter{
				{PublicKey: envelope.Signer, Authorized: true, Index: 0},
			},
			CurrentPage: pager.FirstPage,
		}
		if err := storeProperty(context, &property); nil != err {
			return err
		}
	}

	// first page for every initial value
	for i := range a.Properties {
		name := a.Properties[i].Name
		pageAddress := address.ForPropertyPage(a.RecordId, name, uint16(pager.FirstPage))
		pages, err := loadPages(context, pageAddress)
		if nil != err {
			return err
		}
		page, _ := pages.Find(a.RecordId, name)
		page.Name = name
		page.RecordId = a.RecordId
		page.ReportedValues = append(page.ReportedValues, record.ReportedValue{
			ReporterIndex: 0,
			Timestamp:     envelope.Timestamp,
			Value:         a.Properties[i],
		})
		pages = pages.Add(page)
		context.Set(pageAddress, []byte(pages.Pack()))
	}
	return nil
}

// close a record forever: only the agent holding both roles may do it
func (p *Processor) finalizeRecord(
	envelope *action.Envelope,
	a *action.FinalizeRecord,
	context *state.Context,
) error {

	r, err := mutableRecord(context, a.RecordId)
	if nil != err {
		return err
	}
	if r.Owner() != envelope.Signer || r.Custodian() != envelope.Signer {
		return fault.OwnerCustodianMismatch
	}

	r.Final = true
	return storeRecord(context, r)
}

// append one reported value to a property's ring buffer, advancing to
// the next page when the current one is full and wrapping from the
// last page back to the first
func appendReported(
	context *state.Context,
	property *record.Property,
	reported record.ReportedValue,
) error {

	pageAddress := address.ForPropertyPage(property.RecordId, property.Name, uint16(property.CurrentPage))
	pages, err := loadPages(context, pageAddress)
	if nil != err {
		return err
	}
	page, _ := pages.Find(property.RecordId, property.Name)

	if pager.EntriesPerPage == len(page.ReportedValues) {
		next, wrapped := property.CurrentPage.Next()
		property.CurrentPage = next
		if wrapped {
			property.Wrapped = true
		}

		// reload at the advanced address: a colliding page of
		// some other property may live there and must survive
		pageAddress = address.ForPropertyPage(property.RecordId, property.Name, uint16(next))
		pages, err = loadPages(context, pageAddress)
		if nil != err {
			return err
		}
		page, _ = pages.Find(property.RecordId, property.Name)

		// after a wrap the page holds the oldest history, which
		// the new page overwrites
		page.ReportedValues = nil
	}

	// timestamps are caller supplied, so a late arrival may carry an
	// older one: keep the page ordered by (timestamp, reporter index)
	values := page.ReportedValues
	at := sort.Search(len(values), func(i int) bool {
		if values[i].Timestamp != reported.Timestamp {
			return values[i].Timestamp > reported.Timestamp
		}
		return values[i].ReporterIndex > reported.ReporterIndex
	})
	values = append(values, record.ReportedValue{})
	copy(values[at+1:], values[at:])
	values[at] = reported

	page.Name = property.Name
	page.RecordId = property.RecordId
	page.ReportedValues = values
	pages = pages.Add(page)
	context.Set(pageAddress, []byte(pages.Pack()))
	return nil
}

// report new values: the signer must be an authorized reporter of
// every named property
func (p *Processor) updateProperties(
	envelope *action.Envelope,
	a *action.UpdateProperties,
	context *state.Context,
) error {

	if 0 == len(a.Properties) {
		return fault.EmptyProperties
	}

	if _, err := mutableRecord(context, a.RecordId); nil != err {
		return err
	}

	for i := range a.Properties {
		value := &a.Properties[i]

		headerAddress := address.ForProperty(a.RecordId, value.Name)
		headers, err := loadProperties(context, headerAddress)
		if nil != err {
			return err
		}
		property, ok := headers.Find(a.RecordId, value.Name)
		if !ok {
			return fault.PropertyNotFound
		}

		reporterIndex, err := property.ReporterIndex(envelope.Signer)
		if nil != err {
			return err
		}
		if err := record.CheckValue(value, &property.Definition); nil != err {
			return err
		}

		err = appendReported(context, &property, record.ReportedValue{
			ReporterIndex: reporterIndex,
			Timestamp:     envelope.Timestamp,
			Value:         *value,
		})
		if nil != err {
			return err
		}

		// the header carries the append cursor, store it back
		// even when the page did not advance
		headers = headers.Add(property)
		context.Set(headerAddress, []byte(headers.Pack()))
	}
	return nil
}

// withdraw a reporter's authorization on named properties
//
// the reporter entry keeps its permanent index so stored history stays
// attributable
func (p *Processor) revokeReporter(
	envelope *action.Envelope,
	a *action.RevokeReporter,
	context *state.Context,
) error {

	if 0 == len(a.Properties) {
		return fault.EmptyProperties
	}

	r, err := mutableRecord(context, a.RecordId)
	if nil != err {
		return err
	}
	if r.Owner() != envelope.Signer {
		return fault.OwnerMismatch
	}

	for _, name := range a.Properties {
		headerAddress := address.ForProperty(a.RecordId, name)
		headers, err := loadProperties(context, headerAddress)
		if nil != err {
			return err
		}
		property, ok := headers.Find(a.RecordId, name)
		if !ok {
			return fault.PropertyNotFound
		}

		revoked := false
		for i := range property.Reporters {
			if property.Reporters[i].PublicKey == a.ReporterId {
				if !property.Reporters[i].Authorized {
					return fault.ReporterNotAuthorized
				}
				property.Reporters[i].Authorized = false
				revoked = true
				break
			}
		}
		if !revoked {
			return fault.ReporterNotAuthorized
		}

		headers = headers.Add(property)
		context.Set(headerAddress, []byte(headers.Pack()))
	}
	return nil
}

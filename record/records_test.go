// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"reflect"
	"testing"

	"github.com/trailmark-inc/trailmarkd/pager"
	"github.com/trailmark-inc/trailmarkd/record"
	"github.com/trailmark-inc/trailmarkd/util"
)

// encode then decode must yield an identical container
func TestSchemaListRoundTrip(t *testing.T) {
	l := record.SchemaList{}
	l = l.Add(record.Schema{
		Name:        "FishSchema",
		Description: "cold chain fish tracking",
		Owner:       "trailmark-farms",
		Properties:  fishDefinitions(),
	})

	packed := l.Pack()
	unpacked, err := record.UnpackSchemaList(packed)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if !reflect.DeepEqual(l, unpacked) {
		t.Fatalf("unpack: %+v  expected: %+v", unpacked, l)
	}
}

func TestRecordListRoundTrip(t *testing.T) {
	l := record.RecordList{}
	l = l.Add(record.Record{
		RecordId: "fish-456",
		Schema:   "FishSchema",
		Owners: []record.AssociatedAgent{
			{AgentId: "02aaaa", Timestamp: 1000},
			{AgentId: "02bbbb", Timestamp: 2000},
		},
		Custodians: []record.AssociatedAgent{
			{AgentId: "02aaaa", Timestamp: 1000},
		},
		Final: false,
	})
	l = l.Add(record.Record{
		RecordId: "fish-123",
		Schema:   "FishSchema",
		Owners: []record.AssociatedAgent{
			{AgentId: "02cccc", Timestamp: 500},
		},
		Custodians: []record.AssociatedAgent{
			{AgentId: "02cccc", Timestamp: 500},
		},
		Final: true,
	})

	// collision list must be ordered by record id
	if "fish-123" != l[0].RecordId || "fish-456" != l[1].RecordId {
		t.Fatalf("list order: %q, %q", l[0].RecordId, l[1].RecordId)
	}

	packed := l.Pack()
	unpacked, err := record.UnpackRecordList(packed)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if !reflect.DeepEqual(l, unpacked) {
		t.Fatalf("unpack: %+v  expected: %+v", unpacked, l)
	}
}

func TestPropertyListRoundTrip(t *testing.T) {
	l := record.PropertyList{}
	l = l.Add(record.Property{
		Name:     "temperature",
		RecordId: "fish-456",
		Definition: record.PropertyDefinition{
			Name:           "temperature",
			DataType:       record.NumberType,
			Required:       true,
			NumberExponent: -3,
		},
		Reporters: []record.Reporter{
			{PublicKey: "02aaaa", Authorized: true, Index: 0},
			{PublicKey: "02bbbb", Authorized: false, Index: 1},
		},
		CurrentPage: pager.PageNumber(0x0002),
		Wrapped:     false,
	})

	packed := l.Pack()
	unpacked, err := record.UnpackPropertyList(packed)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if !reflect.DeepEqual(l, unpacked) {
		t.Fatalf("unpack: %+v  expected: %+v", unpacked, l)
	}
}

func TestPropertyPageListRoundTrip(t *testing.T) {
	l := record.PropertyPageList{}
	l = l.Add(record.PropertyPage{
		Name:     "temperature",
		RecordId: "fish-456",
		ReportedValues: []record.ReportedValue{
			{ReporterIndex: 0, Timestamp: 1000, Value: numberValue("temperature", 10500)},
			{ReporterIndex: 1, Timestamp: 1000, Value: numberValue("temperature", 10400)},
			{ReporterIndex: 0, Timestamp: 1001, Value: numberValue("temperature", 10300)},
		},
	})

	packed := l.Pack()
	unpacked, err := record.UnpackPropertyPageList(packed)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if !reflect.DeepEqual(l, unpacked) {
		t.Fatalf("unpack: %+v  expected: %+v", unpacked, l)
	}
}

func TestProposalListRoundTrip(t *testing.T) {
	l := record.ProposalList{}
	l = l.Add(record.Proposal{
		RecordId:       "fish-456",
		Timestamp:      2000,
		IssuingAgent:   "02aaaa",
		ReceivingAgent: "02bbbb",
		Role:           record.ReporterRole,
		Properties:     []string{"temperature", "tilt"},
		Status:         record.OpenStatus,
		Terms:          "report twice daily",
	})
	l = l.Add(record.Proposal{
		RecordId:       "fish-456",
		Timestamp:      1000,
		IssuingAgent:   "02aaaa",
		ReceivingAgent: "02bbbb",
		Role:           record.OwnerRole,
		Status:         record.RejectedStatus,
		Terms:          "",
	})

	// ordered by (record id, receiving agent, timestamp)
	if 1000 != l[0].Timestamp || 2000 != l[1].Timestamp {
		t.Fatalf("list order: %d, %d", l[0].Timestamp, l[1].Timestamp)
	}

	packed := l.Pack()
	unpacked, err := record.UnpackProposalList(packed)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if !reflect.DeepEqual(l, unpacked) {
		t.Fatalf("unpack: %+v  expected: %+v", unpacked, l)
	}
}

// adding an entity with an existing primary key replaces in place
func TestListReplace(t *testing.T) {
	l := record.SchemaList{}
	l = l.Add(record.Schema{Name: "FishSchema", Owner: "one"})
	l = l.Add(record.Schema{Name: "MeatSchema", Owner: "one"})
	l = l.Add(record.Schema{Name: "FishSchema", Owner: "two"})

	if 2 != len(l) {
		t.Fatalf("length: %d  expected: 2", len(l))
	}
	s, ok := l.Find("FishSchema")
	if !ok || "two" != s.Owner {
		t.Fatalf("replace failed: %+v", s)
	}
}

// answering replaces the open proposal in place, keeping the list length
func TestProposalReplaceOpen(t *testing.T) {
	l := record.ProposalList{}
	open := record.Proposal{
		RecordId:       "fish-456",
		Timestamp:      1000,
		IssuingAgent:   "02aaaa",
		ReceivingAgent: "02bbbb",
		Role:           record.OwnerRole,
		Status:         record.OpenStatus,
	}
	l = l.Add(open)

	answered := open
	answered.Status = record.AcceptedStatus
	l = l.Add(answered)

	if 1 != len(l) {
		t.Fatalf("length: %d  expected: 1", len(l))
	}
	if record.AcceptedStatus != l[0].Status {
		t.Fatalf("status: %s  expected: accepted", l[0].Status)
	}
	if _, ok := l.FindOpen("fish-456", "02bbbb", record.OwnerRole); ok {
		t.Fatal("accepted proposal still reported open")
	}
}

func TestRecordRoles(t *testing.T) {
	r := record.Record{
		RecordId: "fish-456",
		Owners: []record.AssociatedAgent{
			{AgentId: "02aaaa", Timestamp: 1000},
			{AgentId: "02bbbb", Timestamp: 2000},
		},
		Custodians: []record.AssociatedAgent{
			{AgentId: "02aaaa", Timestamp: 1000},
		},
	}
	if "02bbbb" != r.Owner() {
		t.Errorf("owner: %q  expected: 02bbbb", r.Owner())
	}
	if "02aaaa" != r.Custodian() {
		t.Errorf("custodian: %q  expected: 02aaaa", r.Custodian())
	}

	// the accessors must work on a bare value, like a list lookup
	// result, not only on an addressable variable
	if "" != (record.Record{}).Owner() {
		t.Error("empty record has an owner")
	}
	if "" != (record.Record{}).Custodian() {
		t.Error("empty record has a custodian")
	}
}

// corrupt containers must fail cleanly
func TestUnpackCorrupt(t *testing.T) {
	l := record.SchemaList{}
	l = l.Add(record.Schema{Name: "FishSchema", Owner: "one"})
	packed := l.Pack()

	if _, err := record.UnpackSchemaList(packed[:len(packed)-2]); nil == err {
		t.Fatal("truncated container accepted")
	}

	extended := append([]byte{}, packed...)
	extended = append(extended, 0x00)
	if _, err := record.UnpackSchemaList(extended); nil == err {
		t.Fatal("trailing bytes accepted")
	}

	// an absurd element count must fail, not decode as an empty list
	oversized := util.ToVarint64(1 << 21)
	if _, err := record.UnpackSchemaList(oversized); nil == err {
		t.Fatal("oversized count accepted")
	}
}

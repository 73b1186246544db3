// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - on-ledger entity types and their wire form
//
// every entity is stored inside a list container at its computed
// address: address collisions are legal and resolved by keeping all
// colliding entities in the one list, in a fixed per-type order
//
// the wire form is a hand coded varint / length prefixed codec in the
// style of the transaction records, so that encode → decode always
// round trips exactly and no field ordering depends on map iteration
package record

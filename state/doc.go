// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package state - ledger state access for action processing
//
// a Provider is the external key-value ledger; a Context wraps one
// provider snapshot for the duration of a single action: reads are
// cached, writes are buffered, and the whole write set is committed
// atomically or discarded as a unit
//
// the context also records the exact set of addresses read and
// written so the surrounding execution layer can verify the action's
// declared inputs and outputs
package state

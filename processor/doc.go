// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package processor - deterministic validation and application of
// signed action envelopes
//
// one envelope is applied to one state context; every rule violation
// aborts with a fault before any write reaches the provider, so a
// caller commits on nil error and discards otherwise
//
// processing is single threaded: the ordering layer serializes
// envelopes before they reach Apply
package processor

// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package action - the signed action envelope and its eight payloads
//
// an envelope arrives from the external ordering layer with an
// already verified signer public key and a caller supplied timestamp;
// the payload union is closed: the Action interface has an unexported
// method so no other package can add a ninth case and every dispatch
// switch stays exhaustive
//
// each payload can also compute the exact address sets the handler
// will read and write, for the execution layer's isolation contract
package action

// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - deterministic ledger address derivation
//
// every entity occupies a fixed 35 byte (70 hex character) address:
//
//	3 bytes  ledger namespace (first 3 bytes of SHA3-256 of the family name)
//	1 byte   entity type tag
//	31 bytes SHA3-512 digest of the entity key material, truncated
//
// property and property page addresses replace the last 2 digest
// bytes with a big endian page number:
//
//	0000        property header
//	0001..ffff  history pages
//
// digests are collision resistant in practice but genuine collisions
// are still legal: every address stores a list container, never a
// bare entity
package address

// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// ToZigzagVarint64 - convert a 64 bit signed integer to a zigzag
// coded Varint64
//
// zigzag interleaves positive and negative values so that small
// magnitudes of either sign stay small on the wire:
//   0 → 0, -1 → 1, 1 → 2, -2 → 3, …
func ToZigzagVarint64(value int64) []byte {
	return ToVarint64(uint64(value<<1) ^ uint64(value>>63))
}

// FromZigzagVarint64 - convert a zigzag coded Varint64 back to a
// signed integer
//
// also return the number of bytes used as second value
// returns 0, 0 if the varint64 buffer is truncated
func FromZigzagVarint64(buffer []byte) (int64, int) {
	u, count := FromVarint64(buffer)
	if 0 == count {
		return 0, 0
	}
	return int64(u>>1) ^ -int64(u&1), count
}

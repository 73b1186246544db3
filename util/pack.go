// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// AppendUint64 - append a Varint64 coded unsigned value
func AppendUint64(buffer []byte, value uint64) []byte {
	return append(buffer, ToVarint64(value)...)
}

// AppendInt64 - append a zigzag Varint64 coded signed value
func AppendInt64(buffer []byte, value int64) []byte {
	return append(buffer, ToZigzagVarint64(value)...)
}

// AppendBool - append a single byte boolean: 0x00 or 0x01
func AppendBool(buffer []byte, value bool) []byte {
	b := byte(0x00)
	if value {
		b = 0x01
	}
	return append(buffer, b)
}

// AppendBytes - append a length prefixed byte slice
func AppendBytes(buffer []byte, value []byte) []byte {
	buffer = append(buffer, ToVarint64(uint64(len(value)))...)
	return append(buffer, value...)
}

// AppendString - append a length prefixed UTF-8 string
func AppendString(buffer []byte, value string) []byte {
	buffer = append(buffer, ToVarint64(uint64(len(value)))...)
	return append(buffer, value...)
}

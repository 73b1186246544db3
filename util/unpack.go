// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/trailmark-inc/trailmarkd/fault"
)

// Unpacker - sequential decoder for values coded by the Append
// routines
//
// the first decode failure is latched: all later calls return zero
// values and Error reports the latched fault
type Unpacker struct {
	buffer []byte
	offset int
	err    error
}

// NewUnpacker - wrap a packed buffer for decoding
func NewUnpacker(buffer []byte) *Unpacker {
	return &Unpacker{buffer: buffer}
}

// Fail - latch a caller detected decode fault
//
// for container decoders rejecting a structurally valid but
// nonsensical value, e.g. an absurd element count
func (u *Unpacker) Fail(err error) {
	if nil == u.err {
		u.err = err
	}
}

// Uint64 - decode a Varint64 coded unsigned value
func (u *Unpacker) Uint64() uint64 {
	if nil != u.err {
		return 0
	}
	value, count := FromVarint64(u.buffer[u.offset:])
	if 0 == count {
		u.err = fault.TruncatedPack
		return 0
	}
	u.offset += count
	return value
}

// Int64 - decode a zigzag Varint64 coded signed value
func (u *Unpacker) Int64() int64 {
	if nil != u.err {
		return 0
	}
	value, count := FromZigzagVarint64(u.buffer[u.offset:])
	if 0 == count {
		u.err = fault.TruncatedPack
		return 0
	}
	u.offset += count
	return value
}

// Bool - decode a single byte boolean
func (u *Unpacker) Bool() bool {
	if nil != u.err {
		return false
	}
	if u.offset >= len(u.buffer) {
		u.err = fault.TruncatedPack
		return false
	}
	b := u.buffer[u.offset]
	u.offset += 1
	return 0x00 != b
}

// Bytes - decode a length prefixed byte slice
//
// the result is a copy, not an alias of the packed buffer
func (u *Unpacker) Bytes() []byte {
	length := u.Uint64()
	if nil != u.err {
		return nil
	}
	if length > uint64(len(u.buffer)-u.offset) {
		u.err = fault.TruncatedPack
		return nil
	}
	value := make([]byte, length)
	copy(value, u.buffer[u.offset:u.offset+int(length)])
	u.offset += int(length)
	return value
}

// String - decode a length prefixed UTF-8 string
func (u *Unpacker) String() string {
	length := u.Uint64()
	if nil != u.err {
		return ""
	}
	if length > uint64(len(u.buffer)-u.offset) {
		u.err = fault.TruncatedPack
		return ""
	}
	value := string(u.buffer[u.offset : u.offset+int(length)])
	u.offset += int(length)
	return value
}

// Used - number of bytes consumed so far
func (u *Unpacker) Used() int {
	return u.offset
}

// Done - true if the whole buffer was consumed without error
func (u *Unpacker) Done() bool {
	return nil == u.err && u.offset == len(u.buffer)
}

// Error - the first decode fault, or nil
func (u *Unpacker) Error() error {
	return u.err
}

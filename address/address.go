// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/trailmark-inc/trailmarkd/fault"
)

// Length - number of bytes in an address
const Length = 35

// HexLength - number of characters in the hex form of an address
const HexLength = 2 * Length

// number of digest bytes following namespace and type tag
const (
	keyLength      = 31
	pagedKeyLength = keyLength - 2 // room for the page suffix
)

// entity type tags within the track and trace namespace
const (
	TagSchema   = byte(0x01)
	TagRecord   = byte(0x02)
	TagProperty = byte(0x03)
	TagProposal = byte(0x04)
)

// entity type tags within the pike namespace
const (
	TagAgent        = byte(0x01)
	TagOrganization = byte(0x02)
)

// family names hashed into the namespace prefixes
const (
	trackFamily = "track_and_trace"
	pikeFamily  = "pike"
)

// Address - fixed length ledger address
// represented as lower case hex text for JSON encoding
// to convert to bytes just use a[:]
type Address [Length]byte

// namespace prefixes, fixed protocol constants
var (
	trackNamespace [3]byte
	pikeNamespace  [3]byte
)

func init() {
	t := sha3.Sum256([]byte(trackFamily))
	copy(trackNamespace[:], t[:3])
	p := sha3.Sum256([]byte(pikeFamily))
	copy(pikeNamespace[:], p[:3])
}

// assemble namespace + tag + truncated digest of the key material
func derive(namespace [3]byte, tag byte, keyMaterial []byte) Address {
	digest := sha3.Sum512(keyMaterial)

	a := Address{}
	copy(a[:3], namespace[:])
	a[3] = tag
	copy(a[4:], digest[:keyLength])
	return a
}

// key material for a compound key: parts joined by a NUL separator
func compound(parts ...string) []byte {
	buffer := []byte{}
	for i, part := range parts {
		if i > 0 {
			buffer = append(buffer, 0x00)
		}
		buffer = append(buffer, part...)
	}
	return buffer
}

// ForSchema - address of the schema list for a schema name
func ForSchema(name string) Address {
	return derive(trackNamespace, TagSchema, []byte(name))
}

// ForRecord - address of the record list for a record id
func ForRecord(recordId string) Address {
	return derive(trackNamespace, TagRecord, []byte(recordId))
}

// ForProperty - address of the property header list for a
// (record id, property name) pair; page suffix 0000
func ForProperty(recordId string, name string) Address {
	return ForPropertyPage(recordId, name, 0)
}

// ForPropertyPage - address of one history page of a property
//
// page 0 is the property header, pages 1..0xffff hold reported values
func ForPropertyPage(recordId string, name string, page uint16) Address {
	a := derive(trackNamespace, TagProperty, compound(recordId, name))
	binary.BigEndian.PutUint16(a[4+pagedKeyLength:], page)
	return a
}

// ForProposal - address of the proposal list for a
// (record id, receiving agent) pair
func ForProposal(recordId string, receivingAgent string) Address {
	return derive(trackNamespace, TagProposal, compound(recordId, receivingAgent))
}

// ForAgent - address of the pike agent list for a public key
func ForAgent(publicKey string) Address {
	return derive(pikeNamespace, TagAgent, []byte(publicKey))
}

// ForOrganization - address of the pike organization list for an
// organization id
func ForOrganization(id string) Address {
	return derive(pikeNamespace, TagOrganization, []byte(id))
}

// IsProperty - true for addresses in the property page space
func (address Address) IsProperty() bool {
	return trackNamespace == [3]byte(address[:3]) && TagProperty == address[3]
}

// PageNumber - page suffix of a property address
//
// only meaningful when IsProperty is true
func (address Address) PageNumber() uint16 {
	return binary.BigEndian.Uint16(address[4+pagedKeyLength:])
}

// WithPage - the same property address with a different page suffix
func (address Address) WithPage(page uint16) Address {
	a := address
	binary.BigEndian.PutUint16(a[4+pagedKeyLength:], page)
	return a
}

// String - convert a binary address to lower case hex for use by the
// fmt package (for %s)
func (address Address) String() string {
	return hex.EncodeToString(address[:])
}

// GoString - convert a binary address to hex for use by the fmt
// package (for %#v)
func (address Address) GoString() string {
	return "<address:" + hex.EncodeToString(address[:]) + ">"
}

// MarshalText - convert an address to hex text
func (address Address) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(Length))
	hex.Encode(buffer, address[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into an address
func (address *Address) UnmarshalText(s []byte) error {
	if Length != hex.DecodedLen(len(s)) {
		return fault.TruncatedPack
	}
	byteCount, err := hex.Decode(address[:], s)
	if nil != err {
		return err
	}
	if Length != byteCount {
		return fault.TruncatedPack
	}
	return nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pager - ring buffer page arithmetic for property history
//
// a property stores its reported values on numbered pages 0001..ffff,
// each holding up to EntriesPerPage entries; page 0000 is the
// property header and never holds values
//
// once page ffff fills, the next page is 0001 again and the wrapped
// flag becomes true: from then on the oldest surviving page is the
// one after the current page, not 0001
package pager

import (
	"github.com/trailmark-inc/trailmarkd/fault"
)

// EntriesPerPage - maximum reported values stored on one page
const EntriesPerPage = 256

// PageNumber - one page of a property's history ring
type PageNumber uint16

// page number limits: 0000 is the property header, not a page
const (
	HeaderPage PageNumber = 0x0000
	FirstPage  PageNumber = 0x0001
	LastPage   PageNumber = 0xffff
)

// MaximumEntries - most history a single property can retain
const MaximumEntries = EntriesPerPage * int(LastPage)

// IsValid - true for a usable history page number
func (page PageNumber) IsValid() bool {
	return page >= FirstPage
}

// Next - the page following this one
//
// second value is true on the ffff → 0001 wrap; the caller must then
// latch the property's wrapped flag
func (page PageNumber) Next() (PageNumber, bool) {
	if LastPage == page {
		return FirstPage, true
	}
	return page + 1, false
}

// Oldest - the oldest surviving page of a property
//
// before the first wrap the oldest page is always 0001; after it the
// ring has overwritten everything up to and including the current
// page, so the oldest data is on the page after it
func Oldest(current PageNumber, wrapped bool) (PageNumber, error) {
	if !current.IsValid() {
		return 0, fault.InvalidPageNumber
	}
	if !wrapped {
		return FirstPage, nil
	}
	next, _ := current.Next()
	return next, nil
}

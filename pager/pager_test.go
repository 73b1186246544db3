// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pager_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailmark-inc/trailmarkd/pager"
)

func TestNext(t *testing.T) {
	next, wrapped := pager.FirstPage.Next()
	assert.Equal(t, pager.PageNumber(2), next, "wrong next page")
	assert.False(t, wrapped, "unexpected wrap")

	next, wrapped = pager.PageNumber(0xfffe).Next()
	assert.Equal(t, pager.LastPage, next, "wrong page before wrap")
	assert.False(t, wrapped, "wrapped one page early")

	next, wrapped = pager.LastPage.Next()
	assert.Equal(t, pager.FirstPage, next, "ffff must wrap to 0001")
	assert.True(t, wrapped, "wrap flag not reported")
}

func TestOldest(t *testing.T) {
	// before the first wrap the oldest page is unconditionally 0001
	oldest, err := pager.Oldest(pager.PageNumber(0x0123), false)
	require.NoError(t, err)
	assert.Equal(t, pager.FirstPage, oldest, "oldest before wrap")

	// after wrapping the oldest page trails the current one
	oldest, err = pager.Oldest(pager.PageNumber(0x0123), true)
	require.NoError(t, err)
	assert.Equal(t, pager.PageNumber(0x0124), oldest, "oldest after wrap")

	// current=ffff wrapped: oldest is 0001, not 0000 or 10000
	oldest, err = pager.Oldest(pager.LastPage, true)
	require.NoError(t, err)
	assert.Equal(t, pager.FirstPage, oldest, "oldest at ring end")

	_, err = pager.Oldest(pager.HeaderPage, true)
	assert.Error(t, err, "header page accepted as current")
}

// walk the whole ring: every page follows its predecessor exactly
// once and only ffff wraps
func TestRingWalk(t *testing.T) {
	page := pager.FirstPage
	wraps := 0
	for i := 0; i < int(pager.LastPage); i += 1 {
		next, wrapped := page.Next()
		require.True(t, next.IsValid(), "invalid page produced at %#04x", page)
		if wrapped {
			wraps += 1
			require.Equal(t, pager.LastPage, page, "wrap away from ffff")
			require.Equal(t, pager.FirstPage, next, "wrap not landing on 0001")
		} else {
			require.Equal(t, page+1, next, "non sequential advance at %#04x", page)
		}
		page = next
	}
	assert.Equal(t, 1, wraps, "wrong wrap count for one full revolution")
	assert.Equal(t, pager.FirstPage, page, "full revolution must return to 0001")
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, 16776960, pager.MaximumEntries, "wrong maximum history")
}

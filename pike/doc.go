// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pike - read-only view of the identity registry
//
// agent and organization records are maintained by a separate
// identity transaction family; this package only decodes them from
// their ledger namespace and answers permission questions, it never
// writes them
package pike

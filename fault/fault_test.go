// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/trailmark-inc/trailmarkd/fault"
)

var (
	errExistsOne   = fault.ExistsError("exists one")
	errInvalidOne  = fault.InvalidError("invalid one")
	errLengthOne   = fault.LengthError("length one")
	errNotFoundOne = fault.NotFoundError("not found one")
	errProcessOne  = fault.ProcessError("process one")
	errRecordOne   = fault.RecordError("record one")
)

// test that the various error classes can be distinguished
func TestErrorClasses(t *testing.T) {
	errorList := []struct {
		err      error
		exists   bool
		invalid  bool
		length   bool
		notFound bool
		process  bool
		record   bool
	}{
		{errExistsOne, true, false, false, false, false, false},
		{errInvalidOne, false, true, false, false, false, false},
		{errLengthOne, false, false, true, false, false, false},
		{errNotFoundOne, false, false, false, true, false, false},
		{errProcessOne, false, false, false, false, true, false},
		{errRecordOne, false, false, false, false, false, true},
		{fault.SchemaAlreadyExists, true, false, false, false, false, false},
		{fault.RecordFinal, false, true, false, false, false, false},
		{fault.SchemaNotFound, false, false, false, true, false, false},
		{fault.StateReadFailed, false, false, false, false, true, false},
	}

	for i, item := range errorList {
		if fault.IsErrExists(item.err) != item.exists {
			t.Errorf("%d: exists class mismatch for: %q", i, item.err)
		}
		if fault.IsErrInvalid(item.err) != item.invalid {
			t.Errorf("%d: invalid class mismatch for: %q", i, item.err)
		}
		if fault.IsErrLength(item.err) != item.length {
			t.Errorf("%d: length class mismatch for: %q", i, item.err)
		}
		if fault.IsErrNotFound(item.err) != item.notFound {
			t.Errorf("%d: not found class mismatch for: %q", i, item.err)
		}
		if fault.IsErrProcess(item.err) != item.process {
			t.Errorf("%d: process class mismatch for: %q", i, item.err)
		}
		if fault.IsErrRecord(item.err) != item.record {
			t.Errorf("%d: record class mismatch for: %q", i, item.err)
		}
	}
}

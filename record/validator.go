// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/trailmark-inc/trailmarkd/fault"
)

// Validate - check a list of property values against a list of
// property definitions
//
// pure function: no ledger access, no side effects
//
// rules:
//   - every required top level definition must have a value
//   - a value with no matching definition name is rejected
//   - value and definition data types must agree
//   - enum values must index inside the definition's options
//   - struct values must supply every struct property, ignoring any
//     nested required flags; validation recurses into them
func Validate(values []PropertyValue, definitions []PropertyDefinition) error {

	for i := range definitions {
		if !definitions[i].Required {
			continue
		}
		if _, ok := findValue(values, definitions[i].Name); !ok {
			return fault.MissingRequiredProperty
		}
	}

	return validateAll(values, definitions)
}

// CheckValue - validate a single value against a single definition
//
// used when updating an existing property whose definition snapshot
// is already stored
func CheckValue(value *PropertyValue, definition *PropertyDefinition) error {
	if value.Name != definition.Name {
		return fault.UnknownPropertyName
	}
	return checkValue(value, definition)
}

// CheckDefinitions - structural validity of a definition list
//
// rejects duplicate names, invalid data types, enum definitions
// without options (and options on non enums), and struct definitions
// without members (and members on non structs); recurses into
// struct properties
func CheckDefinitions(definitions []PropertyDefinition) error {
	for i := range definitions {
		d := &definitions[i]

		for j := 0; j < i; j += 1 {
			if definitions[j].Name == d.Name {
				return fault.DuplicatePropertyName
			}
		}

		if !d.DataType.IsValid() {
			return fault.InvalidDataType
		}

		if (EnumType == d.DataType) != (len(d.EnumOptions) > 0) {
			return fault.EnumOptionsInvalid
		}
		if (StructType == d.DataType) != (len(d.StructProperties) > 0) {
			return fault.StructOptionsInvalid
		}

		if StructType == d.DataType {
			if err := CheckDefinitions(d.StructProperties); nil != err {
				return err
			}
		}
	}
	return nil
}

// match every value to a definition by name; duplicates and unknown
// names are rejected
func validateAll(values []PropertyValue, definitions []PropertyDefinition) error {
	for i := range values {
		for j := 0; j < i; j += 1 {
			if values[j].Name == values[i].Name {
				return fault.DuplicatePropertyValue
			}
		}

		definition, ok := findDefinition(definitions, values[i].Name)
		if !ok {
			return fault.UnknownPropertyName
		}
		if err := checkValue(&values[i], definition); nil != err {
			return err
		}
	}
	return nil
}

func checkValue(value *PropertyValue, definition *PropertyDefinition) error {
	if value.DataType != definition.DataType {
		return fault.DataTypeMismatch
	}

	switch definition.DataType {

	case BytesType, BooleanType, NumberType, StringType:
		// scalar slots need no further checks

	case EnumType:
		if int(value.EnumValue) >= len(definition.EnumOptions) {
			return fault.EnumOutOfRange
		}

	case StructType:
		// all members must be present: nested required flags are
		// deliberately ignored, the struct is atomic
		for i := range definition.StructProperties {
			if _, ok := findValue(value.StructValues, definition.StructProperties[i].Name); !ok {
				return fault.StructIncomplete
			}
		}
		if err := validateAll(value.StructValues, definition.StructProperties); nil != err {
			return err
		}

	default:
		return fault.InvalidDataType
	}
	return nil
}

func findValue(values []PropertyValue, name string) (*PropertyValue, bool) {
	for i := range values {
		if values[i].Name == name {
			return &values[i], true
		}
	}
	return nil, false
}

func findDefinition(definitions []PropertyDefinition, name string) (*PropertyDefinition, bool) {
	for i := range definitions {
		if definitions[i].Name == name {
			return &definitions[i], true
		}
	}
	return nil, false
}

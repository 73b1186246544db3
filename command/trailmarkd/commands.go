// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/trailmark-inc/trailmarkd/address"
)

// setup command handler
//
// commands that run without the configuration file or the database
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "gen-address", "address":
		if len(arguments) < 2 {
			exitwithstatus.Message("%s: missing address arguments", program)
		}
		addr, err := computeAddress(arguments[0], arguments[1:])
		if nil != err {
			exitwithstatus.Message("%s: address error: %s", program, err)
		}
		fmt.Printf("%s\n", addr)

	case "version":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: empty command\n")
		default:
			fmt.Printf("error: no such command: %s\n", command)
		}

		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [command]\n", program)
		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                                         (h)       - display this message\n\n")
		fmt.Printf("  version                                      (v)       - display the program version\n\n")
		fmt.Printf("  gen-address schema NAME                      (address) - schema registry address\n")
		fmt.Printf("  gen-address record RECORD-ID                           - record address\n")
		fmt.Printf("  gen-address property RECORD-ID NAME                    - property header address\n")
		fmt.Printf("  gen-address page RECORD-ID NAME PAGE                   - property history page address\n")
		fmt.Printf("  gen-address proposal RECORD-ID RECEIVER                - proposal address\n")
		fmt.Printf("  gen-address agent PUBLIC-KEY                           - agent identity address\n")
		fmt.Printf("  gen-address organization ID                            - organization identity address\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and prevent continuing to daemon start
	return true
}

// derive one ledger address from command line arguments
func computeAddress(kind string, parts []string) (address.Address, error) {

	wrongCount := func() (address.Address, error) {
		return address.Address{}, fmt.Errorf("%s: wrong argument count: %d", kind, len(parts))
	}

	switch kind {

	case "schema":
		if 1 != len(parts) {
			return wrongCount()
		}
		return address.ForSchema(parts[0]), nil

	case "record":
		if 1 != len(parts) {
			return wrongCount()
		}
		return address.ForRecord(parts[0]), nil

	case "property":
		if 2 != len(parts) {
			return wrongCount()
		}
		return address.ForProperty(parts[0], parts[1]), nil

	case "page":
		if 3 != len(parts) {
			return wrongCount()
		}
		page, err := strconv.ParseUint(parts[2], 10, 16)
		if nil != err {
			return address.Address{}, err
		}
		return address.ForPropertyPage(parts[0], parts[1], uint16(page)), nil

	case "proposal":
		if 2 != len(parts) {
			return wrongCount()
		}
		return address.ForProposal(parts[0], parts[1]), nil

	case "agent":
		if 1 != len(parts) {
			return wrongCount()
		}
		return address.ForAgent(parts[0]), nil

	case "organization":
		if 1 != len(parts) {
			return wrongCount()
		}
		return address.ForOrganization(parts[0]), nil

	default:
		return address.Address{}, fmt.Errorf("unknown address kind: %q", kind)
	}
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"

	"github.com/trailmark-inc/trailmarkd/action"
	"github.com/trailmark-inc/trailmarkd/processor"
	"github.com/trailmark-inc/trailmarkd/state"
)

// a processed batch file is renamed with this suffix and never read
// again
const doneSuffix = ".done"

// apply every batch file already waiting in the spool, in name order
//
// the ordering layer names files so that lexical order is arrival
// order
func scanSpool(log *logger.L, proc *processor.Processor, store *state.Store, spoolDirectory string) error {

	entries, err := os.ReadDir(spoolDirectory)
	if nil != err {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), doneSuffix) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		processBatchFile(log, proc, store, filepath.Join(spoolDirectory, name))
	}
	return nil
}

// follow the spool directory until the stop channel closes
//
// producers must write batches elsewhere and rename them into the
// spool, so a create event always means a complete file
func watchSpool(log *logger.L, proc *processor.Processor, store *state.Store, spoolDirectory string, stop <-chan struct{}) error {

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return err
	}

	if err := watcher.Add(spoolDirectory); nil != err {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-stop:
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if 0 == event.Op&(fsnotify.Create|fsnotify.Rename) {
					continue
				}
				if strings.HasSuffix(event.Name, doneSuffix) {
					continue
				}
				log.Infof("spool: %s", event.Name)
				processBatchFile(log, proc, store, event.Name)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Errorf("watch error: %s", err)
			}
		}
	}()
	return nil
}

// apply one batch file of back to back packed envelopes
//
// each envelope gets its own context: a rejected envelope is logged
// and discarded without disturbing the rest of the batch
func processBatchFile(log *logger.L, proc *processor.Processor, store *state.Store, fileName string) {

	packed, err := os.ReadFile(fileName)
	if nil != err {
		log.Errorf("batch: %s  read error: %s", fileName, err)
		return
	}

	applied := 0
	rejected := 0

	for offset := 0; offset < len(packed); {
		envelope, used, err := action.UnpackEnvelope(packed[offset:])
		if nil != err {
			// a decode failure poisons the rest of the buffer
			log.Errorf("batch: %s  offset: %d  unpack error: %s", fileName, offset, err)
			break
		}
		offset += used

		context := state.NewContext(store)
		if err := proc.Apply(envelope, context); nil != err {
			context.Discard()
			rejected += 1
			continue
		}
		if err := context.Commit(); nil != err {
			log.Criticalf("batch: %s  commit error: %s", fileName, err)
			return
		}
		applied += 1
	}

	log.Infof("batch: %s  applied: %d  rejected: %d", fileName, applied, rejected)

	if err := os.Rename(fileName, fileName+doneSuffix); nil != err {
		log.Errorf("batch: %s  rename error: %s", fileName, err)
	}
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2025 Trailmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"

	"github.com/trailmark-inc/trailmarkd/address"
)

// Store - goleveldb backed provider for the daemon
//
// keys are raw 35 byte addresses; values are packed list containers
type Store struct {
	log      *logger.L
	database *leveldb.DB
}

// NewStore - open or create the ledger database
//
// the logger must already be initialised
func NewStore(directory string) (*Store, error) {
	db, err := leveldb.OpenFile(directory, nil)
	if nil != err {
		return nil, err
	}
	s := &Store{
		log:      logger.New("state"),
		database: db,
	}
	s.log.Infof("database: %s", directory)
	return s, nil
}

// Close - flush and close the database
func (store *Store) Close() error {
	return store.database.Close()
}

// Get - read a value
func (store *Store) Get(addr address.Address) ([]byte, error) {
	value, err := store.database.Get(addr[:], nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		store.log.Criticalf("get: %s  error: %s", addr, err)
		return nil, err
	}
	return value, nil
}

// Set - store a value
func (store *Store) Set(addr address.Address, value []byte) error {
	err := store.database.Put(addr[:], value, nil)
	if nil != err {
		store.log.Criticalf("put: %s  error: %s", addr, err)
	}
	return err
}

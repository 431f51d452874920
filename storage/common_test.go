// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/borkerd/storage"
)

// database of the running test, set by setup
var databaseFileName string

// open a fresh database in a per-test directory
func setup(t *testing.T) {
	databaseFileName = filepath.Join(t.TempDir(), "borks.leveldb")
	require.NoError(t, storage.Initialise(databaseFileName, storage.ReadWrite), "storage initialise")
}

// close the database, the directory is removed by the test framework
func teardown(t *testing.T) {
	storage.Finalise()
}

// close and open again in the given mode
func reopen(t *testing.T, readOnly bool) {
	storage.Finalise()
	require.NoError(t, storage.Initialise(databaseFileName, readOnly), "storage re-initialise")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/borkerd/network"
)

func TestGetConfiguration(t *testing.T) {
	dir := tempDirectory(t)
	name := writeFile(t, dir, "borkscan.conf", `
local M = {}
M.data_directory = "."
M.network = "LTC"
M.database = "/var/lib/borkscan/ltc.leveldb"
M.workers = 3
M.logging = {
    file = "scan.log",
    levels = {
        DEFAULT = "warn",
    },
}
return M
`)

	config, err := getConfiguration(name)
	require.NoError(t, err)

	assert.Equal(t, network.Litecoin, config.network)
	assert.Equal(t, filepath.Clean(dir), config.DataDirectory)
	assert.Equal(t, filepath.Join(dir, defaultBlockDirectory), config.BlockDirectory)
	assert.Equal(t, "/var/lib/borkscan/ltc.leveldb", config.Database)
	assert.Equal(t, 3, config.Workers)
	assert.Equal(t, defaultCacheExpiry*time.Second, config.cacheExpiry())
	assert.Equal(t, filepath.Join(dir, defaultLogDirectory), config.Logging.Directory)
	assert.Equal(t, "scan.log", config.Logging.File)
	assert.Equal(t, "warn", config.Logging.Levels["DEFAULT"])

	// directories are created
	info, err := os.Stat(config.BlockDirectory)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGetConfigurationErrors(t *testing.T) {
	dir := tempDirectory(t)

	tests := []string{
		// no data directory
		`return { network = "dogecoin" }`,

		// unknown network
		`return { data_directory = ".", network = "monero" }`,

		// log file with a path
		`return { data_directory = ".", logging = { file = "x/scan.log" } }`,

		// data directory does not exist
		`return { data_directory = "/no/such/directory/here" }`,

		// not a table
		`return "dogecoin"`,
	}

	for i, content := range tests {
		name := writeFile(t, dir, "test.conf", content)
		_, err := getConfiguration(name)
		assert.Error(t, err, "%d: %s", i, content)
	}
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/borkerd/storage"
	"github.com/bitmark-inc/logger"
)

// read the configuration, start logging and open the database
func setupScan(c *cli.Context, readOnly bool) (*Configuration, error) {

	m := c.App.Metadata["config"].(*metadata)

	file, err := checkConfigFile(c.String("config"))
	if nil != err {
		return nil, err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "reading config file: %s\n", file)
	}

	config, err := getConfiguration(file)
	if nil != err {
		return nil, err
	}

	if err := logger.Initialise(config.Logging); nil != err {
		return nil, fmt.Errorf("logger setup failed with error: %s", err)
	}

	if err := storage.Initialise(config.Database, readOnly); nil != err {
		logger.Finalise()
		return nil, fmt.Errorf("database: %q open failed with error: %s", config.Database, err)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "network: %s  blocks: %s  database: %s\n", config.network, config.BlockDirectory, config.Database)
	}
	return config, nil
}

func finaliseScan() {
	storage.Finalise()
	logger.Finalise()
}

func runScan(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	config, err := setupScan(c, storage.ReadWrite)
	if nil != err {
		return err
	}
	defer finaliseScan()

	log := logger.New("scan")
	log.Infof("scan: %s  network: %s", config.BlockDirectory, config.network)

	s := newBlockScanner(config, logger.New("scanner"))
	results, scanErr := s.scanDirectory(config.BlockDirectory)

	hits, misses := s.cache.Stats()
	log.Infof("files: %d  cache hits: %d  misses: %d", len(results), hits, misses)
	if err := printJson(m.w, results); nil != err {
		return err
	}
	return scanErr
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/borkerd/configuration"
	"github.com/bitmark-inc/borkerd/network"
	"github.com/bitmark-inc/borkerd/util"
	"github.com/bitmark-inc/logger"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultBlockDirectory = "blocks"
	defaultDatabase       = "borkscan.leveldb"
	defaultCacheExpiry    = 600 // seconds a scanned block is remembered

	defaultLogDirectory = "log"
	defaultLogFile      = "borkscan.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

type Configuration struct {
	DataDirectory  string               `gluamapper:"data_directory" json:"data_directory"`
	Network        string               `gluamapper:"network" json:"network"`
	BlockDirectory string               `gluamapper:"block_directory" json:"block_directory"`
	Database       string               `gluamapper:"database" json:"database"`
	Workers        int                  `gluamapper:"workers" json:"workers"`
	CacheExpiry    int                  `gluamapper:"cache_expiry" json:"cache_expiry"`
	Logging        logger.Configuration `gluamapper:"logging" json:"logging"`

	network network.Network
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory:  defaultDataDirectory,
		Network:        network.Dogecoin.String(),
		BlockDirectory: defaultBlockDirectory,
		Database:       defaultDatabase,
		Workers:        0,
		CacheExpiry:    defaultCacheExpiry,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	options.network, err = network.FromString(options.Network)
	if nil != err || !options.network.IsValid() {
		return nil, fmt.Errorf("network: %q is not supported", options.Network)
	}

	if options.Workers < 0 {
		options.Workers = 0
	}
	if options.CacheExpiry <= 0 {
		options.CacheExpiry = defaultCacheExpiry
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.BlockDirectory,
		&options.Database,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path separator
	mustNotBePaths := []*string{
		&options.Logging.File,
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("files: %q is not plain name", *f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.BlockDirectory,
		&options.Logging.Directory,
	} {
		*d, err = util.EnsureDirectory(options.DataDirectory, *d)
		if nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// cacheExpiry - how long a scanned block is remembered
func (c *Configuration) cacheExpiry() time.Duration {
	return time.Duration(c.CacheExpiry) * time.Second
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/borkerd/background"
	"github.com/bitmark-inc/borkerd/storage"
	"github.com/bitmark-inc/logger"
)

// pending file events
const watchQueueSize = 16

// scans each block file name received until shutdown
type fileScanner struct {
	scanner *blockScanner
	files   <-chan string
	w       io.Writer
	log     *logger.L
}

func (f *fileScanner) Run(args interface{}, shutdown <-chan struct{}) {
	f.log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case name := <-f.files:
			// a file still being written fails to decode and is
			// retried on its next write event
			result, err := f.scanner.scanFile(name)
			if nil != err {
				f.log.Errorf("file: %s  database error: %s", name, err)
				continue loop
			}
			if "" != result.Error {
				continue loop
			}
			if err := printJson(f.w, result); nil != err {
				f.log.Errorf("print error: %s", err)
			}
		}
	}

	f.log.Info("shutting down…")
}

func runWatch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	config, err := setupScan(c, storage.ReadWrite)
	if nil != err {
		return err
	}
	defer finaliseScan()

	log := logger.New("watch")
	log.Infof("watch: %s  network: %s", config.BlockDirectory, config.network)

	s := newBlockScanner(config, logger.New("scanner"))
	results, err := s.scanDirectory(config.BlockDirectory)
	if nil != err {
		return err
	}
	if err := printJson(m.w, results); nil != err {
		return err
	}

	files := make(chan string, watchQueueSize)
	watcher, err := startBlockWatcher(config.BlockDirectory, logger.New(watcherLoggerPrefix), files)
	if nil != err {
		return err
	}
	defer watcher.Stop()

	processes := background.Processes{
		&fileScanner{
			scanner: s,
			files:   files,
			w:       m.w,
			log:     logger.New("file-scanner"),
		},
	}
	p := background.Start(processes, nil)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	sig := <-signals
	log.Infof("received signal: %v", sig)

	p.Stop()

	hits, misses := s.cache.Stats()
	log.Infof("stopped  cache hits: %d  misses: %d", hits, misses)
	return nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"
)

const (
	watcherLoggerPrefix = "block-watcher"
)

// BlockWatcher - report block files written to a directory
type BlockWatcher interface {
	Start() error
	Stop()
}

type blockWatcher struct {
	log       *logger.L
	watcher   *fsnotify.Watcher
	directory string
	files     chan<- string
	done      chan struct{}
}

// the full path of each created or written block file is sent to files
func newBlockWatcher(directory string, log *logger.L, files chan<- string) (*blockWatcher, error) {
	directory, err := filepath.Abs(filepath.Clean(directory))
	if nil != err {
		return nil, err
	}

	if info, err := os.Stat(directory); nil != err {
		return nil, err
	} else if !info.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", directory)
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	return &blockWatcher{
		log:       log,
		watcher:   watcher,
		directory: directory,
		files:     files,
		done:      make(chan struct{}),
	}, nil
}

// create and start a watcher on a directory
func startBlockWatcher(directory string, log *logger.L, files chan<- string) (BlockWatcher, error) {
	w, err := newBlockWatcher(directory, log, files)
	if nil != err {
		return nil, err
	}
	if err := w.Start(); nil != err {
		w.watcher.Close()
		return nil, err
	}
	return w, nil
}

// Start - begin delivering events
func (w *blockWatcher) Start() error {
	err := w.watcher.Add(w.directory)
	if nil != err {
		w.log.Errorf("watcher add error: %s, abort", err)
		return err
	}

	go func() {
		for {
			select {
			case <-w.done:
				return

			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				w.log.Debugf("file event: %v", event)

				if !watcherEventBlockFile(event) {
					continue
				}
				w.sendEvent(event.Name)

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Errorf("watcher error: %s", err)
			}
		}
	}()

	return nil
}

// Stop - no more events after this returns
func (w *blockWatcher) Stop() {
	close(w.done)
	w.watcher.Close()
}

// block until delivered or stopped
func (w *blockWatcher) sendEvent(name string) {
	select {
	case w.files <- name:
	case <-w.done:
	}
}

func watcherEventBlockFile(event fsnotify.Event) bool {
	if !isBlockFile(event.Name) {
		return false
	}
	return event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Write == fsnotify.Write
}

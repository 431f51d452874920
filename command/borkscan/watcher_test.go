// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/borkerd/background"
	"github.com/bitmark-inc/borkerd/network"
	"github.com/bitmark-inc/logger"
)

func TestBlockWatcher(t *testing.T) {
	dir := tempDirectory(t)
	files := make(chan string, 10)

	w, err := startBlockWatcher(dir, logger.New("test-watcher"), files)
	require.NoError(t, err)
	defer w.Stop()

	writeFile(t, dir, "notes.txt", "ignored")
	expected := writeFile(t, dir, "0001.hex", "00")

	select {
	case name := <-files:
		assert.Equal(t, filepath.Base(expected), filepath.Base(name))
	case <-time.After(5 * time.Second):
		t.Fatal("no event for block file")
	}

	// a create may be followed by writes for the same file
	timeout := time.After(200 * time.Millisecond)
loop:
	for {
		select {
		case name := <-files:
			assert.Equal(t, "0001.hex", filepath.Base(name))
		case <-timeout:
			break loop
		}
	}
}

func TestNewBlockWatcherErrors(t *testing.T) {
	dir := tempDirectory(t)
	files := make(chan string)

	_, err := newBlockWatcher(filepath.Join(dir, "missing"), logger.New("test-watcher"), files)
	assert.Error(t, err)

	name := writeFile(t, dir, "plain", "")
	_, err = newBlockWatcher(name, logger.New("test-watcher"), files)
	assert.Error(t, err)
}

func TestWatcherEventBlockFile(t *testing.T) {
	assert.True(t, watcherEventBlockFile(fsnotify.Event{Name: "/a/1.hex", Op: fsnotify.Create}))
	assert.True(t, watcherEventBlockFile(fsnotify.Event{Name: "/a/1.hex", Op: fsnotify.Write}))
	assert.False(t, watcherEventBlockFile(fsnotify.Event{Name: "/a/1.hex", Op: fsnotify.Remove}))
	assert.False(t, watcherEventBlockFile(fsnotify.Event{Name: "/a/1.hex", Op: fsnotify.Chmod}))
	assert.False(t, watcherEventBlockFile(fsnotify.Event{Name: "/a/1.txt", Op: fsnotify.Create}))
}

// stop does not wait for a reader
func TestBlockWatcherStop(t *testing.T) {
	dir := tempDirectory(t)
	files := make(chan string)

	w, err := newBlockWatcher(dir, logger.New("test-watcher"), files)
	require.NoError(t, err)
	require.NoError(t, w.Start())

	writeFile(t, dir, "0002.hex", "00")
	time.Sleep(100 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stop blocked")
	}
}

func TestFileScanner(t *testing.T) {
	s, dir := setupBlockScanner(t, network.Dogecoin)

	files := make(chan string)
	var output bytes.Buffer
	f := &fileScanner{
		scanner: s,
		files:   files,
		w:       &output,
		log:     logger.New("test-file-scanner"),
	}
	p := background.Start(background.Processes{f}, nil)

	block := makeBlockHex(t, 5, makeTx(t, 0, network.Dogecoin, standard("watched", 0)))
	files <- writeFile(t, dir, "0005.hex", block)
	files <- writeFile(t, dir, "0006.hex", "partial")

	p.Stop()

	assert.Contains(t, output.String(), `"file": "0005.hex"`)
	assert.Contains(t, output.String(), `"content": "watched"`)
	assert.NotContains(t, output.String(), "0006.hex")
}

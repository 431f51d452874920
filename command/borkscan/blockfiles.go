// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bitmark-inc/borkerd/fault"
	"github.com/bitmark-inc/borkerd/network"
	"github.com/bitmark-inc/borkerd/scanner"
	"github.com/bitmark-inc/borkerd/storage"
	"github.com/bitmark-inc/logger"
)

// block files hold a single block as hex text
const blockFileExtension = ".hex"

// outcome for one block file
type fileResult struct {
	File        string           `json:"file"`
	Skipped     bool             `json:"skipped,omitempty"`
	Error       string           `json:"error,omitempty"`
	Hash        string           `json:"hash,omitempty"`
	Block       *blockItem       `json:"block,omitempty"`
	Diagnostics []diagnosticItem `json:"diagnostics,omitempty"`
}

type blockScanner struct {
	network network.Network
	workers int
	cache   *scanner.Cache
	log     *logger.L
}

func newBlockScanner(config *Configuration, log *logger.L) *blockScanner {
	return &blockScanner{
		network: config.network,
		workers: config.Workers,
		cache:   scanner.NewCache(config.cacheExpiry()),
		log:     log,
	}
}

func isBlockFile(name string) bool {
	return strings.HasSuffix(name, blockFileExtension)
}

// all block files of a directory in name order
func blockFiles(directory string) ([]string, error) {
	names, err := filepath.Glob(filepath.Join(directory, "*"+blockFileExtension))
	if nil != err {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// scan every block file not seen before
//
// a file that cannot be decoded is reported in its result and the scan
// moves on; only directory and database failures stop it
func (s *blockScanner) scanDirectory(directory string) ([]fileResult, error) {
	names, err := blockFiles(directory)
	if nil != err {
		return nil, err
	}

	results := make([]fileResult, 0, len(names))
	for _, name := range names {
		result, err := s.scanFile(name)
		if nil != err {
			s.log.Errorf("file: %s  error: %s", name, err)
			return results, err
		}
		results = append(results, *result)
	}
	return results, nil
}

// scan one block file and store its records
//
// a file already scanned, or holding an already stored block, is
// skipped; a file that cannot be read or decoded gives a result with
// Error set and is not marked, so a later scan tries it again
//
// the returned error is only for database failures
func (s *blockScanner) scanFile(fileName string) (*fileResult, error) {
	base := filepath.Base(fileName)

	if n, hash, found := storage.FileBlock(base); found && n == s.network {
		s.log.Debugf("file: %s  already scanned as block: %s", base, hash)
		return &fileResult{
			File:    base,
			Skipped: true,
			Hash:    hash,
		}, nil
	}

	raw, err := readHexFile(fileName)
	if nil != err {
		return s.failed(base, "", err), nil
	}

	d := &diagnostics{}
	opts := &scanner.Options{
		Workers: s.workers,
		Log:     s.log,
		Report:  d.report,
	}

	block, cached, err := s.cache.ScanBlock(raw, s.network, opts)
	if nil != err {
		hash := ""
		if nil != block {
			hash = block.Hash
		}
		return s.failed(base, hash, err), nil
	}

	result := &fileResult{
		File:        base,
		Hash:        block.Hash,
		Diagnostics: d.items,
	}

	err = storage.StoreBlock(s.network, block)
	switch err {
	case nil:
		s.log.Infof("file: %s  block: %s  transactions with records: %d", base, block.Hash, len(block.Transactions))
		result.Block = makeBlockItem(block)
	case fault.ErrBlockAlreadyScanned:
		s.log.Infof("file: %s  block: %s  already stored  cached: %t", base, block.Hash, cached)
		result.Skipped = true
	default:
		return nil, err
	}

	if err := storage.MarkFile(base, s.network, block.Hash); nil != err {
		return nil, err
	}
	return result, nil
}

func (s *blockScanner) failed(base string, hash string, err error) *fileResult {
	s.log.Warnf("file: %s  error: %s", base, err)
	return &fileResult{
		File:  base,
		Hash:  hash,
		Error: err.Error(),
	}
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/borkerd/fault"
	"github.com/bitmark-inc/borkerd/network"
)

// maximum hashes returned by one ListBlocks call
const MaximumListCount = 1000

// ScannedFile - a block file and the block it held
type ScannedFile struct {
	Name    string          `json:"name"`
	Network network.Network `json:"network"`
	Hash    string          `json:"hash"`
}

// ListBlocks - stored block hashes of a network in key order
//
// start is empty for the first page, otherwise the next value
// returned by the previous call; next is empty after the last page
func ListBlocks(n network.Network, start string, count int) (hashes []string, next string, err error) {
	if !n.IsValid() {
		return nil, "", fault.ErrUnsupportedNetwork
	}
	if !initialised() {
		return nil, "", fault.ErrNotInitialised
	}
	if count <= 0 || count > MaximumListCount {
		return nil, "", fault.ErrInvalidCount
	}

	cursor := Pool.Blocks.NewFetchCursor()
	if "" == start {
		cursor.Seek([]byte{byte(n)})
	} else {
		hash, err := parseHash(start)
		if nil != err {
			return nil, "", err
		}
		cursor.Seek(networkKey(n, hash))
	}

	// one extra to find the start of the following page
	elements, err := cursor.Fetch(count + 1)
	if nil != err {
		return nil, "", err
	}

	hashes = make([]string, 0, count)
	for i, e := range elements {
		if 1+chainhash.HashSize != len(e.Key) || byte(n) != e.Key[0] {
			break
		}
		hash, err := chainhash.NewHash(e.Key[1:])
		if nil != err {
			return nil, "", err
		}
		if i == count {
			next = hash.String()
			break
		}
		hashes = append(hashes, hash.String())
	}
	return hashes, next, nil
}

// ListFiles - every scanned block file in name order
func ListFiles() ([]ScannedFile, error) {
	if !initialised() {
		return nil, fault.ErrNotInitialised
	}

	files := make([]ScannedFile, 0)
	err := Pool.Files.NewFetchCursor().Map(func(key []byte, value []byte) error {
		if 1+chainhash.HashSize != len(value) {
			return fault.ErrCorruptStoredRecord
		}
		hash, err := chainhash.NewHash(value[1:])
		if nil != err {
			return err
		}
		files = append(files, ScannedFile{
			Name:    string(key),
			Network: network.Network(value[0]),
			Hash:    hash.String(),
		})
		return nil
	})
	if nil != err {
		return nil, err
	}
	return files, nil
}

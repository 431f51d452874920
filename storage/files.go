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

// MarkFile - remember that a block file was scanned
func MarkFile(fileName string, n network.Network, blockHash string) error {
	if !n.IsValid() {
		return fault.ErrUnsupportedNetwork
	}
	if !initialised() {
		return fault.ErrNotInitialised
	}
	hash, err := parseHash(blockHash)
	if nil != err {
		return err
	}
	Pool.Files.Put([]byte(fileName), networkKey(n, hash))
	return nil
}

// FileBlock - the network and block of a scanned file
//
// second parameter is false if the file was never scanned
func FileBlock(fileName string) (network.Network, string, bool) {
	if !initialised() {
		return network.Nothing, "", false
	}
	value := Pool.Files.Get([]byte(fileName))
	if 1+chainhash.HashSize != len(value) {
		return network.Nothing, "", false
	}
	hash, err := chainhash.NewHash(value[1:])
	if nil != err {
		return network.Nothing, "", false
	}
	return network.Network(value[0]), hash.String(), true
}

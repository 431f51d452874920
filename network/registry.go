// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"bytes"

	"github.com/btcsuite/btcd/txscript"

	"github.com/bitmark-inc/borkerd/fault"
	"github.com/bitmark-inc/logger"
)

// MagicLength - every marker has the same length so that no marker
// can be a prefix of another
const MagicLength = 2

// PayloadCapacity - bytes of data a single null-data output may carry
const PayloadCapacity = txscript.MaxDataCarrierSize

// auxPoWVersionBit - header version bit flagging a merged-mined block
const auxPoWVersionBit = 1 << 8

type parameters struct {
	magic    [MagicLength]byte
	capacity int
	auxPoW   bool
}

// indexed by Network.Index()
var registry = [Count]parameters{
	{ // Dogecoin
		magic:    [MagicLength]byte{0x0d, 0x06},
		capacity: PayloadCapacity,
		auxPoW:   true,
	},
	{ // Litecoin
		magic:    [MagicLength]byte{0x0d, 0x0c},
		capacity: PayloadCapacity,
		auxPoW:   true,
	},
	{ // Bitcoin
		magic:    [MagicLength]byte{0x0d, 0x0b},
		capacity: PayloadCapacity,
		auxPoW:   false,
	},
}

func lookup(network Network) (*parameters, error) {
	if !network.IsValid() {
		return nil, fault.ErrUnsupportedNetwork
	}
	return &registry[network.Index()], nil
}

// MagicFor - the marker that starts every bork payload on a network
//
// returns a fresh copy so callers may modify it
func MagicFor(network Network) ([]byte, error) {
	p, err := lookup(network)
	if nil != err {
		return nil, err
	}
	magic := make([]byte, MagicLength)
	copy(magic, p.magic[:])
	return magic, nil
}

// Magic - marker bytes, panics on an invalid network
func (network Network) Magic() []byte {
	magic, err := MagicFor(network)
	if nil != err {
		logger.Panicf("network.Magic: invalid network: %d", network)
	}
	return magic
}

// Capacity - maximum payload bytes of a single output
func Capacity(network Network) (int, error) {
	p, err := lookup(network)
	if nil != err {
		return 0, err
	}
	return p.capacity, nil
}

// HasAuxPoW - true if the header version can flag merged-mining data
// between the header and the transaction count
func HasAuxPoW(network Network, headerVersion int32) bool {
	p, err := lookup(network)
	if nil != err {
		return false
	}
	return p.auxPoW && 0 != headerVersion&auxPoWVersionBit
}

// HasMagic - check if a payload starts with the network's marker
func HasMagic(network Network, payload []byte) bool {
	p, err := lookup(network)
	if nil != err {
		return false
	}
	return bytes.HasPrefix(payload, p.magic[:])
}

// Detect - which network's marker a payload carries
//
// returns Nothing for foreign data
func Detect(payload []byte) Network {
	for n := First; n <= Last; n += 1 {
		if HasMagic(n, payload) {
			return n
		}
	}
	return Nothing
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/borkerd/fault"
	"github.com/bitmark-inc/logger"
)

// Network - enumeration of the chains carrying bork records
type Network uint64

// possible network values
const (
	Nothing      Network = iota // this must be the first value
	Dogecoin     Network = iota
	Litecoin     Network = iota
	Bitcoin      Network = iota
	maximumValue Network = iota // this must be the last value
	First        Network = Nothing + 1
	Last         Network = maximumValue - 1
	Count        int     = int(Last) // count of networks
)

// internal conversion
func toString(n Network) ([]byte, error) {
	switch n {
	case Nothing:
		return []byte{}, nil
	case Dogecoin:
		return []byte("dogecoin"), nil
	case Litecoin:
		return []byte("litecoin"), nil
	case Bitcoin:
		return []byte("bitcoin"), nil
	default:
		return []byte{}, fault.ErrUnsupportedNetwork
	}
}

// FromString - convert a name or symbol to a network
func FromString(in string) (Network, error) {
	switch strings.ToLower(in) {
	case "":
		return Nothing, nil
	case "doge", "dogecoin":
		return Dogecoin, nil
	case "ltc", "litecoin":
		return Litecoin, nil
	case "btc", "bitcoin":
		return Bitcoin, nil
	default:
		return Nothing, fault.ErrUnsupportedNetwork
	}
}

// String - convert a network to its name
func (network Network) String() string {
	s, err := toString(network)
	if nil != err {
		logger.Panicf("invalid network enumeration: %d", network)
	}
	return string(s)
}

// GoString - enum value and name, for debugging
func (network Network) GoString() string {
	s, err := toString(network)
	if nil != err {
		return fmt.Sprintf("<Network#%d:*invalid*>", network)
	}
	return fmt.Sprintf("<Network#%d:%q>", network, s)
}

// Scan - convert a network string
func (network *Network) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'Z' {
			return true
		}
		if c >= 'a' && c <= 'z' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	parsed, err := FromString(string(token))
	if nil != err {
		return err
	}

	*network = parsed
	return nil
}

// IsValid - valid network if in range of First to Last
// Nothing is not considered as valid
func (network Network) IsValid() bool {
	return network >= First && network <= Last
}

// Index - convert a valid network to a zero based array index
func (network Network) Index() int {
	if !network.IsValid() {
		logger.Panicf("network.Index: invalid network: %d", network)
	}
	return int(network - First)
}

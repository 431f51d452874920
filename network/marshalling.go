// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

// MarshalText - convert a network into JSON
func (network Network) MarshalText() ([]byte, error) {
	return toString(network)
}

// UnmarshalText - convert network string to a network enumeration value from JSON
func (network *Network) UnmarshalText(s []byte) error {
	n, err := FromString(string(s))
	if nil != err {
		return err
	}
	*network = n
	return nil
}

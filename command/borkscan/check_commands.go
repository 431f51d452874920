// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"strings"

	"github.com/bitmark-inc/borkerd/fault"
)

var (
	ErrBlockAndTxId       = fault.InvalidError("give either block or txid, not both")
	ErrHexAndFile         = fault.InvalidError("give either hex or file, not both")
	ErrIndexOutOfRange    = fault.InvalidError("index must be 0..255")
	ErrNonceOutOfRange    = fault.InvalidError("nonce must be 0..255")
	ErrRequiredConfigFile = fault.InvalidError("config file is required")
	ErrRequiredHex        = fault.InvalidError("hex data is required")
	ErrRequiredReference  = fault.InvalidError("reference id is required")
	ErrUnexpectedIndex    = fault.InvalidError("index is only for extension")
	ErrUnexpectedRef      = fault.InvalidError("reference id is only for comment and rebork")
)

// config is required
func checkConfigFile(file string) (string, error) {
	if "" == file {
		return "", ErrRequiredConfigFile
	}

	file = os.ExpandEnv(file)
	return file, nil
}

// exactly one of a hex argument or a file holding hex
func checkHexInput(argument string, fileName string) ([]byte, error) {
	if "" != argument && "" != fileName {
		return nil, ErrHexAndFile
	}
	if "" != fileName {
		return readHexFile(os.ExpandEnv(fileName))
	}
	if "" == argument {
		return nil, ErrRequiredHex
	}
	return decodeHex(argument)
}

func checkByte(value uint, err error) (uint8, error) {
	if value > 255 {
		return 0, err
	}
	return uint8(value), nil
}

// read a file of hex text, surrounding white space is ignored
func readHexFile(fileName string) ([]byte, error) {
	text, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	return decodeHex(string(text))
}

func decodeHex(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if "" == text {
		return nil, ErrRequiredHex
	}
	return hex.DecodeString(text)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/borkerd/network"
	"github.com/bitmark-inc/borkerd/storage"
)

type showTxItem struct {
	Network network.Network `json:"network"`
	TxId    string          `json:"txId"`
	Records []recordItem    `json:"records"`
}

func runShow(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	blockHash := c.String("block")
	txId := c.String("txid")
	if "" != blockHash && "" != txId {
		return ErrBlockAndTxId
	}

	config, err := setupScan(c, storage.ReadOnly)
	if nil != err {
		return err
	}
	defer finaliseScan()

	if "" != txId {
		records, err := storage.GetRecords(config.network, txId)
		if nil != err {
			return err
		}
		return printJson(m.w, showTxItem{
			Network: config.network,
			TxId:    txId,
			Records: recordItems(records),
		})
	}

	if "" == blockHash {
		blockHash, err = storage.GetCheckpoint(config.network)
		if nil != err {
			return err
		}
	}

	block, err := storage.GetBlock(config.network, blockHash)
	if nil != err {
		return err
	}
	return printJson(m.w, decodeBlockItem{
		Network: config.network,
		Block:   makeBlockItem(block),
	})
}

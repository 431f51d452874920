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

type listItem struct {
	Network network.Network `json:"network"`
	Blocks  []string        `json:"blocks"`
	Next    string          `json:"next,omitempty"`
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	config, err := setupScan(c, storage.ReadOnly)
	if nil != err {
		return err
	}
	defer finaliseScan()

	if c.Bool("files") {
		files, err := storage.ListFiles()
		if nil != err {
			return err
		}
		return printJson(m.w, files)
	}

	hashes, next, err := storage.ListBlocks(config.network, c.String("start"), c.Int("count"))
	if nil != err {
		return err
	}
	return printJson(m.w, listItem{
		Network: config.network,
		Blocks:  hashes,
		Next:    next,
	})
}

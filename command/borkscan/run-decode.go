// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/borkerd/network"
	"github.com/bitmark-inc/borkerd/scanner"
)

type decodeTxItem struct {
	Network     network.Network  `json:"network"`
	Records     []recordItem     `json:"records"`
	Diagnostics []diagnosticItem `json:"diagnostics,omitempty"`
}

type decodeBlockItem struct {
	Network     network.Network  `json:"network"`
	Block       *blockItem       `json:"block"`
	Diagnostics []diagnosticItem `json:"diagnostics,omitempty"`
}

func runDecodeTx(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	raw, err := checkHexInput(c.Args().First(), c.String("file"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "network: %s  transaction bytes: %d\n", m.network, len(raw))
	}

	d := &diagnostics{}
	records, err := scanner.ScanTransaction(raw, m.network, &scanner.Options{
		Report: d.report,
	})
	if nil != err {
		return err
	}

	result := decodeTxItem{
		Network: m.network,
		Records: recordItems(records),
	}
	if m.verbose {
		result.Diagnostics = d.items
	}
	return printJson(m.w, result)
}

func runDecodeBlock(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	raw, err := checkHexInput(c.Args().First(), c.String("file"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "network: %s  block bytes: %d\n", m.network, len(raw))
	}

	d := &diagnostics{}
	block, err := scanner.ScanBlock(raw, m.network, &scanner.Options{
		Workers: c.Int("workers"),
		Report:  d.report,
	})
	if nil != err {
		return err
	}

	result := decodeBlockItem{
		Network: m.network,
		Block:   makeBlockItem(block),
	}
	if m.verbose {
		result.Diagnostics = d.items
	}
	return printJson(m.w, result)
}

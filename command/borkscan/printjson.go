// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bitmark-inc/borkerd/borkrecord"
	"github.com/bitmark-inc/borkerd/scanner"
)

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

// a record with its kind, since the kind is not part of the fields
type recordItem struct {
	Record string            `json:"record"`
	Kind   borkrecord.Kind   `json:"kind"`
	Data   borkrecord.Record `json:"data"`
}

func recordItems(records []borkrecord.Record) []recordItem {
	items := make([]recordItem, 0, len(records))
	for _, r := range records {
		name, _ := borkrecord.RecordName(r)
		items = append(items, recordItem{
			Record: name,
			Kind:   r.Kind(),
			Data:   r,
		})
	}
	return items
}

type transactionItem struct {
	Index   int          `json:"index"`
	TxId    string       `json:"txId"`
	Records []recordItem `json:"records"`
}

type blockItem struct {
	Hash         string            `json:"hash"`
	Timestamp    time.Time         `json:"timestamp"`
	Transactions []transactionItem `json:"transactions"`
}

func makeBlockItem(block *scanner.Block) *blockItem {
	if nil == block {
		return nil
	}
	item := &blockItem{
		Hash:         block.Hash,
		Timestamp:    block.Timestamp,
		Transactions: make([]transactionItem, 0, len(block.Transactions)),
	}
	for _, tx := range block.Transactions {
		item.Transactions = append(item.Transactions, transactionItem{
			Index:   tx.Index,
			TxId:    tx.TxId,
			Records: recordItems(tx.Records),
		})
	}
	return item
}

// diagnostics in printable form
type diagnosticItem struct {
	TxIndex int    `json:"txIndex"`
	TxId    string `json:"txId"`
	Output  int    `json:"output"`
	Error   string `json:"error"`
}

// collect diagnostics while scanning
type diagnostics struct {
	items []diagnosticItem
}

func (d *diagnostics) report(diagnostic scanner.Diagnostic) {
	d.items = append(d.items, diagnosticItem{
		TxIndex: diagnostic.TxIndex,
		TxId:    diagnostic.TxId,
		Output:  diagnostic.Output,
		Error:   diagnostic.Err.Error(),
	})
}

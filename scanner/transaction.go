// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scanner

import (
	"bytes"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/bitmark-inc/borkerd/borkrecord"
	"github.com/bitmark-inc/borkerd/fault"
	"github.com/bitmark-inc/borkerd/network"
)

// Payload - data carried by one null-data output
type Payload struct {
	Output int
	Data   []byte
}

// ExtractPayloads - the pushed data of every standard null-data output
// in output order
func ExtractPayloads(tx *wire.MsgTx) []Payload {
	payloads := make([]Payload, 0)

loop:
	for i, txout := range tx.TxOut {
		if txscript.NullDataTy != txscript.GetScriptClass(txout.PkScript) {
			continue loop
		}
		pushes, err := txscript.PushedData(txout.PkScript)
		if nil != err || 1 != len(pushes) {
			continue loop
		}
		payloads = append(payloads, Payload{
			Output: i,
			Data:   pushes[0],
		})
	}
	return payloads
}

// ScanTransaction - decode the bork records of a serialised transaction
//
// returns the assembled records in the output order of their head
// chunks; skipped payloads only reach Options.Report
func ScanTransaction(raw []byte, n network.Network, opts *Options) ([]borkrecord.Record, error) {
	if !n.IsValid() {
		return nil, fault.ErrUnsupportedNetwork
	}
	if 0 == len(raw) {
		return nil, fault.ErrEmptyBuffer
	}

	tx := &wire.MsgTx{}
	if err := tx.Deserialize(bytes.NewReader(raw)); nil != err {
		return nil, fault.ErrMalformedTransaction
	}

	return ScanMsgTx(tx, n, opts)
}

// ScanMsgTx - decode the bork records of an already parsed transaction
func ScanMsgTx(tx *wire.MsgTx, n network.Network, opts *Options) ([]borkrecord.Record, error) {
	if !n.IsValid() {
		return nil, fault.ErrUnsupportedNetwork
	}
	if nil == tx {
		return nil, fault.ErrEmptyBuffer
	}

	result := examineTransaction(tx, 0, n)
	opts.report(result.diagnostics)
	return result.records, nil
}

// result of one transaction, kept separate so block scans can merge
// by index
type txResult struct {
	txId        string
	records     []borkrecord.Record
	diagnostics []Diagnostic
}

func examineTransaction(tx *wire.MsgTx, txIndex int, n network.Network) txResult {
	result := txResult{
		records: []borkrecord.Record{},
	}

	payloads := ExtractPayloads(tx)
	if 0 == len(payloads) {
		return result
	}

	result.txId = tx.TxHash().String()

	decoded := make([]borkrecord.Record, 0, len(payloads))
	outputs := make(map[*borkrecord.Extension]int)

loop:
	for _, p := range payloads {
		if !network.HasMagic(n, p.Data) {
			continue loop
		}
		record, err := borkrecord.Packed(p.Data).Unpack(n)
		if nil != err {
			result.diagnostics = append(result.diagnostics, Diagnostic{
				TxIndex: txIndex,
				TxId:    result.txId,
				Output:  p.Output,
				Err:     err,
			})
			continue loop
		}
		if e, ok := record.(*borkrecord.Extension); ok {
			outputs[e] = p.Output
		}
		decoded = append(decoded, record)
	}

	heads, orphans := borkrecord.Assemble(decoded)
	for _, o := range orphans {
		result.diagnostics = append(result.diagnostics, Diagnostic{
			TxIndex: txIndex,
			TxId:    result.txId,
			Output:  outputs[o],
			Err:     fault.ErrOrphanExtension,
		})
	}
	result.records = heads
	return result
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scanner

import (
	"bytes"
	"io"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/borkerd/borkrecord"
	"github.com/bitmark-inc/borkerd/fault"
	"github.com/bitmark-inc/borkerd/network"
)

// smallest possible serialised transaction
const minimumTxLength = 10

// Block - bork records of one block
type Block struct {
	Hash         string        `json:"hash"`
	Timestamp    time.Time     `json:"timestamp"`
	Transactions []Transaction `json:"transactions"`
}

// Transaction - bork records of one transaction in a block
type Transaction struct {
	Index   int                 `json:"index"`
	TxId    string              `json:"txId"`
	Records []borkrecord.Record `json:"records"`
}

// Records - all records of the block in transaction order
func (block *Block) Records() []borkrecord.Record {
	records := make([]borkrecord.Record, 0)
	for _, tx := range block.Transactions {
		records = append(records, tx.Records...)
	}
	return records
}

// DecodeBlock - the records of a serialised block in block order
//
// on ErrMalformedBlock the records of the transactions before the
// damage are still returned
func DecodeBlock(raw []byte, n network.Network, opts *Options) ([]borkrecord.Record, error) {
	block, err := ScanBlock(raw, n, opts)
	if nil == block {
		return nil, err
	}
	return block.Records(), err
}

// ScanBlock - decode a serialised block
//
// a transaction whose payloads fail to decode contributes only its good
// records; the scan fails only for an invalid network or when the block
// itself cannot be parsed
//
// once the header is read a block is always returned: if a later part
// cannot be parsed it holds the transactions read before that point and
// the error is ErrMalformedBlock
func ScanBlock(raw []byte, n network.Network, opts *Options) (*Block, error) {
	header, txs, err := readBlock(raw, n)
	if nil == header {
		return nil, err
	}
	if nil != err {
		opts.tracef("malformed block after transaction: %d", len(txs))
	}
	return scanTransactions(header, txs, n, opts), err
}

func scanTransactions(header *wire.BlockHeader, txs []*wire.MsgTx, n network.Network, opts *Options) *Block {
	hash := header.BlockHash()
	block := &Block{
		Hash:         hash.String(),
		Timestamp:    header.Timestamp.UTC(),
		Transactions: []Transaction{},
	}

	opts.tracef("block: %s  transactions: %d", block.Hash, len(txs))

	results := make([]txResult, len(txs))

	g := errgroup.Group{}
	g.SetLimit(opts.workers())
	for i, tx := range txs {
		i, tx := i, tx
		g.Go(func() error {
			results[i] = examineTransaction(tx, i, n)
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	// merge by transaction index, never completion order
	for i, r := range results {
		opts.report(r.diagnostics)
		if 0 == len(r.records) {
			continue
		}
		block.Transactions = append(block.Transactions, Transaction{
			Index:   i,
			TxId:    r.txId,
			Records: r.records,
		})
	}
	return block
}

// parse header, optional merged-mining data and transactions
//
// the header is nil unless it was read; after that the transactions
// read so far are returned with any error
func readBlock(raw []byte, n network.Network) (*wire.BlockHeader, []*wire.MsgTx, error) {
	if !n.IsValid() {
		return nil, nil, fault.ErrUnsupportedNetwork
	}
	if 0 == len(raw) {
		return nil, nil, fault.ErrEmptyBuffer
	}

	r := bytes.NewReader(raw)

	header := &wire.BlockHeader{}
	if err := header.Deserialize(r); nil != err {
		return nil, nil, fault.ErrMalformedBlock
	}

	if network.HasAuxPoW(n, header.Version) {
		if err := skipAuxPoW(r); nil != err {
			return header, nil, err
		}
	}

	count, err := wire.ReadVarInt(r, 0)
	if nil != err {
		return header, nil, fault.ErrMalformedBlock
	}
	if count > uint64(r.Len()/minimumTxLength) {
		return header, nil, fault.ErrMalformedBlock
	}

	txs := make([]*wire.MsgTx, 0, count)
	for i := uint64(0); i < count; i += 1 {
		tx := &wire.MsgTx{}
		if err := tx.Deserialize(r); nil != err {
			return header, txs, fault.ErrMalformedBlock
		}
		txs = append(txs, tx)
	}
	return header, txs, nil
}

// merged-mining proof:
//   parent coinbase transaction
//   parent block hash
//   coinbase merkle branch: varint count, hashes, index
//   chain merkle branch:    varint count, hashes, index
//   parent block header
func skipAuxPoW(r *bytes.Reader) error {
	coinbase := wire.MsgTx{}
	if err := coinbase.Deserialize(r); nil != err {
		return fault.ErrMalformedBlock
	}
	if err := skip(r, chainhash.HashSize); nil != err {
		return err
	}
	for branch := 0; branch < 2; branch += 1 {
		count, err := wire.ReadVarInt(r, 0)
		if nil != err {
			return fault.ErrMalformedBlock
		}
		if count > uint64(r.Len()/chainhash.HashSize) {
			return fault.ErrMalformedBlock
		}
		if err := skip(r, int64(count)*chainhash.HashSize+4); nil != err {
			return err
		}
	}
	return skip(r, wire.MaxBlockHeaderPayload)
}

// bytes.Reader allows seeking past the end so check first
func skip(r *bytes.Reader, length int64) error {
	if length > int64(r.Len()) {
		return fault.ErrMalformedBlock
	}
	_, err := r.Seek(length, io.SeekCurrent)
	return err
}

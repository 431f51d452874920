// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/borkerd/borkrecord"
	"github.com/bitmark-inc/borkerd/fault"
	"github.com/bitmark-inc/borkerd/network"
	"github.com/bitmark-inc/borkerd/scanner"
	"github.com/bitmark-inc/borkerd/util"
)

const timestampLength = 8

// network ++ hash
func networkKey(n network.Network, hash *chainhash.Hash) []byte {
	key := make([]byte, 0, 1+chainhash.HashSize)
	key = append(key, byte(n))
	return append(key, hash[:]...)
}

func parseHash(s string) (*chainhash.Hash, error) {
	if "" == s {
		return nil, fault.ErrHashCannotBeNil
	}
	return chainhash.NewHashFromStr(s)
}

func initialised() bool {
	poolData.RLock()
	defer poolData.RUnlock()
	return nil != poolData.database
}

// StoreBlock - save the records of a scanned block and move the
// network's checkpoint to it
//
// a block is only stored once
func StoreBlock(n network.Network, block *scanner.Block) error {
	if !n.IsValid() {
		return fault.ErrUnsupportedNetwork
	}
	if !initialised() {
		return fault.ErrNotInitialised
	}
	if nil == block {
		return fault.ErrHashCannotBeNil
	}
	hash, err := parseHash(block.Hash)
	if nil != err {
		return err
	}

	key := networkKey(n, hash)
	if Pool.Blocks.Has(key) {
		return fault.ErrBlockAlreadyScanned
	}

	batch := NewBatch()

	summary := make([]byte, timestampLength, timestampLength+util.Varint64MaximumBytes*(1+len(block.Transactions))+len(block.Transactions)*chainhash.HashSize)
	binary.BigEndian.PutUint64(summary, uint64(block.Timestamp.Unix()))
	summary = util.AppendVarint64(summary, uint64(len(block.Transactions)))

	for _, tx := range block.Transactions {
		txId, err := parseHash(tx.TxId)
		if nil != err {
			return err
		}
		packed, err := packRecords(n, tx.Records)
		if nil != err {
			return err
		}
		batch.Put(Pool.Records, networkKey(n, txId), packed)
		summary = util.AppendVarint64(summary, uint64(tx.Index))
		summary = append(summary, txId[:]...)
	}

	batch.Put(Pool.Blocks, key, summary)
	batch.Put(Pool.Checkpoint, []byte{byte(n)}, hash.CloneBytes())

	return batch.Commit()
}

// HasBlock - true if the block was already stored
func HasBlock(n network.Network, blockHash string) bool {
	if !initialised() || !n.IsValid() {
		return false
	}
	hash, err := parseHash(blockHash)
	if nil != err {
		return false
	}
	return Pool.Blocks.Has(networkKey(n, hash))
}

// GetBlock - rebuild a stored block with all of its records
func GetBlock(n network.Network, blockHash string) (*scanner.Block, error) {
	if !n.IsValid() {
		return nil, fault.ErrUnsupportedNetwork
	}
	if !initialised() {
		return nil, fault.ErrNotInitialised
	}
	hash, err := parseHash(blockHash)
	if nil != err {
		return nil, err
	}

	summary := Pool.Blocks.Get(networkKey(n, hash))
	if nil == summary {
		return nil, fault.ErrBlockNotFound
	}
	if len(summary) < timestampLength+1 {
		return nil, fault.ErrCorruptStoredRecord
	}

	timestamp := int64(binary.BigEndian.Uint64(summary[:timestampLength]))
	count, used := util.FromVarint64(summary[timestampLength:])
	if 0 == used {
		return nil, fault.ErrCorruptStoredRecord
	}
	buffer := summary[timestampLength+used:]
	if count > uint64(len(buffer)/(1+chainhash.HashSize)) {
		return nil, fault.ErrCorruptStoredRecord
	}

	block := &scanner.Block{
		Hash:         hash.String(),
		Timestamp:    time.Unix(timestamp, 0).UTC(),
		Transactions: make([]scanner.Transaction, 0, count),
	}

	for i := uint64(0); i < count; i += 1 {
		index, used := util.FromVarint64(buffer)
		if 0 == used || len(buffer) < used+chainhash.HashSize {
			return nil, fault.ErrCorruptStoredRecord
		}
		txId, err := chainhash.NewHash(buffer[used : used+chainhash.HashSize])
		if nil != err {
			return nil, err
		}
		buffer = buffer[used+chainhash.HashSize:]

		records, err := getRecords(n, txId)
		if nil != err {
			return nil, err
		}
		block.Transactions = append(block.Transactions, scanner.Transaction{
			Index:   int(index),
			TxId:    txId.String(),
			Records: records,
		})
	}
	if 0 != len(buffer) {
		return nil, fault.ErrCorruptStoredRecord
	}
	return block, nil
}

// GetRecords - the stored records of one transaction
func GetRecords(n network.Network, txId string) ([]borkrecord.Record, error) {
	if !n.IsValid() {
		return nil, fault.ErrUnsupportedNetwork
	}
	if !initialised() {
		return nil, fault.ErrNotInitialised
	}
	hash, err := parseHash(txId)
	if nil != err {
		return nil, err
	}
	return getRecords(n, hash)
}

func getRecords(n network.Network, txId *chainhash.Hash) ([]borkrecord.Record, error) {
	packed := Pool.Records.Get(networkKey(n, txId))
	if nil == packed {
		return nil, fault.ErrTransactionNotFound
	}
	return unpackRecords(n, packed)
}

// GetCheckpoint - hash of the block most recently stored for a network
func GetCheckpoint(n network.Network) (string, error) {
	if !n.IsValid() {
		return "", fault.ErrUnsupportedNetwork
	}
	if !initialised() {
		return "", fault.ErrNotInitialised
	}
	h := Pool.Checkpoint.Get([]byte{byte(n)})
	if nil == h {
		return "", fault.ErrCheckpointNotFound
	}
	hash, err := chainhash.NewHash(h)
	if nil != err {
		return "", err
	}
	return hash.String(), nil
}

// records are kept as their encoded chunks, grouped per record:
//   count(records) ++ [count(chunks) ++ [count(length) ++ chunk]]
func packRecords(n network.Network, records []borkrecord.Record) ([]byte, error) {
	buffer := util.ToVarint64(uint64(len(records)))
	for _, r := range records {
		chunks, err := borkrecord.Encode(n, r)
		if nil != err {
			return nil, err
		}
		buffer = util.AppendVarint64(buffer, uint64(len(chunks)))
		for _, c := range chunks {
			buffer = util.AppendVarint64(buffer, uint64(len(c)))
			buffer = append(buffer, c...)
		}
	}
	return buffer, nil
}

func unpackRecords(n network.Network, buffer []byte) ([]borkrecord.Record, error) {
	count, used := util.FromVarint64(buffer)
	if 0 == used {
		return nil, fault.ErrCorruptStoredRecord
	}
	buffer = buffer[used:]
	if count > uint64(len(buffer)) {
		return nil, fault.ErrCorruptStoredRecord
	}

	records := make([]borkrecord.Record, 0, count)
	for i := uint64(0); i < count; i += 1 {
		record, rest, err := unpackRecord(n, buffer)
		if nil != err {
			return nil, err
		}
		records = append(records, record)
		buffer = rest
	}
	if 0 != len(buffer) {
		return nil, fault.ErrCorruptStoredRecord
	}
	return records, nil
}

// one chunk group back to its record, and the bytes after it
func unpackRecord(n network.Network, buffer []byte) (borkrecord.Record, []byte, error) {
	count, used := util.ClippedVarint64(buffer, 1, borkrecord.MaximumExtensions+1)
	if 0 == used {
		return nil, nil, fault.ErrCorruptStoredRecord
	}
	buffer = buffer[used:]

	decoded := make([]borkrecord.Record, 0, count)
	for i := 0; i < count; i += 1 {
		length, used := util.ClippedVarint64(buffer, network.MagicLength+1, network.PayloadCapacity)
		if 0 == used || len(buffer)-used < length {
			return nil, nil, fault.ErrCorruptStoredRecord
		}
		chunk := borkrecord.Packed(buffer[used : used+length])
		buffer = buffer[used+length:]

		record, err := chunk.Unpack(n)
		if nil != err {
			return nil, nil, fault.ErrCorruptStoredRecord
		}
		decoded = append(decoded, record)
	}

	// a single chunk may be a stored extension on its own
	if 1 == len(decoded) {
		return decoded[0], buffer, nil
	}

	records, orphans := borkrecord.Assemble(decoded)
	if 1 != len(records) || 0 != len(orphans) {
		return nil, nil, fault.ErrCorruptStoredRecord
	}
	return records[0], buffer, nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scanner_test

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/borkerd/borkrecord"
	"github.com/bitmark-inc/borkerd/fault"
	"github.com/bitmark-inc/borkerd/network"
	"github.com/bitmark-inc/borkerd/scanner"
	"github.com/bitmark-inc/logger"
)

const (
	plainVersion  = 2
	auxPoWVersion = 0x00620104
)

func TestScanBlockOrder(t *testing.T) {
	txs := []*wire.MsgTx{makeTx(t, 0)} // coinbase, no data
	for i := 1; i < 40; i += 1 {
		if 0 == i%3 {
			txs = append(txs, makeTx(t, byte(i)))
			continue
		}
		chunks := encode(t, network.Bitcoin, standard(fmt.Sprintf("post %02d", i), uint8(i)))
		txs = append(txs, makeTx(t, byte(i), chunks...))
	}
	raw := makeBlock(t, plainVersion, false, txs...)

	opts := &scanner.Options{
		Workers: 8,
		Log:     logger.New("block-test"),
	}
	block, err := scanner.ScanBlock(raw, network.Bitcoin, opts)
	require.NoError(t, err)

	header := wire.BlockHeader{}
	require.NoError(t, header.Deserialize(bytes.NewReader(raw)))
	assert.Equal(t, header.BlockHash().String(), block.Hash)
	assert.True(t, blockTime.Equal(block.Timestamp))

	expected := 0
	previous := -1
	for _, tx := range block.Transactions {
		assert.True(t, tx.Index > previous, "transactions out of order")
		previous = tx.Index
		assert.NotEqual(t, 0, tx.Index%3)
		assert.Equal(t, txs[tx.Index].TxHash().String(), tx.TxId)
		require.Len(t, tx.Records, 1)
		assert.Equal(t, fmt.Sprintf("post %02d", tx.Index), tx.Records[0].Common().Content)
		expected += 1
	}
	assert.Equal(t, 26, expected)

	records, err := scanner.DecodeBlock(raw, network.Bitcoin, opts)
	require.NoError(t, err)
	assert.Equal(t, block.Records(), records)
}

// extensions never join a head from another transaction
func TestScanBlockTransactionIsolation(t *testing.T) {
	head, err := borkrecord.Encode(network.Litecoin, standard("alone", 9))
	require.NoError(t, err)
	extension, err := borkrecord.Encode(network.Litecoin, &borkrecord.Extension{
		Base:  borkrecord.Base{Content: " and more", Nonce: 9},
		Index: 0,
	})
	require.NoError(t, err)

	raw := makeBlock(t, plainVersion, false,
		makeTx(t, 0),
		makeTx(t, 1, head[0]),
		makeTx(t, 2, extension[0]),
	)

	diagnostics := make([]scanner.Diagnostic, 0)
	opts := &scanner.Options{
		Report: func(d scanner.Diagnostic) {
			diagnostics = append(diagnostics, d)
		},
	}
	records, err := scanner.DecodeBlock(raw, network.Litecoin, opts)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "alone", records[0].Common().Content)

	require.Len(t, diagnostics, 1)
	assert.Equal(t, 2, diagnostics[0].TxIndex)
	assert.Equal(t, 1, diagnostics[0].Output)
	assert.Equal(t, fault.ErrOrphanExtension, diagnostics[0].Err)
}

func TestScanBlockDiagnosticOrder(t *testing.T) {
	txs := []*wire.MsgTx{makeTx(t, 0)}
	for i := 1; i < 30; i += 1 {
		txs = append(txs, makeTx(t, byte(i), []byte{0x0d, 0x06, 0x03, byte(i), 0xc0}))
	}
	raw := makeBlock(t, plainVersion, false, txs...)

	diagnostics := make([]scanner.Diagnostic, 0)
	opts := &scanner.Options{
		Workers: 4,
		Report: func(d scanner.Diagnostic) {
			diagnostics = append(diagnostics, d)
		},
	}
	block, err := scanner.ScanBlock(raw, network.Dogecoin, opts)
	require.NoError(t, err)
	assert.Empty(t, block.Transactions)

	require.Len(t, diagnostics, 29)
	for i, d := range diagnostics {
		assert.Equal(t, i+1, d.TxIndex)
		assert.Equal(t, fault.ErrMalformedContent, d.Err)
	}
}

func TestScanBlockAuxPoW(t *testing.T) {
	chunks := encode(t, network.Dogecoin, standard("much merged", 1))
	txs := []*wire.MsgTx{makeTx(t, 0), makeTx(t, 1, chunks...)}

	for _, n := range []network.Network{network.Dogecoin, network.Litecoin} {
		chunks := encode(t, n, standard("much merged", 1))
		txs := []*wire.MsgTx{makeTx(t, 0), makeTx(t, 1, chunks...)}

		records, err := scanner.DecodeBlock(makeBlock(t, auxPoWVersion, true, txs...), n, nil)
		require.NoError(t, err, "%s", n)
		require.Len(t, records, 1)
		assert.Equal(t, "much merged", records[0].Common().Content)

		// same transactions without merged-mining data
		records, err = scanner.DecodeBlock(makeBlock(t, plainVersion, false, txs...), n, nil)
		require.NoError(t, err, "%s", n)
		require.Len(t, records, 1)
	}

	// bitcoin never carries merged-mining data so the version bit means nothing
	_, err := scanner.DecodeBlock(makeBlock(t, auxPoWVersion, true, txs...), network.Bitcoin, nil)
	assert.Equal(t, fault.ErrMalformedBlock, err)

	// merged-mining bit set but the data is missing
	_, err = scanner.DecodeBlock(makeBlock(t, auxPoWVersion, false, txs...), network.Dogecoin, nil)
	assert.Equal(t, fault.ErrMalformedBlock, err)
}

func TestScanBlockErrors(t *testing.T) {
	raw := makeBlock(t, plainVersion, false, makeTx(t, 0), makeTx(t, 1, []byte("data")))

	_, err := scanner.ScanBlock(raw, network.Network(99), nil)
	assert.Equal(t, fault.ErrUnsupportedNetwork, err)

	_, err = scanner.ScanBlock([]byte{}, network.Dogecoin, nil)
	assert.Equal(t, fault.ErrEmptyBuffer, err)

	// inside the header
	block, err := scanner.ScanBlock(raw[:40], network.Dogecoin, nil)
	assert.Nil(t, block)
	assert.Equal(t, fault.ErrMalformedBlock, err)

	truncated := [][]byte{
		raw[:80],         // no transaction count
		raw[:len(raw)-3], // inside the last transaction
	}
	for i, r := range truncated {
		block, err := scanner.ScanBlock(r, network.Dogecoin, nil)
		assert.Equal(t, fault.ErrMalformedBlock, err, "%d", i)
		require.NotNil(t, block, "%d", i)
		assert.Empty(t, block.Transactions, "%d", i)
	}

	// count far beyond the data
	bad := append([]byte{}, raw[:80]...)
	bad = append(bad, 0xfe, 0xff, 0xff, 0xff, 0x0f)
	_, err = scanner.ScanBlock(bad, network.Dogecoin, nil)
	assert.Equal(t, fault.ErrMalformedBlock, err)
}

// records before a damaged transaction are kept
func TestScanBlockPartial(t *testing.T) {
	txs := []*wire.MsgTx{
		makeTx(t, 0),
		makeTx(t, 1, encode(t, network.Dogecoin, standard("before", 1))...),
		makeTx(t, 2, encode(t, network.Dogecoin, standard("also before", 2))...),
		makeTx(t, 3, encode(t, network.Dogecoin, standard("lost", 3))...),
	}
	raw := makeBlock(t, plainVersion, false, txs...)
	raw = raw[:len(raw)-5]

	diagnostics := 0
	opts := &scanner.Options{
		Workers: 2,
		Report:  func(scanner.Diagnostic) { diagnostics += 1 },
	}
	block, err := scanner.ScanBlock(raw, network.Dogecoin, opts)
	assert.Equal(t, fault.ErrMalformedBlock, err)
	require.NotNil(t, block)
	require.Len(t, block.Transactions, 2)
	assert.Equal(t, 1, block.Transactions[0].Index)
	assert.Equal(t, "before", block.Transactions[0].Records[0].Common().Content)
	assert.Equal(t, 2, block.Transactions[1].Index)
	assert.Equal(t, 0, diagnostics)

	records, err := scanner.DecodeBlock(raw, network.Dogecoin, nil)
	assert.Equal(t, fault.ErrMalformedBlock, err)
	assert.Len(t, records, 2)

	// a partial block is not remembered
	c := scanner.NewCache(time.Minute)
	block, cached, err := c.ScanBlock(raw, network.Dogecoin, nil)
	assert.Equal(t, fault.ErrMalformedBlock, err)
	assert.False(t, cached)
	assert.Len(t, block.Transactions, 2)
	assert.Equal(t, 0, c.Count())
}

func TestScanBlockNoTransactions(t *testing.T) {
	block, err := scanner.ScanBlock(makeBlock(t, plainVersion, false), network.Litecoin, nil)
	require.NoError(t, err)
	assert.Empty(t, block.Transactions)
	assert.Empty(t, block.Records())
}

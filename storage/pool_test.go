// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"crypto/rand"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/borkerd/fault"
	"github.com/bitmark-inc/borkerd/network"
	"github.com/bitmark-inc/borkerd/storage"
)

// file names in key order
var poolFileNames = []string{
	"blk-000001.hex",
	"blk-000002.hex",
	"blk-000003.hex",
	"blk-000010.hex",
	"blk-000011.hex",
}

func TestPoolFiles(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.Files

	// written out of order, one replaced and one removed
	p.Put([]byte("blk-000011.hex"), []byte("old"))
	for i := len(poolFileNames) - 1; i >= 0; i -= 1 {
		p.Put([]byte(poolFileNames[i]), []byte{byte(i)})
	}
	p.Put([]byte("remove-me.hex"), []byte("gone"))
	p.Delete([]byte("remove-me.hex"))

	checkFiles(t, p)

	// other pools do not see these keys
	assert.False(t, storage.Pool.Records.Has([]byte(poolFileNames[0])))
	assert.False(t, storage.Pool.Blocks.Has([]byte(poolFileNames[0])))

	reopen(t, storage.ReadWrite)
	checkFiles(t, storage.Pool.Files)

	reopen(t, storage.ReadOnly)
	checkFiles(t, storage.Pool.Files)
}

func checkFiles(t *testing.T, p *storage.PoolHandle) {
	all, err := p.NewFetchCursor().Fetch(100)
	require.NoError(t, err)
	require.Len(t, all, len(poolFileNames))
	for i, e := range all {
		assert.Equal(t, poolFileNames[i], string(e.Key), "key: %d", i)
		assert.Equal(t, []byte{byte(i)}, e.Value, "value: %d", i)
	}

	for i, name := range poolFileNames {
		assert.True(t, p.Has([]byte(name)), name)
		assert.Equal(t, []byte{byte(i)}, p.Get([]byte(name)), name)
	}

	assert.False(t, p.Has([]byte("remove-me.hex")))
	assert.Nil(t, p.Get([]byte("remove-me.hex")))
	assert.Nil(t, p.Get([]byte("blk-000004.hex")))
}

func TestPoolCursorPaging(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.Files
	for i, name := range poolFileNames {
		p.Put([]byte(name), []byte{byte(i)})
	}

	// pages of two do not overlap and end empty
	cursor := p.NewFetchCursor()
	seen := []string{}
	for page := 0; page < 4; page += 1 {
		data, err := cursor.Fetch(2)
		require.NoError(t, err)
		for _, e := range data {
			seen = append(seen, string(e.Key))
		}
	}
	assert.Equal(t, poolFileNames, seen)

	// seek to a key that is present
	data, err := p.NewFetchCursor().Seek([]byte("blk-000003.hex")).Fetch(10)
	require.NoError(t, err)
	require.Len(t, data, 3)
	assert.Equal(t, "blk-000003.hex", string(data[0].Key))

	// seek between keys
	data, err = p.NewFetchCursor().Seek([]byte("blk-000004.hex")).Fetch(10)
	require.NoError(t, err)
	require.Len(t, data, 2)
	assert.Equal(t, "blk-000010.hex", string(data[0].Key))

	// seek past the end
	data, err = p.NewFetchCursor().Seek([]byte("zzz")).Fetch(10)
	require.NoError(t, err)
	assert.Empty(t, data)

	_, err = p.NewFetchCursor().Fetch(0)
	assert.Equal(t, fault.ErrInvalidCount, err)

	count := 0
	err = p.NewFetchCursor().Map(func(key []byte, value []byte) error {
		count += 1
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, len(poolFileNames), count)
}

func TestPoolBatch(t *testing.T) {
	setup(t)
	defer teardown(t)

	hash := chainhash.Hash{0x42, 0x17}

	batch := storage.NewBatch()
	batch.Put(storage.Pool.Checkpoint, []byte{byte(network.Litecoin)}, hash.CloneBytes())
	batch.Put(storage.Pool.Files, []byte("batched.hex"), []byte("queued"))

	// nothing is visible before commit
	_, err := storage.GetCheckpoint(network.Litecoin)
	assert.Equal(t, fault.ErrCheckpointNotFound, err)
	assert.False(t, storage.Pool.Files.Has([]byte("batched.hex")))

	require.NoError(t, batch.Commit())

	checkpoint, err := storage.GetCheckpoint(network.Litecoin)
	require.NoError(t, err)
	assert.Equal(t, hash.String(), checkpoint)
	assert.Equal(t, []byte("queued"), storage.Pool.Files.Get([]byte("batched.hex")))

	// other networks are separate
	_, err = storage.GetCheckpoint(network.Bitcoin)
	assert.Equal(t, fault.ErrCheckpointNotFound, err)

	// a committed batch is empty
	require.NoError(t, batch.Commit())

	storage.Finalise()
	assert.Equal(t, fault.ErrDatabaseIsNotSet, storage.NewBatch().Commit())
	require.NoError(t, storage.Initialise(databaseFileName, storage.ReadWrite))
}

// concurrent writers and readers on the files pool
func TestPoolFilesConcurrent(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.Files

	finish := time.After(2 * time.Second)
	stop := make(chan struct{})

	var wg sync.WaitGroup
	for j := 0; j < 8; j += 1 {
		wg.Add(1)
		go func(j int) {
			defer wg.Done()
			marker(p, j, stop)
		}(j)
	}

	i := 0
loop:
	for {
		select {
		case <-finish:
			break loop
		default:
		}

		i += 1
		key := []byte(fmt.Sprintf("main-%08d.hex", i))
		data := randomBytes(1 + chainhash.HashSize)

		p.Put(key, data)
		assert.Equal(t, data, p.Get(key), "%d", i)

		p.Delete(key)
		if !assert.Nil(t, p.Get(key), "%d", i) {
			break loop
		}
	}
	close(stop)
	wg.Wait()
}

func marker(p *storage.PoolHandle, j int, stop <-chan struct{}) {
	key := []byte(fmt.Sprintf("worker-%02d.hex", j))
	for {
		select {
		case <-stop:
			return
		default:
		}
		p.Put(key, randomBytes(1+chainhash.HashSize))
		p.Get(key)
		p.Has(key)
	}
}

func randomBytes(n int) []byte {
	buffer := make([]byte, n)
	_, err := rand.Read(buffer)
	if nil != err {
		panic(err)
	}
	return buffer
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scanner

import (
	"bytes"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/borkerd/counter"
	"github.com/bitmark-inc/borkerd/fault"
	"github.com/bitmark-inc/borkerd/network"
)

// Cache - remembers scanned blocks by network and block hash
//
// a cached block is returned without re-reporting its diagnostics
type Cache struct {
	blocks *cache.Cache
	hits   counter.Counter
	misses counter.Counter
}

// NewCache - blocks expire after the given duration
func NewCache(expiry time.Duration) *Cache {
	return &Cache{
		blocks: cache.New(expiry, 2*expiry),
	}
}

// ScanBlock - as the package function, true if served from the cache
//
// a partial block returned with an error is not cached
func (c *Cache) ScanBlock(raw []byte, n network.Network, opts *Options) (*Block, bool, error) {
	if !n.IsValid() {
		return nil, false, fault.ErrUnsupportedNetwork
	}
	if 0 == len(raw) {
		return nil, false, fault.ErrEmptyBuffer
	}

	header := wire.BlockHeader{}
	if err := header.Deserialize(bytes.NewReader(raw)); nil != err {
		return nil, false, fault.ErrMalformedBlock
	}
	key := n.String() + ":" + header.BlockHash().String()

	if block, found := c.blocks.Get(key); found {
		c.hits.Increment()
		opts.tracef("block: %s  cached", key)
		return block.(*Block), true, nil
	}

	c.misses.Increment()
	block, err := ScanBlock(raw, n, opts)
	if nil != err {
		return block, false, err
	}
	c.blocks.Set(key, block, cache.DefaultExpiration)
	return block, false, nil
}

// Count - number of cached blocks
func (c *Cache) Count() int {
	return c.blocks.ItemCount()
}

// Stats - blocks served from the cache and blocks scanned through it
func (c *Cache) Stats() (hits uint64, misses uint64) {
	return c.hits.Uint64(), c.misses.Uint64()
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/borkerd/borkrecord"
	"github.com/bitmark-inc/borkerd/network"
)

type magicItem struct {
	Network  network.Network `json:"network"`
	Magic    string          `json:"magic"`
	Capacity int             `json:"capacity"`
	Content  map[string]int  `json:"content"`
}

type detectItem struct {
	Network network.Network `json:"network"`
	Kind    borkrecord.Kind `json:"kind"`
}

func runMagic(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if payload := c.String("payload"); "" != payload {
		p, err := decodeHex(payload)
		if nil != err {
			return err
		}
		return printJson(m.w, detect(p))
	}

	items := make([]magicItem, 0, network.Count)
	for n := network.First; n <= network.Last; n += 1 {
		item, err := makeMagicItem(n)
		if nil != err {
			return err
		}
		items = append(items, item)
	}
	return printJson(m.w, items)
}

func makeMagicItem(n network.Network) (magicItem, error) {
	magic, err := network.MagicFor(n)
	if nil != err {
		return magicItem{}, err
	}
	capacity, err := network.Capacity(n)
	if nil != err {
		return magicItem{}, err
	}

	content := make(map[string]int)
	for _, kind := range []borkrecord.Kind{borkrecord.StandardKind, borkrecord.CommentKind, borkrecord.ReborkKind, borkrecord.ExtensionKind} {
		size, err := borkrecord.MaximumContent(n, kind)
		if nil != err {
			return magicItem{}, err
		}
		content[kind.String()] = size
	}

	return magicItem{
		Network:  n,
		Magic:    hex.EncodeToString(magic),
		Capacity: capacity,
		Content:  content,
	}, nil
}

// foreign payloads give network Nothing and kind NullKind
func detect(payload []byte) detectItem {
	n := network.Detect(payload)
	if !n.IsValid() {
		return detectItem{}
	}
	kind, _, err := borkrecord.Packed(payload).Kind(n)
	if nil != err {
		return detectItem{Network: n}
	}
	return detectItem{
		Network: n,
		Kind:    kind,
	}
}

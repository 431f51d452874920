// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/txscript"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/borkerd/borkrecord"
	"github.com/bitmark-inc/borkerd/network"
)

type encodeItem struct {
	Network network.Network     `json:"network"`
	Record  recordItem          `json:"record"`
	Packed  []borkrecord.Packed `json:"packed,omitempty"`
	Scripts []string            `json:"scripts,omitempty"`
}

func runEncode(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	kind, err := borkrecord.KindFromString(c.String("kind"))
	if nil != err {
		return err
	}
	nonce, err := checkByte(c.Uint("nonce"), ErrNonceOutOfRange)
	if nil != err {
		return err
	}
	index, err := checkByte(c.Uint("index"), ErrIndexOutOfRange)
	if nil != err {
		return err
	}

	record, err := makeRecord(kind, c.String("content"), nonce, index, c.IsSet("index"), c.String("reference"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "network: %s  kind: %s  content bytes: %d\n", m.network, kind, len(record.Common().Content))
	}

	packed, err := borkrecord.Encode(m.network, record)
	if nil != err {
		return err
	}

	name, _ := borkrecord.RecordName(record)
	result := encodeItem{
		Network: m.network,
		Record: recordItem{
			Record: name,
			Kind:   kind,
			Data:   record,
		},
	}

	if c.Bool("script") {
		scripts, err := nullDataScripts(packed)
		if nil != err {
			return err
		}
		result.Scripts = scripts
	} else {
		result.Packed = packed
	}

	return printJson(m.w, result)
}

func makeRecord(kind borkrecord.Kind, content string, nonce uint8, index uint8, hasIndex bool, reference string) (borkrecord.Record, error) {

	if hasIndex && borkrecord.ExtensionKind != kind {
		return nil, ErrUnexpectedIndex
	}

	base := borkrecord.Base{
		Content: content,
		Nonce:   nonce,
	}

	switch kind {
	case borkrecord.StandardKind, borkrecord.ExtensionKind:
		if "" != reference {
			return nil, ErrUnexpectedRef
		}
		if borkrecord.ExtensionKind == kind {
			return &borkrecord.Extension{Base: base, Index: index}, nil
		}
		return &borkrecord.Standard{Base: base}, nil

	case borkrecord.CommentKind, borkrecord.ReborkKind:
		if "" == reference {
			return nil, ErrRequiredReference
		}
		ref, err := hex.DecodeString(reference)
		if nil != err {
			return nil, err
		}
		if borkrecord.CommentKind == kind {
			return &borkrecord.Comment{Base: base, ReferenceId: ref}, nil
		}
		return &borkrecord.Rebork{Base: base, ReferenceId: ref}, nil

	default:
		return nil, fmt.Errorf("record kind: %s cannot be encoded", kind)
	}
}

// the output scripts that carry each payload
func nullDataScripts(packed []borkrecord.Packed) ([]string, error) {
	scripts := make([]string, 0, len(packed))
	for _, p := range packed {
		script, err := txscript.NullDataScript(p)
		if nil != err {
			return nil, err
		}
		scripts = append(scripts, hex.EncodeToString(script))
	}
	return scripts, nil
}

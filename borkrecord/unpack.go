// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package borkrecord

import (
	"unicode/utf8"

	"github.com/bitmark-inc/borkerd/fault"
	"github.com/bitmark-inc/borkerd/network"
)

// Kind - determine the record kind of a payload
//
// returns the kind and the offset of the first variant specific byte
// (the nonce)
//
// errors:
//   ErrNotBorkPayload    - no magic for this network, foreign data
//   ErrTruncatedPayload  - magic present but no kind byte
//   ErrUnknownRecordKind - kind byte not recognised
func (record Packed) Kind(n network.Network) (Kind, int, error) {
	magic, err := network.MagicFor(n)
	if nil != err {
		return NullKind, 0, err
	}
	if !network.HasMagic(n, record) {
		return NullKind, 0, fault.ErrNotBorkPayload
	}

	offset := len(magic)
	if len(record) < offset+KindLength {
		return NullKind, 0, fault.ErrTruncatedPayload
	}

	kind := Kind(record[offset])
	switch kind {
	case StandardKind, CommentKind, ReborkKind, ExtensionKind:
		return kind, offset + KindLength, nil
	default:
		return NullKind, 0, fault.ErrUnknownRecordKind
	}
}

// Unpack - turn a payload into a record
//
// the result is a fresh value that shares no memory with the payload
//
// must cast result to correct type
//
// e.g.
//   switch r := result.(type) {
//   case *borkrecord.Comment:
func (record Packed) Unpack(n network.Network) (Record, error) {
	kind, offset, err := record.Kind(n)
	if nil != err {
		return nil, err
	}
	return unpackKind(kind, record[offset:])
}

// decode the fields after the kind byte
//
// field order: nonce, then index or reference id, then content
func unpackKind(kind Kind, buffer []byte) (Record, error) {
	if len(buffer) < NonceLength {
		return nil, fault.ErrTruncatedPayload
	}
	nonce := buffer[0]
	n := NonceLength

	switch kind {

	case StandardKind:
		content, err := unpackContent(buffer[n:])
		if nil != err {
			return nil, err
		}
		r := &Standard{
			Base: Base{
				Content: content,
				Nonce:   nonce,
			},
		}
		return r, nil

	case ExtensionKind:
		if len(buffer) < n+IndexLength {
			return nil, fault.ErrTruncatedPayload
		}
		index := buffer[n]
		n += IndexLength

		content, err := unpackContent(buffer[n:])
		if nil != err {
			return nil, err
		}
		r := &Extension{
			Base: Base{
				Content: content,
				Nonce:   nonce,
			},
			Index: index,
		}
		return r, nil

	case CommentKind, ReborkKind:
		if len(buffer) < n+ReferenceIdLength {
			return nil, fault.ErrTruncatedPayload
		}
		reference := make(ReferenceId, ReferenceIdLength)
		copy(reference, buffer[n:n+ReferenceIdLength])
		n += ReferenceIdLength

		content, err := unpackContent(buffer[n:])
		if nil != err {
			return nil, err
		}
		base := Base{
			Content: content,
			Nonce:   nonce,
		}
		if CommentKind == kind {
			return &Comment{Base: base, ReferenceId: reference}, nil
		}
		return &Rebork{Base: base, ReferenceId: reference}, nil

	default:
		return nil, fault.ErrUnknownRecordKind
	}
}

// content is the remainder of the payload and must be valid text
func unpackContent(buffer []byte) (string, error) {
	if !utf8.Valid(buffer) {
		return "", fault.ErrMalformedContent
	}
	return string(buffer), nil
}

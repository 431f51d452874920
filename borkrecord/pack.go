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

// MaximumContent - content bytes that fit in one chunk of a kind
func MaximumContent(n network.Network, kind Kind) (int, error) {
	capacity, err := network.Capacity(n)
	if nil != err {
		return 0, err
	}
	overhead := network.MagicLength + KindLength + NonceLength
	switch kind {
	case StandardKind:
	case ExtensionKind:
		overhead += IndexLength
	case CommentKind, ReborkKind:
		overhead += ReferenceIdLength
	default:
		return 0, fault.ErrUnknownRecordKind
	}
	return capacity - overhead, nil
}

// Encode - pack a record into the payloads for one or more outputs
//
// Standard, Comment and Rebork content that does not fit is split: the
// head chunk keeps the record's kind and is followed by the fewest
// Extension chunks that hold the rest, indexed from zero.  Split points
// fall on rune boundaries so every chunk decodes on its own.
//
// An Extension is packed as a single chunk and must fit.
//
// nothing is returned on error
func Encode(n network.Network, record Record) ([]Packed, error) {
	magic, err := network.MagicFor(n)
	if nil != err {
		return nil, err
	}

	var reference ReferenceId
	switch r := record.(type) {
	case *Standard:
		if nil == r {
			return nil, fault.ErrNilRecord
		}
	case *Extension:
		if nil == r {
			return nil, fault.ErrNilRecord
		}
	case *Comment:
		if nil == r {
			return nil, fault.ErrNilRecord
		}
		reference = r.ReferenceId
	case *Rebork:
		if nil == r {
			return nil, fault.ErrNilRecord
		}
		reference = r.ReferenceId
	default:
		return nil, fault.ErrNilRecord
	}

	kind := record.Kind()
	base := record.Common()

	if (CommentKind == kind || ReborkKind == kind) && ReferenceIdLength != len(reference) {
		return nil, fault.ErrReferenceIdLength
	}
	if !utf8.ValidString(base.Content) {
		return nil, fault.ErrInvalidContent
	}

	limit, err := MaximumContent(n, kind)
	if nil != err {
		return nil, err
	}

	if ExtensionKind == kind {
		if len(base.Content) > limit {
			return nil, fault.ErrContentTooLong
		}
		index := record.(*Extension).Index
		return []Packed{packExtension(magic, base.Nonce, index, base.Content)}, nil
	}

	head, rest := splitContent(base.Content, limit)

	message := packHeader(magic, kind, base.Nonce)
	message = append(message, reference...)
	message = append(message, head...)
	chunks := []Packed{message}

	if "" == rest {
		return chunks, nil
	}

	extensionLimit, err := MaximumContent(n, ExtensionKind)
	if nil != err {
		return nil, err
	}
	for index := 0; "" != rest; index += 1 {
		if index >= MaximumExtensions {
			return nil, fault.ErrTooManyExtensions
		}
		var part string
		part, rest = splitContent(rest, extensionLimit)
		chunks = append(chunks, packExtension(magic, base.Nonce, uint8(index), part))
	}
	return chunks, nil
}

// magic, kind and nonce
func packHeader(magic []byte, kind Kind, nonce uint8) Packed {
	message := make(Packed, 0, network.PayloadCapacity)
	message = append(message, magic...)
	message = append(message, byte(kind), nonce)
	return message
}

func packExtension(magic []byte, nonce uint8, index uint8, content string) Packed {
	message := packHeader(magic, ExtensionKind, nonce)
	message = append(message, index)
	return append(message, content...)
}

// split valid utf-8 into the longest prefix of at most limit bytes
// that ends on a rune boundary, and the remainder
func splitContent(s string, limit int) (string, string) {
	if len(s) <= limit {
		return s, ""
	}
	i := limit
	for i > 0 && !utf8.RuneStart(s[i]) {
		i -= 1
	}
	return s[:i], s[i:]
}

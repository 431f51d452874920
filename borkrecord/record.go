// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package borkrecord

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/borkerd/fault"
)

// Kind - type code of a bork record
// this is the single byte immediately after the network magic
type Kind uint8

// enumerate the possible record kinds
const (
	// zero is never written
	NullKind = Kind(0x00)

	StandardKind  = Kind(0x03) // self-contained post
	CommentKind   = Kind(0x04) // reply to a referenced record
	ReborkKind    = Kind(0x05) // re-share of a referenced record
	ExtensionKind = Kind(0x06) // continuation chunk of a longer post
)

// byte sizes for various fields
const (
	KindLength        = 1
	NonceLength       = 1
	IndexLength       = 1
	ReferenceIdLength = chainhash.HashSize
	MaximumExtensions = 256 // one byte index
)

// String - name of the kind
func (kind Kind) String() string {
	switch kind {
	case StandardKind:
		return "standard"
	case CommentKind:
		return "comment"
	case ReborkKind:
		return "rebork"
	case ExtensionKind:
		return "extension"
	default:
		return "*unknown*"
	}
}

// MarshalText - kind name for JSON
func (kind Kind) MarshalText() ([]byte, error) {
	return []byte(kind.String()), nil
}

// KindFromString - convert a kind name
func KindFromString(s string) (Kind, error) {
	switch s {
	case "standard", "bork":
		return StandardKind, nil
	case "comment":
		return CommentKind, nil
	case "rebork":
		return ReborkKind, nil
	case "extension":
		return ExtensionKind, nil
	default:
		return NullKind, fault.ErrUnknownRecordKind
	}
}

// Record - common interface of the bork variants
//
// concrete types: *Standard, *Extension, *Comment, *Rebork
type Record interface {
	Kind() Kind
	Common() *Base
}

// Base - fields present in every variant
type Base struct {
	Content string `json:"content"` // utf-8
	Nonce   uint8  `json:"nonce"`   // disambiguates identical content
}

// Common - access to the shared fields
func (base *Base) Common() *Base {
	return base
}

// Standard - a self-contained post
type Standard struct {
	Base
}

// Extension - one chunk of a post split across several outputs
type Extension struct {
	Base
	Index uint8 `json:"index"` // zero based position after the head record
}

// Comment - reply to the referenced record
type Comment struct {
	Base
	ReferenceId ReferenceId `json:"referenceId"`
}

// Rebork - re-share of the referenced record
type Rebork struct {
	Base
	ReferenceId ReferenceId `json:"referenceId"`
}

// Kind - record type codes
func (*Standard) Kind() Kind  { return StandardKind }
func (*Extension) Kind() Kind { return ExtensionKind }
func (*Comment) Kind() Kind   { return CommentKind }
func (*Rebork) Kind() Kind    { return ReborkKind }

// Reference - access to the reference of Comment and Rebork
// returns nil for the other kinds
func Reference(record Record) ReferenceId {
	switch r := record.(type) {
	case *Comment:
		return r.ReferenceId
	case *Rebork:
		return r.ReferenceId
	default:
		return nil
	}
}

// RecordName - returns the name of a bork record as a string
func RecordName(record interface{}) (string, bool) {
	switch record.(type) {
	case *Standard, Standard:
		return "Standard", true

	case *Extension, Extension:
		return "Extension", true

	case *Comment, Comment:
		return "Comment", true

	case *Rebork, Rebork:
		return "Rebork", true

	default:
		return "*unknown*", false
	}
}

// ReferenceId - opaque identifier of the referenced record
//
// never interpreted, only copied
type ReferenceId []byte

// MarshalText - convert a reference to its hex JSON form
func (id ReferenceId) MarshalText() ([]byte, error) {
	b := make([]byte, hex.EncodedLen(len(id)))
	hex.Encode(b, id)
	return b, nil
}

// UnmarshalText - convert a hex JSON reference
func (id *ReferenceId) UnmarshalText(s []byte) error {
	b := make([]byte, hex.DecodedLen(len(s)))
	n, err := hex.Decode(b, s)
	if nil != err {
		return err
	}
	*id = b[:n]
	return nil
}

// Packed - packed records are just a byte slice
type Packed []byte

// MarshalText - convert a packed to its hex JSON form
func (record Packed) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(record))
	b := make([]byte, size)
	hex.Encode(b, record)
	return b, nil
}

// UnmarshalText - convert a packed from its hex JSON form
func (record *Packed) UnmarshalText(s []byte) error {
	size := hex.DecodedLen(len(s))
	*record = make([]byte, size)
	_, err := hex.Decode(*record, s)
	return err
}

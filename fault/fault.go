// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised   = ExistsError("already initialised")
	ErrBlockAlreadyScanned  = ExistsError("block already scanned")
	ErrBlockNotFound        = NotFoundError("block not found")
	ErrCheckpointNotFound   = NotFoundError("checkpoint not found")
	ErrContentTooLong       = RecordError("content too long")
	ErrCorruptStoredRecord  = ProcessError("corrupt stored record")
	ErrDatabaseIsNotSet     = ProcessError("database is not set")
	ErrDatabaseVersion      = ProcessError("unsupported database version")
	ErrEmptyBuffer          = LengthError("empty buffer")
	ErrHashCannotBeNil      = InvalidError("hash cannot be nil")
	ErrInvalidContent       = RecordError("content is not valid utf-8")
	ErrInvalidCount         = InvalidError("invalid count")
	ErrInvalidCursor        = InvalidError("invalid cursor")
	ErrInvalidStructPointer = InvalidError("invalid struct pointer")
	ErrMalformedBlock       = ProcessError("malformed block")
	ErrMalformedContent     = InvalidError("malformed content")
	ErrMalformedTransaction = ProcessError("malformed transaction")
	ErrNilRecord            = RecordError("nil record")
	ErrNotBorkPayload       = NotFoundError("not a bork payload")
	ErrNotInitialised       = NotFoundError("not initialised")
	ErrOrphanExtension      = NotFoundError("orphan extension")
	ErrReferenceIdLength    = RecordError("reference id length is invalid")
	ErrTooManyExtensions    = RecordError("too many extensions")
	ErrTransactionNotFound  = NotFoundError("transaction not found")
	ErrTruncatedPayload     = LengthError("truncated payload")
	ErrUnknownRecordKind    = InvalidError("unknown record kind")
	ErrUnsupportedNetwork   = InvalidError("unsupported network")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk index of scanned blocks
//
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. network      = single byte network code
// 4. block hash   = 32 byte block hash in internal byte order
// 5. txId         = 32 byte transaction hash in internal byte order
// 6. count        = Varint64
// 7. chunk        = count(length) ++ encoded bork payload
//
// Blocks:
//
//   B ++ network ++ block hash - scanned block
//                                data: timestamp(big endian uint64) ++ count(transactions) ++ [count(index) ++ txId]
//
// Records:
//
//   R ++ network ++ txId       - bork records of a transaction
//                                data: count(records) ++ [count(chunks) ++ [count(length) ++ chunk]]
//
// Checkpoint:
//
//   C ++ network               - most recently stored block
//                                data: block hash
//
// Files:
//
//   F ++ file name             - block file that was scanned
//                                data: network ++ block hash
package storage

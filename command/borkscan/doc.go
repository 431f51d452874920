// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// borkscan - encode, decode and scan bork records
//
// the codec commands (magic, encode, decode-tx, decode-block) work on
// hex given on the command line or in a file and need no configuration.
//
// scan, watch, show and list read a Lua configuration file:
//
//   local M = {}
//   M.data_directory = "."
//   M.network = "dogecoin"
//   M.block_directory = "blocks"   -- one hex block per *.hex file
//   M.database = "borkscan.leveldb"
//   M.workers = 4
//   M.logging = {
//       size = 1048576,
//       count = 10,
//       levels = {
//           DEFAULT = "info",
//       },
//   }
//   return M
package main

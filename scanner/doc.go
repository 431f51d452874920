// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package scanner extracts bork records from raw transactions and blocks
//
// Only standard null-data outputs are considered.  Payloads without the
// network's magic are foreign data and are ignored without comment;
// payloads that carry the magic but fail to decode are skipped and
// reported through Options.Report so that one bad payload never hides
// the records around it.
//
// The scanners hold no state: ScanBlock may fan transactions out to
// several workers but always returns them in block order.
package scanner

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package borkrecord

import (
	"sort"
	"strings"
)

// Assemble - join extension chunks onto their head records
//
// records are in output order.  Extensions are grouped by nonce,
// ordered by index (output order for equal indices) and their content
// appended to the first head record with the same nonce.  The head
// records are modified in place and returned in their original order;
// extensions with no matching head are returned as orphans.
func Assemble(records []Record) ([]Record, []*Extension) {
	heads := make([]Record, 0, len(records))
	extensions := make(map[uint8][]*Extension)
	nonces := make([]uint8, 0)

	for _, record := range records {
		if nil == record {
			continue
		}
		if e, ok := record.(*Extension); ok {
			if _, found := extensions[e.Nonce]; !found {
				nonces = append(nonces, e.Nonce)
			}
			extensions[e.Nonce] = append(extensions[e.Nonce], e)
			continue
		}
		heads = append(heads, record)
	}

	for _, head := range heads {
		base := head.Common()
		chunks, ok := extensions[base.Nonce]
		if !ok {
			continue
		}
		delete(extensions, base.Nonce)

		sort.SliceStable(chunks, func(i, j int) bool {
			return chunks[i].Index < chunks[j].Index
		})

		var b strings.Builder
		b.WriteString(base.Content)
		for _, e := range chunks {
			b.WriteString(e.Content)
		}
		base.Content = b.String()
	}

	orphans := make([]*Extension, 0)
	for _, nonce := range nonces {
		orphans = append(orphans, extensions[nonce]...)
	}
	return heads, orphans
}

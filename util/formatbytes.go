// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"strings"
)

// bytes per line of generated output
const formatWidth = 8

// FormatBytes - Go source for a byte slice, used by tests to dump
// the payload they expected when a comparison fails
func FormatBytes(name string, data []byte) string {
	var b strings.Builder
	b.WriteString(name + " := []byte{")
	for i, c := range data {
		if 0 == i%formatWidth {
			b.WriteString("\n\t")
		}
		fmt.Fprintf(&b, "%#02x, ", c)
	}
	b.WriteString("\n}")
	return b.String()
}

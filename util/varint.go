// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - longest encoding of a uint64
const Varint64MaximumBytes = 9

// AppendVarint64 - append the Varint64 form of value to buffer
//
// the first eight bytes hold 7 bits each, low bits first, with the top
// bit set when more follow; a ninth byte holds the remaining 8 bits
func AppendVarint64(buffer []byte, value uint64) []byte {
	for i := 1; i < Varint64MaximumBytes; i += 1 {
		if value < 0x80 {
			return append(buffer, byte(value))
		}
		buffer = append(buffer, byte(value)|0x80)
		value >>= 7
	}
	return append(buffer, byte(value))
}

// ToVarint64 - the Varint64 form of value
func ToVarint64(value uint64) []byte {
	return AppendVarint64(make([]byte, 0, Varint64MaximumBytes), value)
}

// FromVarint64 - read a Varint64 from the start of buffer
//
// returns the value and the bytes used, or 0, 0 if buffer is truncated
func FromVarint64(buffer []byte) (uint64, int) {
	value := uint64(0)
	for i, b := range buffer {
		shift := uint(7 * i)
		if Varint64MaximumBytes-1 == i {
			return value | uint64(b)<<shift, i + 1
		}
		value |= uint64(b&0x7f) << shift
		if 0 == b&0x80 {
			return value, i + 1
		}
	}
	return 0, 0
}

// ClippedVarint64 - read a Varint64 that must lie in minimum..maximum
//
// returns 0, 0 for a value out of range, a truncated buffer or
// an empty range
func ClippedVarint64(buffer []byte, minimum int, maximum int) (int, int) {
	if minimum < 0 || minimum >= maximum {
		return 0, 0
	}

	value, used := FromVarint64(buffer)
	if 0 == used || value < uint64(minimum) || value > uint64(maximum) {
		return 0, 0
	}
	return int(value), used
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/borkerd/util"
)

var varint64Tests = []struct {
	value   uint64
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{137, []byte{0x89, 0x01}},
	{255, []byte{0xff, 0x01}},
	{256, []byte{0x80, 0x02}},
	{16383, []byte{0xff, 0x7f}},
	{16384, []byte{0x80, 0x80, 0x01}},
	{0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{0x8000000000000000, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}},
	{0xfffffffffffffffe, []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

var varint64TruncatedTests = [][]byte{
	{},
	{0x80},
	{0xff},
	{0x80, 0x80},
	{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
}

func TestToVarint64(t *testing.T) {
	for i, item := range varint64Tests {
		assert.Equal(t, item.encoded, util.ToVarint64(item.value), "%d: %x", i, item.value)
	}
}

func TestAppendVarint64(t *testing.T) {
	buffer := []byte{0xaa}
	for _, item := range varint64Tests {
		buffer = util.AppendVarint64(buffer, item.value)
	}

	// read back in sequence
	rest := buffer[1:]
	for i, item := range varint64Tests {
		value, used := util.FromVarint64(rest)
		require.Equal(t, len(item.encoded), used, "%d", i)
		assert.Equal(t, item.value, value, "%d", i)
		rest = rest[used:]
	}
	assert.Empty(t, rest)
	assert.Equal(t, byte(0xaa), buffer[0])
}

func TestFromVarint64(t *testing.T) {
	suffix := []byte{0xff, 0x97, 0x23}

	for i, item := range varint64Tests {
		value, used := util.FromVarint64(item.encoded)
		assert.Equal(t, item.value, value, "%d: %x", i, item.encoded)
		assert.Equal(t, len(item.encoded), used, "%d: %x", i, item.encoded)

		b := append(append([]byte{}, item.encoded...), suffix...)
		value, used = util.FromVarint64(b)
		assert.Equal(t, item.value, value, "%d: %x", i, b)
		assert.Equal(t, suffix, b[used:], "%d: %x", i, b)
	}

	for i, item := range varint64TruncatedTests {
		value, used := util.FromVarint64(item)
		assert.Zero(t, value, "%d: %x", i, item)
		assert.Zero(t, used, "%d: %x", i, item)
	}
}

func TestClippedVarint64(t *testing.T) {
	tests := []struct {
		buffer  []byte
		minimum int
		maximum int
		value   int
		used    int
	}{
		{[]byte{0x05}, 1, 80, 5, 1},
		{[]byte{0x50}, 1, 80, 80, 1},
		{[]byte{0x51}, 1, 80, 0, 0},
		{[]byte{0x00}, 1, 80, 0, 0},
		{[]byte{0x80, 0x01}, 100, 200, 128, 2},
		{[]byte{0x80}, 1, 80, 0, 0},
		{[]byte{0x05}, 80, 1, 0, 0},
		{[]byte{0x05}, -1, 80, 0, 0},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, 0, 257, 0, 0},
	}

	for i, item := range tests {
		value, used := util.ClippedVarint64(item.buffer, item.minimum, item.maximum)
		assert.Equal(t, item.value, value, "%d: %x", i, item.buffer)
		assert.Equal(t, item.used, used, "%d: %x", i, item.buffer)
	}
}

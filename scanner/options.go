// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scanner

import (
	"runtime"

	"github.com/bitmark-inc/logger"
)

// WholeTransaction - Diagnostic.Output value for errors not tied to one output
const WholeTransaction = -1

// Diagnostic - a payload or transaction that was skipped
type Diagnostic struct {
	TxIndex int    // position in the block
	TxId    string // hex transaction hash
	Output  int    // output index or WholeTransaction
	Err     error
}

// Options - optional scan settings, the zero value is usable
type Options struct {
	// number of transactions decoded concurrently, zero for GOMAXPROCS
	Workers int

	// receives skipped payloads in block order on the calling goroutine
	Report func(Diagnostic)

	// optional channel for debug output
	Log *logger.L
}

func (opts *Options) workers() int {
	if nil == opts || opts.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return opts.Workers
}

// deliver diagnostics in order
func (opts *Options) report(diagnostics []Diagnostic) {
	if nil == opts {
		return
	}
	for _, d := range diagnostics {
		if nil != opts.Log {
			opts.Log.Debugf("tx[%d]: %s output: %d skipped: %s", d.TxIndex, d.TxId, d.Output, d.Err)
		}
		if nil != opts.Report {
			opts.Report(d)
		}
	}
}

func (opts *Options) tracef(format string, arguments ...interface{}) {
	if nil != opts && nil != opts.Log {
		opts.Log.Tracef(format, arguments...)
	}
}

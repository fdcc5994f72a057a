// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package datasink

import (
	"io"
	"os"

	"github.com/yandex/logcast/core"
	"github.com/yandex/logcast/lib/ioutil2"
)

// NewStdout returns sink, that writes to os.Stdout. Closing opened sink doesn't close os.Stdout.
func NewStdout() core.DataSink {
	return stdSink{&os.Stdout}
}

// NewStderr returns sink, that writes to os.Stderr. Closing opened sink doesn't close os.Stderr.
func NewStderr() core.DataSink {
	return stdSink{&os.Stderr}
}

// stdSink gets std stream on open, so stream replaced in tests is used.
type stdSink struct{ stream **os.File }

func (s stdSink) OpenSink() (wc io.WriteCloser, err error) {
	return ioutil2.NopWriteCloser(*s.stream), nil
}

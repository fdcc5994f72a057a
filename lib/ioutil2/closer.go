// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package ioutil2

import "io"

// NopCloser may be embedded to any struct to implement io.Closer doing nothing on closer.
type NopCloser struct{}

func (NopCloser) Close() error { return nil }

// NopWriteCloser returns io.WriteCloser, that writes to w, and does nothing on Close.
// Useful for shared writers like os.Stdout, that should not be closed by user.
func NopWriteCloser(w io.Writer) io.WriteCloser {
	return nopWriteCloser{Writer: w}
}

type nopWriteCloser struct {
	io.Writer
	NopCloser
}

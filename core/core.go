// Copyright (c) 2017 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

// package core defines logcast extension points.
// Core interfaces implementations can be passed to broadcaster directly when logcast is used as a library,
// or can be registered in plugin system (look at core/plugin pkg), and found by discovery or created from abstract config.
package core

import (
	"io"
)

// Logger is the capability that broadcaster dispatches messages to.
// Every registered Logger receives each broadcasted message exactly once.
// Loggers share no state with each other, so a Logger owned by one broadcaster
// need not be goroutine safe.
type Logger interface {
	// Log delivers message to logger destination. Log returns error only if
	// message was not delivered. Broadcaster reports such errors, but still
	// delivers message to the rest of loggers.
	Log(message string) error

	// io.Closer // Optional. Loggers that hold opened resources SHOULD implement it.
}

// DataSink is abstract destination of data, like file, stdout or buffer.
// Opened sink is owned by caller, and should be closed by it.
type DataSink interface {
	OpenSink() (wc io.WriteCloser, err error)
}

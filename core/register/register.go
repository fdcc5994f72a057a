// Copyright (c) 2017 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

// Package register contains typed helpers for registering core extension points
// in default plugin registry.
package register

import (
	"reflect"

	"github.com/yandex/logcast/core"
	"github.com/yandex/logcast/core/plugin"
)

func registerPtr(ptr interface{}, name string, newPlugin interface{}, newDefaultConfigOptional ...interface{}) {
	plugin.Register(plugin.PtrType(ptr), name, newPlugin, newDefaultConfigOptional...)
}

func Logger(name string, newLogger interface{}, newDefaultConfigOptional ...interface{}) {
	var ptr *core.Logger
	registerPtr(ptr, name, newLogger, newDefaultConfigOptional...)
}

func DataSink(name string, newDataSink interface{}, newDefaultConfigOptional ...interface{}) {
	var ptr *core.DataSink
	registerPtr(ptr, name, newDataSink, newDefaultConfigOptional...)
}

// LoggerType returns core.Logger plugin type.
func LoggerType() reflect.Type {
	return plugin.PtrType((*core.Logger)(nil))
}

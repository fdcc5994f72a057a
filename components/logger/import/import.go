// Copyright (c) 2017 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

// Package loggerimport registers built-in loggers and data sinks.
package loggerimport

import (
	"reflect"
	"sync"

	"github.com/spf13/afero"

	"github.com/yandex/logcast/components/logger"
	"github.com/yandex/logcast/core"
	"github.com/yandex/logcast/core/config"
	"github.com/yandex/logcast/core/datasink"
	"github.com/yandex/logcast/core/plugin"
	"github.com/yandex/logcast/core/plugin/pluginconfig"
	"github.com/yandex/logcast/core/register"
)

const (
	ConsoleLoggerKey = "console"
	FileLoggerKey    = "file"
	EmailLoggerKey   = "email"

	stdoutSinkKey = "stdout"
	stderrSinkKey = "stderr"
	fileSinkKey   = "file"
)

var importOnce sync.Once

// Import registers built-in plugins in default registry. Loggers are
// registered, and so discovered, in order: console, file, email.
// Only first call registers, next calls do nothing.
func Import(fs afero.Fs) {
	importOnce.Do(func() {
		doImport(fs)
	})
}

func doImport(fs afero.Fs) {
	register.DataSink(stdoutSinkKey, datasink.NewStdout)
	register.DataSink(stderrSinkKey, datasink.NewStderr)
	register.DataSink(fileSinkKey, func(conf datasink.FileConfig) core.DataSink {
		return datasink.NewFile(fs, conf)
	})

	register.Logger(ConsoleLoggerKey, logger.NewConsole)
	register.Logger(FileLoggerKey, func(conf logger.FileConfig) *logger.File {
		return logger.NewFile(fs, conf)
	})
	register.Logger(EmailLoggerKey, logger.NewEmail)

	config.AddTypeHook(sinkStringHook)
	pluginconfig.AddHooks()
}

var dataSinkType = plugin.PtrType((*core.DataSink)(nil))

// sinkStringHook helps to decode string as core.DataSink plugin.
// Std stream sinks are set by name: `sink: stderr`, any other string is file path.
func sinkStringHook(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	if f.Kind() != reflect.String || t != dataSinkType {
		return data, nil
	}
	str := reflect.ValueOf(data).String()
	for _, key := range []string{stdoutSinkKey, stderrSinkKey} {
		if str == key {
			return map[string]interface{}{pluginconfig.PluginNameKey: key}, nil
		}
	}
	return map[string]interface{}{
		pluginconfig.PluginNameKey: fileSinkKey,
		"path":                     str,
	}, nil
}

// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package logger

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/yandex/logcast/core"
	"github.com/yandex/logcast/core/datasink"
)

type FileConfig struct {
	// Path of file to append messages to. If empty, logger accepts messages and drops them.
	Path string `config:"path"`
}

// NewFile returns logger, that appends every message on separate line to file.
// File is opened for every message, so logger holds no resources between calls.
func NewFile(fs afero.Fs, conf FileConfig) *File {
	f := &File{path: conf.Path}
	if conf.Path != "" {
		f.sink = datasink.NewFile(fs, datasink.FileConfig{Path: conf.Path, Append: true})
	}
	return f
}

type File struct {
	path string
	// nil if messages should be dropped.
	sink core.DataSink
}

var _ core.Logger = (*File)(nil)

func (f *File) Log(message string) (err error) {
	if f.sink == nil {
		return nil
	}
	wc, err := f.sink.OpenSink()
	if err != nil {
		return err
	}
	defer func() {
		closeErr := wc.Close()
		if err == nil {
			err = errors.Wrapf(closeErr, "file %q close", f.path)
		}
	}()
	_, err = io.WriteString(wc, message+"\n")
	return errors.Wrapf(err, "file %q write", f.path)
}

func (f *File) String() string { return "file" }

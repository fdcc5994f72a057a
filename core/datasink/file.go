// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package datasink

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/yandex/logcast/core"
)

type FileConfig struct {
	Path string `config:"path" validate:"required"`
	// Append opens file for append, instead of truncating it.
	Append bool `config:"append"`
}

func NewFile(fs afero.Fs, conf FileConfig) core.DataSink {
	return &fileSink{afero.Afero{Fs: fs}, conf}
}

type fileSink struct {
	fs   afero.Afero
	conf FileConfig
}

func (s *fileSink) OpenSink() (wc io.WriteCloser, err error) {
	if dir := filepath.Dir(s.conf.Path); dir != "." {
		err = s.fs.MkdirAll(dir, 0755)
		if err != nil {
			return nil, errors.Wrapf(err, "sink dir %q create failed", dir)
		}
	}
	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if s.conf.Append {
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	wc, err = s.fs.OpenFile(s.conf.Path, flag, 0644)
	return wc, errors.Wrapf(err, "sink file %q open failed", s.conf.Path)
}

// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package logger

import (
	"io"

	"github.com/pkg/errors"

	"github.com/yandex/logcast/core"
	"github.com/yandex/logcast/core/datasink"
)

type ConsoleConfig struct {
	// Sink is stdout, if not set.
	Sink core.DataSink `config:"sink"`
}

// NewConsole returns logger, that writes every message on separate line to sink.
// Sink is opened once, and closed on logger Close.
func NewConsole(conf ConsoleConfig) (*Console, error) {
	sink := conf.Sink
	if sink == nil {
		sink = datasink.NewStdout()
	}
	wc, err := sink.OpenSink()
	if err != nil {
		return nil, errors.WithMessage(err, "console sink open failed")
	}
	return &Console{wc}, nil
}

type Console struct {
	sink io.WriteCloser
}

var _ core.Logger = (*Console)(nil)

func (c *Console) Log(message string) error {
	_, err := io.WriteString(c.sink, message+"\n")
	return errors.WithStack(err)
}

func (c *Console) Close() error {
	return c.sink.Close()
}

func (c *Console) String() string { return "console" }

// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package logger

import (
	"go.uber.org/zap"

	"github.com/yandex/logcast/core"
)

type EmailConfig struct {
	Server string   `config:"server" validate:"omitempty,endpoint"`
	To     []string `config:"to" validate:"dive,email"`
}

// NewEmail returns logger, that accepts messages for e-mail delivery.
// TODO: deliver messages to conf.To through conf.Server over SMTP.
// Until then, messages are accepted and dropped.
func NewEmail(conf EmailConfig) *Email {
	return &Email{conf}
}

type Email struct {
	conf EmailConfig
}

var _ core.Logger = (*Email)(nil)

func (e *Email) Log(message string) error {
	if len(e.conf.To) > 0 {
		zap.L().Debug("E-mail delivery is not supported, message dropped",
			zap.String("server", e.conf.Server),
			zap.Strings("to", e.conf.To),
			zap.Int("length", len(message)),
		)
	}
	return nil
}

func (e *Email) String() string { return "email" }

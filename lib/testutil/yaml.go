// Copyright (c) 2017 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package testutil

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// ParseYAML parses yaml config data the same way, as cli does it.
func ParseYAML(t TestingT, data string) map[string]interface{} {
	t.Helper()
	settings, err := parseYAML(data)
	require.NoError(t, err)
	return settings
}

func parseYAML(data string) (map[string]interface{}, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	err := v.ReadConfig(strings.NewReader(data))
	if err != nil {
		return nil, err
	}
	return v.AllSettings(), nil
}

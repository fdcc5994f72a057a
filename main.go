// Copyright (c) 2017 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package main

import (
	"github.com/spf13/afero"

	"github.com/yandex/logcast/cli"
	"github.com/yandex/logcast/components/logger/import"
)

func init() {
	loggerimport.Import(afero.NewOsFs())
}

func main() {
	cli.Run()
}

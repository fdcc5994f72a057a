// Copyright (c) 2017 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package testutil

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/format"
)

func RunSuite(t *testing.T, description string) {
	format.UseStringerRepresentation = true
	ReplaceGlobalLogger()
	RegisterFailHandler(Fail)
	RunSpecs(t, description)
}

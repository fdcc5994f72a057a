// Copyright (c) 2016 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package plugin

import (
	"io"
	"reflect"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

var _ = Describe("new default config container", func() {
	DescribeTable("expectation fail",
		func(constructor interface{}, newDefaultConfigOptional ...interface{}) {
			newDefaultConfig := getNewDefaultConfig(newDefaultConfigOptional)
			defer recoverExpectationFail()
			newDefaultConfigContainer(reflect.TypeOf(constructor), newDefaultConfig)
		},
		Entry("invalid type",
			func(int) ptestPlugin { return nil }),
		Entry("invalid ptr type",
			func(*int) ptestPlugin { return nil }),
		Entry("default without config",
			func() ptestPlugin { return nil }, func() *ptestConfig { return nil }),
		Entry("invalid default config",
			func(ptestConfig) ptestPlugin { return nil }, func() *ptestConfig { return nil }),
		Entry("default config accepts args",
			func(*ptestConfig) ptestPlugin { return nil }, func(int) *ptestConfig { return nil }),
	)

	DescribeTable("expectation ok",
		func(constructor interface{}, newDefaultConfigOptional ...interface{}) {
			newDefaultConfig := getNewDefaultConfig(newDefaultConfigOptional)
			container := newDefaultConfigContainer(reflect.TypeOf(constructor), newDefaultConfig)
			conf, err := container.Get(ptestFillConf)
			Expect(err).NotTo(HaveOccurred())
			Expect(conf).To(HaveLen(1))
			Expect(reflect.Indirect(conf[0]).FieldByName("Value").String()).To(Equal(ptestFilledValue))
		},
		Entry("no default config",
			ptestNewConf),
		Entry("no default ptr config",
			ptestNewPtrConf),
		Entry("default config",
			ptestNewConf, ptestDefaultConf),
		Entry("default ptr config",
			ptestNewPtrConf, ptestNewDefaultPtrConf),
	)

	It("fill no config failed", func() {
		container := newDefaultConfigContainer(reflect.TypeOf(ptestNewErr), nil)
		_, err := container.Get(ptestFillConf)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("new constructor", func() {
	DescribeTable("expectation fail",
		func(constructor interface{}) {
			defer recoverExpectationFail()
			newImplConstructor(ptestType(), constructor)
		},
		Entry("not func", ptestImpl{}),
		Entry("too many args", func(_, _ ptestConfig) ptestPlugin { return nil }),
		Entry("no results", func() {}),
		Entry("not implements", func() io.Reader { return nil }),
		Entry("second result not error", func() (ptestPlugin, int) { return nil, 0 }),
	)

	DescribeTable("expectation ok",
		func(constructor interface{}) {
			Expect(newImplConstructor(ptestType(), constructor)).NotTo(BeNil())
		},
		Entry("plugin", ptestNew),
		Entry("impl", ptestNewImpl),
		Entry("more than plugin", ptestNewMoreThan),
		Entry("with error", ptestNewErr),
	)
})

var _ = Describe("registry", func() {
	It("register name collision panics", func() {
		r := NewRegistry()
		r.ptestRegister(ptestNewImpl)
		defer recoverExpectationFail()
		r.ptestRegister(ptestNewImpl)
	})

	It("register not interface panics", func() {
		r := NewRegistry()
		defer recoverExpectationFail()
		r.Register(reflect.TypeOf(ptestImpl{}), ptestPluginName, ptestNewImpl)
	})

	It("register empty name panics", func() {
		r := NewRegistry()
		defer recoverExpectationFail()
		r.Register(ptestType(), "", ptestNewImpl)
	})

	It("lookup", func() {
		r := NewRegistry()
		r.ptestRegister(ptestNewImpl)
		Expect(r.Lookup(ptestType())).To(BeTrue())
		Expect(r.Lookup(reflect.TypeOf(0))).To(BeFalse())
		Expect(r.Lookup(reflect.TypeOf(&ptestImpl{}))).To(BeFalse())
		Expect(r.Lookup(reflect.TypeOf((*io.Writer)(nil)).Elem())).To(BeFalse())
	})

	It("names in registration order", func() {
		r := NewRegistry()
		for _, name := range []string{"b", "c", "a"} {
			r.Register(ptestType(), name, ptestNewImpl)
		}
		Expect(r.Names(ptestType())).To(Equal([]string{"b", "c", "a"}))
		Expect(r.Names(PtrType((*io.Writer)(nil)))).To(BeEmpty())
	})

	It("names are copied", func() {
		r := NewRegistry()
		r.ptestRegister(ptestNewImpl)
		names := r.Names(ptestType())
		names[0] = "modified"
		Expect(r.Names(ptestType())).To(Equal([]string{ptestPluginName}))
	})

	It("types", func() {
		r := NewRegistry()
		Expect(r.Types()).To(BeEmpty())
		r.ptestRegister(ptestNewImpl)
		r.Register(PtrType((*ptestMoreThanPlugin)(nil)), ptestPluginName, ptestNewMoreThan)
		Expect(r.Types()).To(Equal([]reflect.Type{
			PtrType((*ptestMoreThanPlugin)(nil)),
			ptestType(),
		}))
	})
})

var _ = Describe("new", func() {
	var r *Registry
	testNewOk := func(fillConfOptional ...func(conf interface{}) error) (pluginVal string) {
		plugin, err := r.ptestNew(fillConfOptional...)
		Expect(err).NotTo(HaveOccurred())
		return ptestValue(plugin)
	}
	BeforeEach(func() { r = NewRegistry() })

	It("not registered type", func() {
		_, err := r.ptestNew()
		Expect(err).To(MatchError(ContainSubstring("no plugins for type")))
	})
	It("not registered name", func() {
		r.Register(ptestType(), "other", ptestNewImpl)
		_, err := r.ptestNew()
		Expect(err).To(MatchError(ContainSubstring("has been registered for name")))
	})
	It("no conf", func() {
		r.ptestRegister(ptestNewImpl)
		Expect(testNewOk()).To(Equal(ptestInitValue))
	})
	It("nil error", func() {
		r.ptestRegister(ptestNewErr)
		Expect(testNewOk()).To(Equal(ptestInitValue))
	})
	It("non-nil error", func() {
		r.ptestRegister(ptestNewErrFailing)
		plugin, err := r.ptestNew()
		Expect(err).To(HaveOccurred())
		Expect(plugin).To(BeNil())
		Expect(errors.Cause(err)).To(Equal(ptestCreateFailedErr))
	})
	It("no conf, fill conf error", func() {
		r.ptestRegister(ptestNewImpl)
		expectedErr := errors.New("fill conf err")
		_, err := r.ptestNew(func(_ interface{}) error { return expectedErr })
		Expect(err).To(Equal(expectedErr))
	})
	It("no default", func() {
		r.ptestRegister(ptestNewConf)
		Expect(testNewOk()).To(Equal(""))
	})
	It("default", func() {
		r.ptestRegister(ptestNewConf, ptestDefaultConf)
		Expect(testNewOk()).To(Equal(ptestDefaultValue))
	})
	It("fill conf default", func() {
		r.ptestRegister(ptestNewConf, ptestDefaultConf)
		Expect(testNewOk(ptestFillConf)).To(Equal(ptestFilledValue))
	})
	It("fill conf no default", func() {
		r.ptestRegister(ptestNewConf)
		Expect(testNewOk(ptestFillConf)).To(Equal(ptestFilledValue))
	})
	It("fill ptr conf no default", func() {
		r.ptestRegister(ptestNewPtrConf)
		Expect(testNewOk(ptestFillConf)).To(Equal(ptestFilledValue))
	})
	It("nil default, conf not nil", func() {
		r.ptestRegister(ptestNewPtrConf, func() *ptestConfig { return nil })
		Expect(testNewOk()).To(Equal(""))
	})
	It("fill nil default", func() {
		r.ptestRegister(ptestNewPtrConf, func() *ptestConfig { return nil })
		Expect(testNewOk(ptestFillConf)).To(Equal(ptestFilledValue))
	})
	It("default config is not shared", func() {
		shared := &ptestConfig{ptestDefaultValue}
		r.ptestRegister(ptestNewPtrConf, func() *ptestConfig { return &ptestConfig{shared.Value} })
		Expect(testNewOk(ptestFillConf)).To(Equal(ptestFilledValue))
		Expect(shared.Value).To(Equal(ptestDefaultValue))
		Expect(testNewOk()).To(Equal(ptestDefaultValue))
	})
	It("more than one fill conf panics", func() {
		r.ptestRegister(ptestNewPtrConf)
		defer recoverExpectationFail()
		_, _ = r.ptestNew(ptestFillConf, ptestFillConf)
	})
})

// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package broadcast

import (
	"io"
	"reflect"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yandex/logcast/core"
	"github.com/yandex/logcast/core/coretest"
	"github.com/yandex/logcast/core/plugin"
	"github.com/yandex/logcast/lib/errutil"
	"github.com/yandex/logcast/lib/testutil"
)

var _ = Describe("broadcaster", func() {
	var (
		logs *observer.ObservedLogs
		deps Deps
	)
	BeforeEach(func() {
		deps.Log, logs = testutil.NewObservedLogger()
		deps.Metrics = NewMetrics()
	})

	It("empty is no-op", func() {
		b := New(deps)
		Expect(b.Len()).To(BeZero())
		Expect(b.Log("m")).To(Succeed())
		Expect(deps.Metrics.Messages.Get()).To(BeEquivalentTo(1))
		Expect(deps.Metrics.Deliveries.Get()).To(BeZero())
	})

	It("zero deps", func() {
		l := &coretest.RecordLogger{}
		Expect(New(Deps{}, l).Log("m")).To(Succeed())
		Expect(l.Messages).To(Equal([]string{"m"}))
	})

	DescribeTable("every logger receives message exactly once",
		func(message string, loggersNum int) {
			var loggers []core.Logger
			var records []*coretest.RecordLogger
			for i := 0; i < loggersNum; i++ {
				l := &coretest.RecordLogger{}
				records = append(records, l)
				loggers = append(loggers, l)
			}
			Expect(New(deps, loggers...).Log(message)).To(Succeed())
			for _, l := range records {
				Expect(l.Messages).To(Equal([]string{message}))
			}
			Expect(deps.Metrics.Deliveries.Get()).To(BeEquivalentTo(loggersNum))
		},
		Entry("one", "Hello, World!", 1),
		Entry("three", "x", 3),
		Entry("multiline", "a\nb", 2),
	)

	It("delivers in order", func() {
		var order []int
		newLogger := func(i int) core.Logger {
			return coretest.LoggerFunc(func(string) error {
				order = append(order, i)
				return nil
			})
		}
		b := New(deps, newLogger(0), newLogger(1), newLogger(2))
		Expect(b.Log("m")).To(Succeed())
		Expect(order).To(Equal([]int{0, 1, 2}))
	})

	It("console and stub", func() {
		console := &coretest.RecordLogger{}
		stub := coretest.LoggerFunc(func(string) error { return nil })
		Expect(New(deps, console, stub).Log("x")).To(Succeed())
		Expect(console.Messages).To(Equal([]string{"x"}))
		Expect(logs.Len()).To(BeZero())
	})

	It("failing logger doesn't stop delivery", func() {
		failErr := errors.New("delivery failed")
		failing := coretest.NewFailingLogger(failErr)
		console := &coretest.RecordLogger{}
		err := New(deps, failing, console).Log("y")

		Expect(console.Messages).To(Equal([]string{"y"}))
		Expect(failing.Messages).To(Equal([]string{"y"}))
		Expect(err).To(HaveOccurred())
		Expect(errors.Cause(err)).To(Equal(failErr))
		Expect(deps.Metrics.Failures.Get()).To(BeEquivalentTo(1))
		Expect(deps.Metrics.Deliveries.Get()).To(BeEquivalentTo(1))

		reported := logs.FilterMessage("Message delivery failed").All()
		Expect(reported).To(HaveLen(1))
		Expect(reported[0].Level).To(Equal(zapcore.ErrorLevel))
	})

	It("all failures returned", func() {
		b := New(deps,
			coretest.NewFailingLogger(errors.New("first")),
			&coretest.RecordLogger{},
			coretest.NewFailingLogger(errors.New("second")),
		)
		err := b.Log("m")
		errs := errutil.Errors(err)
		Expect(errs).To(HaveLen(2))
		Expect(errs[0]).To(MatchError(ContainSubstring("logger #0")))
		Expect(errs[1]).To(MatchError(ContainSubstring("logger #2")))
		Expect(errs[1]).To(MatchError(ContainSubstring("second")))
	})

	It("panicking logger recovered", func() {
		console := &coretest.RecordLogger{}
		err := New(deps, coretest.PanicLogger{Value: "boom"}, console).Log("z")
		Expect(err).To(MatchError(ContainSubstring("panic: boom")))
		Expect(console.Messages).To(Equal([]string{"z"}))
	})

	It("loggers copied", func() {
		l := &coretest.RecordLogger{}
		loggers := []core.Logger{l}
		b := New(deps, loggers...)
		loggers[0] = coretest.PanicLogger{}
		got := b.Loggers()
		Expect(got).To(HaveLen(1))
		got[0] = coretest.PanicLogger{}
		Expect(b.Log("m")).To(Succeed())
		Expect(l.Messages).To(HaveLen(1))
	})

	It("close", func() {
		closed := &closeLogger{}
		failed := &closeLogger{err: errors.New("close failed")}
		b := New(deps, closed, &coretest.RecordLogger{}, failed)
		err := b.Close()
		Expect(err).To(MatchError(ContainSubstring("close failed")))
		Expect(closed.closed).To(BeTrue())
		Expect(failed.closed).To(BeTrue())
	})
})

var _ = Describe("discover", func() {
	var (
		r    *plugin.Registry
		logs *observer.ObservedLogs
		deps Deps
	)
	register := func(name string, constructor interface{}) {
		r.Register(plugin.PtrType((*core.Logger)(nil)), name, constructor)
	}
	BeforeEach(func() {
		r = plugin.NewRegistry()
		deps.Log, logs = testutil.NewObservedLogger()
	})

	It("nothing registered", func() {
		b := Discover(deps, r)
		Expect(b.Len()).To(BeZero())
		Expect(b.Log("m")).To(Succeed())
	})

	It("registered loggers in registration order", func() {
		register("console", func() *coretest.RecordLogger { return &coretest.RecordLogger{} })
		register("file", func() core.Logger { return coretest.LoggerFunc(func(string) error { return nil }) })
		b := Discover(deps, r)
		Expect(b.Len()).To(Equal(2))
		loggers := b.Loggers()
		Expect(loggers[0]).To(BeAssignableToTypeOf(&coretest.RecordLogger{}))
		Expect(loggers[1]).To(BeAssignableToTypeOf(coretest.LoggerFunc(nil)))

		Expect(b.Log("Hello, World!")).To(Succeed())
		Expect(loggers[0].(*coretest.RecordLogger).Messages).To(Equal([]string{"Hello, World!"}))
	})

	It("idempotent", func() {
		register("a", func() *coretest.RecordLogger { return &coretest.RecordLogger{} })
		register("b", func() *closeLogger { return &closeLogger{} })
		first := Discover(deps, r).Loggers()
		second := Discover(deps, r).Loggers()
		Expect(second).To(HaveLen(len(first)))
		for i := range first {
			Expect(reflect.TypeOf(second[i])).To(Equal(reflect.TypeOf(first[i])))
		}
	})

	It("excluded reported", func() {
		register("failing", func() (core.Logger, error) { return nil, errors.New("no smtp server") })
		register("console", func() *coretest.RecordLogger { return &coretest.RecordLogger{} })
		b := Discover(deps, r)
		Expect(b.Len()).To(Equal(1))
		excluded := logs.FilterMessage("Logger excluded from broadcast").All()
		Expect(excluded).To(HaveLen(1))
		Expect(excluded[0].ContextMap()["error"]).To(ContainSubstring("no smtp server"))
	})

	It("names", func() {
		register("console", func() *coretest.RecordLogger { return &coretest.RecordLogger{} })
		register("closer", func() *closeLogger { return &closeLogger{} })
		b := Discover(deps, r, "closer")
		Expect(b.Len()).To(Equal(1))
		Expect(b.Loggers()[0]).To(BeAssignableToTypeOf(&closeLogger{}))
	})

	It("not logger plugins skipped", func() {
		d := discovererFunc(func(reflect.Type, ...string) ([]interface{}, error) {
			return []interface{}{"not logger", &coretest.RecordLogger{}}, nil
		})
		b := Discover(deps, d)
		Expect(b.Len()).To(Equal(1))
		Expect(logs.FilterMessage("Discovered plugin is not logger").Len()).To(Equal(1))
	})
})

type discovererFunc func(pluginType reflect.Type, names ...string) ([]interface{}, error)

func (f discovererFunc) Discover(pluginType reflect.Type, names ...string) ([]interface{}, error) {
	return f(pluginType, names...)
}

type closeLogger struct {
	coretest.RecordLogger
	closed bool
	err    error
}

var _ io.Closer = &closeLogger{}

func (l *closeLogger) Close() error {
	l.closed = true
	return l.err
}

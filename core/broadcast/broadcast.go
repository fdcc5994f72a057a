// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

// Package broadcast dispatches messages to every logger of discovered or passed set.
package broadcast

import (
	"fmt"
	"io"
	"reflect"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yandex/logcast/core"
	"github.com/yandex/logcast/core/plugin"
	"github.com/yandex/logcast/lib/errutil"
	"github.com/yandex/logcast/lib/monitoring"
)

type Deps struct {
	Log     *zap.Logger
	Metrics Metrics
}

type Metrics struct {
	Messages   *monitoring.Counter
	Deliveries *monitoring.Counter
	Failures   *monitoring.Counter
}

// NewMetrics returns metrics, that are not published in expvar.
func NewMetrics() Metrics {
	return Metrics{
		Messages:   &monitoring.Counter{},
		Deliveries: &monitoring.Counter{},
		Failures:   &monitoring.Counter{},
	}
}

// NewPublishedMetrics returns metrics published in expvar with passed name prefix.
// Panics if metrics with such prefix has been already published.
func NewPublishedMetrics(prefix string) Metrics {
	return Metrics{
		Messages:   monitoring.NewCounter(prefix + "_Messages"),
		Deliveries: monitoring.NewCounter(prefix + "_Deliveries"),
		Failures:   monitoring.NewCounter(prefix + "_Failures"),
	}
}

// Discoverer creates every plugin of type. Implemented by *plugin.Registry.
type Discoverer interface {
	Discover(pluginType reflect.Type, names ...string) (plugins []interface{}, err error)
}

var _ Discoverer = (*plugin.Registry)(nil)

// Broadcaster delivers every logged message to all of its loggers, in order.
// Loggers set is fixed on construction.
// Broadcaster is not goroutine safe, as loggers it holds are not required to be.
type Broadcaster struct {
	log     *zap.Logger
	metrics Metrics
	loggers []core.Logger
}

// New creates broadcaster for passed loggers. Messages are delivered in passed order.
func New(deps Deps, loggers ...core.Logger) *Broadcaster {
	deps = withDefaults(deps)
	return &Broadcaster{
		log:     deps.Log,
		metrics: deps.Metrics,
		loggers: append([]core.Logger(nil), loggers...),
	}
}

// Discover creates broadcaster for every core.Logger plugin, that d can create.
// If names passed, only loggers with such names are discovered.
// Loggers that can't be created are excluded and reported to deps.Log.
func Discover(deps Deps, d Discoverer, names ...string) *Broadcaster {
	b := New(deps)
	plugins, err := d.Discover(plugin.PtrType((*core.Logger)(nil)), names...)
	for _, excluded := range errutil.Errors(err) {
		b.log.Warn("Logger excluded from broadcast", zap.Error(excluded))
	}
	for _, p := range plugins {
		l, ok := p.(core.Logger)
		if !ok {
			b.log.Warn("Discovered plugin is not logger", zap.String("type", fmt.Sprintf("%T", p)))
			continue
		}
		b.loggers = append(b.loggers, l)
	}
	b.log.Debug("Loggers discovered", zap.Int("count", len(b.loggers)), zap.Strings("names", names))
	return b
}

func withDefaults(deps Deps) Deps {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	def := NewMetrics()
	if deps.Metrics.Messages == nil {
		deps.Metrics.Messages = def.Messages
	}
	if deps.Metrics.Deliveries == nil {
		deps.Metrics.Deliveries = def.Deliveries
	}
	if deps.Metrics.Failures == nil {
		deps.Metrics.Failures = def.Failures
	}
	return deps
}

// Log delivers message to every logger, in order.
// Logger failure doesn't stop delivery: failure, or panic, is reported to
// log, and delivery continues with next logger. Returned error joins all failures.
// Log on empty broadcaster does nothing.
func (b *Broadcaster) Log(message string) (err error) {
	b.metrics.Messages.Inc()
	for i, l := range b.loggers {
		logErr := deliver(l, message)
		if logErr == nil {
			b.metrics.Deliveries.Inc()
			continue
		}
		b.metrics.Failures.Inc()
		logErr = errors.WithMessagef(logErr, "logger #%d %s", i, loggerName(l))
		b.log.Error("Message delivery failed", zap.Error(logErr))
		err = errutil.Join(err, logErr)
	}
	return
}

func deliver(l core.Logger, message string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errutil.FromPanic(r)
		}
	}()
	return l.Log(message)
}

// Close closes loggers that implement io.Closer. All loggers are closed, even if some fail.
func (b *Broadcaster) Close() (err error) {
	for i, l := range b.loggers {
		closer, ok := l.(io.Closer)
		if !ok {
			continue
		}
		closeErr := closer.Close()
		if closeErr != nil {
			err = errutil.Join(err, errors.WithMessagef(closeErr, "logger #%d %s close", i, loggerName(l)))
		}
	}
	return
}

// Len returns number of loggers.
func (b *Broadcaster) Len() int {
	return len(b.loggers)
}

// Loggers returns copy of loggers, in delivery order.
func (b *Broadcaster) Loggers() []core.Logger {
	return append([]core.Logger(nil), b.loggers...)
}

func loggerName(l core.Logger) string {
	if s, ok := l.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", l)
}

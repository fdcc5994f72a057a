// Copyright (c) 2016 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package plugin

import (
	"fmt"
	"reflect"
)

// Register registers plugin constructor and optional default config factory,
// for given plugin interface type and plugin name.
// See package doc for type expectations details.
// Register designed to be called in package init func, so it panics if type
// expectations were failed. Register is thread unsafe.
func Register(
	pluginType reflect.Type,
	name string,
	constructor interface{},
	newDefaultConfigOptional ...interface{},
) {
	defaultRegistry.Register(pluginType, name, constructor, newDefaultConfigOptional...)
}

// Lookup returns true if any plugin constructor has been registered for given
// type.
func Lookup(pluginType reflect.Type) bool {
	return defaultRegistry.Lookup(pluginType)
}

// Names returns names of plugins registered for given type, in registration order.
func Names(pluginType reflect.Type) []string {
	return defaultRegistry.Names(pluginType)
}

// Types returns plugin types that have at least one registered plugin.
func Types() []reflect.Type {
	return defaultRegistry.Types()
}

// New creates plugin by registered plugin constructor. Returns error if creation
// failed or no plugin were registered for given type and name.
// Passed fillConf called on created config before calling plugin constructor.
// New is thread safe, if there is no concurrent Register calls.
func New(pluginType reflect.Type, name string, fillConfOptional ...func(conf interface{}) error) (plugin interface{}, err error) {
	return defaultRegistry.New(pluginType, name, fillConfOptional...)
}

// Discover creates every plugin registered for pluginType. See Registry.Discover for details.
func Discover(pluginType reflect.Type, names ...string) (plugins []interface{}, err error) {
	return defaultRegistry.Discover(pluginType, names...)
}

// PtrType is helper to extract plugin types.
// Example: plugin.PtrType((*PluginInterface)(nil)) instead of
// reflect.TypeOf((*PluginInterface)(nil)).Elem()
func PtrType(ptr interface{}) reflect.Type {
	t := reflect.TypeOf(ptr)
	if t.Kind() != reflect.Ptr {
		panic("passed value is not pointer")
	}
	return t.Elem()
}

var defaultRegistry = NewRegistry()

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func expect(b bool, msg string, args ...interface{}) {
	if !b {
		panic(fmt.Sprintf("expectation failed: "+msg, args...))
	}
}

// DefaultRegistry returns registry used by package level functions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Copyright (c) 2017 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package plugin

import (
	"reflect"
	"sort"

	"github.com/pkg/errors"

	"github.com/yandex/logcast/lib/errutil"
)

func NewRegistry() *Registry {
	return &Registry{make(map[reflect.Type]*nameRegistry)}
}

type Registry struct {
	typeToNameReg map[reflect.Type]*nameRegistry
}

type nameRegistry struct {
	// names in registration order. Discovery order depends on it.
	names   []string
	entries map[string]nameRegistryEntry
}

func newNameRegistry() *nameRegistry {
	return &nameRegistry{entries: make(map[string]nameRegistryEntry)}
}

type nameRegistryEntry struct {
	constructor   *implConstructor
	defaultConfig defaultConfigContainer
}

// Register registers plugin constructor and optional default config factory,
// for given plugin interface type and plugin name.
// See package doc for type expectations details.
// Register designed to be called in package init func, so it panics if something go wrong.
// Panics if type expectations are violated.
// Panics if some constructor have been already registered for this (pluginType, name) pair.
// Register is thread unsafe.
//
// If constructor receive config argument, default config factory can be
// registered. If no default config factory has been registered, than
// constructor will receive zero config (zero struct or pointer to zero struct).
// Constructor will never receive nil config.
func (r *Registry) Register(
	pluginType reflect.Type,
	name string,
	constructor interface{},
	newDefaultConfigOptional ...interface{}, // default config factory, or nothing.
) {
	expect(pluginType.Kind() == reflect.Interface, "plugin type should be interface, but have: %s", pluginType)
	expect(name != "", "empty name")
	nameReg := r.typeToNameReg[pluginType]
	if nameReg == nil {
		nameReg = newNameRegistry()
		r.typeToNameReg[pluginType] = nameReg
	}
	_, ok := nameReg.entries[name]
	expect(!ok, "plugin %s with name %q had been already registered", pluginType, name)
	newDefaultConfig := getNewDefaultConfig(newDefaultConfigOptional)
	nameReg.entries[name] = nameRegistryEntry{
		constructor:   newImplConstructor(pluginType, constructor),
		defaultConfig: newDefaultConfigContainer(reflect.TypeOf(constructor), newDefaultConfig),
	}
	nameReg.names = append(nameReg.names, name)
}

// Lookup returns true if any plugin constructor has been registered for given
// type.
func (r *Registry) Lookup(pluginType reflect.Type) bool {
	_, ok := r.typeToNameReg[pluginType]
	return ok
}

// Names returns names of plugins registered for given type, in registration order.
func (r *Registry) Names(pluginType reflect.Type) []string {
	nameReg, ok := r.typeToNameReg[pluginType]
	if !ok {
		return nil
	}
	return append([]string(nil), nameReg.names...)
}

// Types returns plugin types that have at least one registered plugin, sorted by type string.
func (r *Registry) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(r.typeToNameReg))
	for t := range r.typeToNameReg {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}

// New creates plugin using registered plugin constructor. Returns error if creation
// failed or no plugin were registered for given type and name.
// Passed fillConf called on created config before calling plugin constructor.
// fillConf argument is always valid struct pointer, even if plugin constructor
// receives no config: fillConf is called on empty struct pointer in such case.
// fillConf error fails plugin creation.
// New is thread safe, if there is no concurrent Register calls.
func (r *Registry) New(pluginType reflect.Type, name string, fillConfOptional ...func(conf interface{}) error) (plugin interface{}, err error) {
	expect(pluginType.Kind() == reflect.Interface, "plugin type should be interface, but have: %s", pluginType)
	expect(name != "", "empty name")
	fillConf := getFillConf(fillConfOptional)
	registered, err := r.get(pluginType, name)
	if err != nil {
		return
	}
	conf, err := registered.defaultConfig.Get(fillConf)
	if err != nil {
		return nil, err
	}
	return registered.constructor.NewPlugin(conf)
}

// Discover creates plugin instance for every constructor registered for pluginType,
// using default configs. Plugins are returned in registration order.
// If names passed, only plugins with such names are created, in passed order.
// Every name is created once: repeated names are excluded.
//
// Plugin that can't be created is excluded from result: returned plugins are
// always usable, and returned error describes every excluded plugin. So, error
// is not fatal: caller decides, should it report it, or fail.
// Every Discover call creates new plugin instances.
func (r *Registry) Discover(pluginType reflect.Type, names ...string) (plugins []interface{}, err error) {
	expect(pluginType.Kind() == reflect.Interface, "plugin type should be interface, but have: %s", pluginType)
	if len(names) == 0 {
		names = r.Names(pluginType)
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			err = errutil.Join(err, errors.Errorf("empty %s plugin name", pluginType))
			continue
		}
		if seen[name] {
			err = errutil.Join(err, errors.Errorf("%s plugin %q duplicated", pluginType, name))
			continue
		}
		seen[name] = true
		plugin, newErr := r.New(pluginType, name)
		if newErr == nil && isNil(plugin) {
			newErr = errors.New("constructor returned nil")
		}
		if newErr != nil {
			err = errutil.Join(err, errors.WithMessagef(newErr, "%s plugin %q excluded", pluginType, name))
			continue
		}
		plugins = append(plugins, plugin)
	}
	return
}

func (r *Registry) get(pluginType reflect.Type, name string) (entry nameRegistryEntry, err error) {
	nameReg, ok := r.typeToNameReg[pluginType]
	if !ok {
		err = errors.Errorf("no plugins for type %s has been registered", pluginType)
		return
	}
	entry, ok = nameReg.entries[name]
	if !ok {
		err = errors.Errorf("no plugins of type %s has been registered for name %s", pluginType, name)
	}
	return
}

func isNil(plugin interface{}) bool {
	if plugin == nil {
		return true
	}
	v := reflect.ValueOf(plugin)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func getFillConf(fillConfOptional []func(conf interface{}) error) func(interface{}) error {
	expect(len(fillConfOptional) <= 1, "only fill config parameter could be passed")
	if len(fillConfOptional) == 0 {
		return nil
	}
	return fillConfOptional[0]
}

func getNewDefaultConfig(newDefaultConfigOptional []interface{}) interface{} {
	expect(len(newDefaultConfigOptional) <= 1, "too many arguments passed")
	if len(newDefaultConfigOptional) == 0 {
		return nil
	}
	return newDefaultConfigOptional[0]
}

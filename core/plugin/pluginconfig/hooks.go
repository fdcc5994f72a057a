// Copyright (c) 2017 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

// Package pluginconfig contains integration plugin with config packages.
// Doing such integration in different package allows to config and plugin packages
// not depend on each other, and set hooks when their are really needed.
//
// After AddHooks call, config field of registered plugin type is decoded from
// map, that contains plugin name by PluginNameKey, and plugin config fields:
//
//	loggers:
//	  - type: file
//	    path: ./messages.log
package pluginconfig

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yandex/logcast/core/config"
	"github.com/yandex/logcast/core/plugin"
)

const PluginNameKey = "type"

var addHooksOnce sync.Once

// AddHooks adds plugin hooks to config decoding. Hooks are added only once,
// so AddHooks can be called from every package Import func.
func AddHooks() {
	addHooksOnce.Do(func() {
		config.AddTypeHook(Hook)
	})
}

// Hook creates plugin from config data, if t is registered plugin type.
func Hook(f reflect.Type, t reflect.Type, data interface{}) (p interface{}, err error) {
	if !plugin.Lookup(t) {
		return data, nil
	}
	name, fillConf, err := parseConf(t, data)
	if err != nil {
		return
	}
	return plugin.New(t, name, fillConf)
}

func parseConf(t reflect.Type, data interface{}) (name string, fillConf func(conf interface{}) error, err error) {
	zap.L().Debug("Parsing plugin config",
		zap.Stringer("plugin", t),
		zap.Reflect("conf", data),
	)
	confData, err := toStringKeyMap(data)
	if err != nil {
		return
	}
	var names []string
	for key, val := range confData {
		if PluginNameKey != strings.ToLower(key) {
			continue
		}
		strVal, ok := val.(string)
		if !ok {
			err = errors.Errorf("%s has non-string value %v", PluginNameKey, val)
			return
		}
		names = append(names, strVal)
		delete(confData, key)
	}
	switch len(names) {
	case 0:
		err = errors.Errorf("plugin %s expected", PluginNameKey)
		return
	case 1:
		name = names[0]
	default:
		err = errors.Errorf("too many %s keys", PluginNameKey)
		return
	}
	if name == "" {
		err = errors.Errorf("empty plugin %s", PluginNameKey)
		return
	}
	fillConf = func(conf interface{}) error {
		err := config.DecodeAndValidate(confData, conf)
		if err != nil {
			err = fmt.Errorf("%s %s plugin\n"+
				"%s from %v %s",
				t, name, reflect.TypeOf(conf).Elem(), confData, err)
		}
		return err
	}
	return
}

func toStringKeyMap(data interface{}) (out map[string]interface{}, err error) {
	switch data := data.(type) {
	case map[string]interface{}:
		// Copy, so deleting name key doesn't modify passed data.
		out = make(map[string]interface{}, len(data))
		for key, val := range data {
			out[key] = val
		}
		return
	case map[interface{}]interface{}:
		out = make(map[string]interface{}, len(data))
		for key, val := range data {
			strKey, ok := key.(string)
			if !ok {
				return nil, errors.Errorf("unexpected key type %T: %v", key, key)
			}
			out[strKey] = val
		}
		return
	}
	return nil, errors.Errorf("unexpected config type %T: should be map[string or interface{}]interface{}", data)
}

// Copyright (c) 2017 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package plugin

import (
	"reflect"
)

// implConstructor creates pluginType implementations, using registered
// constructor func. implConstructor expects, that caller pass correct maybeConf
// value: nothing, if constructor accepts no config, or one config value otherwise.
type implConstructor struct {
	pluginType reflect.Type
	// newPlugin type is func([config <configType>]) (<pluginImpl> [, error]),
	// where configType kind is struct or struct pointer.
	newPlugin reflect.Value
}

func newImplConstructor(pluginType reflect.Type, constructor interface{}) *implConstructor {
	constructorType := reflect.TypeOf(constructor)
	expect(constructorType != nil && constructorType.Kind() == reflect.Func, "plugin constructor should be func, but have: %T", constructor)
	expect(constructorType.NumIn() <= 1, "plugin constructor should accept config or nothing")
	expect(1 <= constructorType.NumOut() && constructorType.NumOut() <= 2,
		"plugin constructor should return plugin implementation, and optionally error")
	implType := constructorType.Out(0)
	expect(implType.Implements(pluginType), "plugin constructor result %s should implement %s", implType, pluginType)
	if constructorType.NumOut() == 2 {
		expect(constructorType.Out(1) == errorType, "plugin constructor should have no second return value, or it should be error")
	}
	return &implConstructor{pluginType, reflect.ValueOf(constructor)}
}

func (c *implConstructor) NewPlugin(maybeConf []reflect.Value) (plugin interface{}, err error) {
	out := c.newPlugin.Call(maybeConf)
	if len(out) > 1 {
		err, _ = out[1].Interface().(error)
		if err != nil {
			return nil, err
		}
	}
	return out[0].Interface(), nil
}

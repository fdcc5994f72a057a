// Copyright (c) 2017 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package plugin

import (
	"reflect"
)

// defaultConfigContainer contains default config creation logic.
// Zero value is valid and means that no config is needed.
type defaultConfigContainer struct {
	// !IsValid() if constructor accepts no arguments.
	// Otherwise type is func() <configType>.
	newValue reflect.Value
}

func newDefaultConfigContainer(constructorType reflect.Type, newDefaultConfig interface{}) defaultConfigContainer {
	if constructorType.NumIn() == 0 {
		expect(newDefaultConfig == nil, "constructor accept no config, but newDefaultConfig passed")
		return defaultConfigContainer{}
	}
	configType := constructorType.In(0)
	expect(configType.Kind() == reflect.Struct ||
		configType.Kind() == reflect.Ptr && configType.Elem().Kind() == reflect.Struct,
		"unexpected config kind: %s; should be struct or struct pointer", configType)
	newDefaultConfigType := reflect.FuncOf(nil, []reflect.Type{configType}, false)
	if newDefaultConfig == nil {
		return defaultConfigContainer{reflect.MakeFunc(newDefaultConfigType,
			func(_ []reflect.Value) []reflect.Value {
				return []reflect.Value{reflect.Zero(configType)}
			})}
	}
	value := reflect.ValueOf(newDefaultConfig)
	expect(value.Type() == newDefaultConfigType,
		"newDefaultConfig should be func that accepts nothing, and returns constructor argument, but have type %T", newDefaultConfig)
	return defaultConfigContainer{value}
}

// Get returns arguments for constructor call: nothing, if no config required,
// or filled config otherwise.
func (e defaultConfigContainer) Get(fillConf func(fillAddr interface{}) error) (maybeConf []reflect.Value, err error) {
	var fillAddr interface{}
	if e.configRequired() {
		maybeConf, fillAddr = e.new()
	} else {
		fillAddr = &struct{}{} // No fields to fill.
	}
	if fillConf != nil {
		err = fillConf(fillAddr)
		if err != nil {
			return nil, err
		}
	}
	return
}

func (e defaultConfigContainer) new() (maybeConf []reflect.Value, fillAddr interface{}) {
	conf := e.newValue.Call(nil)[0]
	switch conf.Kind() {
	case reflect.Struct:
		// Config can be filled only by pointer. Copy into addressable value.
		addressable := reflect.New(conf.Type()).Elem()
		addressable.Set(conf)
		conf = addressable
		fillAddr = conf.Addr().Interface()
	case reflect.Ptr:
		if conf.IsNil() {
			// Can't fill nil config. Init with zero.
			conf = reflect.New(conf.Type().Elem())
		}
		fillAddr = conf.Interface()
	default:
		panic("unexpected type " + conf.String())
	}
	return []reflect.Value{conf}, fillAddr
}

func (e defaultConfigContainer) configRequired() bool {
	return e.newValue.IsValid()
}

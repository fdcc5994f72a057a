// Copyright (c) 2017 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

// Package plugin provides registry of plugin constructors and discovery of
// registered plugins. Plugin is some interface implementation, registered by
// name. Registry is reflect based: it doesn't require code generation, and
// any interface type can be used as plugin type without registry changes.
//
// There are two ways to get plugins from registry.
// New creates one plugin by name, and accepts optional hook that fills plugin
// config. That allows to decode structured text (json/yaml/etc) into plugin
// config, see pluginconfig package.
// Discover creates every plugin registered for some interface type, in
// registration order, with default configs.
//
// Type expectations.
// Here and below we mean by <someTypeName> some type expectations.
// [some type signature part] means that this part of type signature is optional.
//
// Plugin type, let's label it as <plugin>, should be interface.
// Registered constructor should have type func([config <configType>]) (<pluginImpl>[, error]).
// <pluginImpl> should be assignable to <plugin>.
// <configType> type should be struct or struct pointer.
// Default config factory, if passed, should have type func() <configType>.
package plugin

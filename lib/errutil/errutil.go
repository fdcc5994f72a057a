// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package errutil

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type StackTracer interface {
	StackTrace() errors.StackTrace
}

// Join returns err1 or err2, if other is nil, or multierror containing both otherwise.
// Joining to multierror appends to it, so errors are not nested.
func Join(err1, err2 error) error {
	switch {
	case err1 == nil:
		return err2
	case err2 == nil:
		return err1
	default:
		return multierror.Append(err1, err2)
	}
}

// Errors returns errors joined into err, or err itself, if it is not multierror.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	if merr, ok := err.(*multierror.Error); ok {
		return merr.WrappedErrors()
	}
	return []error{err}
}

// FromPanic converts recovered panic value into error.
func FromPanic(r interface{}) error {
	if err, ok := r.(error); ok {
		return errors.WithMessage(err, "panic")
	}
	return errors.Errorf("panic: %v", r)
}

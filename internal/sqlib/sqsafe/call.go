// Copyright (c) 2016 - 2020 Sqreen. All Rights Reserved.
// Please refer to our terms for more information:
// https://www.sqreen.io/terms.html

package sqsafe

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sqreen/go-sqllog/internal/sqlib/sqerrors"
)

// PanicError is an error type wrapping a recovered panic value that happened
// during a named operation.
type PanicError struct {
	// The name of the operation given to `Call()`.
	Op string
	// The recovered panic value while executing the operation.
	Err error
}

func NewPanicError(op string, err error) *PanicError {
	return &PanicError{
		Op:  op,
		Err: errors.WithStack(err),
	}
}

func (e *PanicError) Unwrap() error { return e.Err }
func (e *PanicError) Cause() error { return e.Err }

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic while executing %s: %v", e.Op, e.Err)
}

// Call calls function `f` and recovers from any panic occurring while it
// executes, returning it in a `PanicError` object type named after `op`.
func Call(op string, f func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			// Note that panic(nil) matches this case and cannot be really tested for.
			return
		}

		switch actual := r.(type) {
		case error:
			err = actual
		case string:
			err = sqerrors.New(actual)
		default:
			err = sqerrors.New(fmt.Sprint(r))
		}

		err = NewPanicError(op, err)
	}()
	return f()
}

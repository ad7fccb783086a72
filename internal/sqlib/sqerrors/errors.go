// Copyright (c) 2016 - 2020 Sqreen. All Rights Reserved.
// Please refer to our terms for more information:
// https://www.sqreen.io/terms.html

package sqerrors

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/xerrors"
)

type Causer interface {
	Cause() error
}

type StackTracer interface {
	StackTrace() errors.StackTrace
}

type Timestamper interface {
	Timestamp() time.Time
}

type withTimestamp struct {
	error
	timestamp time.Time
}

// WithTimestamp annotates the given error `err` with a timestamp. The returned
// error value implements interface Timestamper.
func WithTimestamp(err error) error {
	return withTimestamp{
		error:     err,
		timestamp: time.Now(),
	}
}

func (e withTimestamp) Timestamp() time.Time { return e.timestamp }
func (e withTimestamp) Unwrap() error { return e.error }
func (e withTimestamp) Cause() error { return e.error }

func (e withTimestamp) Format(f fmt.State, c rune) {
	if formatter, ok := e.error.(fmt.Formatter); ok {
		formatter.Format(f, c)
	} else {
		_, _ = fmt.Fprintf(f, "%v", e.error)
	}
}

type KeyType interface{}

type Keyer interface {
	Key() KeyType
}

type withKey struct {
	error
	key KeyType
}

// WithKey associates the given key with the error. The option name an error is
// about is the typical key, so that callers can tell which field failed
// without parsing messages.
func WithKey(err error, key KeyType) error {
	return withKey{
		error: err,
		key:   key,
	}
}

func (e withKey) Key() KeyType { return e.key }
func (e withKey) Unwrap() error { return e.error }
func (e withKey) Cause() error { return e.error }
func (e withKey) Format(f fmt.State, c rune) {
	if formatter, ok := e.error.(fmt.Formatter); ok {
		formatter.Format(f, c)
	} else {
		_, _ = fmt.Fprintf(f, "%v", e.error)
	}
}

// New returns a new error annotated with a timestamp, a message and a stack
// trace.
func New(message string) error {
	return WithTimestamp(errors.New(message))
}

// Errorf returns a new errors whose message is formatted by `fmt.Sprintf`. The
// returned error is annotated with a timestamp, a message and a stack trace.
func Errorf(format string, args ...interface{}) error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap annotates the given error `err` with a timestamp, a message and a stack
// trace.
func Wrap(err error, message string) error {
	return WithTimestamp(errors.Wrap(err, message))
}

// Wrapf annotates the given error `err` with a timestamp, a message and a stack
// trace. The message is formatted by `fmt.Sprintf`.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// StackTrace returns the deepest StackTrace attached to any of the errors in
// the chain of causes.
func StackTrace(err error) errors.StackTrace {
	var topStackInfo errors.StackTrace
	for err != nil {
		if stackErr, ok := err.(StackTracer); ok {
			topStackInfo = stackErr.StackTrace()
		}
		err = next(err)
	}
	return topStackInfo
}

// Timestamp returns the error timestamp created with the function
// `WithTimestamp()` and the `ok` return value set to true. Otherwise, the
// default time's zero value is returned and `ok` is false.
func Timestamp(err error) (t time.Time, ok bool) {
	for err != nil {
		if actual, is := err.(Timestamper); is {
			return actual.Timestamp(), true
		}
		err = next(err)
	}
	return time.Time{}, false
}

// Key returns the deepest key attached to the error if any.
func Key(err error) (k KeyType, exists bool) {
	for err != nil {
		if keyer, ok := err.(Keyer); ok {
			k = keyer.Key()
			exists = true
		}
		err = next(err)
	}
	return k, exists
}

func next(err error) error {
	switch actual := err.(type) {
	case Causer:
		return actual.Cause()
	case xerrors.Wrapper:
		return actual.Unwrap()
	default:
		return nil
	}
}

// ErrorCollection gathers the errors of a sequence of independent steps that
// must all be attempted, such as applying every field of a configuration.
type ErrorCollection []error

func (c ErrorCollection) Error() string {
	var s strings.Builder
	s.WriteString("multiple errors occurred:")
	for i, e := range c {
		fmt.Fprintf(&s, " (error %d) %s;", i+1, e.Error())
	}
	// Return the build string without the trailing `;`
	return s.String()[:s.Len()-1]
}

func (c *ErrorCollection) Add(e error) {
	*c = append(*c, e)
}

// ToError returns nil when the collection is empty, the single error when it
// holds only one, and the collection itself otherwise.
func (c ErrorCollection) ToError() error {
	switch len(c) {
	case 0:
		return nil
	case 1:
		return c[0]
	default:
		return c
	}
}

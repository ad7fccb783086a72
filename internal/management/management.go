// Copyright (c) 2016 - 2020 Sqreen. All Rights Reserved.
// Please refer to our terms for more information:
// https://www.sqreen.io/terms.html

// Package management exposes the filtering policy as a set of named
// attributes that can be read and written at run time, without restarting the
// application.
package management

import (
	"regexp"
	"strconv"

	"github.com/sqreen/go-sqllog/internal/logoptions"
	"github.com/sqreen/go-sqllog/internal/options"
	"github.com/sqreen/go-sqllog/internal/plog"
	"github.com/sqreen/go-sqllog/internal/sqlib/sqerrors"
	"github.com/sqreen/go-sqllog/internal/sqlib/sqsafe"
)

// Error messages.
const (
	ErrorMessage_UnknownAttribute  = "unknown attribute"
	ErrorMessage_ReadOnlyAttribute = "read-only attribute"
	ErrorMessage_UnknownOperation  = "unknown operation"
)

// OperationReset sets every option back to its default.
const OperationReset = "reset"

type Adapter struct {
	options *logoptions.Options
	logger  plog.InfoLevelLogger
	getters map[string]func() string
	setters map[string]func(string) error
}

// Attribute describes a management attribute.
type Attribute struct {
	Name     string
	ReadOnly bool
}

func NewAdapter(opts *logoptions.Options, logger plog.InfoLevelLogger) *Adapter {
	a := &Adapter{
		options: opts,
		logger:  logger,
	}

	a.getters = map[string]func() string{
		logoptions.Exclude:            opts.Exclude,
		logoptions.Include:            opts.Include,
		logoptions.Filter:             func() string { return strconv.FormatBool(opts.Filter()) },
		logoptions.ExcludeCategories:  opts.ExcludeCategories,
		logoptions.ExecutionThreshold: func() string { return strconv.FormatInt(opts.ExecutionThreshold(), 10) },
		logoptions.SQLExpression:      opts.SQLExpression,

		logoptions.IncludeTables:        func() string { return renderSet(opts.IncludeTables()) },
		logoptions.ExcludeTables:        func() string { return renderSet(opts.ExcludeTables()) },
		logoptions.ExcludeCategoriesSet: func() string { return renderSet(opts.ExcludeCategoriesSet()) },
		logoptions.IncludeTablesPattern: func() string { return renderPattern(opts.IncludeTablesPattern()) },
		logoptions.ExcludeTablesPattern: func() string { return renderPattern(opts.ExcludeTablesPattern()) },
		logoptions.SQLExpressionPattern: func() string { return renderPattern(opts.SQLExpressionPattern()) },
	}

	a.setters = map[string]func(string) error{
		logoptions.Exclude:            opts.SetExclude,
		logoptions.Include:            opts.SetInclude,
		logoptions.Filter:             opts.SetFilter,
		logoptions.ExcludeCategories:  opts.SetExcludeCategories,
		logoptions.ExecutionThreshold: opts.SetExecutionThreshold,
		logoptions.SQLExpression:      opts.SetSQLExpression,
	}

	return a
}

// Attributes returns the primary attributes followed by the read-only derived
// ones.
func (a *Adapter) Attributes() []Attribute {
	var attrs []Attribute
	for _, name := range logoptions.Names() {
		attrs = append(attrs, Attribute{Name: name})
	}
	for _, name := range logoptions.DerivedNames() {
		attrs = append(attrs, Attribute{Name: name, ReadOnly: true})
	}
	return attrs
}

// Get returns the string representation of attribute `name`. Sets are
// rendered as comma-separated lists, patterns as their expression, and absent
// values as the empty string.
func (a *Adapter) Get(name string) (value string, err error) {
	get, exists := a.getters[name]
	if !exists {
		return "", sqerrors.WithKey(sqerrors.Errorf("management: %s `%s`", ErrorMessage_UnknownAttribute, name), name)
	}
	err = sqsafe.Call("get "+name, func() error {
		value = get()
		return nil
	})
	return value, err
}

// Set writes attribute `name` from its string representation.
func (a *Adapter) Set(name, value string) error {
	set, exists := a.setters[name]
	if !exists {
		msg := ErrorMessage_UnknownAttribute
		if _, readable := a.getters[name]; readable {
			msg = ErrorMessage_ReadOnlyAttribute
		}
		return sqerrors.WithKey(sqerrors.Errorf("management: %s `%s`", msg, name), name)
	}
	if err := sqsafe.Call("set "+name, func() error { return set(value) }); err != nil {
		a.logger.Error(sqerrors.Wrapf(err, "management: could not set attribute `%s`", name))
		return err
	}
	a.logger.Infof("management: attribute `%s` set to %q", name, value)
	return nil
}

// Invoke executes the named operation.
func (a *Adapter) Invoke(operation string) error {
	switch operation {
	case OperationReset:
		err := sqsafe.Call(operation, func() error {
			a.options.Reset()
			return nil
		})
		if err != nil {
			return err
		}
		a.logger.Info("management: options reset to their defaults")
		return nil
	default:
		return sqerrors.Errorf("management: %s `%s`", ErrorMessage_UnknownOperation, operation)
	}
}

func renderSet(s options.Set) string {
	return s.String()
}

func renderPattern(re *regexp.Regexp) string {
	if re == nil {
		return ""
	}
	return re.String()
}

// Copyright (c) 2016 - 2020 Sqreen. All Rights Reserved.
// Please refer to our terms for more information:
// https://www.sqreen.io/terms.html

// Package logoptions implements the filtering policy deciding which
// intercepted SQL statements are logged.
//
// The policy owns the option names, their defaults and the derivation of the
// secondary match artifacts (table sets, table patterns, category set, SQL
// expression pattern) from the primary user-settable values. Values live in an
// options.Store. Every write to a primary recomputes its derived artifacts,
// but a set mutated directly in the store does not: consumers must treat an
// empty table set as "no restriction" whatever the stored pattern is.
package logoptions

import (
	"regexp"
	"sync"

	"github.com/sqreen/go-sqllog/internal/options"
	"github.com/sqreen/go-sqllog/internal/plog"
	"github.com/sqreen/go-sqllog/internal/sqlib/sqerrors"
)

// Primary option names, set by users.
const (
	Exclude            = "exclude"
	Include            = "include"
	Filter             = "filter"
	ExcludeCategories  = "excludecategories"
	ExecutionThreshold = "executionThreshold"
	SQLExpression      = "sqlexpression"
)

// Derived option names, only written as a consequence of a primary write.
const (
	IncludeTables        = "includeTables"
	ExcludeTables        = "excludeTables"
	IncludeTablesPattern = "includeTablesPattern"
	ExcludeTablesPattern = "excludeTablesPattern"
	ExcludeCategoriesSet = "excludecategoriesSet"
	SQLExpressionPattern = "sqlexpressionPattern"
)

var defaults = map[string]string{
	Filter:             "false",
	ExcludeCategories:  "info,debug,result,resultset,batch",
	ExecutionThreshold: "0",
}

// Primary names in load order.
var names = []string{
	SQLExpression,
	ExecutionThreshold,
	ExcludeCategories,
	Filter,
	Include,
	Exclude,
}

var derivedNames = []string{
	IncludeTables,
	ExcludeTables,
	IncludeTablesPattern,
	ExcludeTablesPattern,
	ExcludeCategoriesSet,
	SQLExpressionPattern,
}

// Defaults returns a copy of the default raw values of the primary options.
// Derived options never have defaults.
func Defaults() map[string]string {
	d := make(map[string]string, len(defaults))
	for k, v := range defaults {
		d[k] = v
	}
	return d
}

// Names returns the primary option names in the order Load applies them.
func Names() []string {
	return append([]string(nil), names...)
}

func DerivedNames() []string {
	return append([]string(nil), derivedNames...)
}

// IsPrimary returns true when `name` is a user-settable option name.
func IsPrimary(name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Options is the filtering policy. It is safe for concurrent use: each setter
// holds the policy lock while writing its entries, and accessors never lock.
// Accessors running concurrently with a setter may still observe a primary
// value whose derived artifacts are not yet rewritten.
type Options struct {
	store  *options.Store
	logger plog.DebugLogger
	mu     sync.Mutex
}

// New returns the policy reading and writing its values in `store`, after
// having reset every primary option to its default.
func New(store *options.Store, logger plog.DebugLogger) *Options {
	o := &Options{
		store:  store,
		logger: logger,
	}
	o.Reset()
	return o
}

// Store returns the underlying options store.
func (o *Options) Store() *options.Store {
	return o.store
}

// Reset sets every primary option back to its default, or clears it when it
// has none.
func (o *Options) Reset() {
	for _, name := range names {
		// Defaults are valid by construction.
		_ = o.set(name, "")
	}
}

// Load applies the recognized options of `config` in a fixed order. Unknown
// keys are ignored and missing keys leave their option untouched, while an
// empty value clears it. Every option is applied even when a previous one
// failed, and the failures are returned together.
func (o *Options) Load(config map[string]string) error {
	var errs sqerrors.ErrorCollection
	for _, name := range names {
		raw, exists := config[name]
		if !exists {
			continue
		}
		if err := o.set(name, raw); err != nil {
			errs.Add(err)
		}
	}
	return errs.ToError()
}

// Set sets the primary option `name` from its raw string value.
func (o *Options) Set(name, raw string) error {
	if !IsPrimary(name) {
		return sqerrors.WithKey(sqerrors.Errorf("logoptions: unknown option `%s`", name), name)
	}
	return o.set(name, raw)
}

func (o *Options) SetExclude(exclude string) error {
	return o.set(Exclude, exclude)
}

func (o *Options) SetInclude(include string) error {
	return o.set(Include, include)
}

func (o *Options) SetExcludeCategories(categories string) error {
	return o.set(ExcludeCategories, categories)
}

func (o *Options) SetSQLExpression(expr string) error {
	return o.set(SQLExpression, expr)
}

// SetFilter parses a boolean string such as "true", "false", "1" or "0".
func (o *Options) SetFilter(filter string) error {
	return o.set(Filter, filter)
}

func (o *Options) SetFilterValue(filter bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.store.SetBool(Filter, filter)
	o.logger.Debugf("logoptions: option `%s` set to %t", Filter, filter)
}

// SetExecutionThreshold parses a number of milliseconds. Zero disables the
// threshold. The previous value is kept when `threshold` is not an integer.
func (o *Options) SetExecutionThreshold(threshold string) error {
	return o.set(ExecutionThreshold, threshold)
}

func (o *Options) SetExecutionThresholdValue(threshold int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.store.SetInt64(ExecutionThreshold, threshold)
	o.logger.Debugf("logoptions: option `%s` set to %d", ExecutionThreshold, threshold)
}

// set writes the primary option `name` and recomputes its derived artifacts.
// The empty string clears the option, which means writing its default back
// when it has one.
func (o *Options) set(name, raw string) error {
	if raw == "" {
		raw = defaults[name]
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.recompute(name, raw); err != nil {
		return sqerrors.WithKey(sqerrors.Wrapf(err, "logoptions: could not set option `%s`", name), name)
	}
	o.logger.Debugf("logoptions: option `%s` set to %q", name, raw)
	return nil
}

// recompute is the single place writing a primary option along with every
// artifact derived from it. Artifacts are computed before the first write so
// that a failure leaves the previous values in place. The entries are then
// written one by one, the primary first.
func (o *Options) recompute(name, raw string) error {
	switch name {
	case Exclude, Include:
		setName, patternName := ExcludeTables, ExcludeTablesPattern
		if name == Include {
			setName, patternName = IncludeTables, IncludeTablesPattern
		}
		tables := options.ParseSet(raw)
		pattern, err := CompileTablesPattern(tables)
		if err != nil {
			return err
		}
		o.store.SetString(name, raw)
		o.store.StoreSet(setName, tables)
		o.store.SetPattern(patternName, pattern)

	case ExcludeCategories:
		o.store.SetString(name, raw)
		o.store.SetSet(ExcludeCategoriesSet, raw)

	case SQLExpression:
		var pattern *regexp.Regexp
		if raw != "" {
			var err error
			if pattern, err = CompileSQLExpression(raw); err != nil {
				return err
			}
		}
		o.store.SetString(name, raw)
		o.store.SetPattern(SQLExpressionPattern, pattern)

	case Filter:
		return o.store.ParseBool(name, raw)

	case ExecutionThreshold:
		return o.store.ParseInt64(name, raw)
	}
	return nil
}

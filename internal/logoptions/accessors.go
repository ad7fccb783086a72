// Copyright (c) 2016 - 2020 Sqreen. All Rights Reserved.
// Please refer to our terms for more information:
// https://www.sqreen.io/terms.html

package logoptions

import (
	"regexp"
	"strconv"

	"github.com/sqreen/go-sqllog/internal/options"
)

// Exclude returns the raw list of excluded tables, or the empty string.
func (o *Options) Exclude() string {
	return o.stringValue(Exclude)
}

// Include returns the raw list of included tables, or the empty string.
func (o *Options) Include() string {
	return o.stringValue(Include)
}

func (o *Options) ExcludeCategories() string {
	return o.stringValue(ExcludeCategories)
}

func (o *Options) SQLExpression() string {
	return o.stringValue(SQLExpression)
}

// Filter returns true when the table and SQL expression rules apply.
func (o *Options) Filter() bool {
	if v, ok := o.store.Bool(Filter); ok {
		return v
	}
	v, _ := strconv.ParseBool(defaults[Filter])
	return v
}

// ExecutionThreshold returns the minimum execution duration, in milliseconds,
// of a statement to be logged.
func (o *Options) ExecutionThreshold() int64 {
	if v, ok := o.store.Int64(ExecutionThreshold); ok {
		return v
	}
	v, _ := strconv.ParseInt(defaults[ExecutionThreshold], 10, 64)
	return v
}

func (o *Options) IncludeTables() options.Set {
	return o.store.Set(IncludeTables)
}

func (o *Options) ExcludeTables() options.Set {
	return o.store.Set(ExcludeTables)
}

func (o *Options) ExcludeCategoriesSet() options.Set {
	return o.store.Set(ExcludeCategoriesSet)
}

func (o *Options) IncludeTablesPattern() *regexp.Regexp {
	return o.store.Pattern(IncludeTablesPattern)
}

func (o *Options) ExcludeTablesPattern() *regexp.Regexp {
	return o.store.Pattern(ExcludeTablesPattern)
}

func (o *Options) SQLExpressionPattern() *regexp.Regexp {
	return o.store.Pattern(SQLExpressionPattern)
}

func (o *Options) stringValue(name string) string {
	if v, ok := o.store.String(name); ok {
		return v
	}
	return defaults[name]
}

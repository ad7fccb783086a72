// Copyright (c) 2016 - 2020 Sqreen. All Rights Reserved.
// Please refer to our terms for more information:
// https://www.sqreen.io/terms.html

// Package logquery decides whether an intercepted SQL statement is logged
// according to the filtering policy.
package logquery

import (
	"regexp"
	"strings"
	"time"

	"github.com/sqreen/go-sqllog/internal/options"
)

// Category of a logged event.
type Category string

const (
	Error     Category = "error"
	Info      Category = "info"
	Debug     Category = "debug"
	Statement Category = "statement"
	Batch     Category = "batch"
	Commit    Category = "commit"
	Rollback  Category = "rollback"
	Result    Category = "result"
	ResultSet Category = "resultset"
	Outage    Category = "outage"
)

// Policy is the read-only view of the filtering policy the decisions are based
// on. It is implemented by *logoptions.Options.
type Policy interface {
	Filter() bool
	IncludeTables() options.Set
	ExcludeTables() options.Set
	IncludeTablesPattern() *regexp.Regexp
	ExcludeTablesPattern() *regexp.Regexp
	ExcludeCategoriesSet() options.Set
	SQLExpressionPattern() *regexp.Regexp
	ExecutionThreshold() int64
}

type Decider struct {
	policy Policy
}

func New(policy Policy) *Decider {
	return &Decider{policy: policy}
}

// ShouldLog returns true when a statement of the given category, which took
// `elapsed` to execute, must be logged.
func (d *Decider) ShouldLog(category Category, sql string, elapsed time.Duration) bool {
	return d.MeetsThreshold(elapsed) && d.IsCategoryOK(category) && d.IsLoggable(sql)
}

// IsCategoryOK returns false when the category is excluded.
func (d *Decider) IsCategoryOK(category Category) bool {
	return !d.policy.ExcludeCategoriesSet().Contains(string(category))
}

// MeetsThreshold returns true when the execution threshold is disabled or
// when `elapsed` reaches it.
func (d *Decider) MeetsThreshold(elapsed time.Duration) bool {
	threshold := d.policy.ExecutionThreshold()
	return threshold <= 0 || elapsed >= time.Duration(threshold)*time.Millisecond
}

// IsLoggable returns true when the statement passes the SQL rules. Empty
// statements, such as commits, rollbacks or empty batches, always pass, and so
// does every statement when filtering is disabled.
func (d *Decider) IsLoggable(sql string) bool {
	if sql == "" || !d.policy.Filter() {
		return true
	}
	return d.IsQueryOK(sql)
}

// IsQueryOK applies the SQL expression and table rules to `sql`. An empty
// table set means no restriction and its pattern is not consulted, since it
// may be stale after a direct mutation of the set.
func (d *Decider) IsQueryOK(sql string) bool {
	if re := d.policy.SQLExpressionPattern(); re != nil && !re.MatchString(sql) {
		return false
	}

	sql = strings.TrimSpace(sql)
	if !d.policy.IncludeTables().IsEmpty() {
		if re := d.policy.IncludeTablesPattern(); re != nil && !re.MatchString(sql) {
			return false
		}
	}
	if !d.policy.ExcludeTables().IsEmpty() {
		if re := d.policy.ExcludeTablesPattern(); re != nil && re.MatchString(sql) {
			return false
		}
	}
	return true
}

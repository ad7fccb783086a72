// Copyright (c) 2016 - 2020 Sqreen. All Rights Reserved.
// Please refer to our terms for more information:
// https://www.sqreen.io/terms.html

package logoptions

import (
	"regexp"
	"strings"

	"github.com/sqreen/go-sqllog/internal/options"
	"github.com/sqreen/go-sqllog/internal/sqlib/sqerrors"
)

// TablesExpression returns the regular expression matching SQL statements
// whose FROM clause mentions one of the given tables, or the empty string
// when there are none:
//
//   select.*from(.*((t1)|(t2)|...|(tn)).*)(where|;|$)
//
// Table names are regular expression fragments inserted as they are. It is a
// best-effort narrowing filter: it does not parse SQL and may match a table
// name found as a substring of another identifier.
func TablesExpression(tables options.Set) string {
	if tables.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("select.*from(.*(")
	for i, table := range tables.Values() {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteByte('(')
		sb.WriteString(table)
		sb.WriteByte(')')
	}
	sb.WriteString(").*)(where|;|$)")
	return sb.String()
}

// CompileTablesPattern compiles the TablesExpression of the given tables. The
// pattern is case-insensitive, lets `.` match newlines and must match the
// whole statement. A nil pattern is returned when there are no tables.
func CompileTablesPattern(tables options.Set) (*regexp.Regexp, error) {
	expr := TablesExpression(tables)
	if expr == "" {
		return nil, nil
	}
	re, err := regexp.Compile(`(?is)^(?:` + expr + `)$`)
	if err != nil {
		return nil, sqerrors.Wrapf(err, "invalid table name in `%s`", tables)
	}
	return re, nil
}

// CompileSQLExpression compiles a user SQL expression so that it must match
// the whole statement, with `.` matching newlines.
func CompileSQLExpression(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`(?s)^(?:` + expr + `)$`)
	if err != nil {
		return nil, sqerrors.Wrapf(err, "invalid sql expression `%s`", expr)
	}
	return re, nil
}

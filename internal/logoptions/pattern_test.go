// Copyright (c) 2016 - 2020 Sqreen. All Rights Reserved.
// Please refer to our terms for more information:
// https://www.sqreen.io/terms.html

package logoptions_test

import (
	"strings"
	"testing"

	combinations "github.com/mxschmitt/golang-combinations"
	"github.com/sqreen/go-sqllog/internal/logoptions"
	"github.com/sqreen/go-sqllog/internal/options"
	"github.com/stretchr/testify/require"
)

func TestTablesExpression(t *testing.T) {
	require.Equal(t, "", logoptions.TablesExpression(options.Set{}))
	require.Equal(t, "select.*from(.*((orders)).*)(where|;|$)", logoptions.TablesExpression(options.NewSet("orders")))
	require.Equal(t,
		"select.*from(.*((customers)|(orders)).*)(where|;|$)",
		logoptions.TablesExpression(options.NewSet("orders", "customers")),
	)
}

func TestCompileTablesPattern(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		re, err := logoptions.CompileTablesPattern(options.NewSet())
		require.NoError(t, err)
		require.Nil(t, re)
	})

	t.Run("every non-empty subset", func(t *testing.T) {
		tables := []string{"orders", "customers", "products", "invoice_lines", "audit"}
		for _, subset := range combinations.All(tables) {
			subset := subset
			t.Run(strings.Join(subset, ","), func(t *testing.T) {
				set := options.NewSet(subset...)
				expr := logoptions.TablesExpression(set)
				require.Equal(t, len(subset)-1, strings.Count(expr, "|")-2)
				for _, table := range subset {
					require.Equal(t, 1, strings.Count(expr, "("+table+")"))
				}

				re, err := logoptions.CompileTablesPattern(set)
				require.NoError(t, err)
				require.NotNil(t, re)
				for _, table := range subset {
					require.True(t, re.MatchString("SELECT * FROM "+table+" WHERE 1=1"), table)
					require.True(t, re.MatchString("select *\nfrom "+table+";"), table)
				}
				require.False(t, re.MatchString("SELECT * FROM unrelated_table"))
			})
		}
	})

	t.Run("statements other than select", func(t *testing.T) {
		re, err := logoptions.CompileTablesPattern(options.NewSet("orders"))
		require.NoError(t, err)
		require.False(t, re.MatchString("delete from orders where id = 1"))
		require.True(t, re.MatchString("select o.id from shop.orders o join customers c on o.c = c.id"))
	})

	t.Run("table names are regular expression fragments", func(t *testing.T) {
		re, err := logoptions.CompileTablesPattern(options.NewSet("order_[0-9]+"))
		require.NoError(t, err)
		require.True(t, re.MatchString("select * from order_2020"))
		require.False(t, re.MatchString("select * from order_archive"))

		_, err = logoptions.CompileTablesPattern(options.NewSet("orders)"))
		require.Error(t, err)
	})
}

func TestCompileSQLExpression(t *testing.T) {
	re, err := logoptions.CompileSQLExpression("select.*")
	require.NoError(t, err)
	require.True(t, re.MatchString("select *\nfrom orders"))
	require.False(t, re.MatchString("insert into orders select * from tmp"))

	_, err = logoptions.CompileSQLExpression("[")
	require.Error(t, err)
}

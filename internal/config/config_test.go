// Copyright (c) 2016 - 2020 Sqreen. All Rights Reserved.
// Please refer to our terms for more information:
// https://www.sqreen.io/terms.html

package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/sqreen/go-sqllog/internal/logoptions"
	"github.com/sqreen/go-sqllog/internal/plog"
	"github.com/sqreen/go-sqllog/tools/testlib"
	"github.com/stretchr/testify/require"
)

func TestLogLevel(t *testing.T) {
	logger := plog.NewLogger(plog.Debug, os.Stderr, nil)

	t.Run("Default value", func(t *testing.T) {
		cfg, err := New(logger)
		require.NoError(t, err)
		require.Equal(t, plog.Info, cfg.LogLevel())
	})

	t.Run("Set through environment variable", func(t *testing.T) {
		os.Setenv("SQLLOG_LOG_LEVEL", "debug")
		defer os.Unsetenv("SQLLOG_LOG_LEVEL")
		cfg, err := New(logger)
		require.NoError(t, err)
		require.Equal(t, plog.Debug, cfg.LogLevel())
	})

	t.Run("Set through configuration file", func(t *testing.T) {
		filename := newCfgFile(t, ".", `log_level: error`)
		defer os.Remove(filename)
		cfg, err := New(logger)
		require.NoError(t, err)
		require.Equal(t, plog.Error, cfg.LogLevel())
	})
}

func TestLogOptions(t *testing.T) {
	logger := plog.NewLogger(plog.Debug, os.Stderr, nil)

	t.Run("nothing configured", func(t *testing.T) {
		cfg, err := New(logger)
		require.NoError(t, err)
		opts, err := cfg.LogOptions()
		require.NoError(t, err)
		require.Empty(t, opts)
	})

	t.Run("configuration file", func(t *testing.T) {
		filename := newCfgFile(t, ".", `
filter: true
executionThreshold: 150
excludecategories: debug,batch
include:
  - orders
  - customers
appender: ignored
`)
		defer os.Remove(filename)

		cfg, err := New(logger)
		require.NoError(t, err)
		opts, err := cfg.LogOptions()
		require.NoError(t, err)
		require.Equal(t, map[string]string{
			logoptions.Filter:             "true",
			logoptions.ExecutionThreshold: "150",
			logoptions.ExcludeCategories:  "debug,batch",
			logoptions.Include:            "orders,customers",
		}, opts)
	})

	t.Run("environment variables take precedence", func(t *testing.T) {
		filename := newCfgFile(t, ".", `exclude: audit`)
		defer os.Remove(filename)
		os.Setenv("SQLLOG_EXCLUDE", "audit,history")
		defer os.Unsetenv("SQLLOG_EXCLUDE")
		os.Setenv("SQLLOG_EXECUTIONTHRESHOLD", "20")
		defer os.Unsetenv("SQLLOG_EXECUTIONTHRESHOLD")

		cfg, err := New(logger)
		require.NoError(t, err)
		opts, err := cfg.LogOptions()
		require.NoError(t, err)
		require.Equal(t, "audit,history", opts[logoptions.Exclude])
		require.Equal(t, "20", opts[logoptions.ExecutionThreshold])
	})
}

func TestFileLocation(t *testing.T) {
	logger := plog.NewLogger(plog.Debug, os.Stderr, nil)

	cwdFile := newCfgFile(t, ".", `sqlexpression: select.*`)
	defer os.Remove(cwdFile)

	tmpDir, err := ioutil.TempDir("", "sqllog-"+testlib.RandString(4))
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)
	tmpFile := newCfgFile(t, tmpDir, `sqlexpression: update.*`)
	os.Setenv("SQLLOG_CONFIG_FILE", tmpFile)

	cfg, err := New(logger)
	require.NoError(t, err)
	opts, err := cfg.LogOptions()
	require.NoError(t, err)
	require.Equal(t, "update.*", opts[logoptions.SQLExpression])

	os.Unsetenv("SQLLOG_CONFIG_FILE")

	cfg, err = New(logger)
	require.NoError(t, err)
	opts, err = cfg.LogOptions()
	require.NoError(t, err)
	require.Equal(t, "select.*", opts[logoptions.SQLExpression])

	t.Run("enforced file must exist", func(t *testing.T) {
		os.Setenv("SQLLOG_CONFIG_FILE", filepath.Join(tmpDir, "missing.yml"))
		defer os.Unsetenv("SQLLOG_CONFIG_FILE")
		cfg, err := New(logger)
		require.Error(t, err)
		require.Nil(t, cfg)
	})
}

func newCfgFile(t *testing.T, path string, content string) string {
	require.NoError(t, os.MkdirAll(path, 0700))
	cfg, err := os.Create(filepath.Join(path, "sqllog.yml"))
	require.NoError(t, err)
	defer cfg.Close()
	_, err = cfg.WriteString(content)
	require.NoError(t, err)
	return cfg.Name()
}

// Copyright (c) 2016 - 2020 Sqreen. All Rights Reserved.
// Please refer to our terms for more information:
// https://www.sqreen.io/terms.html

// Package config reads the user configuration from a configuration file and
// from environment variables. Environment variables take precedence over the
// file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/sqreen/go-sqllog/internal/logoptions"
	"github.com/sqreen/go-sqllog/internal/plog"
	"github.com/sqreen/go-sqllog/internal/sqlib/sqerrors"
)

type Config struct {
	*viper.Viper
}

const (
	configEnvPrefix    = `sqllog`
	configFileBasename = `sqllog`
)

const (
	configEnvKeyConfigFile = `config_file`

	configKeyLogLevel = `log_level`
)

// User configuration's default values.
const (
	configDefaultLogLevel = `info`
)

func New(logger plog.InfoLevelLogger) (*Config, error) {
	manager := viper.New()
	manager.SetEnvPrefix(configEnvPrefix)
	manager.AutomaticEnv()
	manager.SetConfigName(configFileBasename)
	manager.SetDefault(configKeyLogLevel, configDefaultLogLevel)

	// Configuration file settings
	configFileEnvVar := strings.ToUpper(configEnvPrefix + "_" + configEnvKeyConfigFile)
	configFile := os.Getenv(configFileEnvVar)
	if configFile != "" {
		// File location enforced by the user
		manager.SetConfigFile(configFile)
		logger.Infof("config: configuration file enforced by the environment variable `%s` to `%s`", configFileEnvVar, configFile)
	} else {
		// Not enforced: add possible paths in precedence order
		// 1. Current working directory path:
		manager.AddConfigPath(`.`)
		// 2. Executable path
		exec, err := os.Executable()
		if err != nil {
			logger.Error(sqerrors.Wrap(err, "config: could not read the executable file path"))
		} else {
			manager.AddConfigPath(filepath.Dir(exec))
		}
	}

	readErr, fileUsed := manager.ReadInConfig(), manager.ConfigFileUsed()
	switch {
	case readErr != nil && configFile != "":
		// The enforced file must be readable.
		return nil, sqerrors.Wrap(readErr, fmt.Sprintf("config: could not read the configuration file `%s`", configFile))
	case readErr != nil && fileUsed != "":
		// Could not read despite the fact of having found a file
		logger.Error(sqerrors.Wrap(readErr, fmt.Sprintf("config: could not read the configuration file `%s`: falling back to environment variables", fileUsed)))
	case fileUsed != "":
		logger.Infof("config: reading configuration settings from file `%s`", fileUsed)
	default:
		logger.Infof("config: reading configuration settings from environment variables")
	}

	return &Config{Viper: manager}, nil
}

// LogLevel returns the log level.
func (c *Config) LogLevel() plog.LogLevel {
	return plog.ParseLogLevel(c.GetString(configKeyLogLevel))
}

// LogOptions returns the raw values of the filtering options found in the
// configuration, keyed by option name. Options found nowhere are not part of
// the returned map. Keys are matched case-insensitively, so that option
// `executionThreshold` is read from `executionthreshold` in a file or from
// the environment variable `SQLLOG_EXECUTIONTHRESHOLD`.
func (c *Config) LogOptions() (map[string]string, error) {
	opts := make(map[string]string)
	for _, name := range logoptions.Names() {
		key := strings.ToLower(name)
		if !c.IsSet(key) {
			continue
		}
		v, err := toRawString(c.Get(key))
		if err != nil {
			return nil, sqerrors.WithKey(sqerrors.Wrapf(err, "config: invalid value of option `%s`", name), name)
		}
		opts[name] = v
	}
	return opts, nil
}

// toRawString converts a value read from a configuration source into the raw
// string form of an option. Lists, such as YAML sequences of table names, are
// joined with commas.
func toRawString(v interface{}) (string, error) {
	switch actual := v.(type) {
	case nil:
		return "", nil
	case []interface{}:
		tokens, err := cast.ToStringSliceE(actual)
		if err != nil {
			return "", err
		}
		return strings.Join(tokens, ","), nil
	case []string:
		return strings.Join(actual, ","), nil
	default:
		return cast.ToStringE(actual)
	}
}

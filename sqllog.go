// Copyright (c) 2016 - 2020 Sqreen. All Rights Reserved.
// Please refer to our terms for more information:
// https://www.sqreen.io/terms.html

// Package sqllog builds the SQL logging policy of an application from its
// configuration. The returned Spy carries every component explicitly: the
// statement interception layer asks its Decider whether to log a statement,
// and the Management adapter tunes the policy at run time.
package sqllog

import (
	"io"

	"github.com/sqreen/go-sqllog/internal/config"
	"github.com/sqreen/go-sqllog/internal/logoptions"
	"github.com/sqreen/go-sqllog/internal/logquery"
	"github.com/sqreen/go-sqllog/internal/management"
	"github.com/sqreen/go-sqllog/internal/options"
	"github.com/sqreen/go-sqllog/internal/plog"
	"github.com/sqreen/go-sqllog/internal/sqlib/sqerrors"
)

type Spy struct {
	Logger     *plog.Logger
	Options    *logoptions.Options
	Decider    *logquery.Decider
	Management *management.Adapter
}

// New reads the configuration and returns the resulting Spy. Logs are written
// into `out`. Options failing to load are reported in the returned error
// while the others are applied, so the returned Spy is usable as long as it is
// not nil.
func New(out io.Writer) (*Spy, error) {
	// Bootstrap logger used until the configured level is known.
	logger := plog.NewLogger(plog.Info, out, nil)

	cfg, err := config.New(logger)
	if err != nil {
		return nil, sqerrors.Wrap(err, "sqllog: configuration error")
	}
	logger = plog.NewLogger(cfg.LogLevel(), out, nil)

	raw, err := cfg.LogOptions()
	if err != nil {
		return nil, sqerrors.Wrap(err, "sqllog: configuration error")
	}

	spy := NewWithOptions(logger, options.NewStore())
	if err := spy.Options.Load(raw); err != nil {
		err = sqerrors.Wrap(err, "sqllog: could not load every logging option")
		logger.Error(err)
		return spy, err
	}
	return spy, nil
}

// NewWithOptions returns a Spy whose policy is stored in `store` and reset to
// the defaults.
func NewWithOptions(logger *plog.Logger, store *options.Store) *Spy {
	opts := logoptions.New(store, logger)
	return &Spy{
		Logger:     logger,
		Options:    opts,
		Decider:    logquery.New(opts),
		Management: management.NewAdapter(opts, logger),
	}
}

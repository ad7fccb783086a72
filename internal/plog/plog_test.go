// Copyright (c) 2016 - 2020 Sqreen. All Rights Reserved.
// Please refer to our terms for more information:
// https://www.sqreen.io/terms.html

package plog_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/pkg/errors"
	"github.com/sqreen/go-sqllog/internal/plog"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	for _, level := range []plog.LogLevel{
		plog.Disabled,
		plog.Debug,
		plog.Info,
		plog.Error,
	} {
		level := level // new scope
		t.Run(level.String(), func(t *testing.T) {
			for _, errChanLen := range []int{1, 1024} {
				errChanLen := errChanLen // new scope
				t.Run(fmt.Sprintf("with chan buffer length %d", errChanLen), func(t *testing.T) {
					g := gomega.NewGomegaWithT(t)
					output := gbytes.NewBuffer()
					errChan := make(chan error, errChanLen)
					logger := plog.NewLogger(level, output, errChan)

					// Perform log calls
					logger.Debug("debug 1", " debug 2", " debug 3")
					logger.Infof("info %d %s", 1, "info 2")
					err := errors.New("error message")
					logger.Error(err)

					var (
						re      = "sqllog/%s - [0-9]{4}(-[0-9]{2}){2}T([0-9]{2}:){2}[0-9]{2}.?[0-9]{0,6} - %s"
						debugRe = fmt.Sprintf(re, plog.Debug, "debug 1 debug 2 debug 3")
						errorRe = fmt.Sprintf(re, plog.Error, "error message")
						infoRe  = fmt.Sprintf(re, plog.Info, "info 1 info 2")
					)
					switch level {
					case plog.Disabled:
						g.Expect(output).ShouldNot(gbytes.Say(debugRe))
						g.Expect(output).ShouldNot(gbytes.Say(infoRe))
						g.Expect(output).ShouldNot(gbytes.Say(errorRe))
					case plog.Debug:
						g.Expect(output).Should(gbytes.Say(debugRe))
						fallthrough
					case plog.Info:
						g.Expect(output).Should(gbytes.Say(infoRe))
						fallthrough
					case plog.Error:
						g.Expect(output).Should(gbytes.Say(errorRe))
					}

					// The error should have been sent into the channel
					g.Eventually(errChan).Should(gomega.Receive(gomega.Equal(err)))
				})
			}
		})
	}
}

func TestNilErrorChannel(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	output := gbytes.NewBuffer()
	logger := plog.NewLogger(plog.Error, output, nil)
	logger.Error(errors.New("oops"))
	g.Expect(output).Should(gbytes.Say("sqllog/error - .* - oops"))

	require.NotPanics(t, func() {
		plog.NewLogger(plog.Disabled, output, nil).Error(errors.New("oops"))
	})
}

func TestParseLogLevel(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected plog.LogLevel
	}{
		{"debug", plog.Debug},
		{" INFO ", plog.Info},
		{"Error", plog.Error},
		{"", plog.Disabled},
		{"verbose", plog.Disabled},
	} {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.expected, plog.ParseLogLevel(tc.in))
		})
	}
}

func TestTimeFormat(t *testing.T) {
	for _, tc := range []struct {
		timestamp string
		expected  string
	}{
		{
			timestamp: "2006-01-02T15:04:05.000000",
			expected:  "2006-01-02T15:04:05",
		},
		{
			timestamp: "2006-01-02T15:04:05.1",
			expected:  "2006-01-02T15:04:05.1",
		},
		{
			timestamp: "2006-01-02T15:04:05.999000",
			expected:  "2006-01-02T15:04:05.999",
		},
	} {
		t.Run(tc.timestamp, func(t *testing.T) {
			tim, err := time.Parse(plog.TimestampLayout, tc.timestamp)
			require.NoError(t, err)
			got := tim.Format(plog.TimestampLayout)
			require.Equal(t, tc.expected, got)
		})
	}
}

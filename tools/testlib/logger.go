// Copyright (c) 2016 - 2020 Sqreen. All Rights Reserved.
// Please refer to our terms for more information:
// https://www.sqreen.io/terms.html

package testlib

import (
	"github.com/sqreen/go-sqllog/internal/plog"
	"github.com/stretchr/testify/mock"
)

// LoggerMockup is a plog.DebugLevelLogger recording its calls.
type LoggerMockup struct {
	mock.Mock
}

// Static assertion of correct interface implementation.
var _ plog.DebugLevelLogger = &LoggerMockup{}

func (l *LoggerMockup) Debug(v ...interface{}) {
	l.Called(v...)
}

func (l *LoggerMockup) Debugf(format string, v ...interface{}) {
	args := make([]interface{}, 0, len(v)+1)
	args = append(args, format)
	args = append(args, v...)
	l.Called(args...)
}

func (l *LoggerMockup) Info(v ...interface{}) {
	l.Called(v...)
}

func (l *LoggerMockup) Infof(format string, v ...interface{}) {
	args := make([]interface{}, 0, len(v)+1)
	args = append(args, format)
	args = append(args, v...)
	l.Called(args...)
}

func (l *LoggerMockup) Error(err error) {
	l.Called(err)
}

func (l *LoggerMockup) ExpectInfof(format string, v ...interface{}) *mock.Call {
	args := make([]interface{}, 0, len(v)+1)
	args = append(args, format)
	args = append(args, v...)
	return l.On("Infof", args...)
}

func (l *LoggerMockup) ExpectError(err interface{}) *mock.Call {
	return l.On("Error", err)
}

// Package logging builds the zap loggers used by the command line tools.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a development logger with ISO8601 timestamps when debug is set
// and a production JSON logger with epoch-millisecond timestamps otherwise.
func New(debug bool, opts ...zap.Option) (*zap.Logger, error) {
	var config zap.Config
	var encoderConf zapcore.EncoderConfig

	if debug {
		config = zap.NewDevelopmentConfig()
		encoderConf = zap.NewDevelopmentEncoderConfig()
		encoderConf.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewProductionConfig()
		encoderConf = zap.NewProductionEncoderConfig()
		encoderConf.EncodeTime = zapcore.EpochMillisTimeEncoder
	}

	config.EncoderConfig = encoderConf
	return config.Build(opts...)
}

// Must is [New] that panics when the logger cannot be built.
func Must(debug bool, opts ...zap.Option) *zap.Logger {
	l, err := New(debug, opts...)
	if err != nil {
		panic(err)
	}
	return l
}

package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a console logger writing to w. Warnings are shown by
// default, --verbose adds info and debug entries, --quiet keeps errors only.
func newLogger(w io.Writer, flags commonFlags) *zap.Logger {
	level := zapcore.WarnLevel
	switch {
	case flags.quiet:
		level = zapcore.ErrorLevel
	case flags.verbose:
		level = zapcore.DebugLevel
	}

	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	})
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}

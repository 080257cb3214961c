package utils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger keeps the Printf/Errorf call style used across the handlers and
// routes the output through zap.
type Logger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

type LoggerOptions struct {
	Level  string
	Format string
}

func NewLogger() *Logger {
	l, _ := NewLoggerWithOptions(LoggerOptions{})
	return l
}

func NewLoggerWithOptions(opts LoggerOptions) (*Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if raw := strings.TrimSpace(opts.Level); raw != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(raw))); err != nil {
			return nil, fmt.Errorf("log level %q: %w", raw, err)
		}
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg := zap.Config{
		Level:             level,
		Encoding:          "console",
		EncoderConfig:     encCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case "json":
		zcfg.Encoding = "json"
	default:
		return nil, fmt.Errorf("unsupported log format %q", opts.Format)
	}
	base, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: base.Sugar(), level: level}, nil
}

func NewNopLogger() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar(), level: zap.NewAtomicLevel()}
}

// NewLoggerFromZap wraps an existing zap logger, e.g. one built by zaptest
// or an observer core.
func NewLoggerFromZap(z *zap.Logger) *Logger {
	return &Logger{sugar: z.Sugar(), level: zap.NewAtomicLevel()}
}

func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar.Infof(format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar.Errorf(format, args...)
}

func (l *Logger) SetLevel(level string) error {
	if l == nil {
		return nil
	}
	return l.level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level))))
}

func (l *Logger) Sync() error {
	if l == nil || l.sugar == nil {
		return nil
	}
	return l.sugar.Sync()
}

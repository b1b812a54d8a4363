package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// L is the global sugared logger used by the crawler packages.
var L *zap.SugaredLogger

func init() {
	// Console logger at info level until Init is called with real config.
	L = newConsole(zapcore.InfoLevel).Sugar()
}

// Config controls log level and optional file output with rotation.
type Config struct {
	Level      string `yaml:"level"`       // debug, info, warn, error
	File       string `yaml:"file"`        // empty means console only
	MaxSizeMB  int    `yaml:"max_size_mb"` // per-file cap before rotation
	MaxBackups int    `yaml:"max_backups"`
}

// Init rebuilds the global logger from config.
func Init(cfg Config) error {
	var level zapcore.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zapcore.DebugLevel
	case "info", "":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		return fmt.Errorf("unknown log level: %s", cfg.Level)
	}

	var output io.Writer = os.Stderr
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		maxSize := cfg.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 32
		}
		maxBackups := cfg.MaxBackups
		if maxBackups <= 0 {
			maxBackups = 3
		}

		output = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			Compress:   true,
		})
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.AddSync(output),
		level,
	)
	L = zap.New(core).Sugar()
	return nil
}

// Sync flushes buffered log entries; call before exit.
func Sync() {
	_ = L.Sync()
}

func newConsole(level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.AddSync(os.Stderr),
		level,
	)
	return zap.New(core)
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		MessageKey:     "M",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// Debugf logs a formatted debug-level message.
func Debugf(template string, args ...interface{}) { L.Debugf(template, args...) }

// Infof logs a formatted info-level message.
func Infof(template string, args ...interface{}) { L.Infof(template, args...) }

// Warnf logs a formatted warn-level message.
func Warnf(template string, args ...interface{}) { L.Warnf(template, args...) }

// Errorf logs a formatted error-level message.
func Errorf(template string, args ...interface{}) { L.Errorf(template, args...) }

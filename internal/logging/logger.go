package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "VASS_LOG_LEVEL"

// LogFileEnvVar names a file that receives a rotated copy of the log output.
const LogFileEnvVar = "VASS_LOG_FILE"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks VASS_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel := parseLevel(level)

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	// stdout is reserved for command output
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stderr), zapLevel),
	}

	if path := strings.TrimSpace(os.Getenv(LogFileEnvVar)); path != "" {
		fileEncoder := zap.NewProductionEncoderConfig()
		fileEncoder.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoder),
			zapcore.AddSync(newFileWriter(path)),
			zapLevel,
		))
	}

	logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return nil
}

// InitializeFromEnv initializes the logger from the VASS_LOG_LEVEL
// environment variable. This is the recommended way to initialize logging
// for CLI commands that want silent mode by default.
func InitializeFromEnv() error {
	return Initialize("")
}

func parseLevel(raw string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		return zapcore.InfoLevel
	}
}

func newFileWriter(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		LocalTime:  true,
	}
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// Named returns a child of the global logger scoped to a component
func Named(component string) *zap.Logger {
	return GetLogger().Named(component)
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogDiscovery logs an assistant found by the mDNS scanner
func LogDiscovery(name, ip string, port int, metadata map[string]string) {
	Info("Assistant discovered",
		zap.String("name", name),
		zap.String("ip", ip),
		zap.Int("port", port),
		zap.Any("txt", metadata),
	)
}

// LogCommand logs the assistant a CLI command is about to talk to
func LogCommand(command, baseURL string) {
	Debug("Running command",
		zap.String("command", command),
		zap.String("base_url", baseURL),
	)
}

// LogScrape logs the outcome of one exporter scrape
func LogScrape(baseURL string, duration time.Duration, err error) {
	if err != nil {
		Warn("Scrape failed",
			zap.String("base_url", baseURL),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}
	Debug("Scrape completed",
		zap.String("base_url", baseURL),
		zap.Duration("duration", duration),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

// Describe returns the active level for diagnostics output
func Describe() string {
	l := GetLogger()
	for _, lvl := range []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel} {
		if l.Core().Enabled(lvl) {
			return fmt.Sprintf("level=%s", lvl)
		}
	}
	return "silent"
}

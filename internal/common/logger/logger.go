package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/citytransit-view/internal/common/discord"
	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

// Logger interface defines the logging methods
type Logger interface {
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Fatal(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

// logger implementation
type loggerImpl struct {
	zl zerolog.Logger
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level           zerolog.Level
	Console         bool
	File            bool
	FilePath        string
	MaxSizeMB       int
	MaxBackups      int
	MaxAgeDays      int
	Compress        bool
	TimeFieldFormat string
	DiscordURL      string
}

// DefaultLoggerConfig returns console+file logging at info level
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:           zerolog.InfoLevel,
		Console:         true,
		File:            true,
		FilePath:        "citytransit.log",
		MaxSizeMB:       10,
		MaxBackups:      5,
		MaxAgeDays:      30,
		Compress:        true,
		TimeFieldFormat: time.RFC3339,
	}
}

// New creates a new logger instance with the given writers
func New(writers ...io.Writer) Logger {
	multi := io.MultiWriter(writers...)
	zl := zerolog.New(multi).With().Timestamp().Logger()
	return &loggerImpl{zl: zl}
}

// Nop returns a logger that discards everything, for tests
func Nop() Logger {
	return &loggerImpl{zl: zerolog.Nop()}
}

// NewFromConfig builds a logger from cfg. Error and fatal events are
// mirrored to Discord when cfg.DiscordURL is set.
func NewFromConfig(cfg LoggerConfig) Logger {
	var writers []io.Writer

	if cfg.Console {
		writers = append(writers, ConsoleWriter(cfg.TimeFieldFormat))
	}

	if cfg.File {
		writers = append(writers, FileWriter(cfg))
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	if cfg.TimeFieldFormat != "" {
		zerolog.TimeFieldFormat = cfg.TimeFieldFormat
	}

	zl := zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger().Level(cfg.Level)
	if cfg.DiscordURL != "" {
		zl = zl.Hook(&discordHook{client: discord.NewClient(cfg.DiscordURL)})
	}

	return &loggerImpl{zl: zl}
}

// ConsoleWriter returns a human readable stdout writer. An empty
// timeFormat falls back to RFC3339.
func ConsoleWriter(timeFormat string) io.Writer {
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}
	return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: timeFormat}
}

// FileWriter returns a rotating writer for cfg.FilePath using the
// size, backup and age limits in cfg
func FileWriter(cfg LoggerConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB, // megabytes
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays, // days
		Compress:   cfg.Compress,
	}
}

// ParseLogLevel maps a LOG_LEVEL value to a zerolog level, defaulting to info
func ParseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Info logs an info message
func (l *loggerImpl) Info(msg string, fields ...interface{}) {
	logWithFields(l.zl.Info(), msg, fields...)
}

// Warn logs a warning message
func (l *loggerImpl) Warn(msg string, fields ...interface{}) {
	logWithFields(l.zl.Warn(), msg, fields...)
}

// Error logs an error message
func (l *loggerImpl) Error(msg string, fields ...interface{}) {
	logWithFields(l.zl.Error(), msg, fields...)
}

// Debug logs a debug message
func (l *loggerImpl) Debug(msg string, fields ...interface{}) {
	logWithFields(l.zl.Debug(), msg, fields...)
}

// Fatal logs a fatal message and exits
func (l *loggerImpl) Fatal(msg string, fields ...interface{}) {
	logWithFields(l.zl.Fatal(), msg, fields...)
}

// With returns a child logger carrying the given key-value pairs on every event
func (l *loggerImpl) With(fields ...interface{}) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &loggerImpl{zl: ctx.Logger()}
}

// logWithFields adds structured fields to the event
func logWithFields(event *zerolog.Event, msg string, fields ...interface{}) {
	if len(fields) == 1 {
		if m, ok := fields[0].(map[string]interface{}); ok {
			event.Fields(m).Msg(msg)
			return
		}
	}
	// fallback: treat as key-value pairs
	if len(fields)%2 == 0 {
		for i := 0; i < len(fields); i += 2 {
			key, ok := fields[i].(string)
			if !ok {
				continue
			}
			// Special handling for error types
			if key == "error" {
				if err, ok := fields[i+1].(error); ok && err != nil {
					event = event.Err(err)
				} else {
					event = event.Interface(key, fields[i+1])
				}
			} else {
				event = event.Interface(key, fields[i+1])
			}
		}
	}
	event.Msg(msg)
}

// discordHook forwards error and fatal events to a Discord webhook
type discordHook struct {
	client *discord.Client
}

func (h *discordHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	if level < zerolog.ErrorLevel {
		return
	}
	send := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		// Nowhere left to report a failed report.
		_ = h.client.SendLogMessage(ctx, strings.ToUpper(level.String()), msg, nil)
	}
	if level == zerolog.FatalLevel {
		send()
		return
	}
	go send()
}

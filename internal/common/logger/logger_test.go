package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerWritesKeyValueFields(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	log := New(&buf)

	log.Info("tick applied", "tick", 3, "error", errors.New("boom"))

	var entry map[string]interface{}
	is.NoErr(json.Unmarshal(buf.Bytes(), &entry))
	is.Equal(entry["message"], "tick applied")
	is.Equal(entry["tick"], float64(3))
	is.Equal(entry["error"], "boom")
	is.Equal(entry["level"], "info")
}

func TestLoggerWithCarriesFields(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	log := New(&buf).With("component", "scheduler")

	log.Warn("slow tick")

	var entry map[string]interface{}
	is.NoErr(json.Unmarshal(buf.Bytes(), &entry))
	is.Equal(entry["component"], "scheduler")
}

func TestLoggerMapFields(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	New(&buf).Info("started", map[string]interface{}{"version": "1.0.0"})

	var entry map[string]interface{}
	is.NoErr(json.Unmarshal(buf.Bytes(), &entry))
	is.Equal(entry["version"], "1.0.0")
}

func TestFileWriterUsesRotationSettings(t *testing.T) {
	is := is.New(t)
	cfg := LoggerConfig{
		FilePath:   "/var/log/citytransit.log",
		MaxSizeMB:  50,
		MaxBackups: 2,
		MaxAgeDays: 7,
		Compress:   false,
	}

	lj, ok := FileWriter(cfg).(*lumberjack.Logger)
	is.True(ok)
	is.Equal(lj.Filename, "/var/log/citytransit.log")
	is.Equal(lj.MaxSize, 50)
	is.Equal(lj.MaxBackups, 2)
	is.Equal(lj.MaxAge, 7)
	is.Equal(lj.Compress, false)
}

func TestNewFromConfigWritesToFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "app.log")

	cfg := DefaultLoggerConfig()
	cfg.Console = false
	cfg.FilePath = path
	cfg.TimeFieldFormat = ""
	cfg.Level = zerolog.WarnLevel

	log := NewFromConfig(cfg)
	log.Info("dropped below level")
	log.Warn("feed stalled", "tick", 4)

	data, err := os.ReadFile(path)
	is.NoErr(err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	is.Equal(len(lines), 1)

	var entry map[string]interface{}
	is.NoErr(json.Unmarshal([]byte(lines[0]), &entry))
	is.Equal(entry["message"], "feed stalled")
	is.Equal(entry["tick"], float64(4))
}

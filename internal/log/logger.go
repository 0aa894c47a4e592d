// Package log provides structured event logging.
// Events are appended as JSON lines to log.jsonl through zap.
package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Event type constants.
const (
	EventStartup       = "startup"
	EventLogin         = "login"
	EventLogout        = "logout"
	EventAuthFailed    = "auth_failed"
	EventUpload        = "upload"
	EventHistoryLoaded = "history_loaded"
	EventDetailOpened  = "detail_opened"
	EventPanelLoaded   = "panel_loaded"
	EventPanelDropped  = "panel_dropped"
	EventShareCreated  = "share_created"
	EventShareOpened   = "share_opened"
	EventExport        = "export"
	EventExportsPruned = "exports_pruned"
	EventRequest       = "request"
	EventDemoServer    = "demo_server"
	EventError         = "error"
)

// FileName is the log file inside the state directory.
const FileName = "log.jsonl"

// LogEvent is one parsed line of the log file.
type LogEvent struct {
	Time  time.Time
	Level string
	Event string
	Data  map[string]interface{}
}

// Logger writes append-only JSONL events to a log file.
type Logger struct {
	path string
	zap  *zap.Logger
	file *os.File
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "event",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
}

// NewLogger creates a Logger that writes to log.jsonl inside dir at the
// given level ("debug", "info", "warn", "error"; empty means info).
// Creates dir if it does not already exist. Does not truncate an existing
// log file.
func NewLogger(dir, level string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
	}

	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.Lock(f), lvl)
	return &Logger{path: path, zap: zap.New(core), file: f}, nil
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// Zap exposes the underlying logger for packages that take a *zap.Logger.
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}

// Event records a named event at info level.
func (l *Logger) Event(name string, fields ...zap.Field) {
	l.zap.Info(name, fields...)
}

// Debug records a named event at debug level.
func (l *Logger) Debug(name string, fields ...zap.Field) {
	l.zap.Debug(name, fields...)
}

// Error records a failure under EventError with the step that failed.
func (l *Logger) Error(step string, err error, fields ...zap.Field) {
	l.zap.Error(EventError, append([]zap.Field{zap.String("step", step), zap.Error(err)}, fields...)...)
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	_ = l.zap.Sync()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ReadAll reads and parses all events from the log file.
// Returns an empty slice (not an error) if the file does not exist.
func (l *Logger) ReadAll() ([]LogEvent, error) {
	if l.path == "" {
		return []LogEvent{}, nil
	}
	return ReadFile(l.path)
}

// ReadFile parses a log file written by Logger.
func ReadFile(path string) ([]LogEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []LogEvent{}, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var events []LogEvent
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var raw map[string]interface{}
		if err := json.Unmarshal(line, &raw); err != nil {
			return nil, fmt.Errorf("parse log line %d: %w", lineNum, err)
		}
		events = append(events, toEvent(raw))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	return events, nil
}

func toEvent(raw map[string]interface{}) LogEvent {
	var ev LogEvent
	if s, ok := raw["time"].(string); ok {
		ev.Time, _ = time.Parse(time.RFC3339Nano, s)
	}
	ev.Level, _ = raw["level"].(string)
	ev.Event, _ = raw["event"].(string)
	delete(raw, "time")
	delete(raw, "level")
	delete(raw, "event")
	if len(raw) > 0 {
		ev.Data = raw
	}
	return ev
}

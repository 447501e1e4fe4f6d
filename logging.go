package main

import (
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

const (
	readerLogger = "mdblog.reader"
	renderLogger = "mdblog.render"
	outputLogger = "mdblog.output"
	serveLogger  = "mdblog.serve"
	watchLogger  = "mdblog.watch"
)

// Logger is the leveled, key/value logging contract used by the generator.
// Child loggers handed out by go-logger satisfy it directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// loggerProvider hands out named child loggers of one go-logger root.
type loggerProvider struct {
	root *glog.BaseLogger
}

func newLoggerProvider(level, format string) (*loggerProvider, error) {
	options := []glog.Option{}

	if lvl := normalizeLevel(level); lvl != "" {
		options = append(options, glog.WithLevel(lvl))
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", format)
	}

	return &loggerProvider{root: glog.NewLogger(options...)}, nil
}

func (p *loggerProvider) get(name string) Logger {
	if p == nil || p.root == nil {
		return noopLogger{}
	}
	if name = strings.TrimSpace(name); name == "" {
		return p.root
	}
	return p.root.GetLogger(name)
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	default:
		return ""
	}
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

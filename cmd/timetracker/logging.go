package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/LiamCoop/timetracker/internal/config"
)

// newLogger builds the process logger. Output goes to w unless a log file
// is configured. The returned func closes the file.
func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, func()) {
	closeFn := func() {}
	if cfg.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Path)
		if err != nil {
			slog.New(slog.NewTextHandler(os.Stderr, nil)).Warn("log file unavailable, using stderr", "path", cfg.Path, "error", err)
		} else {
			w = fileWriter
			closeFn = func() { _ = fileWriter.file.Close() }
		}
	}

	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), closeFn
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

// logFileWriter appends to a file and trims it to its newest
// keepLogSizeBytes once it grows past maxLogSizeBytes.
type logFileWriter struct {
	file *os.File
	mu   sync.Mutex
}

func newLogFileWriter(path string) (*logFileWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	w := &logFileWriter{file: file}
	if err := w.trim(); err != nil {
		_ = file.Close()
		return nil, err
	}
	return w, nil
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, w.trim()
}

func (w *logFileWriter) trim() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= maxLogSizeBytes {
		return nil
	}

	tail := make([]byte, keepLogSizeBytes)
	n, err := w.file.ReadAt(tail, size-keepLogSizeBytes)
	if err != nil && err != io.EOF {
		return err
	}
	if err := w.file.Truncate(0); err != nil {
		return err
	}
	// O_APPEND writes land at the new end of file.
	_, err = w.file.Write(tail[:n])
	return err
}

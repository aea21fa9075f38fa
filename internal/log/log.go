package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	WarningLog *log.Logger
	InfoLog    *log.Logger
	ErrorLog   *log.Logger

	logFile     io.WriteCloser
	logFilePath string
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Dir        string // empty = ~/.config/starter/logs
	MaxSizeMB  int    // <= 0 disables rotation
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultLogConfig returns the default logging configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 30,
		Compress:   true,
	}
}

func init() {
	// Loggers must be usable before Initialize, e.g. from tests.
	setWriter(os.Stderr)
}

// LogDir returns the directory where logs are written.
func LogDir(cfg LogConfig) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "starter", "logs"), nil
}

// Initialize redirects the loggers to a log file so the TUI owns the terminal.
// defer Close() after calling this function.
func Initialize(cfg LogConfig) error {
	dir, err := LogDir(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, "starter.log")
	writer, err := newWriter(path, cfg)
	if err != nil {
		return err
	}

	logFile = writer
	logFilePath = path
	setWriter(writer)
	return nil
}

// Path returns the active log file path, empty when logging to stderr.
func Path() string {
	return logFilePath
}

// Close closes the log file and points the loggers back at stderr.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logFilePath = ""
	setWriter(os.Stderr)
}

// SetOutput points all loggers at w.
func SetOutput(w io.Writer) {
	setWriter(w)
}

func newWriter(path string, cfg LogConfig) (io.WriteCloser, error) {
	if cfg.MaxSizeMB <= 0 {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("could not open log file: %w", err)
		}
		return f, nil
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}, nil
}

func setWriter(w io.Writer) {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	InfoLog = log.New(w, "INFO: ", flags)
	WarningLog = log.New(w, "WARNING: ", flags)
	ErrorLog = log.New(w, "ERROR: ", flags)
}

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// logFileHandle is the file the global logger currently appends to
	logFileHandle *os.File
	// consoleLogger is the global logger without the file writer
	consoleLogger zerolog.Logger
)

// SetupLogger configures the global logger based on verbosity level.
// Console output always goes to stderr because stdout carries the rendered
// template. When logFile is non-empty, JSON lines are appended to it as well.
func SetupLogger(verbosity int, logFile string) {
	setupLogger(os.Stderr, verbosity, logFile)
}

func setupLogger(console *os.File, verbosity int, logFile string) {
	_ = closeLogFile()

	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(console.Fd()) && !isatty.IsCygwinTerminal(console.Fd()),
	}

	consoleLogger = zerolog.New(consoleWriter).With().Timestamp().Logger()
	log.Logger = consoleLogger

	var fileErr error
	if logFile != "" {
		var handle *os.File
		handle, fileErr = setupLogFile(logFile)
		if fileErr == nil {
			logFileHandle = handle
			log.Logger = zerolog.New(io.MultiWriter(consoleWriter, handle)).With().Timestamp().Logger()
		}
	}

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	if verbosity >= 2 {
		consoleLogger = consoleLogger.With().Caller().Logger()
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

// Close detaches and closes the log file, leaving console logging in place.
// It is safe to call when no file is open.
func Close() error {
	if logFileHandle == nil {
		return nil
	}
	log.Logger = consoleLogger
	return closeLogFile()
}

func closeLogFile() error {
	if logFileHandle == nil {
		return nil
	}
	err := logFileHandle.Close()
	logFileHandle = nil
	return err
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}

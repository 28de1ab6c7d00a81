package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// New returns the app logger. With debug on it appends to
// <vaultPath>/.cv/debug.log at debug level; otherwise it is silent.
// Subsystems derive their own logger with WithPrefix.
func New(vaultPath string, debug bool) *log.Logger {
	if !debug {
		return log.New(io.Discard)
	}

	dir := filepath.Join(vaultPath, ".cv")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return log.New(io.Discard)
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(io.Discard)
	}

	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
	})
}

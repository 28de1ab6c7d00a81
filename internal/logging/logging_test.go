package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_DebugWritesToFile(t *testing.T) {
	vault := t.TempDir()

	logger := New(vault, true)
	logger.Info("hello from test", "key", "value")

	data, err := os.ReadFile(filepath.Join(vault, ".cv", "debug.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestNew_SilentWithoutDebug(t *testing.T) {
	vault := t.TempDir()

	logger := New(vault, false)
	logger.Info("should go nowhere")

	if _, err := os.Stat(filepath.Join(vault, ".cv", "debug.log")); !os.IsNotExist(err) {
		t.Error("debug.log should not exist when debug is off")
	}
}

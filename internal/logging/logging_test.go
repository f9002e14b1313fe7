package logging

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")
	closer := Setup(path)
	t.Cleanup(func() { Setup("") })

	log.Printf("[Player] hello from test")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error = %v", err)
	}
	if !strings.Contains(string(data), "[Player] hello from test") {
		t.Errorf("log file = %q, missing message", data)
	}
}

func TestSetupWithoutFile(t *testing.T) {
	closer := Setup("")
	if err := closer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeEnv(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, Version) {
		t.Errorf("Expected %s, got %q", Version, out)
	}
}

func TestDBPing_SQLite(t *testing.T) {
	t.Setenv("DB_CONNECTION", "sqlite")
	t.Setenv("DB_NAME", filepath.Join(t.TempDir(), "ping.db"))

	out, err := run(t, "db:ping", "--env", writeEnv(t), "--log-level", "error")
	if err != nil {
		t.Fatalf("db:ping failed: %v", err)
	}
	if !strings.Contains(out, "sqlite") {
		t.Errorf("Expected sqlite in output, got %q", out)
	}
}

func TestDBPing_InvalidDriver(t *testing.T) {
	t.Setenv("DB_CONNECTION", "oracle")

	if _, err := run(t, "db:ping", "--env", writeEnv(t)); err == nil {
		t.Error("Expected error for unsupported driver")
	}
}

func TestInvalidLogLevel(t *testing.T) {
	if _, err := run(t, "db:ping", "--env", writeEnv(t), "--log-level", "loud"); err == nil {
		t.Error("Expected error for invalid log level")
	}
}

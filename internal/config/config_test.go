package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	cfg := &Config{
		App:      AppConfig{Environment: "development"},
		Logger:   LoggerConfig{Level: "info"},
		Database: DatabaseConfig{DataPath: "/tmp/forkful"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidate_BadEnvironment(t *testing.T) {
	cfg := &Config{
		App:      AppConfig{Environment: "qa"},
		Logger:   LoggerConfig{Level: "info"},
		Database: DatabaseConfig{DataPath: "/tmp/forkful"},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid environment")
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := &Config{
		App:      AppConfig{Environment: "production"},
		Logger:   LoggerConfig{Level: "verbose"},
		Database: DatabaseConfig{DataPath: "/tmp/forkful"},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestExpandPath(t *testing.T) {
	got, err := expandPath("", "/default/path")
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	if got != "/default/path" {
		t.Errorf("expected default path, got %q", got)
	}

	got, err = expandPath("/absolute/path", "")
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	if got != "/absolute/path" {
		t.Errorf("expected /absolute/path, got %q", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\nFORKFUL_TEST_KEY=hello\nFORKFUL_QUOTED=\"world\"\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("FORKFUL_TEST_KEY")
		os.Unsetenv("FORKFUL_QUOTED")
	})

	if err := loadEnvFile(envPath); err != nil {
		t.Fatalf("loadEnvFile: %v", err)
	}
	if got := os.Getenv("FORKFUL_TEST_KEY"); got != "hello" {
		t.Errorf("FORKFUL_TEST_KEY: got %q", got)
	}
	if got := os.Getenv("FORKFUL_QUOTED"); got != "world" {
		t.Errorf("FORKFUL_QUOTED: got %q", got)
	}
}

func TestDBFile(t *testing.T) {
	db := DatabaseConfig{DataPath: "/var/lib/forkful"}
	if got := db.DBFile(); got != "/var/lib/forkful/forkful.db" {
		t.Errorf("DBFile: got %q", got)
	}
}

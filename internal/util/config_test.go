package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{"LWOT_SCENARIO", "LWOT_IDEOLOGY", "LWOT_SEED", "LWOT_DATA_DIR", "DATABASE_URL",
		"LWOT_LOG_LEVEL", "LWOT_LOG_FILE", "LWOT_STRICT_INVARIANTS", "LWOT_THEME", "LWOT_PLAIN"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Scenario != 1 || cfg.Ideology != 1 || cfg.DataDir != ".lwot" || !cfg.StrictInvariants || cfg.Plain {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.Theme != "catppuccin" || cfg.LogLevel != "info" || cfg.LogFile != "lwot.log" {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.SnapshotPath() != filepath.Join(".lwot", "lwot.db") {
		t.Fatalf("snapshot path %q", cfg.SnapshotPath())
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LWOT_SCENARIO", "3")
	t.Setenv("LWOT_IDEOLOGY", "5")
	t.Setenv("LWOT_SEED", "alpha")
	t.Setenv("LWOT_STRICT_INVARIANTS", "false")
	t.Setenv("LWOT_PLAIN", "true")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Scenario != 3 || cfg.Ideology != 5 || cfg.Seed != "alpha" || cfg.StrictInvariants || !cfg.Plain {
		t.Fatalf("got %+v", cfg)
	}
}

func TestValidateRejectsRanges(t *testing.T) {
	base := Config{Scenario: 1, Ideology: 1, LogLevel: "info"}
	bad := []Config{
		{Scenario: 0, Ideology: 1, LogLevel: "info"},
		{Scenario: 5, Ideology: 1, LogLevel: "info"},
		{Scenario: 1, Ideology: 6, LogLevel: "info"},
		{Scenario: 1, Ideology: 1, LogLevel: "loud"},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("base: %v", err)
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Fatalf("accepted %+v", c)
		}
	}
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := NewLogger(Config{LogLevel: "debug", LogFile: path}, true)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	l.Info("hello")
	_ = l.Sync()
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	})
}

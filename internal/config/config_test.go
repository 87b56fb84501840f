package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SQLITE_DB_PATH", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("default port: got %q, want 8080", cfg.Port)
	}
	if cfg.SQLiteDBPath == "" {
		t.Error("default db path must not be empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != "9999" || cfg.SQLiteDBPath != "/tmp/test.db" || cfg.LogLevel != "debug" {
		t.Errorf("env not honored: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: "not-a-port", SQLiteDBPath: "x.db"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected invalid port to fail validation")
	}

	cfg = &Config{Port: "8080", SQLiteDBPath: ""}
	if err := cfg.Validate(); err == nil {
		t.Error("expected empty db path to fail validation")
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

const minimalConfig = `
maps:
  - name: lookup-user
    processor: sql
    src: "SELECT groupname FROM radusergroup WHERE username = '%{User-Name}'"
    maps:
      - dst: "control:Group-Name"
        src: groupname
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("ListenAddress = %q, want default %q", cfg.Server.ListenAddress, DefaultListenAddress)
	}
	if cfg.Logging.Level != DefaultLogLevel || cfg.Logging.Format != DefaultLogFormat {
		t.Errorf("logging defaults = %q/%q", cfg.Logging.Level, cfg.Logging.Format)
	}
	if cfg.Metrics.Enabled == nil || !*cfg.Metrics.Enabled {
		t.Error("metrics should default to enabled")
	}
	if cfg.QueryLog.BufferSize != DefaultQueryLogBuffer {
		t.Errorf("BufferSize = %d, want %d", cfg.QueryLog.BufferSize, DefaultQueryLogBuffer)
	}
	if cfg.Modules.SQL.QueryTimeout != DefaultSQLQueryTimeout {
		t.Errorf("QueryTimeout = %v, want %v", cfg.Modules.SQL.QueryTimeout, DefaultSQLQueryTimeout)
	}

	if len(cfg.Maps) != 1 {
		t.Fatalf("len(Maps) = %d, want 1", len(cfg.Maps))
	}
	if got := cfg.Maps[0].Maps[0].Op; got != DefaultMapEntryOperation {
		t.Errorf("map entry default op = %q, want %q", got, DefaultMapEntryOperation)
	}
}

func TestLoad_FileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() on missing file: error = nil")
	}

	path := writeConfig(t, "server: [not a mapping")
	if _, err := Load(path); err == nil {
		t.Error("Load() on malformed yaml: error = nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
		{
			name:    "empty listen address",
			mutate:  func(c *Config) { c.Server.ListenAddress = "" },
			wantErr: "server.listen_address",
		},
		{
			name:    "sql enabled without dsn",
			mutate:  func(c *Config) { c.Modules.SQL.Enabled = true; c.Modules.SQL.DSN = "" },
			wantErr: "modules.sql.dsn",
		},
		{
			name:    "query log enabled without path",
			mutate:  func(c *Config) { c.QueryLog.Enabled = true; c.QueryLog.Path = "" },
			wantErr: "query_log.path",
		},
		{
			name:    "map block without processor",
			mutate:  func(c *Config) { c.Maps[0].Processor = "" },
			wantErr: "maps[0].processor",
		},
		{
			name:    "map block without entries",
			mutate:  func(c *Config) { c.Maps[0].Maps = nil },
			wantErr: "maps[0].maps",
		},
		{
			name:    "bad map operator",
			mutate:  func(c *Config) { c.Maps[0].Maps[0].Op = "~=" },
			wantErr: "maps[0].maps[0].op",
		},
		{
			name: "duplicate block names",
			mutate: func(c *Config) {
				c.Maps = append(c.Maps, c.Maps[0])
			},
			wantErr: "duplicate map block name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, minimalConfig))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.mutate(cfg)

			err = Validate(cfg)
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %T, want *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Logging.Level = "verbose"
	cfg.Logging.Format = "xml"

	err := Validate(cfg)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %T, want *ValidationError", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("len(Errors) = %d, want 2: %v", len(verr.Errors), verr)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("RADIUSD_SERVER_LISTEN_ADDRESS", "0.0.0.0:9999")
	t.Setenv("RADIUSD_LOGGING_LEVEL", "debug")
	t.Setenv("RADIUSD_SERVER_SHUTDOWN_TIMEOUT", "30s")

	cfg, err := LoadWithEnvOverrides(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadWithEnvOverrides() error = %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:9999" {
		t.Errorf("ListenAddress = %q, want env override", cfg.Server.ListenAddress)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.Server.ShutdownTimeout)
	}
}

func TestLoadWithEnvOverrides_InvalidOverride(t *testing.T) {
	t.Setenv("RADIUSD_LOGGING_LEVEL", "shouting")

	if _, err := LoadWithEnvOverrides(writeConfig(t, minimalConfig)); err == nil {
		t.Error("LoadWithEnvOverrides() error = nil, want validation failure")
	}
}

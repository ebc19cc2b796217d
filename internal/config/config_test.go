package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid file backend config",
			config: Config{
				Port:            "8080",
				DataBackend:     "file",
				DataDir:         tmpDir,
				LogLevel:        "info",
				ShutdownTimeout: 10 * time.Second,
			},
			wantErr: false,
		},
		{
			name: "valid sqlite backend config",
			config: Config{
				Port:            "8080",
				DataBackend:     "sqlite",
				SQLiteDBPath:    filepath.Join(tmpDir, "finor.db"),
				LogLevel:        "debug",
				ShutdownTimeout: 10 * time.Second,
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:            "abc",
				DataBackend:     "file",
				DataDir:         tmpDir,
				LogLevel:        "info",
				ShutdownTimeout: 10 * time.Second,
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range low",
			config: Config{
				Port:            "0",
				DataBackend:     "file",
				DataDir:         tmpDir,
				LogLevel:        "info",
				ShutdownTimeout: 10 * time.Second,
			},
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name: "invalid port - out of range high",
			config: Config{
				Port:            "70000",
				DataBackend:     "file",
				DataDir:         tmpDir,
				LogLevel:        "info",
				ShutdownTimeout: 10 * time.Second,
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "invalid data backend",
			config: Config{
				Port:            "8080",
				DataBackend:     "memory",
				LogLevel:        "info",
				ShutdownTimeout: 10 * time.Second,
			},
			wantErr:     true,
			errorString: "invalid data backend 'memory': must be one of [file sqlite]",
		},
		{
			name: "file backend missing data directory",
			config: Config{
				Port:            "8080",
				DataBackend:     "file",
				DataDir:         "",
				LogLevel:        "info",
				ShutdownTimeout: 10 * time.Second,
			},
			wantErr:     true,
			errorString: "data directory cannot be empty when using file backend",
		},
		{
			name: "sqlite backend missing database path",
			config: Config{
				Port:            "8080",
				DataBackend:     "sqlite",
				SQLiteDBPath:    "",
				LogLevel:        "info",
				ShutdownTimeout: 10 * time.Second,
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name: "invalid log level",
			config: Config{
				Port:            "8080",
				DataBackend:     "file",
				DataDir:         tmpDir,
				LogLevel:        "verbose",
				ShutdownTimeout: 10 * time.Second,
			},
			wantErr:     true,
			errorString: "invalid log level 'verbose': must be one of [debug info warn error]",
		},
		{
			name: "invalid shutdown timeout - too short",
			config: Config{
				Port:            "8080",
				DataBackend:     "file",
				DataDir:         tmpDir,
				LogLevel:        "info",
				ShutdownTimeout: 500 * time.Millisecond,
			},
			wantErr:     true,
			errorString: "invalid shutdown timeout 500ms: must be at least 1 second",
		},
		{
			name: "invalid shutdown timeout - too long",
			config: Config{
				Port:            "8080",
				DataBackend:     "file",
				DataDir:         tmpDir,
				LogLevel:        "info",
				ShutdownTimeout: 10 * time.Minute,
			},
			wantErr:     true,
			errorString: "invalid shutdown timeout 10m0s: must be at most 5 minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else {
				if err != nil {
					t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalVars := map[string]string{
		"PORT":             os.Getenv("PORT"),
		"DATA_BACKEND":     os.Getenv("DATA_BACKEND"),
		"DATA_DIR":         os.Getenv("DATA_DIR"),
		"SQLITE_DB_PATH":   os.Getenv("SQLITE_DB_PATH"),
		"LOG_LEVEL":        os.Getenv("LOG_LEVEL"),
		"SHUTDOWN_TIMEOUT": os.Getenv("SHUTDOWN_TIMEOUT"),
	}

	// Clean environment
	for key := range originalVars {
		os.Unsetenv(key)
	}

	// Restore env vars at end of test
	defer func() {
		for key, value := range originalVars {
			if value != "" {
				os.Setenv(key, value)
			} else {
				os.Unsetenv(key)
			}
		}
	}()

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Port != "8080" {
			t.Errorf("Load() Port = %v, want 8080", cfg.Port)
		}
		if cfg.DataBackend != "file" {
			t.Errorf("Load() DataBackend = %v, want file", cfg.DataBackend)
		}
		if cfg.DataDir != "./data" {
			t.Errorf("Load() DataDir = %v, want ./data", cfg.DataDir)
		}
		if cfg.SQLiteDBPath != "./data/finor.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/finor.db", cfg.SQLiteDBPath)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("Load() LogLevel = %v, want info", cfg.LogLevel)
		}
		if cfg.ShutdownTimeout != 10*time.Second {
			t.Errorf("Load() ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		os.Setenv("PORT", "9090")
		os.Setenv("DATA_BACKEND", "sqlite")
		os.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
		os.Setenv("LOG_LEVEL", "debug")
		os.Setenv("SHUTDOWN_TIMEOUT", "30s")

		cfg := Load()

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.DataBackend != "sqlite" {
			t.Errorf("Load() DataBackend = %v, want sqlite", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "/tmp/test.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want /tmp/test.db", cfg.SQLiteDBPath)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Load() LogLevel = %v, want debug", cfg.LogLevel)
		}
		if cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("Load() ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		os.Setenv("SHUTDOWN_TIMEOUT", "invalid")

		cfg := Load()

		if cfg.ShutdownTimeout != 10*time.Second {
			t.Errorf("Load() ShutdownTimeout = %v, want 10s (default for invalid input)", cfg.ShutdownTimeout)
		}
	})
}

// Helper function to check if string contains substring
func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || func() bool {
		for i := 0; i <= len(s)-len(substr); i++ {
			if s[i:i+len(substr)] == substr {
				return true
			}
		}
		return false
	}())
}

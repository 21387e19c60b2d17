package config

import (
	"os"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != defaultServerPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, defaultServerPort)
	}
	if cfg.Server.Host != defaultServerHost {
		t.Errorf("Server.Host = %s, want %s", cfg.Server.Host, defaultServerHost)
	}

	if cfg.Database.Path != defaultDatabasePath {
		t.Errorf("Database.Path = %s, want %s", cfg.Database.Path, defaultDatabasePath)
	}
	if cfg.Database.MigrationsPath != defaultDatabaseMigrationsPath {
		t.Errorf("Database.MigrationsPath = %s, want %s", cfg.Database.MigrationsPath, defaultDatabaseMigrationsPath)
	}

	if cfg.Logging.Level != defaultLogLevel {
		t.Errorf("Logging.Level = %s, want %s", cfg.Logging.Level, defaultLogLevel)
	}
	if cfg.Logging.Pretty != defaultLogPretty {
		t.Errorf("Logging.Pretty = %v, want %v", cfg.Logging.Pretty, defaultLogPretty)
	}

	if cfg.Queue.MaxUpcoming != defaultQueueMaxUpcoming {
		t.Errorf("Queue.MaxUpcoming = %d, want %d", cfg.Queue.MaxUpcoming, defaultQueueMaxUpcoming)
	}
	if cfg.Queue.AllowResubmission != defaultAllowResubmission {
		t.Errorf("Queue.AllowResubmission = %v, want %v", cfg.Queue.AllowResubmission, defaultAllowResubmission)
	}
}

func TestConfigValidation(t *testing.T) {
	valid := Config{
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
		},
		Database: DatabaseConfig{
			Path:              "./data/streamcue.db",
			MigrationsPath:    defaultDatabaseMigrationsPath,
			ConnectionTimeout: defaultDatabaseConnTimeout,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Queue: QueueConfig{
			MaxUpcoming:       100,
			AllowResubmission: true,
		},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "invalid server port (too low)",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "invalid server port (too high)",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "invalid read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "invalid" },
			wantErr: true,
		},
		{
			name:    "invalid connection timeout",
			mutate:  func(c *Config) { c.Database.ConnectionTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "negative queue cap",
			mutate:  func(c *Config) { c.Queue.MaxUpcoming = -1 },
			wantErr: true,
		},
		{
			name:    "zero queue cap disables the limit",
			mutate:  func(c *Config) { c.Queue.MaxUpcoming = 0 },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestQueueConfigEnvVars(t *testing.T) {
	_ = os.Setenv("STREAMCUE_QUEUE_MAXUPCOMING", "25")
	_ = os.Setenv("STREAMCUE_QUEUE_ALLOWRESUBMISSION", "false")
	_ = os.Setenv("STREAMCUE_LOGGING_LEVEL", "debug")
	defer func() {
		_ = os.Unsetenv("STREAMCUE_QUEUE_MAXUPCOMING")
		_ = os.Unsetenv("STREAMCUE_QUEUE_ALLOWRESUBMISSION")
		_ = os.Unsetenv("STREAMCUE_LOGGING_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Queue.MaxUpcoming != 25 {
		t.Errorf("Queue.MaxUpcoming = %d, want 25", cfg.Queue.MaxUpcoming)
	}
	if cfg.Queue.AllowResubmission {
		t.Errorf("Queue.AllowResubmission = true, want false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
}

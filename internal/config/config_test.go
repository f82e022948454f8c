package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("LOGFLOW")
	v.AutomaticEnv()
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper())
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Addr", cfg.Addr, ":8080"},
		{"DBPath", cfg.DBPath, ""},
		{"StaticPath", cfg.StaticPath, ""},
		{"RulesPath", cfg.RulesPath, ""},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFormat", cfg.LogFormat, "text"},
		{"MetricsEnabled", cfg.MetricsEnabled, true},
		{"AutomationSteps", len(cfg.AutomationSteps), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "addr",
			envKey: "LOGFLOW_ADDR",
			envVal: ":9090",
			field:  func(c Config) any { return c.Addr },
			want:   ":9090",
		},
		{
			name:   "db_path",
			envKey: "LOGFLOW_DB_PATH",
			envVal: "/tmp/logflow.db",
			field:  func(c Config) any { return c.DBPath },
			want:   "/tmp/logflow.db",
		},
		{
			name:   "log_format",
			envKey: "LOGFLOW_LOG_FORMAT",
			envVal: "json",
			field:  func(c Config) any { return c.LogFormat },
			want:   "json",
		},
		{
			name:   "metrics_enabled",
			envKey: "LOGFLOW_METRICS_ENABLED",
			envVal: "false",
			field:  func(c Config) any { return c.MetricsEnabled },
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load(newViper())
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			if got := tt.field(cfg); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".logflow.yaml")
	content := `addr: ":7000"
rules_path: rules.toml
automation_steps:
  - upload
  - final_verification
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Errorf("Addr = %q, want :7000", cfg.Addr)
	}
	if cfg.RulesPath != "rules.toml" {
		t.Errorf("RulesPath = %q, want rules.toml", cfg.RulesPath)
	}
	if len(cfg.AutomationSteps) != 2 || cfg.AutomationSteps[1] != "final_verification" {
		t.Errorf("AutomationSteps = %v", cfg.AutomationSteps)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, val string
	}{
		{"log_format", "xml"},
		{"log_level", "loud"},
		{"addr", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.val)
			if _, err := Load(v); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}

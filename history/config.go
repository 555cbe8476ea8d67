package history

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/meshkit/core"
)

// Type selects a history backend.
type Type string

const (
	// TypeMemory selects MemoryStore (the default).
	TypeMemory Type = "memory"
	// TypeFile selects FileStore.
	TypeFile Type = "file"
	// TypeSQLite selects SQLiteStore.
	TypeSQLite Type = "sqlite"
)

// Types lists the valid backend types in documentation order.
var Types = []Type{TypeMemory, TypeFile, TypeSQLite}

// Config selects and configures a history backend. Only Type is interpreted
// by the factory; the remaining fields are passed to the chosen backend.
type Config struct {
	// Type is one of memory, file or sqlite. Empty means memory.
	Type Type `yaml:"type"`

	// LogPath is the FileStore audit log. Default: tmp/history.jsonl
	LogPath string `yaml:"log_path"`

	// Fsync syncs the FileStore audit log after every append.
	Fsync bool `yaml:"fsync"`

	// LegacyAudit reproduces the old audit format (reads tagged "store",
	// deletes not logged).
	LegacyAudit bool `yaml:"legacy_audit"`

	// DSN is the SQLite database path. Default: tmp/history.db
	DSN string `yaml:"dsn"`
}

// LoadConfig reads a YAML history configuration from path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read history config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse history config %s: %w", path, err)
	}
	return cfg, nil
}

// FromMap converts a loosely typed configuration record, as handed over by
// the hosting runtime, into a Config. Recognized keys are type, log_path,
// fsync, legacy_audit and dsn; other keys are ignored. A recognized key with
// the wrong value type fails with core.ErrInvalidArgument.
func FromMap(m map[string]any) (Config, error) {
	var cfg Config
	var err error
	var s string
	if s, err = stringField(m, "type"); err != nil {
		return Config{}, err
	}
	cfg.Type = Type(s)
	if cfg.LogPath, err = stringField(m, "log_path"); err != nil {
		return Config{}, err
	}
	if cfg.DSN, err = stringField(m, "dsn"); err != nil {
		return Config{}, err
	}
	if cfg.Fsync, err = boolField(m, "fsync"); err != nil {
		return Config{}, err
	}
	if cfg.LegacyAudit, err = boolField(m, "legacy_audit"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func stringField(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", core.InvalidArgumentf("history config %q must be a string, got %T", key, v)
	}
	return s, nil
}

func boolField(m map[string]any, key string) (bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, core.InvalidArgumentf("history config %q must be a bool, got %T", key, v)
	}
	return b, nil
}

package history

import (
	"strings"

	"github.com/hupe1980/meshkit/core"
)

// New constructs the backend selected by cfg.Type:
//
//	""/"memory" - MemoryStore (volatile, default)
//	"file"      - FileStore auditing to cfg.LogPath
//	"sqlite"    - SQLiteStore at cfg.DSN
//
// Unknown types fail with core.ErrInvalidArgument naming the valid choices.
// New is a pure selection function; every call returns an independent store.
func New(cfg Config) (core.HistoryStore, error) {
	switch cfg.Type {
	case "", TypeMemory:
		return NewMemoryStore(), nil
	case TypeFile:
		return NewFileStore(func(o *FileStoreOptions) {
			o.LogPath = cfg.LogPath
			o.Fsync = cfg.Fsync
			o.LegacyAudit = cfg.LegacyAudit
		}), nil
	case TypeSQLite:
		s, err := NewSQLiteStore(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, core.InvalidArgumentf("unknown history store type %q (valid: %s)", cfg.Type, validTypes())
	}
}

// NewFromMap is New over a loosely typed configuration record.
func NewFromMap(m map[string]any) (core.HistoryStore, error) {
	cfg, err := FromMap(m)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

func validTypes() string {
	names := make([]string, len(Types))
	for i, t := range Types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

package history

import (
	"os"
	"sync"

	"github.com/hupe1980/meshkit/core"
)

// DefaultLogPath is the audit log location used when none is configured. It
// is relative to the working directory; the tmp directory must exist.
const DefaultLogPath = "tmp/history.jsonl"

// FileStoreOptions configures a FileStore.
type FileStoreOptions struct {
	// LogPath is the append-only audit log. Parent directories are not created.
	LogPath string
	// Fsync forces an fsync after every append.
	Fsync bool
	// LegacyAudit tags reads and writes alike as "store" and skips delete
	// lines, matching logs produced by older deployments.
	LegacyAudit bool
}

// FileStore is a MemoryStore whose Store, Retrieve and Delete calls also append
// one JSON line to an audit log. The in-memory index is authoritative; the log
// is write-only and is never replayed, so it may mention keys that no longer
// exist.
//
// Each operation updates the index first and then appends to the log inside
// one critical section, so log order matches index order and lines never
// interleave. A failed append is returned as *core.IOError after the index
// change has been applied.
type FileStore struct {
	mu    sync.Mutex
	index *MemoryStore
	opts  FileStoreOptions
}

// NewFileStore creates a FileStore. The log file is opened lazily on every
// append (O_APPEND|O_CREATE), so construction never touches the filesystem.
func NewFileStore(optFns ...func(o *FileStoreOptions)) *FileStore {
	opts := FileStoreOptions{LogPath: DefaultLogPath}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.LogPath == "" {
		opts.LogPath = DefaultLogPath
	}
	return &FileStore{index: NewMemoryStore(), opts: opts}
}

// LogPath returns the audit log location.
func (s *FileStore) LogPath() string { return s.opts.LogPath }

// Store associates record with key and appends a "store" audit line.
func (s *FileStore) Store(key string, record core.Record) error {
	if err := validateKey(key); err != nil {
		return err
	}
	line, err := encodeAuditLine(SourceStore, record)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.index.Store(key, record); err != nil {
		return err
	}
	return s.appendLocked(line)
}

// Retrieve returns the record for key (empty if absent) and appends a
// "retrieve" audit line ("store" in legacy mode) containing it.
func (s *FileStore) Retrieve(key string) (core.Record, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.index.Retrieve(key)
	if err != nil {
		return nil, err
	}
	source := SourceRetrieve
	if s.opts.LegacyAudit {
		source = SourceStore
	}
	line, err := encodeAuditLine(source, rec)
	if err != nil {
		return nil, err
	}
	if err := s.appendLocked(line); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes key from the index and, unless in legacy mode, appends a
// "delete" audit line. Deleting an absent key is not an error but is still
// audited.
func (s *FileStore) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.index.Delete(key); err != nil {
		return err
	}
	if s.opts.LegacyAudit {
		return nil
	}
	line, err := encodeDeleteLine(key)
	if err != nil {
		return err
	}
	return s.appendLocked(line)
}

// Keys returns a sorted snapshot of the live keys. It is not audited.
func (s *FileStore) Keys() ([]string, error) {
	return s.index.Keys()
}

// appendLocked writes one complete line; caller must hold s.mu.
func (s *FileStore) appendLocked(line []byte) error {
	f, err := os.OpenFile(s.opts.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &core.IOError{Op: "open", Path: s.opts.LogPath, Err: err}
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return &core.IOError{Op: "append", Path: s.opts.LogPath, Err: err}
	}
	if s.opts.Fsync {
		if err := f.Sync(); err != nil {
			f.Close()
			return &core.IOError{Op: "sync", Path: s.opts.LogPath, Err: err}
		}
	}
	if err := f.Close(); err != nil {
		return &core.IOError{Op: "close", Path: s.opts.LogPath, Err: err}
	}
	return nil
}

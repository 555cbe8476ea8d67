package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshkit/core"
)

func newTestFileStore(t *testing.T, optFns ...func(o *FileStoreOptions)) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.jsonl")
	fns := append([]func(o *FileStoreOptions){func(o *FileStoreOptions) { o.LogPath = path }}, optFns...)
	return NewFileStore(fns...)
}

func readLogLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if raw == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &m), "unparseable log line %q", raw)
		lines = append(lines, m)
	}
	return lines
}

func TestFileStore_StoreAppendsTaggedLine(t *testing.T) {
	s := newTestFileStore(t)
	require.NoError(t, s.Store("u1", core.Record{"a": 1}))

	lines := readLogLines(t, s.LogPath())
	require.NotEmpty(t, lines)
	last := lines[len(lines)-1]
	assert.Equal(t, 1.0, last["a"])
	assert.Equal(t, "store", last["source"])
}

func TestFileStore_AuditTagsEachOperation(t *testing.T) {
	s := newTestFileStore(t)
	require.NoError(t, s.Store("u1", core.Record{"a": 1}))
	got, err := s.Retrieve("u1")
	require.NoError(t, err)
	assert.Equal(t, core.Record{"a": 1}, got)
	_, err = s.Retrieve("missing")
	require.NoError(t, err)
	require.NoError(t, s.Delete("u1"))
	_, err = s.Keys()
	require.NoError(t, err)

	lines := readLogLines(t, s.LogPath())
	require.Len(t, lines, 4)
	assert.Equal(t, map[string]any{"a": 1.0, "source": "store"}, lines[0])
	assert.Equal(t, map[string]any{"a": 1.0, "source": "retrieve"}, lines[1])
	assert.Equal(t, map[string]any{"source": "retrieve"}, lines[2])
	assert.Equal(t, map[string]any{"key": "u1", "source": "delete"}, lines[3])
}

func TestFileStore_LegacyAudit(t *testing.T) {
	s := newTestFileStore(t, func(o *FileStoreOptions) { o.LegacyAudit = true })
	require.NoError(t, s.Store("u1", core.Record{"a": 1}))
	_, err := s.Retrieve("u1")
	require.NoError(t, err)
	require.NoError(t, s.Delete("u1"))

	lines := readLogLines(t, s.LogPath())
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, "store", l["source"])
	}
}

func TestFileStore_LogDivergesFromIndexAfterDelete(t *testing.T) {
	s := newTestFileStore(t)
	require.NoError(t, s.Store("gone", core.Record{"v": "x"}))
	require.NoError(t, s.Delete("gone"))

	got, err := s.Retrieve("gone")
	require.NoError(t, err)
	assert.Empty(t, got)

	lines := readLogLines(t, s.LogPath())
	assert.Equal(t, "x", lines[0]["v"])
}

func TestFileStore_MissingDirectoryIsIOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent", "history.jsonl")
	s := NewFileStore(func(o *FileStoreOptions) { o.LogPath = path })

	err := s.Store("u1", core.Record{"a": 1})
	var ioErr *core.IOError
	require.True(t, errors.As(err, &ioErr), "expected *core.IOError, got %v", err)
	assert.Equal(t, path, ioErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// index is updated before the append
	keys, kerr := s.Keys()
	require.NoError(t, kerr)
	assert.Equal(t, []string{"u1"}, keys)

	_, err = s.Retrieve("u1")
	assert.True(t, errors.As(err, &ioErr))

	_, statErr := os.Stat(filepath.Dir(path))
	assert.True(t, os.IsNotExist(statErr), "parent directory must not be created")
}

func TestFileStore_UnencodableRecordLeavesIndexUntouched(t *testing.T) {
	s := newTestFileStore(t)
	err := s.Store("k", core.Record{"fn": func() {}})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	keys, kerr := s.Keys()
	require.NoError(t, kerr)
	assert.Empty(t, keys)
}

func TestFileStore_SourceFieldShadowedOnlyInLog(t *testing.T) {
	s := newTestFileStore(t)
	require.NoError(t, s.Store("k", core.Record{"source": "jira"}))

	got, err := s.Retrieve("k")
	require.NoError(t, err)
	assert.Equal(t, "jira", got["source"])

	lines := readLogLines(t, s.LogPath())
	assert.Equal(t, "store", lines[0]["source"])
}

func TestFileStore_ConcurrentStoresProduceWholeLines(t *testing.T) {
	s := newTestFileStore(t, func(o *FileStoreOptions) { o.Fsync = true })
	const n = 64
	payload := strings.Repeat("x", 4096)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.Store(fmt.Sprintf("k%d", i), core.Record{"i": i, "payload": payload}); err != nil {
				t.Errorf("store %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Len(t, keys, n)

	lines := readLogLines(t, s.LogPath())
	require.Len(t, lines, n)
	seen := map[float64]bool{}
	for _, l := range lines {
		assert.Equal(t, payload, l["payload"])
		seen[l["i"].(float64)] = true
	}
	assert.Len(t, seen, n)
}

func TestFileStore_DefaultLogPath(t *testing.T) {
	s := NewFileStore(func(o *FileStoreOptions) { o.LogPath = "" })
	assert.Equal(t, DefaultLogPath, s.LogPath())
}

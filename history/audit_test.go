package history

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshkit/core"
)

func TestReadAudit_RoundTripsFileStoreLog(t *testing.T) {
	s := newTestFileStore(t)
	require.NoError(t, s.Store("u1", core.Record{"a": 1}))
	_, err := s.Retrieve("u1")
	require.NoError(t, err)
	require.NoError(t, s.Delete("u1"))

	var entries []AuditEntry
	require.NoError(t, ReadAudit(s.LogPath(), func(e AuditEntry) error {
		entries = append(entries, e)
		return nil
	}))

	require.Len(t, entries, 3)
	assert.Equal(t, SourceStore, entries[0].Source)
	assert.Equal(t, core.Record{"a": 1.0}, entries[0].Record)
	assert.Equal(t, SourceRetrieve, entries[1].Source)
	assert.Equal(t, SourceDelete, entries[2].Source)
	assert.Equal(t, "u1", entries[2].Key)
	assert.Empty(t, entries[2].Record)
	assert.Equal(t, 3, entries[2].Line)
}

func TestDecodeAudit_MalformedLine(t *testing.T) {
	in := `{"a":1,"source":"store"}` + "\n" + `{"a":` + "\n"
	err := DecodeAudit(strings.NewReader(in), func(AuditEntry) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestDecodeAudit_StopsOnCallbackError(t *testing.T) {
	in := "{\"source\":\"store\"}\n\n{\"source\":\"store\"}\n"
	stop := errors.New("stop")
	calls := 0
	err := DecodeAudit(strings.NewReader(in), func(AuditEntry) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestReadAudit_MissingFile(t *testing.T) {
	err := ReadAudit(filepath.Join(t.TempDir(), "none.jsonl"), func(AuditEntry) error { return nil })
	var ioErr *core.IOError
	assert.True(t, errors.As(err, &ioErr))
}

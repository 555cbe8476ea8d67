package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/meshkit/core"
)

// Source tags the operation that produced an audit log line.
type Source string

const (
	// SourceStore marks a line written by Store (and, in legacy mode, by Retrieve).
	SourceStore Source = "store"
	// SourceRetrieve marks a line written by Retrieve.
	SourceRetrieve Source = "retrieve"
	// SourceDelete marks a line written by Delete.
	SourceDelete Source = "delete"
)

const (
	sourceField = "source"
	keyField    = "key"
)

// AuditEntry is one decoded audit log line.
type AuditEntry struct {
	Line   int         // 1-based line number in the log
	Source Source      // operation tag
	Key    string      // only set for delete lines
	Record core.Record // logged record without the injected source field
}

// encodeAuditLine renders record plus the injected source tag as a single
// newline-terminated JSON object. A "source" field inside record is shadowed
// in the log only; the index keeps the caller's value.
func encodeAuditLine(source Source, record core.Record) ([]byte, error) {
	line := make(map[string]any, len(record)+1)
	for k, v := range record {
		line[k] = v
	}
	line[sourceField] = string(source)
	b, err := json.Marshal(line)
	if err != nil {
		return nil, core.InvalidArgumentf("record is not JSON encodable: %v", err)
	}
	return append(b, '\n'), nil
}

// encodeDeleteLine renders the audit line recorded for a deleted key.
func encodeDeleteLine(key string) ([]byte, error) {
	return encodeAuditLine(SourceDelete, core.Record{keyField: key})
}

// ReadAudit decodes the audit log at path and calls fn for every entry in
// file order. Decoding stops at the first malformed line or the first error
// returned by fn. The store never reads its own log; this is for operators.
func ReadAudit(path string, fn func(AuditEntry) error) error {
	f, err := os.Open(path)
	if err != nil {
		return &core.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()
	return DecodeAudit(f, fn)
}

// DecodeAudit is ReadAudit over an arbitrary reader.
func DecodeAudit(r io.Reader, fn func(AuditEntry) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec core.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("audit line %d: %w", line, err)
		}
		entry := AuditEntry{Line: line, Record: rec}
		if s, ok := rec[sourceField].(string); ok {
			entry.Source = Source(s)
			delete(rec, sourceField)
		}
		if entry.Source == SourceDelete {
			entry.Key, _ = rec[keyField].(string)
			delete(rec, keyField)
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("audit line %d: %w", line+1, err)
		}
		return &core.IOError{Op: "read", Err: err}
	}
	return nil
}

package transcript

import (
	"time"

	"github.com/hupe1980/meshkit/core"
)

// Record fields.
const (
	FieldTranscript   = "transcript"
	FieldMessages     = "messages"
	FieldMessageCount = "message_count"
	FieldStartedAt    = "started_at"
	FieldEndedAt      = "ended_at"
)

// Record converts the messages kept by the options into a history record
// holding the rendered transcript and a JSON-compatible message list.
func Record(msgs []core.Message, optFns ...func(o *Options)) core.Record {
	opts := newOptions(optFns)
	kept := filter(msgs, opts)

	rendered := Format(msgs, optFns...)
	list := make([]any, 0, len(kept))
	var first, last time.Time
	for _, m := range kept {
		entry := map[string]any{
			"id":        m.ID,
			"topic":     m.Topic,
			"author":    author(m),
			"role":      m.Role(),
			"timestamp": m.Timestamp.UTC().Format(time.RFC3339Nano),
			"text":      m.Text(),
		}
		if len(m.Metadata) > 0 {
			md := make(map[string]any, len(m.Metadata))
			for k, v := range m.Metadata {
				md[k] = v
			}
			entry["metadata"] = md
		}
		list = append(list, entry)
		if first.IsZero() || m.Timestamp.Before(first) {
			first = m.Timestamp
		}
		if m.Timestamp.After(last) {
			last = m.Timestamp
		}
	}

	rec := core.Record{
		FieldTranscript:   rendered,
		FieldMessages:     list,
		FieldMessageCount: len(list),
	}
	if len(list) > 0 {
		rec[FieldStartedAt] = first.UTC().Format(time.RFC3339)
		rec[FieldEndedAt] = last.UTC().Format(time.RFC3339)
	}
	return rec
}

// Save stores the transcript record under key.
func Save(store core.HistoryStore, key string, msgs []core.Message, optFns ...func(o *Options)) error {
	return store.Store(key, Record(msgs, optFns...))
}

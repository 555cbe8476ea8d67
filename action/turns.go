package action

import "github.com/hupe1980/meshkit/core"

// Turn is one conversational exchange persisted in a session's history record.
type Turn struct {
	Role       string
	Text       string
	Kind       Kind
	ArtifactID string
}

// Turns extracts the turns stored under FieldTurns. It accepts both the
// in-memory shape ([]map[string]any) and the JSON-decoded shape ([]any) and
// skips malformed entries, so a history written by another agent never fails
// an action.
func Turns(rec core.Record) []Turn {
	var raw []map[string]any
	switch v := rec[FieldTurns].(type) {
	case []map[string]any:
		raw = v
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				raw = append(raw, m)
			}
		}
	}
	turns := make([]Turn, 0, len(raw))
	for _, m := range raw {
		role, _ := m["role"].(string)
		text, _ := m["text"].(string)
		if role == "" || text == "" {
			continue
		}
		kind, _ := m["kind"].(string)
		id, _ := m["artifact_id"].(string)
		turns = append(turns, Turn{Role: role, Text: text, Kind: Kind(kind), ArtifactID: id})
	}
	return turns
}

// encodeTurns renders turns as JSON-compatible values for storage.
func encodeTurns(turns []Turn) []any {
	out := make([]any, len(turns))
	for i, t := range turns {
		m := map[string]any{"role": t.Role, "text": t.Text}
		if t.Kind != "" {
			m["kind"] = string(t.Kind)
		}
		if t.ArtifactID != "" {
			m["artifact_id"] = t.ArtifactID
		}
		out[i] = m
	}
	return out
}

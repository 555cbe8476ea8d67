package action

import (
	"context"
	"fmt"
)

// Document is source material fetched for an action.
type Document struct {
	System   string         `json:"system"` // confluence, jira, github, ...
	Ref      string         `json:"ref"`
	Title    string         `json:"title"`
	URL      string         `json:"url,omitempty"`
	Body     string         `json:"body"`
	Items    []string       `json:"items,omitempty"` // issues, changes, bullet points
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Source fetches a document by reference (page id, issue query, release tag).
// Clients for the third-party systems live outside this module and plug in
// through this interface.
type Source interface {
	Fetch(ctx context.Context, ref string) (Document, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, ref string) (Document, error)

// Fetch implements Source.
func (f SourceFunc) Fetch(ctx context.Context, ref string) (Document, error) { return f(ctx, ref) }

// StaticSource serves documents from a fixed map keyed by reference.
type StaticSource map[string]Document

// Fetch implements Source.
func (s StaticSource) Fetch(ctx context.Context, ref string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	doc, ok := s[ref]
	if !ok {
		return Document{}, fmt.Errorf("document %q not found", ref)
	}
	if doc.Ref == "" {
		doc.Ref = ref
	}
	return doc, nil
}

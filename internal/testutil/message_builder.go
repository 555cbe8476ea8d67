package testutil

import (
	"time"

	"github.com/hupe1980/meshkit/core"
)

// MessageBuilder provides a fluent helper for constructing mesh messages in tests.
// Example:
//
//	msg := NewMessageBuilder().Topic("drafts").Author("writer").Text("hello").Build()
//
// Chain only the parts you need; sensible defaults are applied.
type MessageBuilder struct {
	id        string
	topic     string
	author    string
	role      string
	texts     []string
	data      []map[string]any
	timestamp time.Time
	metadata  map[string]string
}

// NewMessageBuilder creates a builder with default author "agent" on topic "default".
func NewMessageBuilder() *MessageBuilder {
	return &MessageBuilder{author: "agent", topic: "default"}
}

// ID overrides the generated message ID (chainable).
func (b *MessageBuilder) ID(id string) *MessageBuilder { b.id = id; return b }

// Topic sets the pub/sub topic (chainable).
func (b *MessageBuilder) Topic(t string) *MessageBuilder { b.topic = t; return b }

// Author sets the publishing agent (chainable).
func (b *MessageBuilder) Author(a string) *MessageBuilder { b.author = a; return b }

// Role overrides the content role; defaults to user for author "user" and assistant otherwise (chainable).
func (b *MessageBuilder) Role(r string) *MessageBuilder { b.role = r; return b }

// Text appends a text part (chainable).
func (b *MessageBuilder) Text(t string) *MessageBuilder { b.texts = append(b.texts, t); return b }

// Data appends a structured data part (chainable).
func (b *MessageBuilder) Data(d map[string]any) *MessageBuilder { b.data = append(b.data, d); return b }

// At sets the message timestamp (chainable).
func (b *MessageBuilder) At(ts time.Time) *MessageBuilder { b.timestamp = ts; return b }

// Meta sets a metadata key (chainable).
func (b *MessageBuilder) Meta(k, v string) *MessageBuilder {
	if b.metadata == nil {
		b.metadata = map[string]string{}
	}
	b.metadata[k] = v
	return b
}

// Build materializes the message. Messages without parts have nil content.
func (b *MessageBuilder) Build() core.Message {
	m := core.Message{
		ID:        b.id,
		Topic:     b.topic,
		Author:    b.author,
		Timestamp: b.timestamp,
		Metadata:  b.metadata,
	}
	if m.ID == "" {
		m.ID = core.NewID()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	}
	if len(b.texts) == 0 && len(b.data) == 0 {
		return m
	}
	role := b.role
	if role == "" {
		role = "assistant"
		if b.author == "user" {
			role = "user"
		}
	}
	c := &core.Content{Role: role}
	for _, t := range b.texts {
		c.Parts = append(c.Parts, core.TextPart{Text: t})
	}
	for _, d := range b.data {
		c.Parts = append(c.Parts, core.DataPart{Data: d})
	}
	m.Content = c
	return m
}

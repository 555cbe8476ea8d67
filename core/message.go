package core

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single pub/sub message observed on the agent mesh. Messages
// are the input of the transcript formatter and are treated as immutable once
// published.
type Message struct {
	ID        string            `json:"id"`
	Topic     string            `json:"topic"`
	Author    string            `json:"author"`
	Timestamp time.Time         `json:"timestamp"`
	Content   *Content          `json:"content,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// NewMessage creates a text message published by author on topic. The role
// defaults to "assistant" unless the author is "user".
func NewMessage(topic, author, text string) Message {
	role := "assistant"
	if author == "user" {
		role = "user"
	}
	c := NewTextContent(role, text)
	return Message{
		ID:        NewID(),
		Topic:     topic,
		Author:    author,
		Timestamp: time.Now().UTC(),
		Content:   &c,
	}
}

// NewID generates a new unique identifier for messages and invocations.
func NewID() string { return uuid.NewString() }

// Text returns the concatenated text parts, or "" for content-less messages.
func (m Message) Text() string {
	if m.Content == nil {
		return ""
	}
	return m.Content.Text()
}

// Role returns the content role, or "" for content-less messages.
func (m Message) Role() string {
	if m.Content == nil {
		return ""
	}
	return m.Content.Role
}

// UnixSeconds returns the timestamp as fractional seconds since Unix epoch.
func (m Message) UnixSeconds() float64 { return float64(m.Timestamp.UnixNano()) / 1e9 }

package core

import "time"

// Artifact is a piece of generated content (blog post, slide deck, release
// notification) kept next to the session history that produced it.
type Artifact struct {
	ID        string    `json:"id"` // ULID, sorts by creation time
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

// ArtifactStore defines the interface for artifact persistence. Implementations
// should be thread-safe and scope artifacts by session key. Short method
// names (Save/Get/List/Delete) mirror the history store.
type ArtifactStore interface {
	Save(sessionKey string, a Artifact) error
	Get(sessionKey, artifactID string) (Artifact, error)
	List(sessionKey string) ([]string, error)
	Delete(sessionKey, artifactID string) error
}

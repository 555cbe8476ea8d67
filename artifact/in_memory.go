package artifact

import (
	"sort"
	"sync"

	"github.com/hupe1980/meshkit/core"
)

// InMemoryStore keeps artifacts in a nested map guarded by an RWMutex.
//
// Layout: sessionKey -> artifactID -> artifact
//
// There are no retention limits or size quotas; artifacts live as long as the
// process.
type InMemoryStore struct {
	mu        sync.RWMutex
	artifacts map[string]map[string]core.Artifact
}

// NewInMemoryStore returns an empty in-memory artifact store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{artifacts: make(map[string]map[string]core.Artifact)}
}

// Save stores (or overwrites) the artifact under its ID for the session.
func (a *InMemoryStore) Save(sessionKey string, art core.Artifact) error {
	if sessionKey == "" || art.ID == "" {
		return core.InvalidArgumentf("artifact session key and id must not be empty")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.artifacts[sessionKey]; !exists {
		a.artifacts[sessionKey] = make(map[string]core.Artifact)
	}
	a.artifacts[sessionKey][art.ID] = art
	return nil
}

// Get returns the stored artifact or ErrNotFound.
func (a *InMemoryStore) Get(sessionKey, artifactID string) (core.Artifact, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	art, ok := a.artifacts[sessionKey][artifactID]
	if !ok {
		return core.Artifact{}, ErrNotFound
	}
	return art, nil
}

// List returns the artifact ids of the session in ascending order, which for
// ULIDs is creation order.
func (a *InMemoryStore) List(sessionKey string) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	m := a.artifacts[sessionKey]
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes the artifact if present or returns ErrNotFound.
func (a *InMemoryStore) Delete(sessionKey, artifactID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	m, ok := a.artifacts[sessionKey]
	if !ok {
		return ErrNotFound
	}
	if _, ok := m[artifactID]; !ok {
		return ErrNotFound
	}
	delete(m, artifactID)
	if len(m) == 0 {
		delete(a.artifacts, sessionKey)
	}
	return nil
}

// Package core provides the foundational domain types and contracts used by
// meshkit. It defines:
//
//   - HistoryStore (long-term key/value persistence for session records)
//   - Record (the opaque JSON-compatible value bag stored per key)
//   - ArtifactStore / Artifact (generated content addressed by ULID)
//   - Content / Part (role based model input and output)
//   - Message (a pub/sub message observed on the agent mesh)
//   - ErrInvalidArgument / IOError (the store error taxonomy)
//
// Concrete backends live in sibling packages (history, artifact, model/...) so callers
// can depend on these small interfaces and choose an implementation at wiring
// time without introducing dependency cycles.
package core

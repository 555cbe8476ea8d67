// Package artifact contains implementations of core.ArtifactStore, which keeps
// the content produced by actions addressable by the artifact id recorded in
// the session history.
//
// The interface lives in core so actions depend only on the contract; this
// package provides the in-process backend used by default.
package artifact

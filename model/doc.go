// Package model defines the provider-agnostic abstractions for calling
// language models from meshkit actions.
//
// Core goals:
//   - Unify streaming + non-streaming generation behind a single interface
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (OpenAI, Anthropic) implement Model in sub-packages so actions
// remain decoupled from vendor SDKs.
package model

// Package action implements the content actions hosted by the agent mesh.
//
// Each action fetches a source document (a Confluence page, a set of Jira
// issues, a GitHub release), loads the session's prior context from a
// core.HistoryStore, asks a model.Model to produce a blog post, slide deck or
// release notification, and stores the updated session history for later
// actions. Actions are registered by name in a Registry.
package action

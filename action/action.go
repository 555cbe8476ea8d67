package action

import (
	"context"

	"github.com/hupe1980/meshkit/model"
)

// Input is the request handed to an action by the hosting runtime.
type Input struct {
	SessionKey string // history key; prior turns are loaded from and saved to it
	Ref        string // source document reference
	Audience   string // optional target audience
	Notes      string // optional extra instructions
}

// Result is the artifact produced by an action.
type Result struct {
	InvocationID string            `json:"invocation_id"`
	ArtifactID   string            `json:"artifact_id"`
	Kind         Kind              `json:"kind"`
	Title        string            `json:"title"`
	Text         string            `json:"text"`
	Model        string            `json:"model"`
	Usage        *model.TokenUsage `json:"usage,omitempty"`
}

// Action is a named unit of work invoked by the agent mesh.
type Action interface {
	Name() string
	Description() string
	Run(ctx context.Context, in Input) (Result, error)
}

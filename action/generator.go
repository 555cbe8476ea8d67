package action

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hupe1980/meshkit/core"
	"github.com/hupe1980/meshkit/internal/util"
	"github.com/hupe1980/meshkit/logging"
	"github.com/hupe1980/meshkit/model"
)

// History record fields written by Generator.
const (
	FieldTurns          = "turns"
	FieldLastKind       = "last_kind"
	FieldLastArtifactID = "last_artifact_id"
	FieldUpdatedAt      = "updated_at"
)

// GeneratorOptions configures a Generator.
type GeneratorOptions struct {
	// Name overrides the registered action name (defaults to the kind).
	Name string
	// Instructions overrides the system prompt of the kind.
	Instructions string
	// Template overrides the prompt template of the kind.
	Template string
	// MaxHistoryTurns bounds how many prior turns are sent to the model.
	// Zero sends all of them.
	MaxHistoryTurns int
	// Stream requests a streaming generation.
	Stream bool
	// Artifacts, when set, receives every generated artifact.
	Artifacts core.ArtifactStore
	// Locks serializes runs on the same session key. Generators that share a
	// history store should share one SessionLocks; defaults to a private table.
	Locks *SessionLocks
	// Logger receives action logs (defaults to NoOp).
	Logger logging.Logger
	// Now is the clock used for artifact ids and timestamps.
	Now func() time.Time
}

// Generator is the content action shared by all kinds: fetch, recall,
// prompt, generate, remember.
type Generator struct {
	kind   Kind
	model  model.Model
	store  core.HistoryStore
	source Source
	opts   GeneratorOptions
}

// NewGenerator creates a content action of the given kind.
func NewGenerator(kind Kind, m model.Model, store core.HistoryStore, src Source, optFns ...func(o *GeneratorOptions)) (*Generator, error) {
	p, ok := presets[kind]
	if !ok {
		return nil, core.InvalidArgumentf("unknown action kind %q", kind)
	}
	opts := GeneratorOptions{
		Name:         p.name,
		Instructions: p.instructions,
		Template:     p.template,
		Logger:       logging.NoOpLogger{},
		Now:          time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)
	if opts.Locks == nil {
		opts.Locks = NewSessionLocks()
	}
	if m == nil || store == nil || src == nil {
		return nil, core.InvalidArgumentf("action %s requires a model, a history store and a source", opts.Name)
	}
	return &Generator{kind: kind, model: m, store: store, source: src, opts: opts}, nil
}

// NewBlogPost creates the Confluence-to-blog-post action.
func NewBlogPost(m model.Model, store core.HistoryStore, src Source, optFns ...func(o *GeneratorOptions)) (*Generator, error) {
	return NewGenerator(KindBlogPost, m, store, src, optFns...)
}

// NewSlideDeck creates the Jira-to-slide-deck action.
func NewSlideDeck(m model.Model, store core.HistoryStore, src Source, optFns ...func(o *GeneratorOptions)) (*Generator, error) {
	return NewGenerator(KindSlideDeck, m, store, src, optFns...)
}

// NewReleaseNotes creates the GitHub-release-to-notification action.
func NewReleaseNotes(m model.Model, store core.HistoryStore, src Source, optFns ...func(o *GeneratorOptions)) (*Generator, error) {
	return NewGenerator(KindReleaseNotes, m, store, src, optFns...)
}

// Name implements Action.
func (g *Generator) Name() string { return g.opts.Name }

// Kind returns the artifact kind produced.
func (g *Generator) Kind() Kind { return g.kind }

// Description implements Action.
func (g *Generator) Description() string {
	return fmt.Sprintf("generates a %s with %s", g.kind, g.model.Info().Name)
}

// Run implements Action. Runs on the same session key are serialized through
// GeneratorOptions.Locks, holding the lock from history load to history save;
// writers outside that lock table are not coordinated. The artifact is saved
// before the history record that references it.
func (g *Generator) Run(ctx context.Context, in Input) (Result, error) {
	start := time.Now()
	invocationID := core.NewID()
	logger := g.logger(in.SessionKey, invocationID)

	res, err := g.run(ctx, in, invocationID, logger)
	if l, ok := logger.(*logging.MeshLogger); ok {
		l.LogActionRun(g.Name(), time.Since(start), err)
	} else if err != nil {
		logger.Error("Action failed", "action", g.Name(), "session_key", in.SessionKey, "error", err)
	} else {
		logger.Info("Action completed", "action", g.Name(), "session_key", in.SessionKey, "artifact_id", res.ArtifactID)
	}
	return res, err
}

func (g *Generator) run(ctx context.Context, in Input, invocationID string, logger logging.Logger) (Result, error) {
	if in.SessionKey == "" {
		return Result{}, core.InvalidArgumentf("session key must not be empty")
	}

	doc, err := g.source.Fetch(ctx, in.Ref)
	if err != nil {
		return Result{}, fmt.Errorf("fetch %q: %w", in.Ref, err)
	}

	unlock := g.opts.Locks.Lock(in.SessionKey)
	defer unlock()

	hist, err := g.store.Retrieve(in.SessionKey)
	if err != nil {
		return Result{}, fmt.Errorf("load history: %w", err)
	}
	if hist == nil {
		hist = core.Record{}
	}
	turns := Turns(hist)

	prompt, err := util.RenderTemplate(g.opts.Template, map[string]any{
		"kind":     string(g.kind),
		"title":    doc.Title,
		"url":      doc.URL,
		"body":     doc.Body,
		"items":    doc.Items,
		"system":   doc.System,
		"audience": in.Audience,
		"notes":    in.Notes,
	})
	if err != nil {
		return Result{}, fmt.Errorf("render prompt: %w", err)
	}

	contents := make([]core.Content, 0, len(turns)+1)
	for _, t := range recent(turns, g.opts.MaxHistoryTurns) {
		contents = append(contents, core.NewTextContent(t.Role, t.Text))
	}
	contents = append(contents, core.NewTextContent("user", prompt))

	genStart := time.Now()
	out, err := model.Collect(ctx, g.model, model.Request{
		Instructions: g.opts.Instructions,
		Contents:     contents,
		Stream:       g.opts.Stream,
	})
	if l, ok := logger.(*logging.MeshLogger); ok {
		tokens := 0
		if out.Usage != nil {
			tokens = out.Usage.TotalTokens
		}
		l.LogModelCall(g.model.Info().Name, tokens, time.Since(genStart), err)
	}
	if err != nil {
		return Result{}, fmt.Errorf("generate %s: %w", g.kind, err)
	}

	now := g.opts.Now()
	artifactID := ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()

	turns = append(turns,
		Turn{Role: "user", Text: prompt, Kind: g.kind},
		Turn{Role: "assistant", Text: out.Text, Kind: g.kind, ArtifactID: artifactID},
	)
	hist[FieldTurns] = encodeTurns(turns)
	hist[FieldLastKind] = string(g.kind)
	hist[FieldLastArtifactID] = artifactID
	hist[FieldUpdatedAt] = now.UTC().Format(time.RFC3339)

	if g.opts.Artifacts != nil {
		err := g.opts.Artifacts.Save(in.SessionKey, core.Artifact{
			ID:        artifactID,
			Kind:      string(g.kind),
			Title:     doc.Title,
			Text:      out.Text,
			Model:     g.model.Info().Name,
			CreatedAt: now.UTC(),
		})
		if err != nil {
			return Result{}, fmt.Errorf("save artifact: %w", err)
		}
	}
	if err := g.store.Store(in.SessionKey, hist); err != nil {
		return Result{}, fmt.Errorf("save history: %w", err)
	}

	return Result{
		InvocationID: invocationID,
		ArtifactID:   artifactID,
		Kind:         g.kind,
		Title:        doc.Title,
		Text:         out.Text,
		Model:        g.model.Info().Name,
		Usage:        out.Usage,
	}, nil
}

func (g *Generator) logger(sessionKey, invocationID string) logging.Logger {
	if l, ok := g.opts.Logger.(*logging.MeshLogger); ok {
		return l.WithComponent("action").WithSession(sessionKey, invocationID)
	}
	return g.opts.Logger
}

func recent(turns []Turn, n int) []Turn {
	if n <= 0 || len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}

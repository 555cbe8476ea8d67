// Package meshkit bundles the content actions, the history store and the
// transcript formatter behind one façade. Most applications:
//  1. Create a Kit via New(), supplying a model and a document source
//  2. Run actions by name (blog_post, slide_deck, release_notes)
//  3. Inspect or persist session history through History() and SaveTranscript
//
// The history backend is selected by Options.HistoryConfig (memory by
// default) unless a store is passed in directly.
package meshkit

import (
	"context"

	"github.com/hupe1980/meshkit/action"
	"github.com/hupe1980/meshkit/artifact"
	"github.com/hupe1980/meshkit/core"
	"github.com/hupe1980/meshkit/history"
	"github.com/hupe1980/meshkit/logging"
	"github.com/hupe1980/meshkit/model"
	"github.com/hupe1980/meshkit/transcript"
)

// Options configures the Kit instance.
type Options struct {
	// HistoryConfig selects the history backend when HistoryStore is nil.
	HistoryConfig history.Config

	// HistoryStore overrides the backend built from HistoryConfig. The Kit
	// does not close stores it did not create.
	HistoryStore core.HistoryStore

	// ArtifactStore keeps generated content (defaults to in-memory).
	ArtifactStore core.ArtifactStore

	// Model drives all content actions. Required.
	Model model.Model

	// Source fetches the documents actions work on. Required.
	Source action.Source

	// MaxHistoryTurns bounds the prior turns sent with each action (0 = all).
	MaxHistoryTurns int

	// Stream requests streaming generations.
	Stream bool

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Kit is the high-level façade aggregating the history store and actions.
type Kit struct {
	opts      Options
	history   core.HistoryStore
	ownsStore bool
	actions   *action.Registry
}

// New creates a Kit and registers the built-in content actions.
func New(optFns ...func(o *Options)) (*Kit, error) {
	opts := Options{
		ArtifactStore: artifact.NewInMemoryStore(),
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)

	if opts.Model == nil {
		return nil, core.InvalidArgumentf("meshkit: a model is required")
	}
	if opts.Source == nil {
		return nil, core.InvalidArgumentf("meshkit: a document source is required")
	}

	store, owns := opts.HistoryStore, false
	if store == nil {
		s, err := history.New(opts.HistoryConfig)
		if err != nil {
			return nil, err
		}
		store, owns = s, true
	}

	logged := history.WithLogging(store, component(opts.Logger, "history"))
	k := &Kit{opts: opts, history: logged, ownsStore: owns, actions: action.NewRegistry()}

	actionLogger := component(opts.Logger, "action")
	locks := action.NewSessionLocks()
	for _, kind := range []action.Kind{action.KindBlogPost, action.KindSlideDeck, action.KindReleaseNotes} {
		g, err := action.NewGenerator(kind, opts.Model, logged, opts.Source, func(o *action.GeneratorOptions) {
			o.MaxHistoryTurns = opts.MaxHistoryTurns
			o.Stream = opts.Stream
			o.Logger = actionLogger
			o.Artifacts = opts.ArtifactStore
			o.Locks = locks
		})
		if err != nil {
			k.Close()
			return nil, err
		}
		if err := k.actions.Register(g); err != nil {
			k.Close()
			return nil, err
		}
	}
	return k, nil
}

// Run invokes the named action synchronously.
func (k *Kit) Run(ctx context.Context, name string, in action.Input) (action.Result, error) {
	return k.actions.Run(ctx, name, in)
}

// Register adds a custom action next to the built-in ones.
func (k *Kit) Register(actions ...action.Action) error { return k.actions.Register(actions...) }

// History returns the (logging-wrapped) history store shared by all actions.
func (k *Kit) History() core.HistoryStore { return k.history }

// Artifacts returns the store holding generated content.
func (k *Kit) Artifacts() core.ArtifactStore { return k.opts.ArtifactStore }

// Actions returns the action registry.
func (k *Kit) Actions() *action.Registry { return k.actions }

// SaveTranscript renders msgs and stores the transcript record under key.
func (k *Kit) SaveTranscript(key string, msgs []core.Message, optFns ...func(o *transcript.Options)) error {
	return transcript.Save(k.history, key, msgs, optFns...)
}

// Close releases the history store if the Kit created it.
func (k *Kit) Close() error {
	if !k.ownsStore {
		return nil
	}
	return history.Close(k.history)
}

func component(l logging.Logger, name string) logging.Logger {
	if ml, ok := l.(*logging.MeshLogger); ok {
		return ml.WithComponent(name)
	}
	return l
}

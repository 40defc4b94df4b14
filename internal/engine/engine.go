// Package engine implements the tag-driven dialogue state machine.
//
// The engine is constructed from an immutable Script (the domain's states,
// finish manners and phrase table) and holds no session state of its own:
// all mutable conversation state lives in a models.ConversationContext
// passed into every Respond call. Handlers drive the conversation through
// the Dispatch they receive, calling exactly one of GoToState, Finish or
// Confused per utterance.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/BTreeMap/DialogPipe/internal/models"
	"github.com/BTreeMap/DialogPipe/internal/tagger"
)

// ConfusedRetryLimit bounds consecutive trips through the confused state
// before the engine escalates to the script's fail manner.
const ConfusedRetryLimit = 2

// DefaultEndMarker is appended to the response of a terminal finish when
// the script does not configure its own marker.
const DefaultEndMarker = "[conversation ended]"

// EntryFunc produces the utterance spoken when a state is entered. It may
// read context slots for interpolation (e.g. to render a looked-up entity)
// but must not mutate the context.
type EntryFunc func(c *models.ConversationContext) (string, error)

// Handler processes one utterance while its state is current. It must
// produce its response through the Dispatch: one GoToState, Finish or
// Confused call.
type Handler func(d *Dispatch, message string, tags models.TagCount) (string, error)

// FinishFunc produces the utterance for one finish manner.
type FinishFunc func(c *models.ConversationContext) (string, error)

// StateSpec registers one conversation state. Every state except the
// default needs both an entry producer and a response handler; the default
// state needs only a response handler.
type StateSpec struct {
	OnEnter EntryFunc
	Respond Handler
}

// FinishSpec registers one finish manner. Terminal manners end the whole
// conversation; the rest return control to the default state silently so
// the user can continue.
type FinishSpec struct {
	Produce  FinishFunc
	Terminal bool
}

// Script is the immutable domain configuration the engine dispatches over.
// It replaces any ambient/global registration: everything the engine can do
// is declared here and validated exhaustively at construction.
type Script struct {
	// Default is the idle state: both the initial state and the rest state
	// after any finish.
	Default models.StateID
	// Confused is the recovery state entered on unrecognized input. It is
	// owned by the engine (its entry utterance is ConfusedPrompt and its
	// response handling is the backtrack re-dispatch) and must not appear
	// in States.
	Confused models.StateID
	// ConfusedPrompt is the fixed re-ask utterance spoken on entering the
	// confused state.
	ConfusedPrompt string
	// FailManner is the finish manner used when confusion escalates.
	FailManner models.FinishManner
	// EndMarker is appended after a terminal finish utterance. Empty means
	// DefaultEndMarker.
	EndMarker string
	States    map[models.StateID]StateSpec
	Finishes  map[models.FinishManner]FinishSpec
	Phrases   []models.PhraseRule
}

// Engine dispatches utterances against a validated Script. It is safe to
// share across concurrent sessions as long as each ConversationContext sees
// at most one in-flight Respond call at a time.
type Engine struct {
	script Script
	tagger *tagger.PhraseTagger
}

// New validates the script and compiles its phrase table. Every missing or
// misplaced registration is a configuration error reported here, at
// construction, never at first use.
func New(script Script) (*Engine, error) {
	if script.Default == "" {
		return nil, fmt.Errorf("script declares no default state")
	}
	if script.Confused == "" {
		return nil, fmt.Errorf("script declares no confused state")
	}
	if script.Confused == script.Default {
		return nil, fmt.Errorf("confused state %q must differ from the default state", script.Confused)
	}
	if script.ConfusedPrompt == "" {
		return nil, fmt.Errorf("script declares no confused prompt")
	}
	if _, ok := script.States[script.Confused]; ok {
		return nil, fmt.Errorf("confused state %q must not be registered in States; the engine owns it", script.Confused)
	}
	def, ok := script.States[script.Default]
	if !ok {
		return nil, fmt.Errorf("default state %q is not registered", script.Default)
	}
	if def.Respond == nil {
		return nil, fmt.Errorf("default state %q has no response handler", script.Default)
	}
	if def.OnEnter != nil {
		// Unreachable by protocol (GoToState rejects the default state),
		// so surface it rather than silently carrying dead config.
		slog.Warn("default state has an entry producer that can never run", "state", script.Default)
	}
	for id, spec := range script.States {
		if id == script.Default {
			continue
		}
		if spec.OnEnter == nil {
			return nil, fmt.Errorf("state %q has no entry producer", id)
		}
		if spec.Respond == nil {
			return nil, fmt.Errorf("state %q has no response handler", id)
		}
	}
	if script.FailManner == "" {
		return nil, fmt.Errorf("script declares no fail manner")
	}
	if _, ok := script.Finishes[script.FailManner]; !ok {
		return nil, fmt.Errorf("fail manner %q is not registered", script.FailManner)
	}
	for manner, spec := range script.Finishes {
		if spec.Produce == nil {
			return nil, fmt.Errorf("finish manner %q has no utterance producer", manner)
		}
	}
	if script.EndMarker == "" {
		script.EndMarker = DefaultEndMarker
	}
	pt, err := tagger.New(script.Phrases)
	if err != nil {
		return nil, fmt.Errorf("phrase table: %w", err)
	}
	slog.Debug("Engine constructed", "states", len(script.States), "finishes", len(script.Finishes), "phrases", len(script.Phrases))
	return &Engine{script: script, tagger: pt}, nil
}

// DefaultState returns the script's idle state, for hosts creating fresh
// conversation contexts.
func (e *Engine) DefaultState() models.StateID {
	return e.script.Default
}

// EndMarker returns the marker appended after terminal finishes, for hosts
// that detect end-of-conversation in responses.
func (e *Engine) EndMarker() string {
	return e.script.EndMarker
}

// Tag exposes the compiled phrase table for diagnostics and tests.
func (e *Engine) Tag(utterance string) models.TagCount {
	return e.tagger.Tag(utterance)
}

// Respond is the engine's sole entry point: tag the utterance, look up the
// current state's handler and let it route the conversation. When the
// current state is the confused state the new utterance is re-dispatched as
// if the conversation were still in the previous state, so recovery always
// resumes the topic that was active before confusion began.
func (e *Engine) Respond(c *models.ConversationContext, utterance string) (string, error) {
	tags := e.tagger.Tag(utterance)
	state := c.Current
	if state == e.script.Confused {
		state = c.Previous
		slog.Debug("Engine backtracking from confused state", "resume", state)
	}
	spec, ok := e.script.States[state]
	if !ok {
		slog.Error("Engine has no handler for state", "state", state)
		return "", fmt.Errorf("no response handler registered for state %q", state)
	}
	slog.Debug("Engine dispatching", "state", state, "tags", len(tags))
	d := &Dispatch{engine: e, ctx: c}
	resp, err := spec.Respond(d, utterance, tags)
	if err != nil {
		slog.Error("Engine handler failed", "state", state, "error", err)
		return "", err
	}
	return resp, nil
}

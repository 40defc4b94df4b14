package engine

import (
	"fmt"
	"log/slog"

	"github.com/BTreeMap/DialogPipe/internal/models"
)

// Dispatch is handed to response handlers for the duration of one Respond
// call. It carries the conversation context and exposes the three ways a
// handler may route the conversation: transition to another state, finish
// the current sub-flow, or fall back to the confusion recovery path.
type Dispatch struct {
	engine *Engine
	ctx    *models.ConversationContext
}

// Context returns the conversation context being dispatched.
func (d *Dispatch) Context() *models.ConversationContext {
	return d.ctx
}

// GoToState enters the target state: it invokes the target's entry producer
// and returns its utterance as the response. Targeting the default state,
// the confused state or an unregistered state is a configuration error in
// the domain script and fails immediately.
func (d *Dispatch) GoToState(target models.StateID) (string, error) {
	s := d.engine.script
	if target == s.Default {
		slog.Error("GoToState called with the default state", "state", target)
		return "", fmt.Errorf("do not enter the default state %q directly; use Finish", target)
	}
	if target == s.Confused {
		slog.Error("GoToState called with the confused state", "state", target)
		return "", fmt.Errorf("do not enter the confused state %q directly; use Confused", target)
	}
	spec, ok := s.States[target]
	if !ok {
		slog.Error("GoToState called with unknown state", "state", target)
		return "", fmt.Errorf("state %q is not registered", target)
	}
	resp, err := spec.OnEnter(d.ctx)
	if err != nil {
		slog.Error("State entry producer failed", "state", target, "error", err)
		return "", fmt.Errorf("enter state %q: %w", target, err)
	}
	slog.Info("Conversation transition", "from", d.ctx.Current, "to", target)
	// A backtrack transition leaves the confused state behind; the previous
	// state keeps pointing at the pre-confusion topic, never at confusion
	// itself.
	if d.ctx.Current != s.Confused {
		d.ctx.Previous = d.ctx.Current
	}
	d.ctx.Current = target
	d.ctx.ConfusedRetries = 0
	return resp, nil
}

// Confused is the recovery path for unrecognized input. The first trip
// enters the confused state and yields the script's fixed re-ask utterance;
// the conversation's previous state is preserved (never overwritten with
// the confused state itself) so that backtracking always points at the
// topic that was active before confusion began. Once the retry counter
// reaches ConfusedRetryLimit the engine finishes with the script's fail
// manner instead, so confusing input can never loop forever.
func (d *Dispatch) Confused() (string, error) {
	c := d.ctx
	c.ConfusedRetries++
	if c.ConfusedRetries >= ConfusedRetryLimit {
		slog.Info("Confusion retry limit reached, escalating", "limit", ConfusedRetryLimit)
		c.ConfusedRetries = 0
		return d.Finish(d.engine.script.FailManner)
	}
	if c.Current != d.engine.script.Confused {
		c.Previous = c.Current
	}
	c.Current = d.engine.script.Confused
	slog.Info("Conversation entered confused state", "previous", c.Previous, "retries", c.ConfusedRetries)
	return d.engine.script.ConfusedPrompt, nil
}

// Finish concludes the current sub-flow in the given manner and returns the
// conversation to the default state. Terminal manners additionally clear
// the finish-pending flag and append the end-of-conversation marker;
// non-terminal manners leave the flag set so the default state's handler
// can treat the next utterance (e.g. an acknowledgement) specially.
// An unregistered manner is a configuration error and fails immediately.
func (d *Dispatch) Finish(manner models.FinishManner) (string, error) {
	s := d.engine.script
	spec, ok := s.Finishes[manner]
	if !ok {
		slog.Error("Finish called with unknown manner", "manner", manner)
		return "", fmt.Errorf("finish manner %q is not registered", manner)
	}
	c := d.ctx
	c.FinishPending = true
	resp, err := spec.Produce(c)
	if err != nil {
		slog.Error("Finish utterance producer failed", "manner", manner, "error", err)
		return "", fmt.Errorf("finish %q: %w", manner, err)
	}
	slog.Info("Conversation finished sub-flow", "manner", manner, "terminal", spec.Terminal, "from", c.Current)
	c.ConfusedRetries = 0
	c.Current = s.Default
	if spec.Terminal {
		c.FinishPending = false
		return resp + "\n" + s.EndMarker, nil
	}
	return resp, nil
}

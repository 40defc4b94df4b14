// Package models defines conversation state structures for DialogPipe sessions.
package models

// ConversationContext holds all mutable state of one conversation session.
// It is created once per session, mutated only by the dialogue engine during
// dispatch (slot clearing excepted, which is the hosting collaborator's job
// on session reset), and discarded with the session. The engine itself holds
// no session state, so many contexts can be served concurrently as long as
// each context sees at most one in-flight Respond call at a time.
type ConversationContext struct {
	Current         StateID           `json:"current_state"`
	Previous        StateID           `json:"previous_state"`
	FinishPending   bool              `json:"finish_pending"`
	Greeted         bool              `json:"greeted"`
	ConfusedRetries int               `json:"confused_retries"`
	Slots           map[string]string `json:"slots,omitempty"`
}

// NewConversationContext creates a fresh context resting in the default state.
func NewConversationContext(defaultState StateID) *ConversationContext {
	return &ConversationContext{
		Current:  defaultState,
		Previous: defaultState,
		Slots:    make(map[string]string),
	}
}

// Slot returns the value of a named slot and whether it has been set.
func (c *ConversationContext) Slot(name string) (string, bool) {
	v, ok := c.Slots[name]
	return v, ok
}

// SetSlot records an extracted value. Slots are monotonic within a sub-flow:
// handlers read them back rather than re-deriving them.
func (c *ConversationContext) SetSlot(name, value string) {
	if c.Slots == nil {
		c.Slots = make(map[string]string)
	}
	c.Slots[name] = value
}

// ClearSlots drops all extracted slots. Slots are stale once the
// conversation returns to the default state; the session owner calls this
// on reset.
func (c *ConversationContext) ClearSlots() {
	c.Slots = make(map[string]string)
}

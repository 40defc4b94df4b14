package engine

import "github.com/BTreeMap/DialogPipe/internal/models"

// Predicate tests an utterance's tags and the conversation context.
type Predicate func(tags models.TagCount, c *models.ConversationContext) bool

// Rule pairs a predicate with the action taken when it holds.
type Rule struct {
	When Predicate
	Then Handler
}

// RuleList is an ordered decision list. Evaluation is top-to-bottom and
// commits to the first rule whose predicate holds; rule order, not tag
// count magnitude, decides ties. When no rule matches the handler falls
// back to the confusion recovery path.
type RuleList []Rule

// Respond implements Handler for a RuleList.
func (rl RuleList) Respond(d *Dispatch, message string, tags models.TagCount) (string, error) {
	for _, r := range rl {
		if r.When(tags, d.Context()) {
			return r.Then(d, message, tags)
		}
	}
	return d.Confused()
}

// HasTag matches when the tag occurred at least once.
func HasTag(t models.Tag) Predicate {
	return func(tags models.TagCount, _ *models.ConversationContext) bool {
		return tags.Has(t)
	}
}

// HasAnyTag matches when any of the tags occurred.
func HasAnyTag(ts ...models.Tag) Predicate {
	return func(tags models.TagCount, _ *models.ConversationContext) bool {
		return tags.HasAny(ts...)
	}
}

// All matches when every predicate matches.
func All(ps ...Predicate) Predicate {
	return func(tags models.TagCount, c *models.ConversationContext) bool {
		for _, p := range ps {
			if !p(tags, c) {
				return false
			}
		}
		return true
	}
}

// Any matches unconditionally, for catch-all rules at the end of a list.
func Any() Predicate {
	return func(_ models.TagCount, _ *models.ConversationContext) bool {
		return true
	}
}

// FinishPending matches while a non-terminal finish is awaiting
// acknowledgement in the default state.
func FinishPending() Predicate {
	return func(_ models.TagCount, c *models.ConversationContext) bool {
		return c.FinishPending
	}
}

// ToState is the action that transitions to the target state.
func ToState(target models.StateID) Handler {
	return func(d *Dispatch, _ string, _ models.TagCount) (string, error) {
		return d.GoToState(target)
	}
}

// FinishWith is the action that finishes the sub-flow in the given manner.
func FinishWith(manner models.FinishManner) Handler {
	return func(d *Dispatch, _ string, _ models.TagCount) (string, error) {
		return d.Finish(manner)
	}
}

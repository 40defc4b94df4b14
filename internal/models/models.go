// Package models defines the core dialogue types shared across DialogPipe components.
package models

// Tag is a canonical label extracted from user text (e.g. "sad", "yes", a
// professor name). Tags carry no ordering; several tags may co-occur in one
// utterance.
type Tag string

// TagCount maps each Tag to the number of configured phrases that matched it
// in a single utterance. An absent tag means a count of zero; counts are
// never negative.
type TagCount map[Tag]int

// Count returns the occurrence count for a tag (0 when absent).
func (tc TagCount) Count(t Tag) int {
	return tc[t]
}

// Has reports whether the tag occurred at least once.
func (tc TagCount) Has(t Tag) bool {
	return tc[t] > 0
}

// HasAny reports whether any of the given tags occurred.
func (tc TagCount) HasAny(tags ...Tag) bool {
	for _, t := range tags {
		if tc[t] > 0 {
			return true
		}
	}
	return false
}

// Add increments each of the given tags by one.
func (tc TagCount) Add(tags ...Tag) {
	for _, t := range tags {
		tc[t]++
	}
}

// PhraseRule associates a literal phrase with the tags it triggers.
// Every configured phrase must map to at least one tag.
type PhraseRule struct {
	Phrase string `json:"phrase"`
	Tags   []Tag  `json:"tags"`
}

// StateID identifies a point in the conversation's control flow.
type StateID string

// FinishManner identifies why/how a sub-flow concluded (e.g. "success",
// "fail", "thanks"). A subset of manners are terminal: they end the whole
// conversation rather than merely returning to the default state.
type FinishManner string

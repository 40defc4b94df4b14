// Package tagger turns free-text utterances into tag counts using a
// configured phrase table.
package tagger

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/BTreeMap/DialogPipe/internal/models"
)

// compiledRule is a phrase rule with its word-boundary pattern precompiled.
type compiledRule struct {
	phrase string
	re     *regexp.Regexp
	tags   []models.Tag
}

// PhraseTagger maps raw text to a frequency map of tags. Matching is
// case-insensitive, literal (configured phrases are never interpreted as
// pattern syntax) and whole-word: the phrase's first and last characters
// must sit on word boundaries, so "a little" matches "just a little tired"
// but "cat" does not match inside "category". A phrase contributes one
// increment per associated tag regardless of how many times it literally
// recurs in the text.
type PhraseTagger struct {
	rules []compiledRule
}

// New compiles a phrase table into a tagger. Every phrase must be non-empty
// and map to at least one tag; violations are configuration errors reported
// immediately.
func New(rules []models.PhraseRule) (*PhraseTagger, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		if strings.TrimSpace(r.Phrase) == "" {
			slog.Error("PhraseTagger rejected empty phrase")
			return nil, fmt.Errorf("phrase rule with empty phrase")
		}
		if len(r.Tags) == 0 {
			slog.Error("PhraseTagger rejected phrase with no tags", "phrase", r.Phrase)
			return nil, fmt.Errorf("phrase %q maps to no tags", r.Phrase)
		}
		re, err := regexp.Compile(pattern(r.Phrase))
		if err != nil {
			slog.Error("PhraseTagger failed to compile phrase", "phrase", r.Phrase, "error", err)
			return nil, fmt.Errorf("compile phrase %q: %w", r.Phrase, err)
		}
		compiled = append(compiled, compiledRule{phrase: r.Phrase, re: re, tags: r.Tags})
	}
	slog.Debug("PhraseTagger compiled", "phrases", len(compiled))
	return &PhraseTagger{rules: compiled}, nil
}

// Tag returns the tag counts for one utterance. An utterance with no
// configured phrase present yields an empty TagCount. The tagger has no
// side effects.
func (pt *PhraseTagger) Tag(utterance string) models.TagCount {
	counts := make(models.TagCount)
	if utterance == "" {
		return counts
	}
	msg := strings.ToLower(utterance)
	for _, r := range pt.rules {
		// Presence is boolean per configured phrase: one match is enough.
		if r.re.MatchString(msg) {
			counts.Add(r.tags...)
		}
	}
	return counts
}

// pattern builds the literal word-boundary pattern for a phrase. The phrase
// is quoted so punctuation inside it never acts as pattern syntax. \b only
// anchors against word characters, so phrases whose edge character is
// non-word get an explicit whitespace-or-edge boundary instead.
func pattern(phrase string) string {
	quoted := regexp.QuoteMeta(strings.ToLower(phrase))
	runes := []rune(phrase)
	var sb strings.Builder
	if isWordRune(runes[0]) {
		sb.WriteString(`\b`)
	} else {
		sb.WriteString(`(?:^|\s)`)
	}
	sb.WriteString(quoted)
	if isWordRune(runes[len(runes)-1]) {
		sb.WriteString(`\b`)
	} else {
		sb.WriteString(`(?:\s|$)`)
	}
	return sb.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

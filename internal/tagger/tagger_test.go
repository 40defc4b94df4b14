package tagger

import (
	"testing"

	"github.com/BTreeMap/DialogPipe/internal/models"
)

func mustTagger(t *testing.T, rules []models.PhraseRule) *PhraseTagger {
	t.Helper()
	pt, err := New(rules)
	if err != nil {
		t.Fatalf("unexpected error compiling tagger: %v", err)
	}
	return pt
}

func TestTagEmptyUtterance(t *testing.T) {
	pt := mustTagger(t, []models.PhraseRule{{Phrase: "sad", Tags: []models.Tag{"sad"}}})
	got := pt.Tag("")
	if len(got) != 0 {
		t.Errorf("empty utterance should yield empty TagCount, got %v", got)
	}
}

func TestTagNoConfiguredPhrase(t *testing.T) {
	pt := mustTagger(t, []models.PhraseRule{{Phrase: "sad", Tags: []models.Tag{"sad"}}})
	got := pt.Tag("the weather is lovely today")
	if len(got) != 0 {
		t.Errorf("unmatched utterance should yield empty TagCount, got %v", got)
	}
}

func TestTagCaseInsensitive(t *testing.T) {
	pt := mustTagger(t, []models.PhraseRule{{Phrase: "sad", Tags: []models.Tag{"sad"}}})
	lower := pt.Tag("i am sad")
	upper := pt.Tag("I AM SAD")
	if lower.Count("sad") != 1 || upper.Count("sad") != 1 {
		t.Errorf("case should not matter: lower=%v upper=%v", lower, upper)
	}
}

func TestTagWholeWordOnly(t *testing.T) {
	pt := mustTagger(t, []models.PhraseRule{
		{Phrase: "cat", Tags: []models.Tag{"cat"}},
		{Phrase: "disappointed", Tags: []models.Tag{"sad"}},
	})
	if got := pt.Tag("that category is wrong"); got.Has("cat") {
		t.Errorf("phrase inside a longer word must not match, got %v", got)
	}
	if got := pt.Tag("I'm disappointed."); !got.Has("sad") {
		t.Errorf("whole-word phrase next to punctuation should match, got %v", got)
	}
}

func TestTagMultiWordPhrase(t *testing.T) {
	pt := mustTagger(t, []models.PhraseRule{{Phrase: "a little", Tags: []models.Tag{"mild"}}})
	if got := pt.Tag("just a little tired"); !got.Has("mild") {
		t.Errorf("multi-word phrase should match across whitespace, got %v", got)
	}
	if got := pt.Tag("visiting a littleton suburb"); got.Has("mild") {
		t.Errorf("multi-word phrase must respect word boundaries, got %v", got)
	}
}

func TestTagMultipleTagsIncrementTogether(t *testing.T) {
	pt := mustTagger(t, []models.PhraseRule{
		{Phrase: "empty", Tags: []models.Tag{"sad", "social isolation"}},
	})
	got := pt.Tag("I feel empty")
	if got.Count("sad") != 1 || got.Count("social isolation") != 1 {
		t.Errorf("phrase with multiple tags must increment all of them, got %v", got)
	}
}

func TestTagPresenceIsBoolean(t *testing.T) {
	pt := mustTagger(t, []models.PhraseRule{{Phrase: "sad", Tags: []models.Tag{"sad"}}})
	got := pt.Tag("sad sad sad")
	if got.Count("sad") != 1 {
		t.Errorf("repeated phrase should count once per configured phrase, got %d", got.Count("sad"))
	}
}

func TestTagDistinctPhrasesAccumulate(t *testing.T) {
	pt := mustTagger(t, []models.PhraseRule{
		{Phrase: "sad", Tags: []models.Tag{"sad"}},
		{Phrase: "hopeless", Tags: []models.Tag{"sad"}},
	})
	got := pt.Tag("sad and hopeless")
	if got.Count("sad") != 2 {
		t.Errorf("two distinct matching phrases should count twice, got %d", got.Count("sad"))
	}
}

func TestTagUnrelatedTagsCoOccur(t *testing.T) {
	pt := mustTagger(t, []models.PhraseRule{
		{Phrase: "sad", Tags: []models.Tag{"sad"}},
		{Phrase: "kathryn", Tags: []models.Tag{"kathryn"}},
	})
	got := pt.Tag("I'm sad about kathryn's class")
	if !got.Has("sad") || !got.Has("kathryn") {
		t.Errorf("one utterance should set unrelated tags simultaneously, got %v", got)
	}
}

func TestTagPhrasesAreLiteral(t *testing.T) {
	pt := mustTagger(t, []models.PhraseRule{
		{Phrase: "c++", Tags: []models.Tag{"cpp"}},
		{Phrase: "don't know", Tags: []models.Tag{"idk"}},
	})
	if got := pt.Tag("learning c++ now"); !got.Has("cpp") {
		t.Errorf("pattern metacharacters in phrases must match literally, got %v", got)
	}
	if got := pt.Tag("ccc"); got.Has("cpp") {
		t.Errorf("'c++' must not behave as a regex, got %v", got)
	}
	if got := pt.Tag("i don't know"); !got.Has("idk") {
		t.Errorf("apostrophes in phrases should match literally, got %v", got)
	}
}

func TestNewRejectsBadRules(t *testing.T) {
	if _, err := New([]models.PhraseRule{{Phrase: "", Tags: []models.Tag{"x"}}}); err == nil {
		t.Error("empty phrase should be rejected")
	}
	if _, err := New([]models.PhraseRule{{Phrase: "sad", Tags: nil}}); err == nil {
		t.Error("phrase with no tags should be rejected")
	}
}

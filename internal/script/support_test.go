package script

import (
	"strings"
	"testing"

	"github.com/BTreeMap/DialogPipe/internal/engine"
	"github.com/BTreeMap/DialogPipe/internal/models"
)

func mustSupportEngine(t *testing.T, opts ...Option) *engine.Engine {
	t.Helper()
	scr, err := New(DefaultDirectory(), opts...)
	if err != nil {
		t.Fatalf("unexpected error building script: %v", err)
	}
	eng, err := engine.New(scr)
	if err != nil {
		t.Fatalf("unexpected error constructing engine: %v", err)
	}
	return eng
}

func respond(t *testing.T, eng *engine.Engine, c *models.ConversationContext, utterance string) string {
	t.Helper()
	resp, err := eng.Respond(c, utterance)
	if err != nil {
		t.Fatalf("Respond(%q) failed: %v", utterance, err)
	}
	return resp
}

func TestSupportScriptValidates(t *testing.T) {
	// Construction alone proves every state and manner is registered.
	mustSupportEngine(t)
}

func TestGreetingThenSadFlow(t *testing.T) {
	eng := mustSupportEngine(t)
	c := models.NewConversationContext(StateWaiting)

	got := respond(t, eng, c, "hello")
	if got != DefaultTexts().Entries[StateGreeting] {
		t.Fatalf("greeting should enter the greeting state, got %q", got)
	}
	if !c.Greeted {
		t.Error("greeting should set the Greeted flag")
	}

	got = respond(t, eng, c, "I feel sad")
	if c.Current != StateWhySad {
		t.Fatalf("sad should enter %s, got %s", StateWhySad, c.Current)
	}
	if !strings.Contains(got, "What is on your mind?") {
		t.Errorf("unexpected why_sad entry %q", got)
	}

	got = respond(t, eng, c, "my grades are terrible")
	if c.Current != StateTalkToProfessors {
		t.Fatalf("grades should enter %s, got %s", StateTalkToProfessors, c.Current)
	}

	got = respond(t, eng, c, "no")
	if c.Current != StateWaiting {
		t.Fatalf("finish should return to %s, got %s", StateWaiting, c.Current)
	}
	if !c.FinishPending {
		t.Error("talk_to_them is non-terminal and must leave FinishPending set")
	}
	if strings.Contains(got, engine.DefaultEndMarker) {
		t.Errorf("non-terminal finish must not carry the end marker, got %q", got)
	}

	// Pending acknowledgement in the default state ends the conversation.
	got = respond(t, eng, c, "ok")
	if !strings.HasSuffix(got, engine.DefaultEndMarker) {
		t.Fatalf("acknowledged success should be terminal, got %q", got)
	}
	if c.FinishPending {
		t.Error("terminal finish must clear FinishPending")
	}
}

func TestSocialIsolationFlow(t *testing.T) {
	eng := mustSupportEngine(t)
	c := models.NewConversationContext(StateWaiting)

	respond(t, eng, c, "I'm so sad")
	respond(t, eng, c, "I feel really lonely here")
	if c.Current != StateClubs {
		t.Fatalf("isolation should enter %s, got %s", StateClubs, c.Current)
	}

	got := respond(t, eng, c, "yes")
	if !strings.HasPrefix(got, "Cool!") {
		t.Fatalf("yes should finish with join_clubs, got %q", got)
	}
	if c.Current != StateWaiting {
		t.Errorf("finish should return to waiting, got %s", c.Current)
	}
}

func TestFacultySlotFilling(t *testing.T) {
	eng := mustSupportEngine(t)
	c := models.NewConversationContext(StateWaiting)

	got := respond(t, eng, c, "do you know kathryn's office hours?")
	if c.Current != StateSpecificFaculty {
		t.Fatalf("a named professor should enter %s, got %s", StateSpecificFaculty, c.Current)
	}
	if slot, ok := c.Slot(SlotProfessor); !ok || slot != "kathryn" {
		t.Fatalf("professor slot should hold kathryn, got %q", slot)
	}
	if !strings.Contains(got, "Kathryn's office hours are Fridays 9-11am") {
		t.Errorf("entry should render directory hours, got %q", got)
	}

	got = respond(t, eng, c, "nope")
	if !strings.Contains(got, "Kathryn's office is in Swan Hall 101") {
		t.Fatalf("location finish should render the office, got %q", got)
	}
	if !strings.HasSuffix(got, engine.DefaultEndMarker) {
		t.Errorf("location is terminal and must carry the end marker, got %q", got)
	}
}

func TestFacultyRuleBeatsYes(t *testing.T) {
	eng := mustSupportEngine(t)
	c := models.NewConversationContext(StateWaiting)

	// "sure" tags success and "jeff" tags the professor; the professor
	// rule is ordered first in the waiting state and must win.
	c.FinishPending = true
	respond(t, eng, c, "sure, what about jeff")
	if c.Current != StateSpecificFaculty {
		t.Fatalf("professor rule must win over the acknowledgement, got %s", c.Current)
	}
}

func TestUnknownFacultyDisambiguation(t *testing.T) {
	eng := mustSupportEngine(t)
	c := models.NewConversationContext(StateWaiting)

	got := respond(t, eng, c, "when are office hours?")
	if c.Current != StateUnknownFaculty {
		t.Fatalf("office hours alone should ask who, got %s", c.Current)
	}

	got = respond(t, eng, c, "the tall one")
	if c.Current != StateUnrecognizedFaculty {
		t.Fatalf("an unrecognized name should enter %s, got %s", StateUnrecognizedFaculty, c.Current)
	}
	if !strings.Contains(got, "Celia, Hsing-hau, Jeff, Justin, or Kathryn") {
		t.Errorf("disambiguation should list directory names, got %q", got)
	}

	got = respond(t, eng, c, "justin please")
	if c.Current != StateSpecificFaculty {
		t.Fatalf("naming justin should recover, got %s", c.Current)
	}
	if slot, _ := c.Slot(SlotProfessor); slot != "justin" {
		t.Errorf("professor slot should hold justin, got %q", slot)
	}
}

func TestUnrecognizedFacultyGivesUp(t *testing.T) {
	eng := mustSupportEngine(t)
	c := models.NewConversationContext(StateWaiting)

	respond(t, eng, c, "when are office hours?")
	respond(t, eng, c, "the tall one")
	got := respond(t, eng, c, "you know who I mean")
	if !strings.HasPrefix(got, "I've tried my best") {
		t.Fatalf("a second unrecognized name should finish with fail, got %q", got)
	}
	if !strings.HasSuffix(got, engine.DefaultEndMarker) {
		t.Errorf("fail is terminal and must carry the end marker, got %q", got)
	}
}

func TestWaitingConfusionEscalates(t *testing.T) {
	eng := mustSupportEngine(t)
	c := models.NewConversationContext(StateWaiting)

	got := respond(t, eng, c, "zzz qqq")
	if got != DefaultTexts().ConfusedPrompt {
		t.Fatalf("unrecognized input should yield the confused prompt, got %q", got)
	}
	got = respond(t, eng, c, "qqq zzz")
	if !strings.HasPrefix(got, "I've tried my best") {
		t.Fatalf("second miss should fail, got %q", got)
	}
	if c.Current != StateWaiting || c.ConfusedRetries != 0 {
		t.Errorf("conversation should rest reset in waiting, got %s/%d", c.Current, c.ConfusedRetries)
	}
}

func TestHealthResourcesFlow(t *testing.T) {
	eng := mustSupportEngine(t)
	c := models.NewConversationContext(StateWaiting)

	respond(t, eng, c, "feeling sad")
	respond(t, eng, c, "I'm failing my classes")
	respond(t, eng, c, "yes I talked to them")
	if c.Current != StateOtherFactors {
		t.Fatalf("yes should enter %s, got %s", StateOtherFactors, c.Current)
	}
	got := respond(t, eng, c, "I've been sick a lot")
	if !strings.HasPrefix(got, "That's really rough") {
		t.Fatalf("health issues should finish with health_resources, got %q", got)
	}
	if c.FinishPending != true {
		t.Error("health_resources is non-terminal and must leave FinishPending set")
	}
}

func TestOverlayReplacesWording(t *testing.T) {
	overlay := &Overlay{
		Entries:        map[string]string{string(StateWhySad): "custom sympathy"},
		Finishes:       map[string]string{string(FinishThanks): "no worries"},
		ConfusedPrompt: "come again?",
		EndMarker:      "<done>",
	}
	eng := mustSupportEngine(t, WithOverlay(overlay))
	c := models.NewConversationContext(StateWaiting)

	if got := respond(t, eng, c, "so sad today"); got != "custom sympathy" {
		t.Errorf("overlay entry wording should apply, got %q", got)
	}
	c = models.NewConversationContext(StateWaiting)
	if got := respond(t, eng, c, "thanks"); got != "no worries" {
		t.Errorf("overlay finish wording should apply, got %q", got)
	}
	c = models.NewConversationContext(StateWaiting)
	if got := respond(t, eng, c, "gibberish utterance"); got != "come again?" {
		t.Errorf("overlay confused prompt should apply, got %q", got)
	}
}

func TestOverlayReplacesPhraseTable(t *testing.T) {
	overlay := &Overlay{
		Phrases: map[string][]string{
			"blue": {string(TagSad)},
		},
	}
	eng := mustSupportEngine(t, WithOverlay(overlay))
	c := models.NewConversationContext(StateWaiting)

	respond(t, eng, c, "I feel blue")
	if c.Current != StateWhySad {
		t.Fatalf("overlaid phrase should route to %s, got %s", StateWhySad, c.Current)
	}

	c = models.NewConversationContext(StateWaiting)
	respond(t, eng, c, "I feel sad")
	if c.Current == StateWhySad {
		t.Error("replaced phrase table should drop the default phrases")
	}
}

func TestCapitalizeHandlesMultiByteNames(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"kathryn", "Kathryn"},
		{"hsing-hau", "Hsing-hau"},
		{"élodie", "Élodie"},
		{"øyvind", "Øyvind"},
	}
	for _, tc := range cases {
		if got := capitalize(tc.in); got != tc.want {
			t.Errorf("capitalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOverlayRejectsUnknownNames(t *testing.T) {
	if _, err := New(DefaultDirectory(), WithOverlay(&Overlay{
		Entries: map[string]string{"no_such_state": "hi"},
	})); err == nil {
		t.Error("overlay with unknown state should be rejected")
	}
	if _, err := New(DefaultDirectory(), WithOverlay(&Overlay{
		Finishes: map[string]string{"no_such_manner": "hi"},
	})); err == nil {
		t.Error("overlay with unknown finish manner should be rejected")
	}
}

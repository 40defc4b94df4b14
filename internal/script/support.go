package script

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BTreeMap/DialogPipe/internal/directory"
	"github.com/BTreeMap/DialogPipe/internal/engine"
	"github.com/BTreeMap/DialogPipe/internal/models"
)

// Opts holds script configuration collected from Options.
type Opts struct {
	Overlay *Overlay
}

// Option configures the support script.
type Option func(*Opts)

// WithOverlay applies a wording/phrase overlay loaded from a config file.
func WithOverlay(o *Overlay) Option {
	return func(cfg *Opts) { cfg.Overlay = o }
}

// bot binds the support script's handlers to their collaborators: the
// entity directory and the (possibly overlaid) wording.
type bot struct {
	dir   directory.Directory
	texts *Texts
}

// New builds the support-bot script around the given entity directory.
// The returned Script is ready to hand to engine.New, which performs the
// exhaustive registration validation.
func New(dir directory.Directory, opts ...Option) (engine.Script, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}

	texts := DefaultTexts()
	phrases := DefaultPhrases()
	if cfg.Overlay != nil {
		var err error
		texts, phrases, err = cfg.Overlay.apply(texts, phrases)
		if err != nil {
			return engine.Script{}, fmt.Errorf("script overlay: %w", err)
		}
	}

	b := &bot{dir: dir, texts: texts}

	return engine.Script{
		Default:        StateWaiting,
		Confused:       StateConfused,
		ConfusedPrompt: texts.ConfusedPrompt,
		FailManner:     FinishFail,
		EndMarker:      texts.EndMarker,
		States: map[models.StateID]engine.StateSpec{
			StateWaiting: {
				Respond: engine.RuleList{
					{When: engine.HasTag(TagThanks), Then: engine.FinishWith(FinishThanks)},
					{When: b.hasProfessor, Then: b.captureProfessor},
					{When: engine.All(engine.FinishPending(), engine.HasTag(TagSuccess)), Then: engine.FinishWith(FinishSuccess)},
					{When: engine.HasTag(TagOfficeHours), Then: engine.ToState(StateUnknownFaculty)},
					{When: engine.HasAnyTag(TagSad, TagAnxious), Then: engine.ToState(StateWhySad)},
					{When: engine.HasAnyTag(TagHelp, TagGreeting), Then: b.greet},
				}.Respond,
			},
			StateGreeting: {
				OnEnter: b.staticEntry(StateGreeting),
				Respond: engine.RuleList{
					{When: engine.HasAnyTag(TagSad, TagAnxious), Then: engine.ToState(StateWhySad)},
					{When: b.hasProfessor, Then: b.captureProfessor},
					{When: engine.HasTag(TagOfficeHours), Then: engine.ToState(StateUnknownFaculty)},
				}.Respond,
			},
			StateWhySad: {
				OnEnter: b.staticEntry(StateWhySad),
				Respond: engine.RuleList{
					{When: engine.HasTag(TagFailingAcademics), Then: engine.ToState(StateTalkToProfessors)},
					{When: engine.HasTag(TagSocialIsolation), Then: engine.ToState(StateClubs)},
				}.Respond,
			},
			StateClubs: {
				OnEnter: b.staticEntry(StateClubs),
				Respond: engine.RuleList{
					{When: engine.HasTag(TagNo), Then: engine.ToState(StateWhyNot)},
					{When: engine.HasTag(TagYes), Then: engine.FinishWith(FinishJoinClubs)},
					{When: engine.HasTag(TagIDK), Then: engine.FinishWith(FinishShouldJoinClub)},
				}.Respond,
			},
			StateWhyNot: {
				OnEnter: b.staticEntry(StateWhyNot),
				Respond: engine.RuleList{
					{When: engine.HasTag(TagFailingAcademics), Then: engine.ToState(StateTalkToProfessors)},
					{When: engine.HasAnyTag(TagSad, TagSocialIsolation), Then: engine.FinishWith(FinishShouldJoinClub)},
				}.Respond,
			},
			StateTalkToProfessors: {
				OnEnter: b.staticEntry(StateTalkToProfessors),
				Respond: engine.RuleList{
					{When: engine.HasTag(TagNo), Then: engine.FinishWith(FinishTalkToThem)},
					{When: engine.HasTag(TagYes), Then: engine.ToState(StateOtherFactors)},
				}.Respond,
			},
			StateOtherFactors: {
				OnEnter: b.staticEntry(StateOtherFactors),
				Respond: engine.RuleList{
					{When: engine.HasTag(TagHealthIssues), Then: engine.FinishWith(FinishHealthResources)},
					{When: engine.HasAnyTag(TagNo, TagIDK), Then: engine.FinishWith(FinishTalkToThem)},
				}.Respond,
			},
			StateSpecificFaculty: {
				OnEnter: b.enterSpecificFaculty,
				Respond: engine.RuleList{
					{When: engine.HasTag(TagYes), Then: engine.FinishWith(FinishSuccess)},
					{When: engine.Any(), Then: engine.FinishWith(FinishLocation)},
				}.Respond,
			},
			StateUnknownFaculty: {
				OnEnter: b.staticEntry(StateUnknownFaculty),
				Respond: b.respondUnknownFaculty,
			},
			StateUnrecognizedFaculty: {
				OnEnter: b.enterUnrecognizedFaculty,
				Respond: b.respondUnrecognizedFaculty,
			},
		},
		Finishes: map[models.FinishManner]engine.FinishSpec{
			FinishSuccess:         {Produce: b.staticFinish(FinishSuccess), Terminal: true},
			FinishFail:            {Produce: b.staticFinish(FinishFail), Terminal: true},
			FinishLocation:        {Produce: b.finishLocation, Terminal: true},
			FinishThanks:          {Produce: b.staticFinish(FinishThanks)},
			FinishTalkToThem:      {Produce: b.staticFinish(FinishTalkToThem)},
			FinishJoinClubs:       {Produce: b.staticFinish(FinishJoinClubs)},
			FinishShouldJoinClub:  {Produce: b.staticFinish(FinishShouldJoinClub)},
			FinishHealthResources: {Produce: b.staticFinish(FinishHealthResources)},
		},
		Phrases: phrases,
	}, nil
}

// staticEntry returns an entry producer for a state with fixed wording.
func (b *bot) staticEntry(state models.StateID) engine.EntryFunc {
	return func(_ *models.ConversationContext) (string, error) {
		return b.texts.Entries[state], nil
	}
}

// staticFinish returns a finish producer with fixed wording.
func (b *bot) staticFinish(manner models.FinishManner) engine.FinishFunc {
	return func(_ *models.ConversationContext) (string, error) {
		return b.texts.Finishes[manner], nil
	}
}

// greet enters the greeting state and remembers that greetings happened.
func (b *bot) greet(d *engine.Dispatch, _ string, _ models.TagCount) (string, error) {
	d.Context().Greeted = true
	return d.GoToState(StateGreeting)
}

// hasProfessor matches when any known professor tag occurred.
func (b *bot) hasProfessor(tags models.TagCount, _ *models.ConversationContext) bool {
	for _, name := range Professors {
		if tags.Has(models.Tag(name)) {
			return true
		}
	}
	return false
}

// captureProfessor scans the tags against the known professor set, records
// the first match in the professor slot and moves on to rendering their
// office hours. Slots are monotonic within the sub-flow: once set, later
// handlers read the slot back instead of re-deriving it.
func (b *bot) captureProfessor(d *engine.Dispatch, _ string, tags models.TagCount) (string, error) {
	for _, name := range Professors {
		if tags.Has(models.Tag(name)) {
			d.Context().SetSlot(SlotProfessor, name)
			return d.GoToState(StateSpecificFaculty)
		}
	}
	return d.GoToState(StateUnrecognizedFaculty)
}

// respondUnknownFaculty captures a named professor or asks again via the
// recognition-failure state.
func (b *bot) respondUnknownFaculty(d *engine.Dispatch, message string, tags models.TagCount) (string, error) {
	return b.captureProfessor(d, message, tags)
}

// respondUnrecognizedFaculty is the second (and last) attempt at naming a
// professor: a miss here gives up rather than asking a third time.
func (b *bot) respondUnrecognizedFaculty(d *engine.Dispatch, _ string, tags models.TagCount) (string, error) {
	for _, name := range Professors {
		if tags.Has(models.Tag(name)) {
			d.Context().SetSlot(SlotProfessor, name)
			return d.GoToState(StateSpecificFaculty)
		}
	}
	return d.Finish(FinishFail)
}

// enterSpecificFaculty renders the identified professor's office hours from
// the directory. A professor recognized by the phrase table but absent from
// the directory degrades to a placeholder rather than failing the turn.
func (b *bot) enterSpecificFaculty(c *models.ConversationContext) (string, error) {
	name, ok := c.Slot(SlotProfessor)
	if !ok {
		return "", fmt.Errorf("professor slot not set on entering %s", StateSpecificFaculty)
	}
	entry, err := b.dir.Lookup(name)
	if err != nil {
		if !errors.Is(err, directory.ErrNotFound) {
			return "", fmt.Errorf("directory lookup for %q: %w", name, err)
		}
		entry = directory.Entry{Name: name, OfficeHours: "not on file", Office: "not on file"}
	}
	return fmt.Sprintf(b.texts.Entries[StateSpecificFaculty], capitalize(entry.Name), entry.OfficeHours), nil
}

// enterUnrecognizedFaculty lists the names the directory actually knows.
func (b *bot) enterUnrecognizedFaculty(_ *models.ConversationContext) (string, error) {
	names, err := b.dir.Names()
	if err != nil {
		return "", fmt.Errorf("directory names: %w", err)
	}
	display := make([]string, len(names))
	for i, n := range names {
		display[i] = capitalize(n)
	}
	return fmt.Sprintf(b.texts.Entries[StateUnrecognizedFaculty], joinNames(display)), nil
}

// finishLocation renders the identified professor's office location.
func (b *bot) finishLocation(c *models.ConversationContext) (string, error) {
	name, ok := c.Slot(SlotProfessor)
	if !ok {
		return "", fmt.Errorf("professor slot not set on finishing %s", FinishLocation)
	}
	entry, err := b.dir.Lookup(name)
	if err != nil {
		if !errors.Is(err, directory.ErrNotFound) {
			return "", fmt.Errorf("directory lookup for %q: %w", name, err)
		}
		entry = directory.Entry{Name: name, Office: "not on file"}
	}
	return fmt.Sprintf(b.texts.Finishes[FinishLocation], capitalize(entry.Name), entry.Office), nil
}

// capitalize upper-cases the first rune of a name for display.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// joinNames renders a human-readable "A, B, or C" list.
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "someone I know"
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}
}

// DefaultDirectory returns the built-in faculty directory used when no
// database backend is configured.
func DefaultDirectory() *directory.StaticDirectory {
	return directory.NewStaticDirectory(
		directory.Entry{Name: "celia", OfficeHours: "Tuesdays 2-4pm", Office: "Swan Hall 216"},
		directory.Entry{Name: "hsing-hau", OfficeHours: "Mondays 10am-noon", Office: "Swan Hall 302"},
		directory.Entry{Name: "jeff", OfficeHours: "Wednesdays 1-3pm", Office: "Fowler 321"},
		directory.Entry{Name: "justin", OfficeHours: "Thursdays 3-5pm", Office: "Fowler 127"},
		directory.Entry{Name: "kathryn", OfficeHours: "Fridays 9-11am", Office: "Swan Hall 101"},
	)
}

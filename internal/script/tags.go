// Package script carries the support-bot domain script: the phrase table,
// the conversation states and their routing, and the finish utterances.
// Everything in this package is configuration data from the engine's point
// of view; the engine only sees the resulting Script value.
package script

import "github.com/BTreeMap/DialogPipe/internal/models"

// Tags recognized by the support script.
const (
	TagHelp             models.Tag = "help"
	TagGreeting         models.Tag = "greeting"
	TagSad              models.Tag = "sad"
	TagAnxious          models.Tag = "anxious"
	TagFailingAcademics models.Tag = "failing academics"
	TagSocialIsolation  models.Tag = "social isolation"
	TagHealthIssues     models.Tag = "health issues"
	TagOfficeHours      models.Tag = "office hours"
	TagThanks           models.Tag = "thanks"
	TagSuccess          models.Tag = "success"
	TagYes              models.Tag = "yes"
	TagNo               models.Tag = "no"
	TagIDK              models.Tag = "idk"
)

// SlotProfessor is the context slot holding the identified professor name.
const SlotProfessor = "professor"

// Professors is the closed set of entity tags the faculty flow scans for.
// Each name doubles as its own tag in the phrase table.
var Professors = []string{
	"celia",
	"hsing-hau",
	"jeff",
	"justin",
	"kathryn",
}

// DefaultPhrases returns the built-in phrase table. A phrase mapped to
// several tags increments all of them together when it matches.
func DefaultPhrases() []models.PhraseRule {
	return []models.PhraseRule{
		{Phrase: "help", Tags: []models.Tag{TagHelp}},

		// greetings
		{Phrase: "hello", Tags: []models.Tag{TagGreeting}},
		{Phrase: "hi", Tags: []models.Tag{TagGreeting}},
		{Phrase: "hey", Tags: []models.Tag{TagGreeting}},
		{Phrase: "what's up", Tags: []models.Tag{TagGreeting}},

		// sad
		{Phrase: "sad", Tags: []models.Tag{TagSad}},
		{Phrase: "hate", Tags: []models.Tag{TagSad}},
		{Phrase: "depressed", Tags: []models.Tag{TagSad}},
		{Phrase: "disappointed", Tags: []models.Tag{TagSad, TagFailingAcademics}},
		{Phrase: "miss", Tags: []models.Tag{TagSad}},
		{Phrase: "hopeless", Tags: []models.Tag{TagSad}},
		{Phrase: "disinterested", Tags: []models.Tag{TagSad}},
		{Phrase: "empty", Tags: []models.Tag{TagSad, TagSocialIsolation}},
		{Phrase: "life is meaningless", Tags: []models.Tag{TagSad}},
		{Phrase: "no point in", Tags: []models.Tag{TagSad}},
		{Phrase: "not good", Tags: []models.Tag{TagSad}},
		{Phrase: "emotional", Tags: []models.Tag{TagSad}},

		// anxious
		{Phrase: "future", Tags: []models.Tag{TagAnxious}},
		{Phrase: "career", Tags: []models.Tag{TagAnxious}},
		{Phrase: "worried", Tags: []models.Tag{TagAnxious}},
		{Phrase: "nervous", Tags: []models.Tag{TagAnxious}},
		{Phrase: "restless", Tags: []models.Tag{TagAnxious}},
		{Phrase: "agitated", Tags: []models.Tag{TagAnxious}},
		{Phrase: "uneasy", Tags: []models.Tag{TagAnxious}},
		{Phrase: "troubled", Tags: []models.Tag{TagAnxious}},

		// failing academics
		{Phrase: "test", Tags: []models.Tag{TagFailingAcademics}},
		{Phrase: "midterm", Tags: []models.Tag{TagFailingAcademics}},
		{Phrase: "exams", Tags: []models.Tag{TagFailingAcademics}},
		{Phrase: "gpa", Tags: []models.Tag{TagFailingAcademics}},
		{Phrase: "classes", Tags: []models.Tag{TagFailingAcademics}},
		{Phrase: "assignment", Tags: []models.Tag{TagFailingAcademics}},
		{Phrase: "grades", Tags: []models.Tag{TagFailingAcademics}},
		{Phrase: "frustrated", Tags: []models.Tag{TagFailingAcademics}},
		{Phrase: "annoyed", Tags: []models.Tag{TagFailingAcademics}},
		{Phrase: "efforts", Tags: []models.Tag{TagFailingAcademics}},
		{Phrase: "quit school", Tags: []models.Tag{TagFailingAcademics}},
		{Phrase: "failing", Tags: []models.Tag{TagFailingAcademics}},

		// social isolation
		{Phrase: "disconnected", Tags: []models.Tag{TagSocialIsolation}},
		{Phrase: "lonely", Tags: []models.Tag{TagSocialIsolation}},
		{Phrase: "no friends", Tags: []models.Tag{TagSocialIsolation}},
		{Phrase: "homesick", Tags: []models.Tag{TagSocialIsolation}},
		{Phrase: "alone", Tags: []models.Tag{TagSocialIsolation}},
		{Phrase: "friendless", Tags: []models.Tag{TagSocialIsolation}},
		{Phrase: "abandoned", Tags: []models.Tag{TagSocialIsolation}},
		{Phrase: "care about me", Tags: []models.Tag{TagSocialIsolation}},
		{Phrase: "not cared for", Tags: []models.Tag{TagSocialIsolation}},

		// health issues
		{Phrase: "sick", Tags: []models.Tag{TagHealthIssues}},
		{Phrase: "health", Tags: []models.Tag{TagHealthIssues}},
		{Phrase: "insomnia", Tags: []models.Tag{TagHealthIssues}},
		{Phrase: "can't sleep", Tags: []models.Tag{TagHealthIssues}},

		// faculty
		{Phrase: "office hours", Tags: []models.Tag{TagOfficeHours}},
		{Phrase: "professor", Tags: []models.Tag{TagOfficeHours}},
		{Phrase: "celia", Tags: []models.Tag{"celia"}},
		{Phrase: "hsing-hau", Tags: []models.Tag{"hsing-hau"}},
		{Phrase: "jeff", Tags: []models.Tag{"jeff"}},
		{Phrase: "miller", Tags: []models.Tag{"jeff"}},
		{Phrase: "justin", Tags: []models.Tag{"justin"}},
		{Phrase: "li", Tags: []models.Tag{"justin"}},
		{Phrase: "kathryn", Tags: []models.Tag{"kathryn"}},
		{Phrase: "leonard", Tags: []models.Tag{"kathryn"}},

		// generic
		{Phrase: "thanks", Tags: []models.Tag{TagThanks}},
		{Phrase: "thank you", Tags: []models.Tag{TagThanks}},
		{Phrase: "ty", Tags: []models.Tag{TagThanks}},
		{Phrase: "ok", Tags: []models.Tag{TagSuccess}},
		{Phrase: "okie", Tags: []models.Tag{TagSuccess}},
		{Phrase: "okay", Tags: []models.Tag{TagSuccess}},
		{Phrase: "sure", Tags: []models.Tag{TagSuccess}},
		{Phrase: "bye", Tags: []models.Tag{TagSuccess}},
		{Phrase: "yes", Tags: []models.Tag{TagYes}},
		{Phrase: "ya", Tags: []models.Tag{TagYes}},
		{Phrase: "yep", Tags: []models.Tag{TagYes}},
		{Phrase: "no", Tags: []models.Tag{TagNo}},
		{Phrase: "nope", Tags: []models.Tag{TagNo}},
		{Phrase: "not really", Tags: []models.Tag{TagNo}},
		{Phrase: "nah", Tags: []models.Tag{TagNo}},
		{Phrase: "idk", Tags: []models.Tag{TagIDK}},
		{Phrase: "not sure", Tags: []models.Tag{TagIDK}},
		{Phrase: "don't know", Tags: []models.Tag{TagIDK}},
	}
}

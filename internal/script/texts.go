package script

import "github.com/BTreeMap/DialogPipe/internal/models"

// States of the support script. StateWaiting is the default/idle state;
// StateConfused is the engine-owned recovery state.
const (
	StateWaiting             models.StateID = "waiting"
	StateGreeting            models.StateID = "greeting"
	StateWhySad              models.StateID = "why_sad"
	StateClubs               models.StateID = "clubs"
	StateWhyNot              models.StateID = "why_not"
	StateTalkToProfessors    models.StateID = "talk_to_professors"
	StateOtherFactors        models.StateID = "other_factors"
	StateSpecificFaculty     models.StateID = "specific_faculty"
	StateUnknownFaculty      models.StateID = "unknown_faculty"
	StateUnrecognizedFaculty models.StateID = "unrecognized_faculty"
	StateConfused            models.StateID = "confused"
)

// Finish manners of the support script. Success, fail and location end the
// conversation; the rest return to idle so the user can keep talking.
const (
	FinishSuccess         models.FinishManner = "success"
	FinishFail            models.FinishManner = "fail"
	FinishLocation        models.FinishManner = "location"
	FinishThanks          models.FinishManner = "thanks"
	FinishTalkToThem      models.FinishManner = "talk_to_them"
	FinishJoinClubs       models.FinishManner = "join_clubs"
	FinishShouldJoinClub  models.FinishManner = "should_join_club"
	FinishHealthResources models.FinishManner = "health_resources"
)

// Texts holds every piece of bot wording. The entries for
// StateSpecificFaculty and StateUnrecognizedFaculty and the finish line for
// FinishLocation are fmt format strings (professor name and hours/office,
// or the joined list of known names); everything else is literal text.
type Texts struct {
	Entries        map[models.StateID]string
	Finishes       map[models.FinishManner]string
	ConfusedPrompt string
	EndMarker      string
}

// DefaultTexts returns the built-in wording of the support bot.
func DefaultTexts() *Texts {
	return &Texts{
		Entries: map[models.StateID]string{
			StateGreeting: "Hey! Thanks for reaching out. What's on your mind today?",
			StateWhySad: "I'm sorry that you're feeling down right now.\n" +
				"What is on your mind?",
			StateClubs: "I'm sorry to hear that.\n" +
				"School can be a very daunting experience for many people. You are not alone in this.\n" +
				"One of the best and easiest ways to make friends or to feel more connected is to join a club.\n" +
				"Do you have any interests? Would you be interested in joining a club?",
			StateWhyNot: "Hmm, I see. Why not, if I might ask?",
			StateTalkToProfessors: "Handling school is very tough. I can't imagine what you're going through.\n" +
				"Have you tried reaching out to any professor or tutoring services available at your school?",
			StateOtherFactors: "I'm so proud of you for reaching out for resources!\n" +
				"That's a hard thing to do. I'm sorry that it hasn't helped.\n" +
				"Maybe there are other factors affecting your academic life.\n" +
				"Can you think of other reasons why you might be struggling?",
			StateSpecificFaculty: "%s's office hours are %s\n" +
				"Do you know where their office is?",
			StateUnknownFaculty:      "Whose office hours are you looking for?",
			StateUnrecognizedFaculty: "I'm not sure I understand - are you looking for %s?",
		},
		Finishes: map[models.FinishManner]string{
			FinishSuccess:  "Great, let me know if you need anything else!",
			FinishFail:     "I've tried my best but I still don't understand. Maybe try asking other students?",
			FinishLocation: "%s's office is in %s",
			FinishThanks:   "You're welcome!",
			FinishTalkToThem: "You'd be surprised how helpful it is to go to office hours or to tutoring services!\n" +
				"You can also try asking classmates for help too. You might not be the only one struggling.\n" +
				"I hope this was helpful!",
			FinishJoinClubs: "Cool! Next would be to check out your school's list of clubs and reach out to them about how to join.\n" +
				"I know that seems like a lot, but I believe in you!",
			FinishShouldJoinClub: "Check out your school's list of clubs. It wouldn't hurt to see what's out there!",
			FinishHealthResources: "That's really rough to go through alone.\n" +
				"Maybe you can try going to your school's medical center for some help.\n" +
				"You can also talk to your professors directly about this. They might be able to empathize!",
		},
		ConfusedPrompt: "I'm sorry, I didn't quite catch that. Could you say it another way?",
	}
}

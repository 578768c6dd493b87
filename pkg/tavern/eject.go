package tavern

import "github.com/tavernkeep/npc-engine/pkg/match"

// ejectionPhrases are the scripted lines a tavern authority uses to throw the
// player out. The NPC's reply is scanned for them case-insensitively; the
// scan is independent of the message evaluator and only runs for NPCs with
// ejection authority.
var ejectionPhrases = match.NewPhrases([]string{
	"get out of my tavern",
	"get out of here",
	"leave my tavern",
	"leave this tavern",
	"you're not welcome here",
	"you are not welcome here",
	"never come back",
	"out of my sight",
	"you're banned",
	"you are banned",
	"banned from this tavern",
	"thrown out",
})

// DetectEjection reports whether an NPC reply contains a scripted ejection
// phrase, and which one.
func DetectEjection(reply string) (string, bool) {
	phrase := ejectionPhrases.Match(reply)
	return phrase, phrase != ""
}

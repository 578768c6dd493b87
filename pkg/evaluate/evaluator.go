// Package evaluate scores a player's message against a character's trigger
// rules and suggests relationship deltas. Evaluation is pure: applying the
// deltas to durable state is the conversation orchestrator's job, exactly
// once per player message.
package evaluate

import (
	"fmt"
	"strings"

	"github.com/tavernkeep/npc-engine/pkg/match"
	"github.com/tavernkeep/npc-engine/pkg/npc"
)

// Fixed deltas per rule category.
const (
	dealbreakerTrust     = -100
	dealbreakerAffection = -100
	majorInsultTrust     = -30
	majorInsultAffection = -30
	angerTrust           = -10
	angerAffection       = -10
	pleaseTrust          = 5
	pleaseAffection      = 10
	traumaTrust          = -15
	politenessAffection  = 2
	rudenessTrust        = -10
	rudenessAffection    = -15
)

// rudeWords is the generic insult list checked against every message,
// independent of the character's configured triggers. Word-boundary matched
// so "classical" never fires "ass".
var rudeWords = match.NewWords([]string{
	"idiot", "fool", "stupid", "moron", "ugly", "scum",
	"damn", "hell", "ass", "bastard", "shit", "fuck",
})

// Politeness markers matched as substrings, so "thanks" and "thank you"
// both count.
var politeWords = []string{"please", "thank"}

// Result is the suggested relationship delta for one player message.
type Result struct {
	TrustDelta     int    `json:"trust_delta"`
	AffectionDelta int    `json:"affection_delta"`
	Note           string `json:"note,omitempty"`
}

// Evaluate scores message against the character's trigger rules.
//
// Dealbreakers and major insults short-circuit: the first match returns
// immediately with the fixed extreme delta. Every remaining category is
// evaluated unconditionally; their deltas accumulate, and Note holds the
// last category that fired.
func Evaluate(message string, c *npc.Character) Result {
	if phrase := match.NewPhrases(c.Behavior.Dealbreakers).Match(message); phrase != "" {
		return Result{
			TrustDelta:     dealbreakerTrust,
			AffectionDelta: dealbreakerAffection,
			Note:           fmt.Sprintf("dealbreaker: %q", phrase),
		}
	}
	if phrase := match.NewPhrases(c.Behavior.MajorInsults).Match(message); phrase != "" {
		return Result{
			TrustDelta:     majorInsultTrust,
			AffectionDelta: majorInsultAffection,
			Note:           fmt.Sprintf("major insult: %q", phrase),
		}
	}

	var res Result

	if phrase := match.NewPhrases(c.Behavior.AngerTriggers).Match(message); phrase != "" {
		res.TrustDelta += angerTrust
		res.AffectionDelta += angerAffection
		res.Note = fmt.Sprintf("anger trigger: %q", phrase)
	}
	if phrase := match.NewPhrases(c.Behavior.PleaseTriggers).Match(message); phrase != "" {
		res.TrustDelta += pleaseTrust
		res.AffectionDelta += pleaseAffection
		res.Note = fmt.Sprintf("please trigger: %q", phrase)
	}
	if event := matchTrauma(message, c.Background.Traumas); event != "" {
		res.TrustDelta += traumaTrust
		res.Note = fmt.Sprintf("trauma trigger: %s", event)
	}

	// Each politeness marker counts independently, so a message with both
	// "please" and "thank" earns both bonuses.
	lower := strings.ToLower(message)
	for _, w := range politeWords {
		if strings.Contains(lower, w) {
			res.AffectionDelta += politenessAffection
			res.Note = "politeness"
		}
	}

	if word := rudeWords.Match(message); word != "" {
		res.TrustDelta += rudenessTrust
		res.AffectionDelta += rudenessAffection
		res.Note = fmt.Sprintf("rudeness: %q", word)
	}

	return res
}

// matchTrauma returns the event of the first trauma whose trigger phrases
// appear in the message. At most one trauma counts per message.
func matchTrauma(message string, traumas []npc.Trauma) string {
	for _, t := range traumas {
		if match.NewPhrases(t.Triggers).Contains(message) {
			return t.Event
		}
	}
	return ""
}

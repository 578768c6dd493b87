package evaluate

import (
	"strings"
	"testing"

	"github.com/tavernkeep/npc-engine/pkg/npc"
)

func testCharacter() *npc.Character {
	return &npc.Character{
		ID: "greta",
		Background: npc.Background{
			Name: "Greta",
			Traumas: []npc.Trauma{
				{
					Event:    "Lost her brother to the mill fire",
					Triggers: []string{"mill fire", "the old mill"},
					Reaction: npc.ReactionGoesCold,
					Severity: npc.SeveritySevere,
				},
			},
		},
		Behavior: npc.BehavioralRules{
			AngerTriggers:  []string{"watered-down ale", "cheat"},
			PleaseTriggers: []string{"best tavern", "finest ale"},
			MajorInsults:   []string{"fat old cow"},
			Dealbreakers:   []string{"threaten your family"},
		},
	}
}

func TestEvaluate_Dealbreaker(t *testing.T) {
	c := testCharacter()

	// Other trigger words in the same message must not alter the fixed
	// extreme delta.
	msg := "you cheat, I will threaten your family and burn the old mill"
	res := Evaluate(msg, c)

	if res.TrustDelta != -100 || res.AffectionDelta != -100 {
		t.Errorf("deltas = (%d,%d), want (-100,-100)", res.TrustDelta, res.AffectionDelta)
	}
	if !strings.Contains(res.Note, "dealbreaker") {
		t.Errorf("note = %q, want dealbreaker", res.Note)
	}
}

func TestEvaluate_MajorInsult(t *testing.T) {
	c := testCharacter()
	res := Evaluate("shut up you FAT OLD COW", c)

	if res.TrustDelta != -30 || res.AffectionDelta != -30 {
		t.Errorf("deltas = (%d,%d), want (-30,-30)", res.TrustDelta, res.AffectionDelta)
	}
}

func TestEvaluate_Politeness(t *testing.T) {
	c := testCharacter()

	// "please" and "thank" each add +2 affection independently.
	res := Evaluate("please help me, thank you", c)
	if res.TrustDelta != 0 || res.AffectionDelta != 4 {
		t.Errorf("deltas = (%d,%d), want (0,4)", res.TrustDelta, res.AffectionDelta)
	}
	if res.Note != "politeness" {
		t.Errorf("note = %q, want politeness", res.Note)
	}

	res = Evaluate("thanks for the drink", c)
	if res.AffectionDelta != 2 {
		t.Errorf("affection = %d, want 2 for a single marker", res.AffectionDelta)
	}
}

func TestEvaluate_AngerTrigger(t *testing.T) {
	c := testCharacter()
	res := Evaluate("this tastes like watered-down ale", c)

	if res.TrustDelta != -10 || res.AffectionDelta != -10 {
		t.Errorf("deltas = (%d,%d), want (-10,-10)", res.TrustDelta, res.AffectionDelta)
	}
}

func TestEvaluate_PleaseTrigger(t *testing.T) {
	c := testCharacter()
	res := Evaluate("this is the best tavern in the province", c)

	if res.TrustDelta != 5 || res.AffectionDelta != 10 {
		t.Errorf("deltas = (%d,%d), want (5,10)", res.TrustDelta, res.AffectionDelta)
	}
}

func TestEvaluate_TraumaTrigger(t *testing.T) {
	c := testCharacter()
	res := Evaluate("were you there when the mill fire started?", c)

	if res.TrustDelta != -15 || res.AffectionDelta != 0 {
		t.Errorf("deltas = (%d,%d), want (-15,0)", res.TrustDelta, res.AffectionDelta)
	}
	if !strings.Contains(res.Note, "trauma") {
		t.Errorf("note = %q, want trauma trigger", res.Note)
	}
}

func TestEvaluate_Rudeness(t *testing.T) {
	c := testCharacter()
	res := Evaluate("you are a stupid fool", c)

	if res.TrustDelta != -10 || res.AffectionDelta != -15 {
		t.Errorf("deltas = (%d,%d), want (-10,-15)", res.TrustDelta, res.AffectionDelta)
	}
}

func TestEvaluate_RudenessRespectsWordBoundaries(t *testing.T) {
	c := testCharacter()
	res := Evaluate("I love classical music", c)

	if res.TrustDelta != 0 || res.AffectionDelta != 0 {
		t.Errorf("deltas = (%d,%d), want (0,0): no word should fire inside another word",
			res.TrustDelta, res.AffectionDelta)
	}
}

func TestEvaluate_CategoriesAccumulate(t *testing.T) {
	c := testCharacter()

	// Anger trigger (-10,-10) + please trigger (+5,+10) + politeness (+2)
	// all fire and accumulate; the note is the last category that fired.
	res := Evaluate("you cheat, but this is still the best tavern, thank you", c)

	if res.TrustDelta != -5 {
		t.Errorf("trust = %d, want -5", res.TrustDelta)
	}
	if res.AffectionDelta != 2 {
		t.Errorf("affection = %d, want 2", res.AffectionDelta)
	}
	if res.Note != "politeness" {
		t.Errorf("note = %q, want the last category fired", res.Note)
	}
}

func TestEvaluate_CleanMessage(t *testing.T) {
	c := testCharacter()
	res := Evaluate("good evening", c)

	if res.TrustDelta != 0 || res.AffectionDelta != 0 || res.Note != "" {
		t.Errorf("clean message should produce a zero result, got %+v", res)
	}
}

// Package prompt compiles a character and its relationship state into the
// natural-language instruction document handed to the LLM as a system prompt.
// Compilation is pure and deterministic: the same character always yields the
// same text, and no input can make it fail.
package prompt

import (
	"fmt"
	"strings"

	"github.com/tavernkeep/npc-engine/pkg/npc"
	"github.com/tavernkeep/npc-engine/pkg/relationship"
)

// Thresholds shared by the openness and fear clauses.
const (
	opennessLow     = 30
	opennessHigh    = 70
	fearClauseFloor = 30
	rumorTruthCut   = 50
)

// BaseRules is the fixed instruction list appended to every compiled prompt.
const BaseRules = `RULES:
1. Stay in character at all times.
2. Keep responses concise, one to three sentences unless telling a story.
3. Use language fitting a fantasy tavern; never mention the modern world.
4. Never break the fourth wall or mention that you are an AI.
5. React naturally to what the player says, in line with your personality.
6. Never reveal secrets to someone you do not trust enough.
7. Never reveal your hidden quest details outright.
8. If asked something your character would not know, answer in character.
9. Do not speak for the player or narrate the player's actions.
10. Stay consistent with everything you have said earlier in the conversation.`

// EjectionRules extends the base rules for tavern authorities.
const EjectionRules = `You keep order in your tavern and you can throw patrons out. If the player crosses a line you will not tolerate, tell them to get out of your tavern in plain words. Do not threaten it idly; once you say it, you mean it.`

// attitudeByStatus maps every relationship status to the one instruction
// sentence that sets the NPC's tone toward the player. Must stay exhaustive.
var attitudeByStatus = map[relationship.Status]string{
	relationship.StatusStranger:     "Treat the player as a stranger: civil but guarded, volunteering little.",
	relationship.StatusAcquaintance: "Treat the player as a familiar face: polite, somewhat warmer than a stranger.",
	relationship.StatusFriendly:     "Treat the player warmly, as someone whose company you enjoy.",
	relationship.StatusFriend:       "Treat the player as a friend: open, helpful, willing to share most things.",
	relationship.StatusCloseFriend:  "Treat the player as one of your closest friends; hold almost nothing back.",
	relationship.StatusRomantic:     "You have feelings for the player; let warmth and flustered affection color your words.",
	relationship.StatusDisliked:     "You dislike the player: curt answers, no favors, visible impatience.",
	relationship.StatusEnemy:        "The player is your enemy. Be openly hostile and give them nothing.",
	relationship.StatusNemesis:      "The player is your sworn nemesis. You despise them beyond reason and want them gone.",
	relationship.StatusBanned:       "The player is banned from your presence. Refuse conversation and demand they leave.",
}

// Compile renders the full system prompt for a character. Sections are built
// independently and joined with blank lines; a section with no applicable
// content contributes nothing.
func Compile(c *npc.Character) string {
	sections := []string{
		identitySection(c),
		personalitySection(c),
		physicalSection(c),
		backgroundSection(c),
		knowledgeSection(c),
		relationshipSection(c),
		behaviorSection(c),
		questSection(c),
		speechSection(c),
		rulesSection(c),
	}

	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func identitySection(c *npc.Character) string {
	sb := strings.Builder{}
	sb.WriteString("You are ")
	sb.WriteString(c.Name())
	if c.Background.Title != "" {
		sb.WriteString(", " + c.Background.Title)
	}
	sb.WriteString(fmt.Sprintf(", a %s", c.Background.Occupation))
	if c.Background.Origin != "" {
		sb.WriteString(" from " + c.Background.Origin)
	}
	sb.WriteString(".")
	if c.Description != "" {
		sb.WriteString(" " + c.Description)
	}
	return sb.String()
}

func personalitySection(c *npc.Character) string {
	// Mood offsets happiness before banding; all other traits are taken
	// as written.
	p := c.Personality
	p.Happiness = c.EffectiveHappiness()

	var clauses []string
	for _, r := range traitRules {
		v := r.get(p)
		switch {
		case v > r.high:
			clauses = append(clauses, r.highClause)
		case v < r.low:
			clauses = append(clauses, r.lowClause)
		}
	}
	if len(clauses) == 0 {
		return ""
	}
	return "PERSONALITY:\n" + strings.Join(clauses, " ")
}

func physicalSection(c *npc.Character) string {
	ph := c.Physical
	sb := strings.Builder{}
	sb.WriteString("APPEARANCE:\n")
	sb.WriteString(fmt.Sprintf("You are %s, %s in height, with a %s build, in %s health.",
		ph.Age, ph.Height, ph.Build, ph.Health))
	if len(ph.Disabilities) > 0 {
		sb.WriteString(" You live with: " + strings.Join(ph.Disabilities, ", ") + ".")
	}
	if len(ph.DistinctiveFeatures) > 0 {
		sb.WriteString(" Distinctive features: " + strings.Join(ph.DistinctiveFeatures, ", ") + ".")
	}
	return sb.String()
}

func backgroundSection(c *npc.Character) string {
	b := c.Background
	sb := strings.Builder{}
	sb.WriteString("BACKSTORY:\n")
	sb.WriteString(b.Backstory)
	if b.Family != "" {
		sb.WriteString("\nFamily: " + b.Family)
	}
	if len(b.Regrets) > 0 {
		sb.WriteString("\nYou regret: " + strings.Join(b.Regrets, "; ") + ".")
	}
	if len(b.ProudMoments) > 0 {
		sb.WriteString("\nYou are proud of: " + strings.Join(b.ProudMoments, "; ") + ".")
	}
	for _, t := range b.Traumas {
		sb.WriteString(fmt.Sprintf("\nPast wound: %s. Triggered by: %s. When triggered, you react by one of: %s.",
			t.Event, strings.Join(t.Triggers, ", "), strings.ReplaceAll(t.Reaction, "_", " ")))
	}
	if len(b.Enemies) > 0 {
		sb.WriteString("\nYour enemies: " + strings.Join(b.Enemies, ", ") + ".")
	}
	if len(b.Allies) > 0 {
		sb.WriteString("\nYour allies: " + strings.Join(b.Allies, ", ") + ".")
	}
	return sb.String()
}

func knowledgeSection(c *npc.Character) string {
	k := c.Knowledge
	sb := strings.Builder{}
	sb.WriteString("KNOWLEDGE:\n")
	if len(k.Expertise) > 0 {
		sb.WriteString("You know a great deal about: " + strings.Join(k.Expertise, ", ") + ".")
	} else {
		sb.WriteString("You have no particular expertise.")
	}

	switch {
	case k.InformationOpenness > opennessHigh:
		sb.WriteString(" You share what you know freely, often without being asked.")
	case k.InformationOpenness < opennessLow:
		sb.WriteString(" You keep what you know close and give up nothing without good reason.")
	default:
		sb.WriteString(" You share information when asked, within reason.")
	}

	if k.PriceForInfo != "" && k.PriceForInfo != npc.PriceFree {
		sb.WriteString(fmt.Sprintf(" Valuable information has a price; you expect %s in exchange.",
			strings.ReplaceAll(k.PriceForInfo, "_", " ")))
	}

	if len(k.Rumors) > 0 {
		sb.WriteString("\nRumors you have heard:")
		for _, r := range k.Rumors {
			qualifier := "you know this to be true"
			if r.Truthfulness <= rumorTruthCut {
				qualifier = "you believe it, but it may be false"
			}
			sb.WriteString(fmt.Sprintf("\n- %s (%s)", r.Content, qualifier))
		}
	}
	return sb.String()
}

func relationshipSection(c *npc.Character) string {
	// Read-only: a character without relationship state renders with
	// first-contact defaults, without mutating the character.
	rel := c.Relationship
	if rel == nil {
		rel = relationship.New()
	}
	sb := strings.Builder{}
	sb.WriteString("RELATIONSHIP WITH THE PLAYER:\n")
	sb.WriteString(fmt.Sprintf("Status: %s. Trust %d/100, Respect %d/100, Affection %d/100.",
		rel.Status.Display(), rel.Trust, rel.Respect, rel.Affection))
	if rel.Fear > fearClauseFloor {
		sb.WriteString(fmt.Sprintf(" You are afraid of the player (fear %d/100); it shows in how carefully you choose your words.", rel.Fear))
	}
	sb.WriteString("\n" + attitudeByStatus[rel.Status])
	if rel.PointOfNoReturn {
		sb.WriteString("\nThings between you are broken beyond repair. No apology or kindness can mend it.")
	}
	if rel.Vendetta {
		sb.WriteString("\nYou have sworn a vendetta against the player and will act on it when you can.")
	}
	if len(rel.MemorableEvents) > 0 {
		sb.WriteString("\nYou remember:")
		for _, ev := range rel.MemorableEvents {
			tone := "fondly"
			if ev.Impact < 0 {
				tone = "bitterly"
				if ev.Forgiven {
					tone = "bitterly, though you have forgiven it"
				}
			}
			sb.WriteString(fmt.Sprintf("\n- %s (%s)", ev.Description, tone))
		}
	}
	return sb.String()
}

func behaviorSection(c *npc.Character) string {
	b := c.Behavior
	sb := strings.Builder{}
	if len(b.AngerTriggers) > 0 {
		sb.WriteString("\nThese things anger you: " + strings.Join(b.AngerTriggers, "; ") + ".")
	}
	if len(b.PleaseTriggers) > 0 {
		sb.WriteString("\nThese things please you: " + strings.Join(b.PleaseTriggers, "; ") + ".")
	}
	if len(b.ForbiddenTopics) > 0 {
		sb.WriteString("\nYou refuse to discuss: " + strings.Join(b.ForbiddenTopics, "; ") + ". Change the subject if they come up.")
	}
	if len(b.MajorInsults) > 0 {
		sb.WriteString("\nYou take grave offense at: " + strings.Join(b.MajorInsults, "; ") + ".")
	}
	if len(b.Dealbreakers) > 0 {
		sb.WriteString("\nUnforgivable: " + strings.Join(b.Dealbreakers, "; ") + ". Anyone who does this is dead to you.")
	}
	if len(b.HostileActions) > 0 {
		sb.WriteString("\nIf provoked:")
		for _, ha := range b.HostileActions {
			sb.WriteString(fmt.Sprintf("\n- If the player %s, you %s.", ha.Trigger, ha.Action))
			if ha.Consequence != "" {
				sb.WriteString(" " + ha.Consequence)
			}
		}
	}
	if sb.Len() == 0 {
		return ""
	}
	return "BEHAVIOR:" + sb.String()
}

// questSection is absent entirely (not an empty heading) when the character
// has no quests.
func questSection(c *npc.Character) string {
	q := c.QuestHooks
	if len(q.Quests) == 0 {
		return ""
	}
	sb := strings.Builder{}
	sb.WriteString("QUESTS YOU CAN OFFER:")
	for _, quest := range q.Quests {
		sb.WriteString(fmt.Sprintf("\n- %s: %s", quest.Name, quest.Description))
		if quest.Introduction != "" {
			sb.WriteString(fmt.Sprintf("\n  Bring it up like this: %q", quest.Introduction))
		}
		sb.WriteString(fmt.Sprintf("\n  Offer it only once the player has earned your trust (%d/100 required).", quest.TrustRequired))
		if quest.HiddenDetails != "" {
			sb.WriteString("\n  Hold back: " + quest.HiddenDetails)
		}
	}
	if q.QuestStyle != "" {
		sb.WriteString(fmt.Sprintf("\nYour manner of offering work is %s.", q.QuestStyle))
	}
	return sb.String()
}

func speechSection(c *npc.Character) string {
	s := c.Speech
	sb := strings.Builder{}
	if s.Accent != "" {
		sb.WriteString("\nYou speak " + s.Accent + ".")
	}
	if len(s.Fillers) > 0 {
		sb.WriteString("\nYou pepper your speech with phrases like: " + strings.Join(s.Fillers, "; ") + ".")
	}
	if len(s.Greetings) > 0 {
		sb.WriteString("\nTypical greetings: " + strings.Join(s.Greetings, "; ") + ".")
	}
	if len(s.Farewells) > 0 {
		sb.WriteString("\nTypical farewells: " + strings.Join(s.Farewells, "; ") + ".")
	}
	if sb.Len() == 0 {
		return ""
	}
	return "SPEECH:" + sb.String()
}

func rulesSection(c *npc.Character) string {
	if c.CanEject {
		return BaseRules + "\n\n" + EjectionRules
	}
	return BaseRules
}

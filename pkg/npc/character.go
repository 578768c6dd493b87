package npc

import (
	"github.com/tavernkeep/npc-engine/pkg/relationship"
)

// Character is one NPC: identity plus the static rule sets that drive its
// behavior, and the mutable relationship it holds with the player. Everything
// except Relationship, CurrentMood and SkillUnlocked is read-only after
// creation.
type Character struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"` // free-form appearance/first-impression text
	Map         string `json:"map,omitempty"`         // overworld map this NPC belongs to
	Location    string `json:"location,omitempty"`    // tavern/location within the map

	Personality PersonalityTraits  `json:"personality"`
	Physical    PhysicalAttributes `json:"physical"`
	Background  Background         `json:"background"`
	Knowledge   Knowledge          `json:"knowledge"`
	Behavior    BehavioralRules    `json:"behavior"`
	QuestHooks  QuestHooks         `json:"quest_hooks"`
	Speech      SpeechPatterns     `json:"speech"`

	// CanEject marks tavern authorities able to throw the player out.
	CanEject bool `json:"can_eject,omitempty"`

	// SkillUnlockKeywords are phrases that, when mentioned by the player,
	// flip SkillUnlocked. The flag is one-way.
	SkillUnlockKeywords []string `json:"skill_unlock_keywords,omitempty"`
	SkillUnlocked       bool     `json:"skill_unlocked,omitempty"`

	// CurrentMood is a transient offset applied to the happiness trait,
	// -100..100. It does not persist between sessions.
	CurrentMood int `json:"current_mood,omitempty"`

	Relationship *relationship.State `json:"relationship,omitempty"`
}

// Name returns the NPC's display name.
func (c *Character) Name() string {
	return c.Background.Name
}

// EffectiveHappiness is the happiness trait offset by current mood,
// clamped to the trait scale.
func (c *Character) EffectiveHappiness() int {
	h := c.Personality.Happiness + c.CurrentMood
	if h < 0 {
		return 0
	}
	if h > 100 {
		return 100
	}
	return h
}

// Rel returns the character's relationship state, creating first-contact
// defaults if none exists yet.
func (c *Character) Rel() *relationship.State {
	if c.Relationship == nil {
		c.Relationship = relationship.New()
	}
	return c.Relationship
}

// UnlockSkill flips the one-way skill knowledge flag. Returns true only on
// the first call that actually unlocks it.
func (c *Character) UnlockSkill() bool {
	if c.SkillUnlocked {
		return false
	}
	c.SkillUnlocked = true
	return true
}

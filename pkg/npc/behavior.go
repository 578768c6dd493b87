package npc

// HostileAction maps a player behavior to the NPC's scripted reaction.
type HostileAction struct {
	Trigger     string `json:"trigger"`
	Action      string `json:"action"`
	Consequence string `json:"consequence,omitempty"`
}

// BehavioralRules are the trigger-phrase rule sets consulted by both the
// prompt compiler and the message evaluator. Immutable after creation.
type BehavioralRules struct {
	AngerTriggers   []string        `json:"anger_triggers,omitempty"`
	PleaseTriggers  []string        `json:"please_triggers,omitempty"`
	ForbiddenTopics []string        `json:"forbidden_topics,omitempty"`
	MajorInsults    []string        `json:"major_insults,omitempty"`
	Dealbreakers    []string        `json:"dealbreakers,omitempty"`
	HostileActions  []HostileAction `json:"hostile_actions,omitempty"`
}

package npc

// SpeechPatterns flavor how the NPC talks.
type SpeechPatterns struct {
	Greetings []string `json:"greetings,omitempty"`
	Farewells []string `json:"farewells,omitempty"`
	Fillers   []string `json:"fillers,omitempty"`
	Accent    string   `json:"accent,omitempty"`
}

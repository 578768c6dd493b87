package npc

// Trauma reactions.
const (
	ReactionShutsDown  = "shuts_down"
	ReactionLashesOut  = "lashes_out"
	ReactionFlees      = "flees"
	ReactionBreaksDown = "breaks_down"
	ReactionGoesCold   = "goes_cold"
)

// Trauma severities.
const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Trauma is a past event the NPC carries. Triggers are phrases that, when
// present in a player message, wound the NPC. Consulted by the message
// evaluator and rendered by the prompt compiler; never mutated.
type Trauma struct {
	Event    string   `json:"event"`
	Triggers []string `json:"triggers,omitempty"`
	Reaction string   `json:"reaction"`
	Severity string   `json:"severity"`
}

// Background is the NPC's identity and history. Immutable after creation.
type Background struct {
	Name         string   `json:"name"`
	Title        string   `json:"title,omitempty"`
	Occupation   string   `json:"occupation"`
	Origin       string   `json:"origin,omitempty"`
	Backstory    string   `json:"backstory"`
	Family       string   `json:"family,omitempty"`
	Secrets      []string `json:"secrets,omitempty"`
	Regrets      []string `json:"regrets,omitempty"`
	ProudMoments []string `json:"proud_moments,omitempty"`
	Traumas      []Trauma `json:"traumas,omitempty"`
	Enemies      []string `json:"enemies,omitempty"`
	Allies       []string `json:"allies,omitempty"`
}

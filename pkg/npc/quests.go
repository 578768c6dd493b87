package npc

// Quest styles.
const (
	QuestStyleDirect    = "direct"    // states the job plainly
	QuestStyleCryptic   = "cryptic"   // hints and riddles
	QuestStyleReluctant = "reluctant" // must be coaxed into asking
	QuestStyleDesperate = "desperate" // begs for help
)

// Quest is a job the NPC can offer. Structure is immutable; acceptance and
// completion are tracked by the game-state store, not here.
type Quest struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`              // what the player is told
	HiddenDetails string   `json:"hidden_details,omitempty"` // what the NPC withholds
	Introduction  string   `json:"introduction,omitempty"`   // first line used to bring it up
	TrustRequired int      `json:"trust_required"`
	Prerequisites []string `json:"prerequisites,omitempty"` // quest IDs
	Reward        string   `json:"reward,omitempty"`
}

// QuestHooks gates and styles the quests an NPC can hand out.
type QuestHooks struct {
	Quests        []Quest `json:"quests,omitempty"`
	QuestStyle    string  `json:"quest_style,omitempty"`
	TrustRequired int     `json:"trust_required"` // overall gate before any quest talk
}

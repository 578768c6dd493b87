package npc

// Prices an NPC may ask for information.
const (
	PriceFree        = "free"
	PriceGold        = "gold"
	PriceFavor       = "favor"
	PriceSecretTrade = "secret_trade"
)

// Rumor is something the NPC has heard. Truthfulness is 0-100; the prompt
// compiler treats rumors at 50 or below as believed-but-possibly-false.
type Rumor struct {
	Content      string `json:"content"`
	Truthfulness int    `json:"truthfulness"`
	Importance   int    `json:"importance,omitempty"`
}

// Secret is something the NPC knows and guards. TrustRequired gates whether
// the NPC may reveal it; DangerLevel is how costly the reveal would be.
type Secret struct {
	Content       string `json:"content"`
	TrustRequired int    `json:"trust_required"`
	DangerLevel   int    `json:"danger_level,omitempty"`
}

// Knowledge is what an NPC knows and how freely it shares. Immutable.
type Knowledge struct {
	Expertise           []string `json:"expertise,omitempty"`
	Rumors              []Rumor  `json:"rumors,omitempty"`
	Secrets             []Secret `json:"secrets,omitempty"`
	InformationOpenness int      `json:"information_openness"` // 0=tight-lipped, 100=gossip
	PriceForInfo        string   `json:"price_for_info,omitempty"`
}

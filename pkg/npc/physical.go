package npc

// Age classes for PhysicalAttributes.
const (
	AgeYoung   = "young"
	AgeAdult   = "adult"
	AgeMiddle  = "middle_aged"
	AgeElderly = "elderly"
)

// Builds for PhysicalAttributes.
const (
	BuildFrail    = "frail"
	BuildSlim     = "slim"
	BuildAverage  = "average"
	BuildStocky   = "stocky"
	BuildMuscular = "muscular"
	BuildHeavy    = "heavy"
)

// Heights for PhysicalAttributes.
const (
	HeightShort   = "short"
	HeightAverage = "average"
	HeightTall    = "tall"
)

// Health states for PhysicalAttributes.
const (
	HealthSickly   = "sickly"
	HealthPoor     = "poor"
	HealthFair     = "fair"
	HealthGood     = "good"
	HealthVigorous = "vigorous"
)

// PhysicalAttributes describes an NPC's body. Immutable after creation.
type PhysicalAttributes struct {
	Age                 string   `json:"age"`
	Build               string   `json:"build"`
	Height              string   `json:"height"`
	Health              string   `json:"health"`
	Disabilities        []string `json:"disabilities,omitempty"`
	DistinctiveFeatures []string `json:"distinctive_features,omitempty"`
}

package relationship

import "time"

// MemorableEvent is something the NPC will not forget about the player.
// Impact is -100..100; positive events warm the NPC, negative ones sour it.
type MemorableEvent struct {
	Description string    `json:"description"`
	Impact      int       `json:"impact"`
	Timestamp   time.Time `json:"timestamp"`
	Forgiven    bool      `json:"forgiven,omitempty"`
}

// State is the mutable relationship between one NPC and the player. The four
// scalars are always kept in [0,100]; every mutation path clamps. The three
// flags are one-way: no code path clears them.
type State struct {
	Trust     int `json:"trust"`
	Respect   int `json:"respect"`
	Affection int `json:"affection"`
	Fear      int `json:"fear"`

	Status Status `json:"status"`

	Interactions    int       `json:"interactions"`
	FirstMet        time.Time `json:"first_met,omitzero"`
	LastInteraction time.Time `json:"last_interaction,omitzero"`

	MemorableEvents []MemorableEvent `json:"memorable_events,omitempty"`

	PointOfNoReturn  bool `json:"point_of_no_return,omitempty"`
	RomanticInterest bool `json:"romantic_interest,omitempty"`
	Vendetta         bool `json:"vendetta,omitempty"`
}

// New returns the first-contact relationship: low trust, no history.
func New() *State {
	now := time.Now()
	return &State{
		Trust:     10,
		Respect:   20,
		Affection: 10,
		Fear:      0,
		Status:    StatusStranger,
		FirstMet:  now,
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ApplyDelta adjusts the four scalars, clamping each to [0,100], and
// recomputes the status. Terminal statuses and the point-of-no-return flag
// always survive recomputation.
func (s *State) ApplyDelta(trust, respect, affection, fear int) {
	s.Trust = clamp(s.Trust + trust)
	s.Respect = clamp(s.Respect + respect)
	s.Affection = clamp(s.Affection + affection)
	s.Fear = clamp(s.Fear + fear)
	s.Status = s.derive()
}

// RecordInteraction bumps the interaction counters.
func (s *State) RecordInteraction() {
	s.Interactions++
	s.LastInteraction = time.Now()
}

// AddEvent appends a memorable event and recomputes status.
func (s *State) AddEvent(description string, impact int) {
	if impact < -100 {
		impact = -100
	}
	if impact > 100 {
		impact = 100
	}
	s.MemorableEvents = append(s.MemorableEvents, MemorableEvent{
		Description: description,
		Impact:      impact,
		Timestamp:   time.Now(),
	})
}

// MarkPointOfNoReturn permanently locks the relationship into hostile
// territory. One-way.
func (s *State) MarkPointOfNoReturn() {
	s.PointOfNoReturn = true
}

// MarkVendetta sets the one-way vendetta flag and recomputes status.
func (s *State) MarkVendetta() {
	s.Vendetta = true
	s.Status = s.derive()
}

// MarkRomanticInterest sets the one-way romantic flag.
func (s *State) MarkRomanticInterest() {
	s.RomanticInterest = true
}

// Ban forces the terminal banned status. Irreversible: the point-of-no-return
// flag is set so no recomputation can ever move off banned.
func (s *State) Ban() {
	s.Status = StatusBanned
	s.PointOfNoReturn = true
}

// derive maps the scalars and flags to a status. Terminal statuses and
// point-of-no-return are sticky; otherwise higher trust/affection/respect
// band toward friendlier statuses and high fear with low trust bands hostile.
func (s *State) derive() Status {
	if s.PointOfNoReturn || s.Status.Terminal() {
		return s.Status
	}
	if s.Vendetta {
		return StatusEnemy
	}
	if s.Trust < 20 && s.Fear > 60 {
		return StatusEnemy
	}
	if s.Trust < 25 && s.Affection < 20 && s.Fear > 30 {
		return StatusDisliked
	}

	warmth := (s.Trust + s.Respect + s.Affection) / 3
	switch {
	case s.RomanticInterest && s.Affection >= 75 && s.Trust >= 60:
		return StatusRomantic
	case warmth >= 85:
		return StatusCloseFriend
	case warmth >= 70:
		return StatusFriend
	case warmth >= 50:
		return StatusFriendly
	case warmth >= 25:
		return StatusAcquaintance
	}
	if s.Interactions > 3 && s.Trust < 15 && s.Affection < 15 {
		return StatusDisliked
	}
	return StatusStranger
}

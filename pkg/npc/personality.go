package npc

// PersonalityTraits holds the 24 scalar traits that drive an NPC's
// conversational behavior. Every trait is on a 0-100 scale with semantic
// anchors at 0/50/100 (e.g. Anger: 0=calm, 50=irritable, 100=rageful).
// All traits are present on every character and are read-only after creation.
type PersonalityTraits struct {
	Anger        int `json:"anger"`        // 0=calm, 50=irritable, 100=rageful
	Patience     int `json:"patience"`     // 0=snappy, 50=even, 100=saintly
	Humor        int `json:"humor"`        // 0=humorless, 50=dry, 100=jester
	Pride        int `json:"pride"`        // 0=humble, 50=self-assured, 100=arrogant
	Greed        int `json:"greed"`        // 0=selfless, 50=fair, 100=grasping
	Honesty      int `json:"honesty"`      // 0=liar, 50=evasive, 100=blunt
	Loyalty      int `json:"loyalty"`      // 0=turncoat, 50=transactional, 100=devoted
	Courage      int `json:"courage"`      // 0=craven, 50=cautious, 100=fearless
	Curiosity    int `json:"curiosity"`    // 0=incurious, 50=interested, 100=prying
	Compassion   int `json:"compassion"`   // 0=cold, 50=decent, 100=bleeding-heart
	Jealousy     int `json:"jealousy"`     // 0=content, 50=envious, 100=covetous
	Vanity       int `json:"vanity"`       // 0=plain, 50=tidy, 100=preening
	Piety        int `json:"piety"`        // 0=godless, 50=observant, 100=zealous
	Superstition int `json:"superstition"` // 0=rational, 50=wary, 100=omen-haunted
	Ambition     int `json:"ambition"`     // 0=settled, 50=striving, 100=ruthless
	Laziness     int `json:"laziness"`     // 0=tireless, 50=steady, 100=idle
	Paranoia     int `json:"paranoia"`     // 0=trusting, 50=careful, 100=hunted
	Forgiveness  int `json:"forgiveness"`  // 0=grudge-holder, 50=fair, 100=absolving
	Chattiness   int `json:"chattiness"`   // 0=taciturn, 50=conversational, 100=rambling
	Crudeness    int `json:"crudeness"`    // 0=refined, 50=plain-spoken, 100=vulgar
	Generosity   int `json:"generosity"`   // 0=miserly, 50=fair, 100=open-handed
	Stubbornness int `json:"stubbornness"` // 0=pliable, 50=firm, 100=immovable
	Romanticism  int `json:"romanticism"`  // 0=pragmatic, 50=sentimental, 100=swooning
	Happiness    int `json:"happiness"`    // 0=miserable, 50=content, 100=joyful
}

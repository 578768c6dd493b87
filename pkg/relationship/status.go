package relationship

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status is the discrete relationship standing between an NPC and the player.
type Status string

const (
	StatusStranger     Status = "stranger"
	StatusAcquaintance Status = "acquaintance"
	StatusFriendly     Status = "friendly"
	StatusFriend       Status = "friend"
	StatusCloseFriend  Status = "close_friend"
	StatusRomantic     Status = "romantic"
	StatusDisliked     Status = "disliked"
	StatusEnemy        Status = "enemy"
	StatusNemesis      Status = "nemesis"
	StatusBanned       Status = "banned"
)

// AllStatuses lists every status value, friendliest path first, then the
// hostile track. Used to verify exhaustive mappings.
var AllStatuses = []Status{
	StatusStranger,
	StatusAcquaintance,
	StatusFriendly,
	StatusFriend,
	StatusCloseFriend,
	StatusRomantic,
	StatusDisliked,
	StatusEnemy,
	StatusNemesis,
	StatusBanned,
}

var titleCaser = cases.Title(language.English)

// Display renders the status for readouts, e.g. "close_friend" -> "Close Friend".
func (s Status) Display() string {
	return titleCaser.String(strings.ReplaceAll(string(s), "_", " "))
}

// Terminal reports whether no transition may ever leave this status.
func (s Status) Terminal() bool {
	return s == StatusBanned || s == StatusNemesis
}

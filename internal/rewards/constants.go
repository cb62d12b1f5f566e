package rewards

// Reason identifies why a mutation was rejected or why a session cannot be
// claimed yet. Ready (the zero value) means nothing is blocking.
type Reason int

const (
	Ready Reason = iota

	// Mutation rejections
	ReasonUnknownEntityType
	ReasonUnknownTrainer
	ReasonUnknownMonster
	ReasonMonsterOwnerMissing
	ReasonMonsterOwnerMismatch
	ReasonLevelsOutOfRange
	ReasonCoinsOutOfRange
	ReasonItemIndexOutOfRange
	ReasonSessionClosed

	// Readiness blockers, reported in this order
	ReasonLevelsNotAllocated
	ReasonCoinsNotAllocated
	ReasonItemsNotAssigned
)

var reasonCodes = map[Reason]string{
	Ready:                      "ready",
	ReasonUnknownEntityType:    "unknown entity type",
	ReasonUnknownTrainer:       "unknown trainer",
	ReasonUnknownMonster:       "unknown monster",
	ReasonMonsterOwnerMissing:  "monster owner missing",
	ReasonMonsterOwnerMismatch: "monster owner mismatch",
	ReasonLevelsOutOfRange:     "levels out of range",
	ReasonCoinsOutOfRange:      "coins out of range",
	ReasonItemIndexOutOfRange:  "item index out of range",
	ReasonSessionClosed:        "session closed",
	ReasonLevelsNotAllocated:   "levels not fully allocated",
	ReasonCoinsNotAllocated:    "coins not fully allocated",
	ReasonItemsNotAssigned:     "items not fully assigned",
}

var reasonMessages = map[Reason]string{
	Ready:                      "Ready to claim.",
	ReasonUnknownEntityType:    "Levels can only be assigned to a trainer or a monster.",
	ReasonUnknownTrainer:       "That trainer is not on your roster.",
	ReasonUnknownMonster:       "That monster is not on your roster.",
	ReasonMonsterOwnerMissing:  "Select the trainer that owns this monster.",
	ReasonMonsterOwnerMismatch: "That monster does not belong to the selected trainer.",
	ReasonLevelsOutOfRange:     "Level amount must be at least 1 and no more than the levels still available.",
	ReasonCoinsOutOfRange:      "Coin amount must be at least 1 and no more than the coins still available.",
	ReasonItemIndexOutOfRange:  "There is no item at that position.",
	ReasonSessionClosed:        "This claim has already been completed.",
	ReasonLevelsNotAllocated:   "Please allocate all available levels before claiming rewards.",
	ReasonCoinsNotAllocated:    "Please allocate all available coins before claiming rewards.",
	ReasonItemsNotAssigned:     "Please assign all items to trainers before claiming rewards.",
}

// String returns the short machine-readable code for the reason.
func (r Reason) String() string {
	if code, ok := reasonCodes[r]; ok {
		return code
	}
	return "unknown reason"
}

// Message returns the user-facing explanation for the reason.
func (r Reason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return "Something went wrong."
}

// ParseReason maps a code produced by String back to its Reason.
func ParseReason(code string) (Reason, bool) {
	for r, c := range reasonCodes {
		if c == code {
			return r, true
		}
	}
	return Ready, false
}

// Fallback display names when a roster entry has no name
const (
	UnknownTrainerName = "Unknown Trainer"
	UnknownMonsterName = "Unknown Monster"
)

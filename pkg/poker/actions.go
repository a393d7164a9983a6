package poker

// Action represents a betting action.
type Action string

const (
	ActionFold  Action = "FOLD"
	ActionCheck Action = "CHECK"
	ActionCall  Action = "CALL"
	ActionBet   Action = "BET"
	ActionRaise Action = "RAISE"
	ActionAllIn Action = "ALL_IN"

	// Forced posts, recorded in hand history only.
	ActionSmallBlind Action = "SMALL_BLIND"
	ActionBigBlind   Action = "BIG_BLIND"
)

// ValidActions describes the actions legal for one seat given the current
// table state, along with the amounts that parameterize them.
type ValidActions struct {
	Actions    []Action
	CallAmount int64 // chips owed to call
	MinBet     int64 // minimum opening bet when betting is unopened
	MinRaiseTo int64 // minimum total street commitment for a raise
}

// Contains reports whether the given action is in the legal set.
func (va ValidActions) Contains(action Action) bool {
	for _, a := range va.Actions {
		if a == action {
			return true
		}
	}
	return false
}

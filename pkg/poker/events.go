package poker

import "time"

// EventType identifies a table event.
type EventType string

const (
	EventPlayerJoined  EventType = "PLAYER_JOINED"
	EventPlayerLeft    EventType = "PLAYER_LEFT"
	EventPlayerAction  EventType = "PLAYER_ACTION"
	EventPlayerTurn    EventType = "PLAYER_TURN"
	EventStreetChanged EventType = "STREET_CHANGED"
	EventHandComplete  EventType = "HAND_COMPLETE"
)

// EventPayload is implemented by exactly one payload type per event name.
type EventPayload interface {
	Kind() EventType
}

// Event is a table event. Events are emitted synchronously, in order, on the
// execution path of the mutating call that caused them.
type Event struct {
	TableID string
	HandNum uint64
	Payload EventPayload
}

// Type returns the event's type, derived from its payload.
func (e Event) Type() EventType {
	if e.Payload == nil {
		return ""
	}
	return e.Payload.Kind()
}

type PlayerJoinedPayload struct {
	PlayerID string
	Seat     int
	Stack    int64
}

func (PlayerJoinedPayload) Kind() EventType { return EventPlayerJoined }

type PlayerLeftPayload struct {
	PlayerID string
	Seat     int
}

func (PlayerLeftPayload) Kind() EventType { return EventPlayerLeft }

type PlayerActionPayload struct {
	PlayerID string
	Seat     int
	Action   Action
	Amount   int64 // chips moved by this action, zero for check/fold
	PotTotal int64 // committed chips plus collected pots after the action
}

func (PlayerActionPayload) Kind() EventType { return EventPlayerAction }

type PlayerTurnPayload struct {
	PlayerID   string
	Seat       int
	CallAmount int64 // chips owed to call, zero when a check is available
	MinRaiseTo int64 // minimum total for a bet or raise
}

func (PlayerTurnPayload) Kind() EventType { return EventPlayerTurn }

type StreetChangedPayload struct {
	Street         Street
	CommunityCards []Card
}

func (StreetChangedPayload) Kind() EventType { return EventStreetChanged }

// PotAward records one pot (or pot share) paid out at hand end.
type PotAward struct {
	PlayerID    string
	Seat        int
	Amount      int64
	PotIndex    int
	Description string // winning hand description, empty for uncontested wins
}

type HandCompletePayload struct {
	Awards   []PotAward
	TotalPot int64
}

func (HandCompletePayload) Kind() EventType { return EventHandComplete }

// HistoryEntry is one record in the append-only per-hand history log.
type HistoryEntry struct {
	HandNum   uint64
	Street    Street
	Seat      int
	PlayerID  string
	Action    Action
	Amount    int64
	Message   string
	Timestamp time.Time
}

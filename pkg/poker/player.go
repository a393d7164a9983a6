package poker

import "fmt"

// PlayerStatus represents a player's per-hand state at the table.
type PlayerStatus int

const (
	StatusWaiting PlayerStatus = iota // seated, not dealt into the current hand
	StatusActive                      // dealt in and still able to act
	StatusFolded
	StatusAllIn
	StatusSittingOut
	StatusDisconnected
)

// String returns a string representation of the player status
func (s PlayerStatus) String() string {
	switch s {
	case StatusWaiting:
		return "WAITING"
	case StatusActive:
		return "ACTIVE"
	case StatusFolded:
		return "FOLDED"
	case StatusAllIn:
		return "ALL_IN"
	case StatusSittingOut:
		return "SITTING_OUT"
	case StatusDisconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}

// Player represents a seated poker player. Player records are owned by the
// engine's table state and are never handed out directly; external views go
// through privacy-filtered copies.
type Player struct {
	ID   string
	Name string
	Seat int

	Stack     int64
	HoleCards []Card

	StreetBet int64 // chips committed this betting round
	TotalBet  int64 // chips committed this hand

	Status     PlayerStatus
	IsTurn     bool
	IsDealer   bool
	HasActed   bool   // acted since the last bet or raise this round
	LastAction Action // last action taken this street, cleared on street change

	// Populated during showdown only.
	HandValue *HandValue
}

// NewPlayer creates a new player with the given starting stack. The player is
// unseated (Seat -1) until placed by the engine.
func NewPlayer(id, name string, stack int64) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Seat:  -1,
		Stack: stack,
	}
}

// resetForNewHand clears all per-hand fields ahead of a fresh deal.
func (p *Player) resetForNewHand() {
	p.HoleCards = nil
	p.StreetBet = 0
	p.TotalBet = 0
	p.IsTurn = false
	p.IsDealer = false
	p.HasActed = false
	p.LastAction = ""
	p.HandValue = nil
}

// inHand reports whether the player was dealt into the current hand.
func (p *Player) inHand() bool {
	return p.Status == StatusActive || p.Status == StatusAllIn || p.Status == StatusFolded
}

// canAct reports whether the player may still take betting actions.
func (p *Player) canAct() bool {
	return p.Status == StatusActive
}

// owes returns the amount the player must add to match the given bet.
func (p *Player) owes(currentBet int64) int64 {
	owed := currentBet - p.StreetBet
	if owed < 0 {
		return 0
	}
	return owed
}

// commit moves up to amount chips from the player's stack into their street
// commitment, marking the player all-in when the stack empties. It returns
// the amount actually committed.
func (p *Player) commit(amount int64) int64 {
	if amount > p.Stack {
		amount = p.Stack
	}
	p.Stack -= amount
	p.StreetBet += amount
	p.TotalBet += amount
	if p.Stack == 0 {
		p.Status = StatusAllIn
	}
	return amount
}

// String returns a short description of the player for logs.
func (p *Player) String() string {
	return fmt.Sprintf("%s(seat %d, stack %d, %s)", p.ID, p.Seat, p.Stack, p.Status)
}

package poker

import "github.com/thoas/go-funk"

// Seat predicates used when walking the arena.
func playerInHand(p *Player) bool { return p.inHand() }
func playerCanAct(p *Player) bool { return p.canAct() }

// playerAt returns the player at the given seat, or nil for an empty or
// out-of-range seat.
func (te *TableEngine) playerAt(seatNum int) *Player {
	if seatNum < 0 || seatNum >= len(te.seats) {
		return nil
	}
	if !te.seats[seatNum].Occupied {
		return nil
	}
	return te.seats[seatNum].Player
}

// seatedPlayers returns every seated player in seat order.
func (te *TableEngine) seatedPlayers() []*Player {
	players := make([]*Player, 0, len(te.seats))
	for _, s := range te.seats {
		if s.Occupied {
			players = append(players, s.Player)
		}
	}
	return players
}

// playersInHand returns the players dealt into the current hand.
func (te *TableEngine) playersInHand() []*Player {
	return funk.Filter(te.seatedPlayers(), playerInHand).([]*Player)
}

// nonFoldedPlayers returns the players still contesting the hand.
func (te *TableEngine) nonFoldedPlayers() []*Player {
	return funk.Filter(te.seatedPlayers(), func(p *Player) bool {
		return p.inHand() && p.Status != StatusFolded
	}).([]*Player)
}

// eligiblePlayers returns the waiting players with chips, i.e. those dealt
// into the next hand.
func (te *TableEngine) eligiblePlayers() []*Player {
	return funk.Filter(te.seatedPlayers(), func(p *Player) bool {
		return p.Status == StatusWaiting && p.Stack > 0
	}).([]*Player)
}

// countCanAct counts the players still able to take betting actions.
func (te *TableEngine) countCanAct() int {
	n := 0
	for _, p := range te.playersInHand() {
		if p.canAct() {
			n++
		}
	}
	return n
}

// nextSeatWith returns the next occupied seat clockwise after start whose
// player satisfies the predicate, or -1 when none does. A start of -1 scans
// from seat zero.
func (te *TableEngine) nextSeatWith(start int, match func(*Player) bool) int {
	n := len(te.seats)
	for i := 1; i <= n; i++ {
		sn := ((start + i) % n + n) % n
		if p := te.playerAt(sn); p != nil && match(p) {
			return sn
		}
	}
	return -1
}

// seatsFrom returns the seats of matching players in clockwise order,
// starting with the first seat after start.
func (te *TableEngine) seatsFrom(start int, match func(*Player) bool) []int {
	n := len(te.seats)
	out := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		sn := ((start + i) % n + n) % n
		if p := te.playerAt(sn); p != nil && match(p) {
			out = append(out, sn)
		}
	}
	return out
}

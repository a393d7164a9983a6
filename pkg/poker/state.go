package poker

import "sort"

// PlayerView is a privacy-filtered copy of a seated player.
type PlayerView struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Seat            int          `json:"seat"`
	Stack           int64        `json:"stack"`
	HoleCards       []Card       `json:"hole_cards,omitempty"`
	StreetBet       int64        `json:"street_bet"`
	TotalBet        int64        `json:"total_bet"`
	Status          PlayerStatus `json:"status"`
	IsTurn          bool         `json:"is_turn"`
	IsDealer        bool         `json:"is_dealer"`
	LastAction      Action       `json:"last_action,omitempty"`
	HandDescription string       `json:"hand_description,omitempty"`
}

// SeatState is one slot of the seat arena in a state view.
type SeatState struct {
	Occupied bool        `json:"occupied"`
	Player   *PlayerView `json:"player,omitempty"`
}

// PotView is a copy of one pot.
type PotView struct {
	Amount   int64    `json:"amount"`
	Eligible []string `json:"eligible"`
	IsMain   bool     `json:"is_main"`
	Closed   bool     `json:"closed"`
}

// TableState is a point-in-time copy of the table, safe to hand to external
// consumers. Nothing in it aliases engine-owned records.
type TableState struct {
	TableID        string         `json:"table_id"`
	HandNum        uint64         `json:"hand_num"`
	Street         Street         `json:"street"`
	CommunityCards []Card         `json:"community_cards"`
	Pots           []PotView      `json:"pots"`
	CurrentBet     int64          `json:"current_bet"`
	MinRaise       int64          `json:"min_raise"`
	ActiveSeat     int            `json:"active_seat"`
	DealerSeat     int            `json:"dealer_seat"`
	SmallBlindSeat int            `json:"small_blind_seat"`
	BigBlindSeat   int            `json:"big_blind_seat"`
	Seats          []SeatState    `json:"seats"`
	History        []HistoryEntry `json:"history"`
}

// PotTotal returns the sum across all pots in the view.
func (ts *TableState) PotTotal() int64 {
	var total int64
	for _, pot := range ts.Pots {
		total += pot.Amount
	}
	return total
}

// GetState returns the full, unfiltered table state. This view is for the
// table authority only; it includes every player's hole cards.
func (te *TableEngine) GetState() *TableState {
	return te.snapshot(func(*Player) bool { return true })
}

// GetPlayerState returns the table state as the given viewer may see it: the
// viewer's own hole cards only, until the street is SHOWDOWN, at which point
// every contender's cards are visible. Hole-card privacy is enforced here,
// on the server side, never delegated to clients.
func (te *TableEngine) GetPlayerState(viewerID string) *TableState {
	return te.snapshot(func(p *Player) bool {
		if te.street == StreetShowdown && p.inHand() && p.Status != StatusFolded {
			return true
		}
		return p.ID == viewerID
	})
}

func (te *TableEngine) snapshot(showCards func(*Player) bool) *TableState {
	ts := &TableState{
		TableID:        te.cfg.ID,
		HandNum:        te.handNum,
		Street:         te.street,
		CommunityCards: append([]Card(nil), te.community...),
		CurrentBet:     te.currentBet,
		MinRaise:       te.minRaise,
		ActiveSeat:     te.activeSeat,
		DealerSeat:     te.dealerSeat,
		SmallBlindSeat: te.smallBlindSeat,
		BigBlindSeat:   te.bigBlindSeat,
		Seats:          make([]SeatState, len(te.seats)),
		History:        append([]HistoryEntry(nil), te.history...),
	}

	for _, pot := range te.pots {
		eligible := make([]string, 0, len(pot.Eligible))
		for id := range pot.Eligible {
			eligible = append(eligible, id)
		}
		sort.Strings(eligible)
		ts.Pots = append(ts.Pots, PotView{
			Amount:   pot.Amount,
			Eligible: eligible,
			IsMain:   pot.IsMain,
			Closed:   pot.Closed,
		})
	}

	for i, s := range te.seats {
		if !s.Occupied {
			continue
		}
		p := s.Player
		view := &PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			Seat:       p.Seat,
			Stack:      p.Stack,
			StreetBet:  p.StreetBet,
			TotalBet:   p.TotalBet,
			Status:     p.Status,
			IsTurn:     p.IsTurn,
			IsDealer:   p.IsDealer,
			LastAction: p.LastAction,
		}
		if showCards(p) {
			view.HoleCards = append([]Card(nil), p.HoleCards...)
			if p.HandValue != nil {
				view.HandDescription = p.HandValue.Description
			}
		}
		ts.Seats[i] = SeatState{Occupied: true, Player: view}
	}

	return ts
}

// TotalChips returns all chips known to the engine: stacks, live street bets
// and collected pots. Within one hand this sum is invariant.
func (te *TableEngine) TotalChips() int64 {
	total := potTotal(te.pots)
	for _, p := range te.seatedPlayers() {
		total += p.Stack + p.StreetBet
	}
	return total
}

package poker

import (
	"fmt"
	mrand "math/rand"
	"time"

	"github.com/decred/slog"
	"github.com/google/uuid"
)

// Street represents a stage of the hand.
type Street int

const (
	StreetWaiting Street = iota
	StreetPreflop
	StreetFlop
	StreetTurn
	StreetRiver
	StreetShowdown
)

// String returns a string representation of the street
func (s Street) String() string {
	switch s {
	case StreetWaiting:
		return "WAITING"
	case StreetPreflop:
		return "PREFLOP"
	case StreetFlop:
		return "FLOP"
	case StreetTurn:
		return "TURN"
	case StreetRiver:
		return "RIVER"
	case StreetShowdown:
		return "SHOWDOWN"
	default:
		return "UNKNOWN"
	}
}

// TableConfig holds the immutable configuration for a table engine.
type TableConfig struct {
	ID            string
	Log           slog.Logger
	MaxSeats      int
	SmallBlind    int64
	BigBlind      int64
	MinBuyIn      int64
	MaxBuyIn      int64
	ActionTimeout time.Duration // per-action time limit, enforced by the orchestration layer
	RunoutDelay   time.Duration // cosmetic pacing between auto-dealt streets; zero is fine
	Seed          int64         // deterministic deck seed; zero selects crypto shuffles
}

// normalize validates the configuration and fills defaults in place.
func (cfg *TableConfig) normalize() error {
	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}
	if cfg.Log == nil {
		cfg.Log = slog.Disabled
	}
	if cfg.MaxSeats <= 0 {
		cfg.MaxSeats = 9
	}
	if cfg.MaxSeats < 2 {
		return fmt.Errorf("%w: table needs at least 2 seats", ErrInvalidInput)
	}
	if cfg.SmallBlind <= 0 || cfg.BigBlind <= 0 || cfg.BigBlind < cfg.SmallBlind {
		return fmt.Errorf("%w: invalid blinds %d/%d", ErrInvalidInput, cfg.SmallBlind, cfg.BigBlind)
	}
	if cfg.MinBuyIn <= 0 {
		cfg.MinBuyIn = cfg.BigBlind * 20
	}
	if cfg.MaxBuyIn <= 0 {
		cfg.MaxBuyIn = cfg.BigBlind * 200
	}
	if cfg.MaxBuyIn < cfg.MinBuyIn {
		return fmt.Errorf("%w: max buy-in %d below min buy-in %d", ErrInvalidInput, cfg.MaxBuyIn, cfg.MinBuyIn)
	}
	return nil
}

// seat is one slot in the fixed-size seat arena. A seat is either empty or
// holds exactly one player.
type seat struct {
	Occupied bool
	Player   *Player
}

// TableEngine is the authoritative betting state machine for one table. It
// performs no internal locking: callers (normally a single dealer goroutine)
// must serialize all access.
type TableEngine struct {
	log slog.Logger
	cfg TableConfig

	seats []seat
	deck  *Deck

	street     Street
	community  []Card
	pots       []*Pot
	currentBet int64
	minRaise   int64

	activeSeat     int
	dealerSeat     int
	smallBlindSeat int
	bigBlindSeat   int

	handNum  uint64
	history  []HistoryEntry
	handLive bool // a hand is between StartNewHand and hand end

	listeners []func(Event)
}

// NewTableEngine creates a table engine from the given configuration.
func NewTableEngine(cfg TableConfig) (*TableEngine, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	var rng *mrand.Rand
	if cfg.Seed != 0 {
		rng = mrand.New(mrand.NewSource(cfg.Seed))
	}

	return &TableEngine{
		log:        cfg.Log,
		cfg:        cfg,
		seats:      make([]seat, cfg.MaxSeats),
		deck:       NewDeck(rng),
		street:     StreetWaiting,
		activeSeat: -1,
		dealerSeat: -1,
	}, nil
}

// Config returns the engine's immutable configuration.
func (te *TableEngine) Config() TableConfig {
	return te.cfg
}

// OnEvent registers an event listener. Listeners run synchronously, in
// registration order, on the mutating call's execution path.
func (te *TableEngine) OnEvent(fn func(Event)) {
	te.listeners = append(te.listeners, fn)
}

func (te *TableEngine) emit(payload EventPayload) {
	ev := Event{
		TableID: te.cfg.ID,
		HandNum: te.handNum,
		Payload: payload,
	}
	for _, fn := range te.listeners {
		fn(ev)
	}
}

// SeatPlayer places a player at the given seat, or at the first free seat
// when seatNum is -1. It rejects occupied seats and stacks outside the
// configured buy-in range.
func (te *TableEngine) SeatPlayer(player *Player, seatNum int) error {
	if seatNum == -1 {
		for i, s := range te.seats {
			if !s.Occupied {
				seatNum = i
				break
			}
		}
		if seatNum == -1 {
			return ErrTableFull
		}
	}
	if seatNum < 0 || seatNum >= len(te.seats) {
		return ErrSeatOutOfRange
	}
	if te.seats[seatNum].Occupied {
		return ErrSeatTaken
	}
	for _, s := range te.seats {
		if s.Occupied && s.Player.ID == player.ID {
			return ErrDuplicatePlayer
		}
	}
	if player.Stack < te.cfg.MinBuyIn || player.Stack > te.cfg.MaxBuyIn {
		return ErrBuyInOutOfRange
	}

	player.Seat = seatNum
	player.Status = StatusWaiting
	player.resetForNewHand()
	te.seats[seatNum] = seat{Occupied: true, Player: player}

	te.log.Infof("table %s: player %s seated at %d with %d chips", te.cfg.ID, player.ID, seatNum, player.Stack)
	te.emit(PlayerJoinedPayload{PlayerID: player.ID, Seat: seatNum, Stack: player.Stack})
	return nil
}

// RemovePlayer vacates the given seat and returns the removed player. A seat
// dealt into the current hand cannot be removed mid-hand; the request is
// rejected to keep pot eligibility intact.
func (te *TableEngine) RemovePlayer(seatNum int) (*Player, error) {
	if seatNum < 0 || seatNum >= len(te.seats) {
		return nil, ErrSeatOutOfRange
	}
	if !te.seats[seatNum].Occupied {
		return nil, ErrSeatEmpty
	}
	player := te.seats[seatNum].Player
	if te.handLive && player.inHand() {
		return nil, ErrPlayerInHand
	}

	te.seats[seatNum] = seat{}
	player.Seat = -1

	te.log.Infof("table %s: player %s left seat %d", te.cfg.ID, player.ID, seatNum)
	te.emit(PlayerLeftPayload{PlayerID: player.ID, Seat: seatNum})
	return player, nil
}

// CanStartHand reports whether a new hand may start now.
func (te *TableEngine) CanStartHand() bool {
	return te.street == StreetWaiting && len(te.eligiblePlayers()) >= 2
}

// StartNewHand deals a fresh hand: rotates the button, posts blinds, deals
// hole cards and opens preflop betting.
func (te *TableEngine) StartNewHand() error {
	if te.street != StreetWaiting {
		return ErrHandInProgress
	}
	eligible := te.eligiblePlayers()
	if len(eligible) < 2 {
		return ErrNotEnoughPlayers
	}

	te.handNum++
	te.community = nil
	te.pots = nil
	te.history = nil
	te.currentBet = 0
	te.minRaise = te.cfg.BigBlind
	te.handLive = true

	for _, p := range eligible {
		p.resetForNewHand()
		p.Status = StatusActive
	}

	te.deck.Reset()
	te.deck.Shuffle()

	// Advance the button to the next seat dealt into this hand.
	te.dealerSeat = te.nextSeatWith(te.dealerSeat, playerInHand)
	te.playerAt(te.dealerSeat).IsDealer = true

	// Heads-up: the dealer posts the small blind and acts first preflop.
	if len(eligible) == 2 {
		te.smallBlindSeat = te.dealerSeat
		te.bigBlindSeat = te.nextSeatWith(te.dealerSeat, playerInHand)
	} else {
		te.smallBlindSeat = te.nextSeatWith(te.dealerSeat, playerInHand)
		te.bigBlindSeat = te.nextSeatWith(te.smallBlindSeat, playerInHand)
	}

	te.postBlind(te.smallBlindSeat, te.cfg.SmallBlind, ActionSmallBlind)
	te.postBlind(te.bigBlindSeat, te.cfg.BigBlind, ActionBigBlind)
	te.currentBet = te.cfg.BigBlind

	// Two hole cards per player, dealt round-robin starting left of the button.
	order := te.seatsFrom(te.dealerSeat, playerInHand)
	for i := 0; i < 2; i++ {
		for _, sn := range order {
			card, ok := te.deck.Deal()
			if !ok {
				return fmt.Errorf("%w: deck exhausted while dealing", ErrInvalidInput)
			}
			p := te.playerAt(sn)
			p.HoleCards = append(p.HoleCards, card)
		}
	}

	te.street = StreetPreflop
	te.log.Infof("table %s: hand #%d started, dealer seat %d, blinds %d/%d",
		te.cfg.ID, te.handNum, te.dealerSeat, te.cfg.SmallBlind, te.cfg.BigBlind)
	te.emit(StreetChangedPayload{Street: te.street, CommunityCards: nil})

	// Short stacks can leave every blind all-in before anyone acts; with no
	// seat able to take a turn the board runs out to showdown immediately.
	first := te.nextSeatWith(te.bigBlindSeat, playerCanAct)
	if first == -1 {
		te.advanceStreet()
		return nil
	}
	te.giveTurn(first)
	return nil
}

// postBlind commits up to amount from the blind seat, capping at the stack.
// A short post leaves the player all-in.
func (te *TableEngine) postBlind(seatNum int, amount int64, kind Action) {
	p := te.playerAt(seatNum)
	if p == nil {
		return
	}
	posted := p.commit(amount)
	if posted < amount {
		te.log.Debugf("table %s: seat %d all-in posting %s (%d of %d)", te.cfg.ID, seatNum, kind, posted, amount)
	}
	te.appendHistory(seatNum, p.ID, kind, posted, fmt.Sprintf("%s posts %s %d", p.ID, kind, posted))
}

// GetValidActions computes the legal action set for a seat. It is a pure
// function of the current state and may be queried for any seat at any time.
func (te *TableEngine) GetValidActions(seatNum int) (ValidActions, error) {
	p := te.playerAt(seatNum)
	if p == nil {
		return ValidActions{}, ErrSeatEmpty
	}

	var va ValidActions
	if !p.canAct() || te.street == StreetWaiting || te.street == StreetShowdown {
		return va, nil
	}

	owed := p.owes(te.currentBet)
	va.CallAmount = owed
	va.MinBet = te.cfg.BigBlind
	va.MinRaiseTo = te.currentBet + te.minRaise

	if owed > 0 {
		va.Actions = append(va.Actions, ActionFold)
	}
	if owed == 0 {
		va.Actions = append(va.Actions, ActionCheck)
	}
	if owed > 0 && owed < p.Stack {
		va.Actions = append(va.Actions, ActionCall)
	}
	if te.currentBet == 0 && p.Stack > 0 {
		va.Actions = append(va.Actions, ActionBet)
	}
	if te.currentBet > 0 && p.Stack > owed {
		va.Actions = append(va.Actions, ActionRaise)
	}
	if p.Stack > 0 {
		va.Actions = append(va.Actions, ActionAllIn)
	}
	return va, nil
}

// ProcessAction applies a betting action for the seat whose turn it is. Any
// rejection leaves the table state unchanged.
func (te *TableEngine) ProcessAction(seatNum int, action Action, amount int64) error {
	p := te.playerAt(seatNum)
	if p == nil {
		return ErrSeatEmpty
	}
	if !p.IsTurn {
		return ErrNotPlayersTurn
	}

	va, err := te.GetValidActions(seatNum)
	if err != nil {
		return err
	}
	if !va.Contains(action) {
		return ErrInvalidAction
	}

	var moved int64
	switch action {
	case ActionFold:
		p.Status = StatusFolded

	case ActionCheck:
		// No chips move.

	case ActionCall:
		moved = p.commit(va.CallAmount)

	case ActionBet:
		if amount < va.MinBet || amount > p.Stack {
			return ErrInvalidAmount
		}
		moved = p.commit(amount)
		te.currentBet = p.StreetBet
		te.minRaise = p.StreetBet
		te.reopenBetting(seatNum)

	case ActionRaise:
		if amount < va.MinRaiseTo {
			return ErrInvalidAmount
		}
		needed := amount - p.StreetBet
		if needed > p.Stack {
			return ErrInsufficientChips
		}
		moved = p.commit(needed)
		te.minRaise = p.StreetBet - te.currentBet
		te.currentBet = p.StreetBet
		te.reopenBetting(seatNum)

	case ActionAllIn:
		moved = p.commit(p.Stack)
		if p.StreetBet > te.currentBet {
			// A short all-in raises the price to call but does not reset
			// the minimum raise; a full one does both.
			if p.StreetBet-te.currentBet >= te.minRaise {
				te.minRaise = p.StreetBet - te.currentBet
				te.reopenBetting(seatNum)
			}
			te.currentBet = p.StreetBet
		}

	default:
		return ErrInvalidAction
	}

	p.HasActed = true
	p.LastAction = action
	p.IsTurn = false
	te.activeSeat = -1

	te.appendHistory(seatNum, p.ID, action, moved, fmt.Sprintf("%s %s %d", p.ID, action, moved))
	te.log.Debugf("table %s: seat %d %s %d (street bet %d, current bet %d)",
		te.cfg.ID, seatNum, action, moved, p.StreetBet, te.currentBet)
	te.emit(PlayerActionPayload{
		PlayerID: p.ID,
		Seat:     seatNum,
		Action:   action,
		Amount:   moved,
		PotTotal: te.committedTotal(),
	})

	if len(te.nonFoldedPlayers()) <= 1 {
		te.finishUncontested()
		return nil
	}
	if te.roundComplete() {
		te.advanceStreet()
		return nil
	}
	te.giveTurn(te.nextSeatWith(seatNum, playerCanAct))
	return nil
}

// reopenBetting clears the acted flags of every other player still able to
// act, so a bet or full raise requires a response from each of them.
func (te *TableEngine) reopenBetting(aggressorSeat int) {
	for _, p := range te.playersInHand() {
		if p.Seat != aggressorSeat && p.canAct() {
			p.HasActed = false
		}
	}
}

// roundComplete reports whether the current betting round is finished: every
// player still able to act has acted since the last aggression and matched
// the current bet.
func (te *TableEngine) roundComplete() bool {
	for _, p := range te.playersInHand() {
		if !p.canAct() {
			continue
		}
		if !p.HasActed || p.StreetBet != te.currentBet {
			return false
		}
	}
	return true
}

// giveTurn marks the seat as the one to act and announces the turn.
func (te *TableEngine) giveTurn(seatNum int) {
	p := te.playerAt(seatNum)
	if p == nil {
		te.activeSeat = -1
		return
	}
	p.IsTurn = true
	te.activeSeat = seatNum
	te.emit(PlayerTurnPayload{
		PlayerID:   p.ID,
		Seat:       seatNum,
		CallAmount: p.owes(te.currentBet),
		MinRaiseTo: te.currentBet + te.minRaise,
	})
}

// advanceStreet closes the betting round, collects bets into pots and either
// deals the next street, runs out the board for an all-in showdown, or goes
// to showdown after the river.
func (te *TableEngine) advanceStreet() {
	te.clearTurn()
	te.pots = collectBets(te.pots, te.playersInHand())

	if len(te.nonFoldedPlayers()) <= 1 {
		te.finishUncontested()
		return
	}

	// With fewer than two players able to act, betting is over: run the
	// remaining streets straight through to showdown.
	if te.countCanAct() < 2 {
		for te.street < StreetRiver {
			te.dealNextStreet()
			if te.cfg.RunoutDelay > 0 {
				time.Sleep(te.cfg.RunoutDelay)
			}
		}
		te.goToShowdown()
		return
	}

	if te.street == StreetRiver {
		te.goToShowdown()
		return
	}

	te.dealNextStreet()
	te.currentBet = 0
	te.minRaise = te.cfg.BigBlind
	for _, p := range te.playersInHand() {
		p.HasActed = false
		p.LastAction = ""
	}
	te.giveTurn(te.nextSeatWith(te.dealerSeat, playerCanAct))
}

// dealNextStreet burns a card and reveals the next board cards: three for
// the flop, one each for the turn and river.
func (te *TableEngine) dealNextStreet() {
	te.deck.Burn()
	switch te.street {
	case StreetPreflop:
		te.street = StreetFlop
		te.community = append(te.community, te.deck.DealMultiple(3)...)
	case StreetFlop:
		te.street = StreetTurn
		te.community = append(te.community, te.deck.DealMultiple(1)...)
	case StreetTurn:
		te.street = StreetRiver
		te.community = append(te.community, te.deck.DealMultiple(1)...)
	}
	te.log.Debugf("table %s: street %s, board %v", te.cfg.ID, te.street, te.community)
	te.emit(StreetChangedPayload{Street: te.street, CommunityCards: append([]Card(nil), te.community...)})
}

// finishUncontested awards every collected pot to the lone remaining player
// and ends the hand without a showdown.
func (te *TableEngine) finishUncontested() {
	te.clearTurn()
	te.pots = collectBets(te.pots, te.playersInHand())

	nonFolded := te.nonFoldedPlayers()
	if len(nonFolded) != 1 {
		te.log.Errorf("table %s: uncontested finish with %d contenders", te.cfg.ID, len(nonFolded))
		te.endHand()
		return
	}
	winner := nonFolded[0]

	var awards []PotAward
	var total int64
	for i, pot := range te.pots {
		if pot.Amount == 0 {
			continue
		}
		winner.Stack += pot.Amount
		total += pot.Amount
		awards = append(awards, PotAward{
			PlayerID: winner.ID,
			Seat:     winner.Seat,
			Amount:   pot.Amount,
			PotIndex: i,
		})
		te.appendHistory(winner.Seat, winner.ID, "", pot.Amount,
			fmt.Sprintf("%s wins %d uncontested", winner.ID, pot.Amount))
	}

	te.log.Infof("table %s: hand #%d won uncontested by %s for %d", te.cfg.ID, te.handNum, winner.ID, total)
	te.emit(HandCompletePayload{Awards: awards, TotalPot: total})
	te.endHand()
}

// goToShowdown evaluates every contender and settles each pot in creation
// order, main pot first.
func (te *TableEngine) goToShowdown() {
	te.street = StreetShowdown
	te.emit(StreetChangedPayload{Street: te.street, CommunityCards: append([]Card(nil), te.community...)})

	contenders := te.nonFoldedPlayers()
	for _, p := range contenders {
		hv, err := EvaluateHand(append(append([]Card(nil), p.HoleCards...), te.community...))
		if err != nil {
			te.log.Errorf("table %s: evaluating seat %d at showdown: %v", te.cfg.ID, p.Seat, err)
			continue
		}
		p.HandValue = &hv
	}

	var awards []PotAward
	var total int64
	for i, pot := range te.pots {
		if pot.Amount == 0 {
			continue
		}
		winners := te.potWinners(pot, contenders)
		if len(winners) == 0 {
			te.log.Errorf("table %s: pot %d has no eligible contenders", te.cfg.ID, i)
			continue
		}

		share := pot.Amount / int64(len(winners))
		remainder := pot.Amount % int64(len(winners))
		for j, w := range winners {
			amount := share
			// Odd chip goes to the first winner clockwise from the button.
			if j == 0 {
				amount += remainder
			}
			w.Stack += amount
			total += amount
			desc := ""
			if w.HandValue != nil {
				desc = w.HandValue.Description
			}
			awards = append(awards, PotAward{
				PlayerID:    w.ID,
				Seat:        w.Seat,
				Amount:      amount,
				PotIndex:    i,
				Description: desc,
			})
			te.appendHistory(w.Seat, w.ID, "", amount,
				fmt.Sprintf("%s wins %d from pot %d with %s", w.ID, amount, i, desc))
		}
	}

	te.log.Infof("table %s: hand #%d showdown complete, %d paid out", te.cfg.ID, te.handNum, total)
	te.emit(HandCompletePayload{Awards: awards, TotalPot: total})
	te.endHand()
}

// potWinners returns the winning contenders for one pot, ordered clockwise
// from the button so remainder payment is deterministic and position-fair.
func (te *TableEngine) potWinners(pot *Pot, contenders []*Player) []*Player {
	var inPot []*Player
	for _, sn := range te.seatsFrom(te.dealerSeat, playerInHand) {
		p := te.playerAt(sn)
		if p.Status == StatusFolded || !pot.IsEligible(p.ID) {
			continue
		}
		inPot = append(inPot, p)
	}
	if len(inPot) == 0 {
		// Open pots that never saw an all-in may predate fold-outs; fall
		// back to every live contender.
		inPot = contenders
	}

	hands := make([]*HandValue, len(inPot))
	for i, p := range inPot {
		hands[i] = p.HandValue
	}
	var winners []*Player
	for _, idx := range DetermineWinners(hands) {
		winners = append(winners, inPot[idx])
	}
	return winners
}

// endHand clears per-hand state. Busted players remain seated in WAITING
// with a zero stack, pending an external top-up.
func (te *TableEngine) endHand() {
	for _, p := range te.playersInHand() {
		p.resetForNewHand()
		p.Status = StatusWaiting
	}
	te.pots = nil
	te.currentBet = 0
	te.minRaise = 0
	te.street = StreetWaiting
	te.activeSeat = -1
	te.handLive = false
}

// clearTurn removes any outstanding turn flag.
func (te *TableEngine) clearTurn() {
	for _, p := range te.playersInHand() {
		p.IsTurn = false
	}
	te.activeSeat = -1
}

// committedTotal is the chips committed this hand: collected pots plus the
// live street bets not yet swept into them.
func (te *TableEngine) committedTotal() int64 {
	total := potTotal(te.pots)
	for _, p := range te.playersInHand() {
		total += p.StreetBet
	}
	return total
}

func (te *TableEngine) appendHistory(seatNum int, playerID string, action Action, amount int64, msg string) {
	te.history = append(te.history, HistoryEntry{
		HandNum:   te.handNum,
		Street:    te.street,
		Seat:      seatNum,
		PlayerID:  playerID,
		Action:    action,
		Amount:    amount,
		Message:   msg,
		Timestamp: time.Now(),
	})
}

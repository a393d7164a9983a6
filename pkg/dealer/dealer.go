// Package dealer orchestrates a single table: it serializes all engine
// access, runs the action clock, relays sanitized state to players, and
// persists hand snapshots. The engine itself stays single-threaded; every
// concurrent concern lives here.
package dealer

import (
	"fmt"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/slog"
	"github.com/weedbox/timebank"

	"github.com/Smarter-Poker/Smarter-Poker-Diamond-Arena-sub003/pkg/dealer/internal/db"
	"github.com/Smarter-Poker/Smarter-Poker-Diamond-Arena-sub003/pkg/poker"
)

// SnapshotStore persists point-in-time table states. Persistence is
// best-effort: a failing store never blocks play.
type SnapshotStore interface {
	SaveSnapshot(state *poker.TableState) error
	Close() error
}

// Config configures a dealer service.
type Config struct {
	Log   slog.Logger
	Table poker.TableConfig

	// SettleDelay is how long the dealer waits after a hand completes
	// before dealing the next one. Zero disables automatic dealing.
	SettleDelay time.Duration

	// DBPath, when set, opens a sqlite snapshot store at that path. The
	// store receives a snapshot at every street change and at hand
	// completion.
	DBPath string

	// Store overrides DBPath with a caller-supplied store.
	Store SnapshotStore
}

// DealerService owns one table engine and is the only writer to it. All
// exported methods are safe for concurrent use.
type DealerService struct {
	log   slog.Logger
	cfg   Config
	store SnapshotStore

	mu     sync.Mutex
	engine *poker.TableEngine
	tb     *timebank.TimeBank

	// expectedChips tracks the chips the table should hold; it moves only
	// on seating and removal. Any divergence from the engine's count is a
	// settlement bug and gets dumped loudly.
	expectedChips int64

	subs    map[string][]chan *poker.TableState
	stopped bool
}

// NewDealerService creates a dealer and its underlying table engine.
func NewDealerService(cfg Config) (*DealerService, error) {
	if cfg.Log == nil {
		cfg.Log = slog.Disabled
	}
	if cfg.Table.Log == nil {
		cfg.Table.Log = cfg.Log
	}

	engine, err := poker.NewTableEngine(cfg.Table)
	if err != nil {
		return nil, fmt.Errorf("dealer: creating engine: %w", err)
	}

	store := cfg.Store
	if store == nil && cfg.DBPath != "" {
		store, err = db.NewDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("dealer: opening snapshot store: %w", err)
		}
	}

	d := &DealerService{
		log:    cfg.Log,
		cfg:    cfg,
		store:  store,
		engine: engine,
		tb:     timebank.NewTimeBank(),
		subs:   make(map[string][]chan *poker.TableState),
	}
	// The listener runs synchronously inside engine calls, which always
	// happen with d.mu held. It must never take the lock itself.
	engine.OnEvent(d.handleEvent)
	return d, nil
}

// Stop cancels timers and closes all subscriber channels. The dealer must
// not be used after Stop.
func (d *DealerService) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.stopped = true
	d.tb.Cancel()
	for _, chans := range d.subs {
		for _, ch := range chans {
			close(ch)
		}
	}
	d.subs = nil
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			d.log.Warnf("closing snapshot store: %v", err)
		}
	}
}

// SeatPlayer seats a new player with the given buy-in.
func (d *DealerService) SeatPlayer(playerID, name string, seatNum int, buyIn int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	player := poker.NewPlayer(playerID, name, buyIn)
	if err := d.engine.SeatPlayer(player, seatNum); err != nil {
		return err
	}
	d.expectedChips += buyIn
	return nil
}

// RemovePlayer stands a player up and returns their remaining stack. Players
// in a live hand cannot leave until it settles.
func (d *DealerService) RemovePlayer(playerID string) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	seatNum, err := d.seatOf(playerID)
	if err != nil {
		return 0, err
	}
	player, err := d.engine.RemovePlayer(seatNum)
	if err != nil {
		return 0, err
	}
	d.expectedChips -= player.Stack
	return player.Stack, nil
}

// StartHand deals a new hand immediately.
func (d *DealerService) StartHand() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.engine.StartNewHand()
}

// Act applies a player's action. The player must hold the turn.
func (d *DealerService) Act(playerID string, action poker.Action, amount int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	seatNum, err := d.seatOf(playerID)
	if err != nil {
		return err
	}
	if err := d.engine.ProcessAction(seatNum, action, amount); err != nil {
		return err
	}
	d.checkConservation()
	return nil
}

// ValidActions returns the actions currently open to a player.
func (d *DealerService) ValidActions(playerID string) (poker.ValidActions, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	seatNum, err := d.seatOf(playerID)
	if err != nil {
		return poker.ValidActions{}, err
	}
	return d.engine.GetValidActions(seatNum)
}

// PlayerState returns the table state sanitized for the given viewer.
func (d *DealerService) PlayerState(playerID string) *poker.TableState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.engine.GetPlayerState(playerID)
}

// State returns the unfiltered table state, hole cards included. For the
// operator surface only; never hand this to a player connection.
func (d *DealerService) State() *poker.TableState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.engine.GetState()
}

// Subscribe returns a channel of sanitized states for the given viewer, one
// per table event. Delivery is best-effort: a subscriber that falls behind
// misses updates rather than stalling the table.
func (d *DealerService) Subscribe(playerID string) <-chan *poker.TableState {
	d.mu.Lock()
	defer d.mu.Unlock()
	ch := make(chan *poker.TableState, 16)
	d.subs[playerID] = append(d.subs[playerID], ch)
	return ch
}

// seatOf resolves a player ID to a seat number. Caller holds d.mu.
func (d *DealerService) seatOf(playerID string) (int, error) {
	state := d.engine.GetState()
	for _, s := range state.Seats {
		if s.Occupied && s.Player != nil && s.Player.ID == playerID {
			return s.Player.Seat, nil
		}
	}
	return 0, poker.ErrSeatEmpty
}

// handleEvent reacts to engine events. It runs on the engine's execution
// path with d.mu already held by the calling goroutine.
func (d *DealerService) handleEvent(ev poker.Event) {
	switch payload := ev.Payload.(type) {
	case poker.PlayerJoinedPayload:
		// A join can make an idle table playable again.
		if d.engine.CanStartHand() {
			d.scheduleNextHand()
		}
	case poker.PlayerTurnPayload:
		d.armActionClock(ev.HandNum, payload.Seat)
	case poker.StreetChangedPayload:
		d.persist()
	case poker.HandCompletePayload:
		d.log.Infof("hand %d complete, %d chips awarded across %d pots",
			ev.HandNum, payload.TotalPot, len(payload.Awards))
		d.cancelClock()
		d.persist()
		d.scheduleNextHand()
	}
	d.broadcast()
}

// armActionClock starts the per-action timer for the seat that just received
// the turn. The previous clock, if any, is dead by now.
func (d *DealerService) armActionClock(handNum uint64, seatNum int) {
	timeout := d.cfg.Table.ActionTimeout
	if timeout <= 0 {
		return
	}
	d.cancelClock()
	err := d.tb.NewTask(timeout, func(isCancelled bool) {
		if isCancelled {
			return
		}
		d.expireAction(handNum, seatNum)
	})
	if err != nil {
		d.log.Errorf("arming action clock for seat %d: %v", seatNum, err)
	}
}

func (d *DealerService) cancelClock() {
	d.tb.Cancel()
	d.tb = timebank.NewTimeBank()
}

// expireAction fires when a player runs out their clock: check when free,
// fold otherwise. The hand and seat guards drop expiries that raced a real
// action.
func (d *DealerService) expireAction(handNum uint64, seatNum int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	state := d.engine.GetState()
	if state.HandNum != handNum || state.ActiveSeat != seatNum {
		return
	}

	valid, err := d.engine.GetValidActions(seatNum)
	if err != nil {
		d.log.Errorf("expiry on seat %d: %v", seatNum, err)
		return
	}
	action := poker.ActionFold
	if valid.Contains(poker.ActionCheck) {
		action = poker.ActionCheck
	}
	d.log.Infof("seat %d timed out, auto %s", seatNum, action)
	if err := d.engine.ProcessAction(seatNum, action, 0); err != nil {
		d.log.Errorf("auto %s on seat %d: %v", action, seatNum, err)
		return
	}
	d.checkConservation()
}

// scheduleNextHand arms the settle-delay timer that deals the next hand,
// replacing any previously armed timer.
func (d *DealerService) scheduleNextHand() {
	if d.cfg.SettleDelay <= 0 {
		return
	}
	d.cancelClock()
	err := d.tb.NewTask(d.cfg.SettleDelay, func(isCancelled bool) {
		if isCancelled {
			return
		}
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.stopped || !d.engine.CanStartHand() {
			return
		}
		if err := d.engine.StartNewHand(); err != nil {
			d.log.Errorf("auto-dealing next hand: %v", err)
		}
	})
	if err != nil {
		d.log.Errorf("scheduling next hand: %v", err)
	}
}

// broadcast pushes a fresh sanitized state to every subscriber. Full
// channels are skipped. Caller holds d.mu.
func (d *DealerService) broadcast() {
	for playerID, chans := range d.subs {
		state := d.engine.GetPlayerState(playerID)
		for _, ch := range chans {
			select {
			case ch <- state:
			default:
			}
		}
	}
}

// persist saves a snapshot if a store is configured. Caller holds d.mu.
func (d *DealerService) persist() {
	if d.store == nil {
		return
	}
	if err := d.store.SaveSnapshot(d.engine.GetState()); err != nil {
		d.log.Warnf("saving snapshot: %v", err)
	}
}

// checkConservation verifies the table holds exactly the chips it was
// bought in for. Caller holds d.mu.
func (d *DealerService) checkConservation() {
	got := d.engine.TotalChips()
	if got == d.expectedChips {
		return
	}
	d.log.Criticalf("chip conservation broken: have %d, expected %d\n%s",
		got, d.expectedChips, spew.Sdump(d.engine.GetState()))
}

// dealerd runs a local table with simple bot players, for exercising the
// engine end to end and eyeballing hand histories.
package main

import (
	"flag"
	"fmt"
	mrand "math/rand"
	"os"
	"time"

	"github.com/decred/slog"

	"github.com/Smarter-Poker/Smarter-Poker-Diamond-Arena-sub003/pkg/dealer"
	"github.com/Smarter-Poker/Smarter-Poker-Diamond-Arena-sub003/pkg/poker"
)

func main() {
	var (
		dbPath     string
		players    int
		hands      int
		smallBlind int64
		bigBlind   int64
		buyIn      int64
		seed       int64
		debugLevel string
	)
	flag.StringVar(&dbPath, "db", "", "Path to SQLite snapshot database (empty = no persistence)")
	flag.IntVar(&players, "players", 4, "Number of bot players to seat (2-9)")
	flag.IntVar(&hands, "hands", 10, "Number of hands to play")
	flag.Int64Var(&smallBlind, "sb", 5, "Small blind")
	flag.Int64Var(&bigBlind, "bb", 10, "Big blind")
	flag.Int64Var(&buyIn, "buyin", 1000, "Starting stack per bot")
	flag.Int64Var(&seed, "seed", 0, "Deterministic RNG seed for decks (0 = crypto shuffles)")
	flag.StringVar(&debugLevel, "debuglevel", "info", "Logging level: trace, debug, info, warn, error")
	flag.Parse()

	backend := slog.NewBackend(os.Stdout)
	log := backend.Logger("DLER")
	if lvl, ok := slog.LevelFromString(debugLevel); ok {
		log.SetLevel(lvl)
	}

	if players < 2 || players > 9 {
		fmt.Fprintf(os.Stderr, "players must be between 2 and 9\n")
		os.Exit(1)
	}

	svc, err := dealer.NewDealerService(dealer.Config{
		Log:    log,
		DBPath: dbPath,
		Table: poker.TableConfig{
			SmallBlind: smallBlind,
			BigBlind:   bigBlind,
			MinBuyIn:   bigBlind * 2,
			MaxBuyIn:   buyIn * 10,
			Seed:       seed,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create dealer: %v\n", err)
		os.Exit(1)
	}
	defer svc.Stop()

	for i := 0; i < players; i++ {
		id := fmt.Sprintf("bot-%d", i+1)
		if err := svc.SeatPlayer(id, id, i, buyIn); err != nil {
			fmt.Fprintf(os.Stderr, "failed to seat %s: %v\n", id, err)
			os.Exit(1)
		}
	}

	botRng := mrand.New(mrand.NewSource(time.Now().UnixNano()))
	if seed != 0 {
		botRng = mrand.New(mrand.NewSource(seed))
	}

	for h := 0; h < hands; h++ {
		if err := svc.StartHand(); err != nil {
			log.Warnf("cannot start hand %d: %v", h+1, err)
			break
		}
		if err := playHand(svc, botRng); err != nil {
			fmt.Fprintf(os.Stderr, "hand %d failed: %v\n", h+1, err)
			os.Exit(1)
		}
	}

	final := svc.State()
	log.Infof("played %d hands", final.HandNum)
	for _, s := range final.Seats {
		if s.Occupied && s.Player != nil {
			log.Infof("  %s: %d chips", s.Player.ID, s.Player.Stack)
		}
	}
}

// playHand drives bot actions until the hand settles. Action processing is
// synchronous, so the hand is over once no seat holds the turn.
func playHand(svc *dealer.DealerService, rng *mrand.Rand) error {
	for {
		state := svc.State()
		if state.ActiveSeat < 0 {
			return nil
		}
		actor := state.Seats[state.ActiveSeat].Player
		if actor == nil {
			return fmt.Errorf("active seat %d is empty", state.ActiveSeat)
		}

		valid, err := svc.ValidActions(actor.ID)
		if err != nil {
			return err
		}
		action, amount := chooseAction(valid, rng)
		if err := svc.Act(actor.ID, action, amount); err != nil {
			return fmt.Errorf("%s playing %s: %w", actor.ID, action, err)
		}
	}
}

// chooseAction is a loose calling-station policy: mostly check or call, the
// occasional min-bet or min-raise, fold only when nothing else is open.
func chooseAction(valid poker.ValidActions, rng *mrand.Rand) (poker.Action, int64) {
	aggressive := rng.Intn(10) == 0
	if aggressive {
		if valid.Contains(poker.ActionBet) {
			return poker.ActionBet, valid.MinBet
		}
		if valid.Contains(poker.ActionRaise) {
			return poker.ActionRaise, valid.MinRaiseTo
		}
	}
	if valid.Contains(poker.ActionCheck) {
		return poker.ActionCheck, 0
	}
	if valid.Contains(poker.ActionCall) {
		return poker.ActionCall, 0
	}
	if valid.Contains(poker.ActionAllIn) && rng.Intn(3) == 0 {
		return poker.ActionAllIn, 0
	}
	return poker.ActionFold, 0
}

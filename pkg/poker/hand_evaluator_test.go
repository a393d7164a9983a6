package poker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateHand(t *testing.T) {
	tests := []struct {
		name      string
		holeCards []Card
		community []Card
		wantRank  HandRank
	}{
		{
			name: "Royal Flush",
			holeCards: []Card{
				{suit: Hearts, value: Ace},
				{suit: Hearts, value: King},
			},
			community: []Card{
				{suit: Hearts, value: Queen},
				{suit: Hearts, value: Jack},
				{suit: Hearts, value: Ten},
				{suit: Clubs, value: Three},
				{suit: Diamonds, value: Four},
			},
			wantRank: RoyalFlush,
		},
		{
			name: "Straight Flush",
			holeCards: []Card{
				{suit: Spades, value: Nine},
				{suit: Spades, value: Eight},
			},
			community: []Card{
				{suit: Spades, value: Seven},
				{suit: Spades, value: Six},
				{suit: Spades, value: Five},
				{suit: Hearts, value: Two},
				{suit: Diamonds, value: Three},
			},
			wantRank: StraightFlush,
		},
		{
			name: "Four of a Kind",
			holeCards: []Card{
				{suit: Hearts, value: Ace},
				{suit: Spades, value: Ace},
			},
			community: []Card{
				{suit: Clubs, value: Ace},
				{suit: Diamonds, value: Ace},
				{suit: Hearts, value: King},
				{suit: Clubs, value: Queen},
				{suit: Spades, value: Jack},
			},
			wantRank: FourOfAKind,
		},
		{
			name: "Full House",
			holeCards: []Card{
				{suit: Hearts, value: King},
				{suit: Spades, value: King},
			},
			community: []Card{
				{suit: Clubs, value: King},
				{suit: Diamonds, value: Seven},
				{suit: Hearts, value: Seven},
				{suit: Clubs, value: Two},
				{suit: Spades, value: Four},
			},
			wantRank: FullHouse,
		},
		{
			name: "Flush",
			holeCards: []Card{
				{suit: Diamonds, value: Ace},
				{suit: Diamonds, value: Jack},
			},
			community: []Card{
				{suit: Diamonds, value: Nine},
				{suit: Diamonds, value: Six},
				{suit: Diamonds, value: Two},
				{suit: Hearts, value: King},
				{suit: Spades, value: Queen},
			},
			wantRank: Flush,
		},
		{
			name: "Straight",
			holeCards: []Card{
				{suit: Hearts, value: Ten},
				{suit: Spades, value: Nine},
			},
			community: []Card{
				{suit: Clubs, value: Eight},
				{suit: Diamonds, value: Seven},
				{suit: Hearts, value: Six},
				{suit: Clubs, value: Two},
				{suit: Spades, value: King},
			},
			wantRank: Straight,
		},
		{
			name: "Three of a Kind",
			holeCards: []Card{
				{suit: Hearts, value: Queen},
				{suit: Spades, value: Queen},
			},
			community: []Card{
				{suit: Clubs, value: Queen},
				{suit: Diamonds, value: Nine},
				{suit: Hearts, value: Five},
				{suit: Clubs, value: Two},
				{suit: Spades, value: Seven},
			},
			wantRank: ThreeOfAKind,
		},
		{
			name: "Two Pair",
			holeCards: []Card{
				{suit: Hearts, value: Jack},
				{suit: Spades, value: Jack},
			},
			community: []Card{
				{suit: Clubs, value: Eight},
				{suit: Diamonds, value: Eight},
				{suit: Hearts, value: Three},
				{suit: Clubs, value: Five},
				{suit: Spades, value: King},
			},
			wantRank: TwoPair,
		},
		{
			name: "Pair",
			holeCards: []Card{
				{suit: Hearts, value: Ten},
				{suit: Spades, value: Ten},
			},
			community: []Card{
				{suit: Clubs, value: Ace},
				{suit: Diamonds, value: Eight},
				{suit: Hearts, value: Three},
				{suit: Clubs, value: Five},
				{suit: Spades, value: King},
			},
			wantRank: Pair,
		},
		{
			name: "High Card",
			holeCards: []Card{
				{suit: Hearts, value: Ace},
				{suit: Spades, value: Ten},
			},
			community: []Card{
				{suit: Clubs, value: Eight},
				{suit: Diamonds, value: Six},
				{suit: Hearts, value: Three},
				{suit: Clubs, value: Five},
				{suit: Spades, value: King},
			},
			wantRank: HighCard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			all := append(append([]Card(nil), tt.holeCards...), tt.community...)
			hv, err := EvaluateHand(all)
			if err != nil {
				t.Fatalf("EvaluateHand() error = %v", err)
			}
			if hv.Rank != tt.wantRank {
				t.Errorf("EvaluateHand() rank = %v, want %v", hv.Rank, tt.wantRank)
			}
			if len(hv.BestHand) != 5 {
				t.Errorf("EvaluateHand() best hand has %d cards, want 5", len(hv.BestHand))
			}
		})
	}
}

func TestEvaluateHandTooFewCards(t *testing.T) {
	_, err := EvaluateHand([]Card{
		{suit: Hearts, value: Ace},
		{suit: Spades, value: King},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestWheelStraightIsFiveHigh(t *testing.T) {
	wheel, err := EvaluateHand([]Card{
		{suit: Hearts, value: Ace},
		{suit: Spades, value: Two},
		{suit: Clubs, value: Three},
		{suit: Diamonds, value: Four},
		{suit: Hearts, value: Five},
	})
	if err != nil {
		t.Fatalf("EvaluateHand() error = %v", err)
	}
	if wheel.Rank != Straight {
		t.Fatalf("wheel rank = %v, want %v", wheel.Rank, Straight)
	}
	if len(wheel.Kickers) == 0 || wheel.Kickers[0] != 5 {
		t.Errorf("wheel kickers = %v, want high card 5", wheel.Kickers)
	}

	// The wheel loses to any higher straight.
	sixHigh, err := EvaluateHand([]Card{
		{suit: Hearts, value: Two},
		{suit: Spades, value: Three},
		{suit: Clubs, value: Four},
		{suit: Diamonds, value: Five},
		{suit: Hearts, value: Six},
	})
	if err != nil {
		t.Fatalf("EvaluateHand() error = %v", err)
	}
	if CompareHands(wheel, sixHigh) != -1 {
		t.Errorf("wheel should lose to six-high straight")
	}
}

func TestCompareHandsKickers(t *testing.T) {
	// Same pair, different kicker.
	aceKicker, err := EvaluateHand([]Card{
		{suit: Hearts, value: Ten},
		{suit: Spades, value: Ten},
		{suit: Clubs, value: Ace},
		{suit: Diamonds, value: Eight},
		{suit: Hearts, value: Three},
	})
	if err != nil {
		t.Fatal(err)
	}
	kingKicker, err := EvaluateHand([]Card{
		{suit: Diamonds, value: Ten},
		{suit: Clubs, value: Ten},
		{suit: Spades, value: King},
		{suit: Hearts, value: Eight},
		{suit: Spades, value: Three},
	})
	if err != nil {
		t.Fatal(err)
	}

	if CompareHands(aceKicker, kingKicker) != 1 {
		t.Errorf("ace kicker should beat king kicker")
	}
	if CompareHands(kingKicker, aceKicker) != -1 {
		t.Errorf("king kicker should lose to ace kicker")
	}
	if CompareHands(aceKicker, aceKicker) != 0 {
		t.Errorf("identical hands should tie")
	}
}

func TestEvaluateHandDeterministic(t *testing.T) {
	cards := []Card{
		{suit: Hearts, value: Ace},
		{suit: Spades, value: King},
		{suit: Clubs, value: Queen},
		{suit: Diamonds, value: Jack},
		{suit: Hearts, value: Nine},
		{suit: Clubs, value: Nine},
		{suit: Spades, value: Two},
	}
	first, err := EvaluateHand(cards)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := EvaluateHand(cards)
		require.NoError(t, err)
		require.Equal(t, 0, CompareHands(first, again))
		require.Equal(t, first.Description, again.Description)
	}
}

func TestDetermineWinnersSplit(t *testing.T) {
	board := []Card{
		{suit: Hearts, value: Ace},
		{suit: Spades, value: King},
		{suit: Clubs, value: Queen},
		{suit: Diamonds, value: Jack},
		{suit: Hearts, value: Ten},
	}
	// Both players play the board straight.
	h1, err := EvaluateHand(append([]Card{
		{suit: Clubs, value: Two},
		{suit: Diamonds, value: Three},
	}, board...))
	require.NoError(t, err)
	h2, err := EvaluateHand(append([]Card{
		{suit: Spades, value: Four},
		{suit: Hearts, value: Five},
	}, board...))
	require.NoError(t, err)
	h3, err := EvaluateHand(append([]Card{
		{suit: Clubs, value: Seven},
		{suit: Spades, value: Six},
	}, []Card{
		{suit: Clubs, value: Two},
		{suit: Diamonds, value: Three},
		{suit: Hearts, value: Four},
		{suit: Diamonds, value: Nine},
		{suit: Hearts, value: Eight},
	}...))
	require.NoError(t, err)

	winners := DetermineWinners([]*HandValue{&h1, &h2, &h3})
	require.Equal(t, []int{0, 1}, winners)

	// Nil entries are skipped, indices preserved.
	winners = DetermineWinners([]*HandValue{nil, &h2, &h3})
	require.Equal(t, []int{1}, winners)
}

func TestEvaluateOmahaHandUsesExactlyTwoHoleCards(t *testing.T) {
	// Four hearts on the board but only one in the hole: no flush in Omaha.
	hole := []Card{
		{suit: Hearts, value: Ace},
		{suit: Spades, value: King},
		{suit: Clubs, value: Seven},
		{suit: Diamonds, value: Two},
	}
	board := []Card{
		{suit: Hearts, value: Queen},
		{suit: Hearts, value: Nine},
		{suit: Hearts, value: Five},
		{suit: Hearts, value: Three},
		{suit: Clubs, value: Jack},
	}
	hv, err := EvaluateOmahaHand(hole, board)
	require.NoError(t, err)
	require.Less(t, hv.Rank, Flush, "a single hole heart must not make a flush, got %s", hv.Description)
}

func TestEvaluateOmahaLowHand(t *testing.T) {
	hole := []Card{
		{suit: Hearts, value: Ace},
		{suit: Spades, value: Two},
		{suit: Clubs, value: King},
		{suit: Diamonds, value: Queen},
	}
	board := []Card{
		{suit: Clubs, value: Three},
		{suit: Diamonds, value: Four},
		{suit: Hearts, value: Eight},
		{suit: Spades, value: King},
		{suit: Clubs, value: Ten},
	}
	low, err := EvaluateOmahaLowHand(hole, board)
	require.NoError(t, err)
	require.NotNil(t, low)
	// Best low is 8-4-3-2-A.
	require.Equal(t, [5]int{8, 4, 3, 2, 1}, low.Ranks)

	// No qualifying low when the board cannot supply three low cards.
	highBoard := []Card{
		{suit: Clubs, value: Nine},
		{suit: Diamonds, value: Ten},
		{suit: Hearts, value: Jack},
		{suit: Spades, value: King},
		{suit: Clubs, value: Four},
	}
	low, err = EvaluateOmahaLowHand(hole, highBoard)
	require.NoError(t, err)
	require.Nil(t, low)
}

func TestCompareLowHands(t *testing.T) {
	wheelLow := LowHandValue{Ranks: [5]int{5, 4, 3, 2, 1}}
	eightLow := LowHandValue{Ranks: [5]int{8, 4, 3, 2, 1}}
	require.Equal(t, 1, CompareLowHands(wheelLow, eightLow))
	require.Equal(t, -1, CompareLowHands(eightLow, wheelLow))
	require.Equal(t, 0, CompareLowHands(wheelLow, wheelLow))
}

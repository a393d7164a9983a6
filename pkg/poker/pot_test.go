package poker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func allInPlayer(id string, committed int64) *Player {
	p := NewPlayer(id, id, 0)
	p.Status = StatusAllIn
	p.StreetBet = committed
	p.TotalBet = committed
	return p
}

func TestCollectBetsThreeWayAllIn(t *testing.T) {
	// A all-in for 100, B all-in for 300, C all-in (or covering) for 500.
	players := []*Player{
		allInPlayer("A", 100),
		allInPlayer("B", 300),
		allInPlayer("C", 500),
	}

	pots := collectBets(nil, players)
	require.Len(t, pots, 3)

	require.Equal(t, int64(300), pots[0].Amount)
	require.True(t, pots[0].IsMain)
	require.True(t, pots[0].IsEligible("A"))
	require.True(t, pots[0].IsEligible("B"))
	require.True(t, pots[0].IsEligible("C"))

	require.Equal(t, int64(400), pots[1].Amount)
	require.False(t, pots[1].IsEligible("A"))
	require.True(t, pots[1].IsEligible("B"))
	require.True(t, pots[1].IsEligible("C"))

	require.Equal(t, int64(200), pots[2].Amount)
	require.False(t, pots[2].IsEligible("A"))
	require.False(t, pots[2].IsEligible("B"))
	require.True(t, pots[2].IsEligible("C"))

	require.Equal(t, int64(900), potTotal(pots))
	for _, p := range players {
		require.Zero(t, p.StreetBet)
	}
}

func TestCollectBetsFoldedPlayerContributesWithoutEligibility(t *testing.T) {
	folded := NewPlayer("F", "F", 1000)
	folded.Status = StatusFolded
	folded.StreetBet = 60

	players := []*Player{
		allInPlayer("A", 50),
		allInPlayer("B", 200),
		folded,
	}

	pots := collectBets(nil, players)
	require.Len(t, pots, 2)

	// Main pot: 50 from each contributor with at least 50 in.
	require.Equal(t, int64(150), pots[0].Amount)
	require.True(t, pots[0].IsEligible("A"))
	require.True(t, pots[0].IsEligible("B"))
	require.False(t, pots[0].IsEligible("F"))

	// Side pot: B's remaining 150 plus the folded player's extra 10.
	require.Equal(t, int64(160), pots[1].Amount)
	require.False(t, pots[1].IsEligible("A"))
	require.True(t, pots[1].IsEligible("B"))
	require.False(t, pots[1].IsEligible("F"))

	require.Equal(t, int64(310), potTotal(pots))
}

func TestCollectBetsSimpleRoundSinglePot(t *testing.T) {
	a := NewPlayer("A", "A", 990)
	a.Status = StatusActive
	a.StreetBet = 10
	b := NewPlayer("B", "B", 990)
	b.Status = StatusActive
	b.StreetBet = 10

	pots := collectBets(nil, []*Player{a, b})
	require.Len(t, pots, 1)
	require.Equal(t, int64(20), pots[0].Amount)
	require.True(t, pots[0].IsMain)
	require.False(t, pots[0].Closed)
}

func TestCollectBetsAccumulatesAcrossStreets(t *testing.T) {
	a := NewPlayer("A", "A", 900)
	a.Status = StatusActive
	b := NewPlayer("B", "B", 900)
	b.Status = StatusActive
	players := []*Player{a, b}

	a.StreetBet, b.StreetBet = 10, 10
	pots := collectBets(nil, players)

	a.StreetBet, b.StreetBet = 50, 50
	pots = collectBets(pots, players)

	require.Len(t, pots, 1)
	require.Equal(t, int64(120), pots[0].Amount)
}

func TestCollectBetsOrphanedFoldedChips(t *testing.T) {
	// Everyone with chips in folded; the chips still land in a pot.
	folded := NewPlayer("F", "F", 1000)
	folded.Status = StatusFolded
	folded.StreetBet = 25

	pots := collectBets(nil, []*Player{folded})
	require.Len(t, pots, 1)
	require.Equal(t, int64(25), pots[0].Amount)
	require.Zero(t, folded.StreetBet)
}

package poker

import (
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeCountsFullHouseOuts(t *testing.T) {
	a := NewAnalyzer(nil, nil)

	// Set of kings on a dry board: the case king plus three sevens and
	// three deuces improve the category.
	analysis, err := a.Analyze(
		[]Card{{suit: Hearts, value: King}, {suit: Spades, value: King}},
		[]Card{
			{suit: Clubs, value: King},
			{suit: Diamonds, value: Seven},
			{suit: Hearts, value: Two},
		},
	)
	require.NoError(t, err)
	require.Equal(t, ThreeOfAKind, analysis.Made.Rank)
	require.Equal(t, 7, analysis.Outs)
	require.Len(t, analysis.OutCards, 7)
}

func TestAnalyzeClassifiesDraws(t *testing.T) {
	a := NewAnalyzer(nil, nil)

	tests := []struct {
		name string
		hole []Card
		comm []Card
		want DrawType
	}{
		{
			name: "flush draw",
			hole: []Card{{suit: Spades, value: Ace}, {suit: Spades, value: King}},
			comm: []Card{
				{suit: Spades, value: Queen},
				{suit: Spades, value: Seven},
				{suit: Hearts, value: Two},
			},
			want: DrawFlush,
		},
		{
			name: "open ended",
			hole: []Card{{suit: Hearts, value: Nine}, {suit: Diamonds, value: Eight}},
			comm: []Card{
				{suit: Clubs, value: Seven},
				{suit: Spades, value: Six},
				{suit: Hearts, value: Two},
			},
			want: DrawOpenEnded,
		},
		{
			name: "gutshot",
			hole: []Card{{suit: Hearts, value: Nine}, {suit: Diamonds, value: Eight}},
			comm: []Card{
				{suit: Clubs, value: Six},
				{suit: Spades, value: Five},
				{suit: Hearts, value: Two},
			},
			want: DrawGutshot,
		},
		{
			name: "overcards",
			hole: []Card{{suit: Hearts, value: Ace}, {suit: Diamonds, value: King}},
			comm: []Card{
				{suit: Clubs, value: Nine},
				{suit: Spades, value: Five},
				{suit: Hearts, value: Two},
			},
			want: DrawOvercards,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := a.Analyze(tt.hole, tt.comm)
			require.NoError(t, err)
			require.Contains(t, analysis.Draws, tt.want)
		})
	}
}

func TestAnalyzeInputValidation(t *testing.T) {
	a := NewAnalyzer(nil, nil)
	_, err := a.Analyze([]Card{{suit: Hearts, value: Ace}}, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = a.Analyze(
		[]Card{{suit: Hearts, value: Ace}, {suit: Spades, value: King}},
		[]Card{{suit: Clubs, value: Two}},
	)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestEquityAcesAreFavorite(t *testing.T) {
	a := NewAnalyzer(nil, mrand.New(mrand.NewSource(99)))

	equity, err := a.Equity(
		[]Card{{suit: Hearts, value: Ace}, {suit: Spades, value: Ace}},
		nil, 1, 500,
	)
	require.NoError(t, err)
	require.Greater(t, equity, 0.6, "pocket aces should be a clear favorite heads-up")
	require.LessOrEqual(t, equity, 1.0)

	// A dominated hand should be well behind a made set on the flop.
	weak, err := a.Equity(
		[]Card{{suit: Hearts, value: Seven}, {suit: Spades, value: Two}},
		[]Card{
			{suit: Clubs, value: Ace},
			{suit: Diamonds, value: King},
			{suit: Hearts, value: Queen},
		},
		2, 500,
	)
	require.NoError(t, err)
	require.Less(t, weak, equity)
}

func TestEquityValidation(t *testing.T) {
	a := NewAnalyzer(nil, mrand.New(mrand.NewSource(1)))
	hole := []Card{{suit: Hearts, value: Ace}, {suit: Spades, value: Ace}}

	_, err := a.Equity(hole[:1], nil, 1, 100)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = a.Equity(hole, nil, 0, 100)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = a.Equity(hole, nil, 1, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = a.Equity(hole, nil, 30, 100)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPotOdds(t *testing.T) {
	a := NewAnalyzer(nil, nil)
	require.InDelta(t, 1.0/3.0, a.PotOdds(50, 100), 1e-9)
	require.Zero(t, a.PotOdds(0, 100))
}

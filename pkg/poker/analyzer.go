package poker

import (
	"fmt"
	mrand "math/rand"
	"time"

	chehsunliu "github.com/chehsunliu/poker"
	"github.com/decred/slog"
)

// DrawType classifies an incomplete hand's improvement potential.
type DrawType string

const (
	DrawFlush     DrawType = "FLUSH_DRAW"
	DrawOpenEnded DrawType = "OPEN_ENDED_STRAIGHT_DRAW"
	DrawGutshot   DrawType = "GUTSHOT_STRAIGHT_DRAW"
	DrawOvercards DrawType = "OVERCARDS"
)

// HandAnalysis is a live read on a hand in progress: the current best made
// hand, the draws present and the cards that would improve the made
// category. It is informational only and never authoritative for settlement.
type HandAnalysis struct {
	Made     HandValue
	Draws    []DrawType
	Outs     int
	OutCards []Card
}

// Analyzer estimates live hand strength. Settlement always goes through
// EvaluateHand; the analyzer trades exactness for speed where it can, using
// the chehsunliu evaluator for its Monte Carlo inner loop.
type Analyzer struct {
	log slog.Logger
	rng *mrand.Rand
}

// NewAnalyzer creates an analyzer. A nil rng seeds one from the clock.
func NewAnalyzer(log slog.Logger, rng *mrand.Rand) *Analyzer {
	if log == nil {
		log = slog.Disabled
	}
	if rng == nil {
		rng = mrand.New(mrand.NewSource(time.Now().UnixNano()))
	}
	return &Analyzer{log: log, rng: rng}
}

// Analyze classifies the hand made so far and counts its outs. It needs two
// hole cards and at least three board cards.
func (a *Analyzer) Analyze(hole, community []Card) (HandAnalysis, error) {
	if len(hole) != 2 {
		return HandAnalysis{}, fmt.Errorf("%w: need exactly 2 hole cards, got %d", ErrInvalidInput, len(hole))
	}
	if len(community) < 3 {
		return HandAnalysis{}, fmt.Errorf("%w: need at least 3 board cards, got %d", ErrInvalidInput, len(community))
	}

	seen := append(append([]Card(nil), hole...), community...)
	made, err := EvaluateHand(seen)
	if err != nil {
		return HandAnalysis{}, err
	}

	analysis := HandAnalysis{Made: made}
	analysis.Draws = classifyDraws(hole, community, made)

	// An out is any unseen card that lifts the made hand into a higher
	// category.
	for _, suit := range suits {
		for _, value := range values {
			card := Card{suit: suit, value: value}
			if cardInSlice(card, seen) {
				continue
			}
			improved, err := EvaluateHand(append(append([]Card(nil), seen...), card))
			if err != nil {
				continue
			}
			if improved.Rank > made.Rank {
				analysis.Outs++
				analysis.OutCards = append(analysis.OutCards, card)
			}
		}
	}

	a.log.Debugf("analyzer: %v + %v = %s, %d outs, draws %v",
		hole, community, made.Description, analysis.Outs, analysis.Draws)
	return analysis, nil
}

// classifyDraws detects the common draw shapes in hole+board.
func classifyDraws(hole, community []Card, made HandValue) []DrawType {
	var draws []DrawType
	all := append(append([]Card(nil), hole...), community...)

	// Flush draw: exactly four cards of one suit.
	suitCounts := make(map[Suit]int)
	for _, c := range all {
		suitCounts[c.suit]++
	}
	for _, n := range suitCounts {
		if n == 4 && made.Rank < Flush {
			draws = append(draws, DrawFlush)
			break
		}
	}

	// Straight draws, from the distinct-value mask. The ace plays both ways.
	if made.Rank < Straight {
		var mask uint
		for _, c := range all {
			v := valueToInt(c.value)
			mask |= 1 << uint(v)
			if v == 14 {
				mask |= 1 << 1
			}
		}
		openEnded, gutshot := false, false
		for low := 1; low+4 <= 14; low++ {
			window := uint(0b11111) << uint(low)
			missing := 5 - popcount(mask&window)
			if missing != 1 {
				continue
			}
			// One card completes this straight; open-ended when the four
			// held cards are consecutive inside the window.
			fourRun := false
			for start := low; start+3 <= low+4; start++ {
				run := uint(0b1111) << uint(start)
				if mask&run == run {
					fourRun = true
				}
			}
			if fourRun && low > 1 && low+4 < 14 {
				openEnded = true
			} else {
				gutshot = true
			}
		}
		if openEnded {
			draws = append(draws, DrawOpenEnded)
		} else if gutshot {
			draws = append(draws, DrawGutshot)
		}
	}

	// Overcards: both hole cards above the board, with nothing made yet.
	if made.Rank <= Pair {
		highest := 0
		for _, c := range community {
			if v := valueToInt(c.value); v > highest {
				highest = v
			}
		}
		if valueToInt(hole[0].value) > highest && valueToInt(hole[1].value) > highest {
			draws = append(draws, DrawOvercards)
		}
	}

	return draws
}

func popcount(v uint) int {
	n := 0
	for v != 0 {
		v &= v - 1
		n++
	}
	return n
}

// Equity estimates the probability of winning at showdown against the given
// number of opponents holding random cards, by Monte Carlo simulation over
// the unseen deck. Ties count as split equity.
func (a *Analyzer) Equity(hole, community []Card, opponents, iterations int) (float64, error) {
	if len(hole) != 2 {
		return 0, fmt.Errorf("%w: need exactly 2 hole cards, got %d", ErrInvalidInput, len(hole))
	}
	if len(community) > 5 {
		return 0, fmt.Errorf("%w: board cannot exceed 5 cards", ErrInvalidInput)
	}
	if opponents < 1 || iterations < 1 {
		return 0, fmt.Errorf("%w: opponents and iterations must be positive", ErrInvalidInput)
	}

	seen := append(append([]Card(nil), hole...), community...)
	var unseen []Card
	for _, suit := range suits {
		for _, value := range values {
			card := Card{suit: suit, value: value}
			if !cardInSlice(card, seen) {
				unseen = append(unseen, card)
			}
		}
	}
	need := opponents*2 + (5 - len(community))
	if need > len(unseen) {
		return 0, fmt.Errorf("%w: not enough unseen cards for %d opponents", ErrInvalidInput, opponents)
	}

	var equity float64
	sample := make([]Card, len(unseen))
	for it := 0; it < iterations; it++ {
		copy(sample, unseen)
		// Partial Fisher-Yates: only the cards this iteration consumes.
		for i := 0; i < need; i++ {
			j := i + a.rng.Intn(len(sample)-i)
			sample[i], sample[j] = sample[j], sample[i]
		}

		board := append(append([]Card(nil), community...), sample[opponents*2:need]...)
		myScore := chehsunliuScore(append(append([]Card(nil), hole...), board...))

		best := myScore
		bestCount := 1
		mine := true
		for o := 0; o < opponents; o++ {
			oppHole := sample[o*2 : o*2+2]
			score := chehsunliuScore(append(append([]Card(nil), oppHole...), board...))
			// Lower scores are stronger in the chehsunliu ranking.
			if score < best {
				best = score
				bestCount = 1
				mine = false
			} else if score == best {
				bestCount++
			}
		}
		if mine {
			equity += 1 / float64(bestCount)
		}
	}
	return equity / float64(iterations), nil
}

// PotOdds returns the fraction of the final pot the caller is paying, i.e.
// the equity needed to break even on a call.
func (a *Analyzer) PotOdds(callAmount, potSize int64) float64 {
	if callAmount <= 0 {
		return 0
	}
	return float64(callAmount) / float64(potSize+callAmount)
}

// chehsunliuScore evaluates cards with the chehsunliu fast evaluator.
func chehsunliuScore(cards []Card) int32 {
	converted := make([]chehsunliu.Card, len(cards))
	for i, c := range cards {
		converted[i] = toChehsunliuCard(c)
	}
	return chehsunliu.Evaluate(converted)
}

// toChehsunliuCard converts our Card type to the chehsunliu/poker card type.
func toChehsunliuCard(card Card) chehsunliu.Card {
	var suitChar byte
	switch card.suit {
	case Spades:
		suitChar = 's'
	case Hearts:
		suitChar = 'h'
	case Diamonds:
		suitChar = 'd'
	case Clubs:
		suitChar = 'c'
	}
	return chehsunliu.NewCard(string([]byte{byte(card.value[0]), suitChar}))
}

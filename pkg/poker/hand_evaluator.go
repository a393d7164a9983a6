package poker

import (
	"fmt"
	"sort"
)

// HandRank represents the category of a poker hand. The numeric value is the
// category strength (1-10) used as the primary comparison key.
type HandRank int

const (
	HighCard HandRank = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns a human-readable name for the hand rank
func (r HandRank) String() string {
	switch r {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandValue represents a complete evaluation of a hand, including rank and kickers
type HandValue struct {
	Rank        HandRank
	Kickers     []int  // tie-break values in descending significance
	BestHand    []Card // the 5 cards that make up the best hand
	Description string
}

// EvaluateHand evaluates the best 5-card hand from the given cards. At least
// 5 cards are required; fewer is a programmer error and returns
// ErrInvalidInput. All 5-card subsets are searched exhaustively.
func EvaluateHand(cards []Card) (HandValue, error) {
	if len(cards) < 5 {
		return HandValue{}, fmt.Errorf("%w: need at least 5 cards, got %d", ErrInvalidInput, len(cards))
	}

	var best HandValue
	for _, combo := range generateCombinations(cards, 5) {
		hv := evaluateFiveCardHand(combo)
		if best.Rank == 0 || CompareHands(hv, best) > 0 {
			best = hv
		}
	}
	return best, nil
}

// EvaluateOmahaHand evaluates an Omaha hand: exactly 2 of the hole cards
// combined with exactly 3 of the board cards, searching all such pairings.
func EvaluateOmahaHand(hole, board []Card) (HandValue, error) {
	if len(hole) < 2 {
		return HandValue{}, fmt.Errorf("%w: omaha needs at least 2 hole cards, got %d", ErrInvalidInput, len(hole))
	}
	if len(board) < 3 {
		return HandValue{}, fmt.Errorf("%w: omaha needs at least 3 board cards, got %d", ErrInvalidInput, len(board))
	}

	var best HandValue
	for _, hc := range generateCombinations(hole, 2) {
		for _, bc := range generateCombinations(board, 3) {
			combo := make([]Card, 0, 5)
			combo = append(combo, hc...)
			combo = append(combo, bc...)
			hv := evaluateFiveCardHand(combo)
			if best.Rank == 0 || CompareHands(hv, best) > 0 {
				best = hv
			}
		}
	}
	return best, nil
}

// LowHandValue represents a qualifying eight-or-better low hand. Ranks holds
// the five distinct card values in descending order with the ace counted as
// one; a lower sequence is a better low.
type LowHandValue struct {
	Ranks       [5]int
	Cards       []Card
	Description string
}

// EvaluateOmahaLowHand evaluates the best qualifying low for an Omaha hi/lo
// hand, using exactly 2 hole cards and 3 board cards. A qualifying low has
// five distinct ranks all eight or below (ace counts as one). Returns nil
// when no qualifying low exists.
func EvaluateOmahaLowHand(hole, board []Card) (*LowHandValue, error) {
	if len(hole) < 2 {
		return nil, fmt.Errorf("%w: omaha needs at least 2 hole cards, got %d", ErrInvalidInput, len(hole))
	}
	if len(board) < 3 {
		return nil, fmt.Errorf("%w: omaha needs at least 3 board cards, got %d", ErrInvalidInput, len(board))
	}

	var best *LowHandValue
	for _, hc := range generateCombinations(hole, 2) {
		for _, bc := range generateCombinations(board, 3) {
			combo := make([]Card, 0, 5)
			combo = append(combo, hc...)
			combo = append(combo, bc...)
			low, ok := evaluateLowHand(combo)
			if !ok {
				continue
			}
			if best == nil || CompareLowHands(low, *best) > 0 {
				v := low
				best = &v
			}
		}
	}
	return best, nil
}

// evaluateLowHand scores a 5-card combination as an eight-or-better low.
// The second return is false when the combination does not qualify.
func evaluateLowHand(cards []Card) (LowHandValue, bool) {
	ranks := make([]int, 5)
	seen := make(map[int]bool, 5)
	for i, c := range cards {
		v := valueToInt(c.value)
		if v == 14 {
			v = 1 // ace plays low
		}
		if v > 8 || seen[v] {
			return LowHandValue{}, false
		}
		seen[v] = true
		ranks[i] = v
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	low := LowHandValue{Cards: append([]Card(nil), cards...)}
	copy(low.Ranks[:], ranks)
	low.Description = fmt.Sprintf("%d-%d-%d-%d-%d Low", ranks[0], ranks[1], ranks[2], ranks[3], ranks[4])
	return low, true
}

// CompareLowHands compares two qualifying low hands and returns:
//
//	-1 if a is worse (higher), 0 on an exact tie, 1 if a is better (lower)
func CompareLowHands(a, b LowHandValue) int {
	for i := 0; i < 5; i++ {
		if a.Ranks[i] < b.Ranks[i] {
			return 1
		}
		if a.Ranks[i] > b.Ranks[i] {
			return -1
		}
	}
	return 0
}

// evaluateFiveCardHand scores exactly five cards into a HandValue.
func evaluateFiveCardHand(cards []Card) HandValue {
	vals := make([]int, 5)
	for i, c := range cards {
		vals[i] = valueToInt(c.value)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(vals)))

	flush := true
	for _, c := range cards[1:] {
		if c.suit != cards[0].suit {
			flush = false
			break
		}
	}

	straightHigh := straightHighValue(vals)
	straight := straightHigh > 0

	// Count multiples: counts[value] and values grouped by multiplicity.
	counts := make(map[int]int, 5)
	for _, v := range vals {
		counts[v]++
	}
	byCount := make(map[int][]int) // multiplicity -> values desc
	for v, n := range counts {
		byCount[n] = append(byCount[n], v)
	}
	for _, vs := range byCount {
		sort.Sort(sort.Reverse(sort.IntSlice(vs)))
	}

	hv := HandValue{BestHand: append([]Card(nil), cards...)}

	switch {
	case straight && flush && straightHigh == 14:
		hv.Rank = RoyalFlush
		hv.Kickers = []int{14}
		hv.Description = "Royal Flush"
	case straight && flush:
		hv.Rank = StraightFlush
		hv.Kickers = []int{straightHigh}
		hv.Description = fmt.Sprintf("Straight Flush, %s High", valueName(straightHigh))
	case len(byCount[4]) == 1:
		quad := byCount[4][0]
		hv.Rank = FourOfAKind
		hv.Kickers = []int{quad, byCount[1][0]}
		hv.Description = fmt.Sprintf("Four of a Kind, %ss", valueName(quad))
	case len(byCount[3]) == 1 && len(byCount[2]) == 1:
		hv.Rank = FullHouse
		hv.Kickers = []int{byCount[3][0], byCount[2][0]}
		hv.Description = fmt.Sprintf("Full House, %ss over %ss", valueName(byCount[3][0]), valueName(byCount[2][0]))
	case flush:
		hv.Rank = Flush
		hv.Kickers = append([]int(nil), vals...)
		hv.Description = fmt.Sprintf("Flush, %s High", valueName(vals[0]))
	case straight:
		hv.Rank = Straight
		hv.Kickers = []int{straightHigh}
		hv.Description = fmt.Sprintf("Straight, %s High", valueName(straightHigh))
	case len(byCount[3]) == 1:
		trips := byCount[3][0]
		hv.Rank = ThreeOfAKind
		hv.Kickers = append([]int{trips}, byCount[1]...)
		hv.Description = fmt.Sprintf("Three of a Kind, %ss", valueName(trips))
	case len(byCount[2]) == 2:
		hi, lo := byCount[2][0], byCount[2][1]
		hv.Rank = TwoPair
		hv.Kickers = []int{hi, lo, byCount[1][0]}
		hv.Description = fmt.Sprintf("Two Pair, %ss and %ss", valueName(hi), valueName(lo))
	case len(byCount[2]) == 1:
		pair := byCount[2][0]
		hv.Rank = Pair
		hv.Kickers = append([]int{pair}, byCount[1]...)
		hv.Description = fmt.Sprintf("Pair of %ss", valueName(pair))
	default:
		hv.Rank = HighCard
		hv.Kickers = append([]int(nil), vals...)
		hv.Description = fmt.Sprintf("%s High", valueName(vals[0]))
	}

	return hv
}

// straightHighValue returns the high card of a straight formed by the given
// descending values, or 0 when they do not form a straight. The wheel
// (A-2-3-4-5) counts as a 5-high straight, never ace high.
func straightHighValue(desc []int) int {
	for i := 1; i < len(desc); i++ {
		if desc[i] == desc[i-1] {
			return 0 // paired, cannot be a straight
		}
	}
	if desc[0]-desc[len(desc)-1] == 4 {
		return desc[0]
	}
	// Wheel: ace plays low under the remaining 5-4-3-2.
	if desc[0] == 14 && desc[1] == 5 && desc[len(desc)-1] == 2 {
		return 5
	}
	return 0
}

// CompareHands compares two hand values and returns:
//
//	-1 if handA < handB (handA is worse)
//	 0 if handA == handB (exact tie)
//	 1 if handA > handB (handA is better)
//
// The category value decides first; on equality the kicker lists are compared
// element by element in descending significance.
func CompareHands(handA, handB HandValue) int {
	if handA.Rank != handB.Rank {
		if handA.Rank > handB.Rank {
			return 1
		}
		return -1
	}
	n := len(handA.Kickers)
	if len(handB.Kickers) < n {
		n = len(handB.Kickers)
	}
	for i := 0; i < n; i++ {
		if handA.Kickers[i] != handB.Kickers[i] {
			if handA.Kickers[i] > handB.Kickers[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// DetermineWinners returns the indices of every hand that compares equal to
// the best hand found. Nil entries are skipped.
func DetermineWinners(hands []*HandValue) []int {
	var winners []int
	var best *HandValue
	for i, hv := range hands {
		if hv == nil {
			continue
		}
		if best == nil || CompareHands(*hv, *best) > 0 {
			best = hv
			winners = []int{i}
		} else if CompareHands(*hv, *best) == 0 {
			winners = append(winners, i)
		}
	}
	return winners
}

// generateCombinations generates all possible k-combinations from a slice of cards
func generateCombinations(cards []Card, k int) [][]Card {
	var combinations [][]Card

	if k > len(cards) || k <= 0 {
		return combinations
	}

	if k == len(cards) {
		return [][]Card{cards}
	}

	var generate func(start int, current []Card)
	generate = func(start int, current []Card) {
		if len(current) == k {
			combination := make([]Card, k)
			copy(combination, current)
			combinations = append(combinations, combination)
			return
		}

		for i := start; i <= len(cards)-(k-len(current)); i++ {
			generate(i+1, append(current, cards[i]))
		}
	}

	generate(0, []Card{})
	return combinations
}

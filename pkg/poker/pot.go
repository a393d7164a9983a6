package poker

import "sort"

// Pot represents a pot of chips. A pot closed by an all-in contribution is
// frozen: its amount and eligible set never change again, and further
// contributions open a new pot.
type Pot struct {
	Amount   int64
	Eligible map[string]bool // player IDs who may win this pot
	IsMain   bool
	Closed   bool
}

// newPot creates an empty open pot.
func newPot(main bool) *Pot {
	return &Pot{
		Eligible: make(map[string]bool),
		IsMain:   main,
	}
}

// IsEligible reports whether the given player may win this pot.
func (p *Pot) IsEligible(playerID string) bool {
	return p.Eligible[playerID]
}

// collectBets folds every player's street-committed chips into the pot list
// at the close of a betting round and resets the per-street counters.
//
// Contribution tiers are the distinct street commitments of the players still
// contesting the hand, ascending. Each tier collects the incremental amount
// owed by everyone who committed at least that much (folded players pay in
// whatever portion of their commitment falls inside the tier, but gain no
// eligibility). A tier defined by an all-in contributor closes the pot it
// fills, fixing its eligible set; anything above continues into a fresh pot.
// This yields exactly one pot per distinct all-in threshold.
func collectBets(pots []*Pot, players []*Player) []*Pot {
	// Tiers come from players who can still win chips; folded commitments
	// only ever top up existing tiers.
	tierSet := make(map[int64]bool)
	for _, p := range players {
		if p == nil || p.StreetBet == 0 {
			continue
		}
		if p.Status == StatusActive || p.Status == StatusAllIn {
			tierSet[p.StreetBet] = true
		}
	}

	if len(tierSet) == 0 {
		// Only folded players committed chips this street (or nobody did).
		// Sweep the orphaned chips into the open pot.
		var orphaned int64
		for _, p := range players {
			if p == nil {
				continue
			}
			orphaned += p.StreetBet
			p.StreetBet = 0
		}
		if orphaned > 0 {
			pots = appendToOpenPot(pots, orphaned, nil)
		}
		return pots
	}

	tiers := make([]int64, 0, len(tierSet))
	for t := range tierSet {
		tiers = append(tiers, t)
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i] < tiers[j] })

	prev := int64(0)
	for _, tier := range tiers {
		var pool int64
		eligible := make([]string, 0, len(players))
		closing := false
		for _, p := range players {
			if p == nil || p.StreetBet == 0 {
				continue
			}
			// Portion of this player's commitment inside (prev, tier].
			c := p.StreetBet
			if c > tier {
				c = tier
			}
			c -= prev
			if c <= 0 {
				continue
			}
			pool += c
			if p.StreetBet >= tier && (p.Status == StatusActive || p.Status == StatusAllIn) {
				eligible = append(eligible, p.ID)
				if p.Status == StatusAllIn && p.StreetBet == tier {
					closing = true
				}
			}
		}

		pots = appendToOpenPot(pots, pool, eligible)
		if closing {
			pots[len(pots)-1].Closed = true
		}
		prev = tier
	}

	for _, p := range players {
		if p != nil {
			p.StreetBet = 0
		}
	}
	return pots
}

// appendToOpenPot adds amount to the currently open pot, opening a new one
// first if the previous pot is closed, and extends its eligible set.
func appendToOpenPot(pots []*Pot, amount int64, eligible []string) []*Pot {
	var pot *Pot
	if len(pots) > 0 && !pots[len(pots)-1].Closed {
		pot = pots[len(pots)-1]
	} else {
		pot = newPot(len(pots) == 0)
		pots = append(pots, pot)
	}
	pot.Amount += amount
	// Eligibility of an open pot narrows naturally at showdown (folded
	// players are filtered out there); here it only ever gains contributors.
	for _, id := range eligible {
		pot.Eligible[id] = true
	}
	return pots
}

// potTotal sums the collected amounts across all pots.
func potTotal(pots []*Pot) int64 {
	var total int64
	for _, pot := range pots {
		total += pot.Amount
	}
	return total
}

package poker

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"time"
)

// Deck represents a deck of cards split into a draw pile and a dealt pile.
// The union of both piles is always the full 52 unique cards, so a card can
// never be dealt twice within one deck lifetime.
type Deck struct {
	draw  []Card
	dealt []Card
	rng   *mrand.Rand
}

// NewDeck creates a new deck in draw order. Pass a non-nil rng for
// deterministic shuffles (tests, replays); with a nil rng the deck shuffles
// from crypto/rand.
func NewDeck(rng *mrand.Rand) *Deck {
	d := &Deck{
		draw:  make([]Card, 0, 52),
		dealt: make([]Card, 0, 52),
		rng:   rng,
	}
	d.Reset()
	return d
}

// Reset repopulates the draw pile with all 52 cards in draw order and empties
// the dealt pile.
func (d *Deck) Reset() {
	d.draw = d.draw[:0]
	d.dealt = d.dealt[:0]
	for _, suit := range suits {
		for _, value := range values {
			d.draw = append(d.draw, Card{suit: suit, value: value})
		}
	}
}

// Shuffle performs an in-place Fisher-Yates permutation of the draw pile.
func (d *Deck) Shuffle() {
	for i := len(d.draw) - 1; i > 0; i-- {
		j := d.randIntn(i + 1)
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	}
}

// randIntn returns a uniform random int in [0, n). It prefers crypto/rand,
// falling back to a seeded math/rand source when no strong randomness is
// available.
func (d *Deck) randIntn(n int) int {
	if d.rng != nil {
		return d.rng.Intn(n)
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		d.rng = mrand.New(mrand.NewSource(time.Now().UnixNano()))
		return d.rng.Intn(n)
	}
	// Rejection sampling keeps the draw uniform.
	max := uint64(n)
	limit := (^uint64(0) / max) * max
	v := binary.BigEndian.Uint64(buf[:])
	for v >= limit {
		if _, err := rand.Read(buf[:]); err != nil {
			d.rng = mrand.New(mrand.NewSource(time.Now().UnixNano()))
			return d.rng.Intn(n)
		}
		v = binary.BigEndian.Uint64(buf[:])
	}
	return int(v % max)
}

// Deal pops one card from the draw pile onto the dealt pile.
func (d *Deck) Deal() (Card, bool) {
	if len(d.draw) == 0 {
		return Card{}, false
	}
	card := d.draw[0]
	d.draw = d.draw[1:]
	d.dealt = append(d.dealt, card)
	return card, true
}

// DealMultiple deals up to n cards, returning only the cards actually dealt.
func (d *Deck) DealMultiple(n int) []Card {
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, ok := d.Deal()
		if !ok {
			break
		}
		cards = append(cards, card)
	}
	return cards
}

// Burn deals one card face down and discards it. The burned card still moves
// to the dealt pile so deck accounting stays exact.
func (d *Deck) Burn() bool {
	_, ok := d.Deal()
	return ok
}

// Remaining returns the number of cards left in the draw pile.
func (d *Deck) Remaining() int {
	return len(d.draw)
}

// HasCards reports whether any cards remain in the draw pile.
func (d *Deck) HasCards() bool {
	return len(d.draw) > 0
}

// Dealt returns a copy of the dealt pile in deal order.
func (d *Deck) Dealt() []Card {
	out := make([]Card, len(d.dealt))
	copy(out, d.dealt)
	return out
}

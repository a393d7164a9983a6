package poker

import (
	mrand "math/rand"
	"testing"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	deck := NewDeck(nil)
	if deck.Remaining() != 52 {
		t.Fatalf("new deck has %d cards, want 52", deck.Remaining())
	}

	seen := make(map[string]bool)
	for deck.HasCards() {
		card, ok := deck.Deal()
		if !ok {
			t.Fatal("Deal() returned false with cards remaining")
		}
		key := card.String()
		if seen[key] {
			t.Fatalf("card %s dealt twice", key)
		}
		seen[key] = true
	}
	if len(seen) != 52 {
		t.Fatalf("dealt %d unique cards, want 52", len(seen))
	}
}

func TestDeckDealAccounting(t *testing.T) {
	deck := NewDeck(nil)
	deck.Shuffle()

	cards := deck.DealMultiple(5)
	if len(cards) != 5 {
		t.Fatalf("DealMultiple(5) dealt %d cards", len(cards))
	}
	if deck.Remaining() != 47 {
		t.Errorf("Remaining() = %d, want 47", deck.Remaining())
	}
	if len(deck.Dealt()) != 5 {
		t.Errorf("Dealt() has %d cards, want 5", len(deck.Dealt()))
	}
	if !deck.Burn() {
		t.Error("Burn() failed with cards remaining")
	}
	if deck.Remaining()+len(deck.Dealt()) != 52 {
		t.Errorf("draw %d + dealt %d != 52", deck.Remaining(), len(deck.Dealt()))
	}
}

func TestDeckExhaustion(t *testing.T) {
	deck := NewDeck(nil)
	deck.DealMultiple(52)
	if deck.HasCards() {
		t.Error("deck should be empty after dealing 52")
	}
	if _, ok := deck.Deal(); ok {
		t.Error("Deal() on empty deck should fail")
	}
	cards := deck.DealMultiple(3)
	if len(cards) != 0 {
		t.Errorf("DealMultiple on empty deck dealt %d cards", len(cards))
	}
}

func TestDeckResetRestoresFullDeck(t *testing.T) {
	deck := NewDeck(nil)
	deck.Shuffle()
	deck.DealMultiple(20)
	deck.Reset()
	if deck.Remaining() != 52 {
		t.Errorf("Remaining() after reset = %d, want 52", deck.Remaining())
	}
	if len(deck.Dealt()) != 0 {
		t.Errorf("Dealt() after reset has %d cards, want 0", len(deck.Dealt()))
	}
}

func TestDeckSeededShuffleIsReproducible(t *testing.T) {
	a := NewDeck(mrand.New(mrand.NewSource(42)))
	b := NewDeck(mrand.New(mrand.NewSource(42)))
	a.Shuffle()
	b.Shuffle()
	for i := 0; i < 52; i++ {
		ca, _ := a.Deal()
		cb, _ := b.Deal()
		if ca != cb {
			t.Fatalf("card %d differs: %s vs %s", i, ca, cb)
		}
	}

	c := NewDeck(mrand.New(mrand.NewSource(43)))
	c.Shuffle()
	same := true
	d := NewDeck(mrand.New(mrand.NewSource(42)))
	d.Shuffle()
	for i := 0; i < 52; i++ {
		cc, _ := c.Deal()
		cd, _ := d.Deal()
		if cc != cd {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical shuffles")
	}
}

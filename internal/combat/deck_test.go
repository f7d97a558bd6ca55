package combat

import (
	"testing"

	"github.com/louisbranch/gitdungeon/internal/rng"
)

// TestDeckStateReshuffleOnEmptyDraw is spec.md §8 scenario C: draw pile
// empty, discard has 3 cards, hand has 0. Draw 2. Expected: discard
// becomes empty, draw has 1 card remaining, hand has 2 cards.
func TestDeckStateReshuffleOnEmptyDraw(t *testing.T) {
	d := DeckState{
		Discard: []CardInstance{{CardID: "a"}, {CardID: "b"}, {CardID: "c"}},
	}
	stream := rng.NewStream(42)
	drawn, reshuffled := d.DrawCards(2, stream)

	if !reshuffled {
		t.Fatal("expected a reshuffle to have occurred")
	}
	if len(drawn) != 2 {
		t.Fatalf("expected 2 cards drawn, got %d", len(drawn))
	}
	if len(d.Discard) != 0 {
		t.Fatalf("expected discard to be empty, got %d", len(d.Discard))
	}
	if len(d.Draw) != 1 {
		t.Fatalf("expected 1 card remaining in draw pile, got %d", len(d.Draw))
	}
	if len(d.Hand) != 2 {
		t.Fatalf("expected 2 cards in hand, got %d", len(d.Hand))
	}
}

func TestDeckStatePartialDrawStopsWhenBothPilesEmpty(t *testing.T) {
	d := DeckState{}
	stream := rng.NewStream(1)
	drawn, _ := d.DrawCards(5, stream)
	if len(drawn) != 0 {
		t.Fatalf("expected 0 cards drawn from two empty piles, got %d", len(drawn))
	}
}

func TestDeckStateCountConservedAcrossPlay(t *testing.T) {
	d := DeckState{Hand: []CardInstance{{CardID: "strike"}, {CardID: "defend"}}}
	before := d.Count()
	d.PlayIndex(0, false)
	if d.Count() != before {
		t.Fatalf("expected card count conserved across a non-exhaust play, got %d want %d", d.Count(), before)
	}
}

func TestDeckStateDiscardHandPreservesOrder(t *testing.T) {
	d := DeckState{Hand: []CardInstance{{CardID: "a"}, {CardID: "b"}, {CardID: "c"}}}
	d.DiscardHand()
	if len(d.Hand) != 0 {
		t.Fatal("expected empty hand after discard")
	}
	want := []string{"a", "b", "c"}
	for i, c := range d.Discard {
		if c.CardID != want[i] {
			t.Fatalf("discard order mismatch at %d: got %s want %s", i, c.CardID, want[i])
		}
	}
}

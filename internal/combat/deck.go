// Package combat implements the turn-based battle engine (spec.md §4.5)
// and its deck/energy/status substrate (§4.6): a state machine with
// phases player, enemy, resolution, operating on plain structs with no
// hidden I/O.
package combat

import (
	"github.com/louisbranch/gitdungeon/internal/rng"
)

// CardInstance is a single card as it exists inside a battle: a content
// card ID and an upgrade flag.
type CardInstance struct {
	CardID   string
	Upgraded bool
}

// Deck is the run-level card list outside of battle (GLOSSARY "Deck").
type Deck []CardInstance

// DeckState is the four-pile card collection during battle (§3).
type DeckState struct {
	Draw    []CardInstance
	Hand    []CardInstance
	Discard []CardInstance
	Exhaust []CardInstance
}

// Count returns the total number of cards across all four piles, the
// quantity §8 invariant 3 requires be conserved outside of documented
// add/remove effects.
func (d DeckState) Count() int {
	return len(d.Draw) + len(d.Hand) + len(d.Discard) + len(d.Exhaust)
}

// NewDeckState builds a fresh deck state from the run deck: the full deck
// goes to the draw pile, shuffled via the combat sub-RNG, per §4.5
// "entering a battle builds a fresh deck state."
func NewDeckState(runDeck Deck, stream *rng.Stream) DeckState {
	draw := make([]CardInstance, len(runDeck))
	copy(draw, runDeck)
	stream.Shuffle(len(draw), func(i, j int) { draw[i], draw[j] = draw[j], draw[i] })
	return DeckState{Draw: draw}
}

// DrawCards moves up to n cards from the draw pile into the hand,
// reshuffling the discard pile into the draw pile when the draw pile runs
// dry (§4.6). It stops early (a partial draw) if both piles are empty,
// and returns the cards drawn plus whether a reshuffle happened, so
// the caller can emit cards_drawn and deck_shuffled events.
func (d *DeckState) DrawCards(n int, stream *rng.Stream) (drawn []CardInstance, reshuffled bool) {
	for i := 0; i < n; i++ {
		if len(d.Draw) == 0 {
			if len(d.Discard) == 0 {
				break
			}
			d.Draw = d.Discard
			d.Discard = nil
			stream.Shuffle(len(d.Draw), func(a, b int) { d.Draw[a], d.Draw[b] = d.Draw[b], d.Draw[a] })
			reshuffled = true
		}
		card := d.Draw[len(d.Draw)-1]
		d.Draw = d.Draw[:len(d.Draw)-1]
		d.Hand = append(d.Hand, card)
		drawn = append(drawn, card)
	}
	return drawn, reshuffled
}

// PlayIndex removes hand[i] and routes it to discard, or to exhaust if
// exhaustOnPlay is set (§4.6 "Play index I").
func (d *DeckState) PlayIndex(i int, exhaustOnPlay bool) (CardInstance, bool) {
	if i < 0 || i >= len(d.Hand) {
		return CardInstance{}, false
	}
	card := d.Hand[i]
	d.Hand = append(d.Hand[:i], d.Hand[i+1:]...)
	if exhaustOnPlay {
		d.Exhaust = append(d.Exhaust, card)
	} else {
		d.Discard = append(d.Discard, card)
	}
	return card, true
}

// DiscardHand moves every card in hand to discard, in order (§4.6).
func (d *DeckState) DiscardHand() {
	d.Discard = append(d.Discard, d.Hand...)
	d.Hand = nil
}

// drawnCardIDs is a small helper for building the cards_drawn event
// payload without the caller re-walking the CardInstance slice.
func drawnCardIDs(cards []CardInstance) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.CardID
	}
	return ids
}

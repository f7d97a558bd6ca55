package combat

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/louisbranch/gitdungeon/internal/rng"
)

// TestResolveDamageNeverNegativeProperty backs spec.md §8 invariant 2 at
// the damage-resolution layer: final damage, remaining block, and raw are
// never negative for any non-negative inputs.
func TestResolveDamageNeverNegativeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		value := rapid.IntRange(0, 200).Draw(t, "value")
		attack := rapid.IntRange(0, 100).Draw(t, "attack")
		vuln := rapid.IntRange(0, 10).Draw(t, "vuln")
		block := rapid.IntRange(0, 200).Draw(t, "block")
		defense := rapid.IntRange(0, 200).Draw(t, "defense")
		allowZero := rapid.Bool().Draw(t, "allow_zero")

		res := ResolveDamage(value, attack, vuln, block, defense, false, allowZero)
		if res.FinalDamage < 0 {
			t.Fatalf("final damage went negative: %d", res.FinalDamage)
		}
		if res.RemainingBlock < 0 {
			t.Fatalf("remaining block went negative: %d", res.RemainingBlock)
		}
		if !allowZero && res.FinalDamage < 1 {
			t.Fatalf("expected damage clamped to at least 1, got %d", res.FinalDamage)
		}
	})
}

func TestDeckDrawNeverExceedsTotalCardsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		discardSize := rapid.IntRange(0, 20).Draw(t, "discard_size")
		drawSize := rapid.IntRange(0, 20).Draw(t, "draw_size")
		want := rapid.IntRange(0, 30).Draw(t, "want")
		seed := rapid.Uint64().Draw(t, "seed")

		d := DeckState{}
		for i := 0; i < discardSize; i++ {
			d.Discard = append(d.Discard, CardInstance{CardID: "x"})
		}
		for i := 0; i < drawSize; i++ {
			d.Draw = append(d.Draw, CardInstance{CardID: "y"})
		}
		total := d.Count()

		stream := rng.NewStream(seed)
		drawn, _ := d.DrawCards(want, stream)
		if len(drawn) > want {
			t.Fatalf("drew more than requested: %d > %d", len(drawn), want)
		}
		if d.Count() != total {
			t.Fatalf("draw changed total card count: %d != %d", d.Count(), total)
		}
	})
}

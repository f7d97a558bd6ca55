package combat

// EnergyState is (max, current, gained_this_turn) per §3. Current is
// always in [0, max] except for the transient gain within a turn, which
// §4.6 explicitly allows to exceed the cap unless a status says
// otherwise.
type EnergyState struct {
	Max            int
	Current        int
	GainedThisTurn int
}

// ResetForTurn resets current to max plus any relic/status bonus and
// clears the per-turn gain counter (§4.5 "Player turn start").
func (e *EnergyState) ResetForTurn(bonus int) {
	e.Max0Guard()
	e.Current = e.Max + bonus
	e.GainedThisTurn = 0
}

// Max0Guard keeps Max non-negative; a zero or negative max is a content
// misconfiguration, not a runtime path this engine needs to special-case
// beyond refusing to go negative.
func (e *EnergyState) Max0Guard() {
	if e.Max < 0 {
		e.Max = 0
	}
}

// Spend consumes cost energy, reporting whether the spend succeeded. It
// never consumes when current < cost: the caller is responsible for the
// legal-play check (§4.5).
func (e *EnergyState) Spend(cost int) bool {
	if e.Current < cost {
		return false
	}
	e.Current -= cost
	return true
}

// Gain adds n energy, tracking it against GainedThisTurn.
func (e *EnergyState) Gain(n int) {
	e.Current += n
	e.GainedThisTurn += n
}

package combat

import (
	"sort"

	"github.com/louisbranch/gitdungeon/internal/content"
)

// IndefiniteDuration is the sentinel for a status with no turn-count
// expiry (§3 "Status stack"); it is only removed explicitly.
const IndefiniteDuration = -1

// StatusStack is (id, stacks, optional remaining duration), per §3.
type StatusStack struct {
	ID        string
	Stacks    int
	Remaining int // turns remaining, or IndefiniteDuration
}

// StatusStacks is the owner's status_id → stack mapping, kept in
// insertion order (a plain slice) because §4.5 requires on-turn-start
// effects to fire "in insertion order."
type StatusStacks struct {
	order []string
	byID  map[string]*StatusStack
}

// NewStatusStacks builds an empty status map.
func NewStatusStacks() StatusStacks {
	return StatusStacks{byID: map[string]*StatusStack{}}
}

// Get reports the current stack count for id (0 if absent).
func (s StatusStacks) Get(id string) int {
	if st, ok := s.byID[id]; ok {
		return st.Stacks
	}
	return 0
}

// Apply adds stacks to id, clamped to def.MaxStacks, inserting it at the
// end of iteration order on first application. The remaining duration is
// set only on first application (IndefiniteDuration for indefinite
// statuses, otherwise duration); re-application adds stacks and leaves
// the remaining duration as it was.
func (s *StatusStacks) Apply(def content.StatusDef, stacks int, duration int) {
	if s.byID == nil {
		s.byID = map[string]*StatusStack{}
	}
	st, ok := s.byID[def.ID]
	if !ok {
		st = &StatusStack{ID: def.ID, Remaining: duration}
		if def.Indefinite {
			st.Remaining = IndefiniteDuration
		}
		s.byID[def.ID] = st
		s.order = append(s.order, def.ID)
	}
	st.Stacks += stacks
	if st.Stacks > def.MaxStacks {
		st.Stacks = def.MaxStacks
	}
	if st.Stacks < 0 {
		st.Stacks = 0
	}
}

// Remove deletes id entirely, regardless of remaining stacks.
func (s *StatusStacks) Remove(id string) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// InOrder returns the current stacks in insertion order, a stable copy
// safe for the caller to range over while mutating s.
func (s StatusStacks) InOrder() []StatusStack {
	out := make([]StatusStack, 0, len(s.order))
	for _, id := range s.order {
		if st, ok := s.byID[id]; ok {
			out = append(out, *st)
		}
	}
	return out
}

// TickDurations decrements every finite-duration status by one turn and
// removes any that reach zero, returning the removed IDs so the caller
// can emit status_removed events.
func (s *StatusStacks) TickDurations() []string {
	var removed []string
	for _, id := range append([]string(nil), s.order...) {
		st := s.byID[id]
		if st.Remaining == IndefiniteDuration {
			continue
		}
		st.Remaining--
		if st.Remaining <= 0 {
			s.Remove(id)
			removed = append(removed, id)
		}
	}
	return removed
}

// DecrementAndPrune reduces id's stack count by by, removing the entry
// entirely once it reaches zero (burn's documented "deals N, then
// decrements" trigger, §4.6).
func (s *StatusStacks) DecrementAndPrune(id string, by int) {
	st, ok := s.byID[id]
	if !ok {
		return
	}
	st.Stacks -= by
	if st.Stacks <= 0 {
		s.Remove(id)
	}
}

// DefaultDuration is the turn window a freshly applied finite status
// lasts before TickDurations expires it, absent a card-specified override.
const DefaultDuration = 1

// sortedIDs returns the held status IDs in sorted order, independent of
// InOrder's insertion tracking.
func (s StatusStacks) sortedIDs() []string {
	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

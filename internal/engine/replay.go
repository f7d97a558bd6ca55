package engine

import (
	"github.com/louisbranch/gitdungeon/internal/chapter"
	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/gevent"
)

// Replay reproduces a run from its saved action log (§4.9 "Replay
// contract"): given the same root seed, pack set, mutator, and commit
// list, re-running the same ordered actions against a fresh NewRun
// produces a byte-equivalent event stream, grounded on the teacher's
// ReplayCampaignWith loop shape (apply each stored record in order,
// stopping on the first error).
func Replay(reg *content.Registry, commits []chapter.Commit, doc SavedRun) (*GameState, []gevent.Event, error) {
	doc = Migrate(doc)
	mutator := mutatorByName(doc.Mutator)

	state, events, err := NewRun(reg, commits, doc.Seed, mutator, doc.RunID)
	if err != nil {
		return nil, nil, err
	}

	all := append([]gevent.Event{}, events...)
	for _, rec := range doc.ActionLog {
		_, stepEvents := Apply(reg, state, rec.ToAction())
		all = append(all, stepEvents...)
	}
	return state, all, nil
}

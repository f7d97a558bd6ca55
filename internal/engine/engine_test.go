package engine

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/louisbranch/gitdungeon/internal/chapter"
	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/gameerr"
)

func testRegistry(t *testing.T) *content.Registry {
	t.Helper()
	base := content.DefaultBase()
	base.Events = []content.EventDef{
		{ID: "stray_branch", Title: "A Stray Branch", Choices: []content.EventChoice{
			{Label: "Merge it", Effects: []content.Effect{{Op: content.OpGainGold, Value: 10}}},
			{Label: "Ignore it", Effects: nil},
		}},
	}
	reg, err := content.Build(base)
	if err != nil {
		t.Fatalf("failed to build test registry: %v", err)
	}
	return reg
}

func syntheticCommits(n int) []chapter.Commit {
	commits := make([]chapter.Commit, n)
	for i := 0; i < n; i++ {
		msg := "feat: add thing"
		if i%2 == 1 {
			msg = "fix: bug squashed"
		}
		commits[i] = chapter.Commit{
			Hash: "c" + string(rune('a'+i)), ShortHash: "c" + string(rune('a'+i)),
			Message: msg, Additions: 20, Deletions: 5, Timestamp: int64(i),
		}
	}
	return commits
}

func TestNewRunEmptyRepoFails(t *testing.T) {
	reg := testRegistry(t)
	_, _, err := NewRun(reg, nil, 1, chapter.StandardMutator, "run-1")
	if !gameerr.IsCode(err, gameerr.CodeRepoEmpty) {
		t.Fatalf("expected repository-empty error, got %v", err)
	}
}

func TestNewRunBuildsInitialChapterAndRoute(t *testing.T) {
	reg := testRegistry(t)
	state, events, err := NewRun(reg, syntheticCommits(10), 42, chapter.StandardMutator, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Chapters) == 0 {
		t.Fatal("expected at least one chapter")
	}
	if len(state.Nodes) == 0 {
		t.Fatal("expected a node route for chapter 0")
	}
	if state.Route.CurrentNodeID != 0 {
		t.Fatalf("expected route cursor at 0, got %d", state.Route.CurrentNodeID)
	}
	if len(events) != 1 || events[0].Type != "chapter_started" {
		t.Fatalf("expected a single chapter_started event, got %+v", events)
	}
}

// TestApplyAdvanceNodeTwiceFailsSecondTime is spec.md §8 invariant 8.
func TestApplyAdvanceNodeTwiceFailsSecondTime(t *testing.T) {
	reg := testRegistry(t)
	state, _, err := NewRun(reg, syntheticCommits(10), 42, chapter.StandardMutator, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, events := Apply(reg, state, Action{Kind: ActionAdvanceNode})
	for _, e := range events {
		if e.Type == "error" {
			t.Fatalf("unexpected error on first advance: %+v", e)
		}
	}

	// Simulate the same advance_node action reapplied against the
	// pre-advance node (e.g. a duplicated client request): the node it
	// names is already in the visited set, so it must fail.
	state.Route.CurrentNodeID = state.Route.VisitedNodeIDs[len(state.Route.VisitedNodeIDs)-1]
	_, events2 := Apply(reg, state, Action{Kind: ActionAdvanceNode})
	if len(events2) != 1 || events2[0].Type != "error" {
		t.Fatalf("expected exactly one error event re-advancing a visited node, got %+v", events2)
	}
}

// TestApplyIllegalActionLeavesStateUnchanged is spec.md §8 invariant 4.
func TestApplyIllegalActionLeavesStateUnchanged(t *testing.T) {
	reg := testRegistry(t)
	state, _, err := NewRun(reg, syntheticCommits(10), 7, chapter.StandardMutator, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	goldBefore := state.Player.Gold

	_, events := Apply(reg, state, Action{Kind: ActionShopBuy, OfferID: "nonexistent"})
	if len(events) != 1 || events[0].Type != "error" {
		t.Fatalf("expected exactly one error event, got %+v", events)
	}
	if state.Player.Gold != goldBefore {
		t.Fatalf("expected gold unchanged, got %d want %d", state.Player.Gold, goldBefore)
	}
}

func TestApplyUnknownActionProducesErrorEvent(t *testing.T) {
	reg := testRegistry(t)
	state, _, err := NewRun(reg, syntheticCommits(10), 7, chapter.StandardMutator, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, events := Apply(reg, state, Action{Kind: "bogus"})
	if len(events) != 1 || events[0].Type != "error" {
		t.Fatalf("expected a single error event, got %+v", events)
	}
}

func TestRunFingerprintStableForEqualInputs(t *testing.T) {
	f1 := Fingerprint{RepoFingerprint: "repo1", Seed: 42, Mutator: "standard", PackIDs: []string{"base", "extra"}}
	f2 := Fingerprint{RepoFingerprint: "repo1", Seed: 42, Mutator: "standard", PackIDs: []string{"extra", "base"}}
	if f1.String() != f2.String() {
		t.Fatalf("expected pack-order-independent fingerprint, got %q vs %q", f1.String(), f2.String())
	}
}

func TestSaveIsDeterministicForSameState(t *testing.T) {
	reg := testRegistry(t)
	state, _, err := NewRun(reg, syntheticCommits(10), 42, chapter.StandardMutator, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := Save(state, reg.PackIDs, nil)
	doc2 := Save(state, reg.PackIDs, nil)
	if doc.SchemaVersion != doc2.SchemaVersion || doc.Seed != doc2.Seed || doc.RunID != doc2.RunID {
		t.Fatalf("expected identical save documents for the same state, got %+v vs %+v", doc, doc2)
	}
}

// TestShopBuyInsufficientGoldLeavesGoldNonNegative is spec.md §8
// invariant 2 (gold is never negative) together with invariant 4 (an
// unmet precondition leaves state unchanged and emits one error event).
func TestShopBuyInsufficientGoldLeavesGoldNonNegative(t *testing.T) {
	reg := testRegistry(t)
	state, _, err := NewRun(reg, syntheticCommits(10), 7, chapter.StandardMutator, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state.Player.Gold = 5
	state.EncounterKind = EncounterShop
	state.Shop = &ShopState{Offers: []ShopOffer{{ID: "pricey", Kind: "card", Price: 9999, RefID: "strike"}}}

	_, events := Apply(reg, state, Action{Kind: ActionShopBuy, OfferID: "pricey"})
	if len(events) != 1 || events[0].Type != "error" {
		t.Fatalf("expected exactly one error event, got %+v", events)
	}
	if state.Player.Gold != 5 {
		t.Fatalf("expected gold unchanged at 5, got %d", state.Player.Gold)
	}
	if state.Player.Gold < 0 {
		t.Fatal("gold must never go negative")
	}
}

// TestSaveJSONRoundTripIsByteStable is spec.md §8 invariant 7: marshaling
// a save document, unmarshaling it back, and re-marshaling it produces
// identical bytes. The engine never owns the JSON codec itself (an
// external collaborator does, per §6), but the document it hands that
// collaborator must round-trip cleanly through encoding/json.
func TestSaveJSONRoundTripIsByteStable(t *testing.T) {
	reg := testRegistry(t)
	state, _, err := NewRun(reg, syntheticCommits(10), 42, chapter.StandardMutator, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _ = Apply(reg, state, Action{Kind: ActionAdvanceNode})

	doc := Save(state, reg.PackIDs, []ActionRecord{FromAction(Action{Kind: ActionAdvanceNode})})
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var roundTripped SavedRun
	if err := json.Unmarshal(data, &roundTripped); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	roundTripped = Migrate(roundTripped)

	data2, err := json.Marshal(roundTripped)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if !reflect.DeepEqual(data, data2) {
		t.Fatalf("save document did not round-trip byte-for-byte:\nfirst:  %s\nsecond: %s", data, data2)
	}
}

// TestMutatorByNameFallsBackToStandard guards mutatorByName's fallback
// for an unrecognised or empty stored mutator tag.
func TestMutatorByNameFallsBackToStandard(t *testing.T) {
	if mutatorByName("hard").Name != chapter.HardMutator.Name {
		t.Fatalf("expected hard mutator to resolve by name")
	}
	if mutatorByName("unknown").Name != chapter.StandardMutator.Name {
		t.Fatalf("expected unrecognised mutator tag to fall back to standard")
	}
	if mutatorByName("").Name != chapter.StandardMutator.Name {
		t.Fatalf("expected empty mutator tag to fall back to standard")
	}
}

func TestReplayReproducesEventStream(t *testing.T) {
	reg := testRegistry(t)
	commits := syntheticCommits(10)
	state, _, err := NewRun(reg, commits, 42, chapter.StandardMutator, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	actions := []Action{{Kind: ActionAdvanceNode}}
	var log []ActionRecord
	for _, a := range actions {
		_, _ = Apply(reg, state, a)
		log = append(log, FromAction(a))
	}

	doc := SavedRun{SchemaVersion: CurrentSchemaVersion, RunID: "run-1", Seed: 42, Mutator: chapter.StandardMutator.Name, ActionLog: log}
	replayedState, _, err := Replay(reg, commits, doc)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if replayedState.Route.CurrentNodeID != state.Route.CurrentNodeID {
		t.Fatalf("replay diverged: node %d want %d", replayedState.Route.CurrentNodeID, state.Route.CurrentNodeID)
	}
}

// TestReplayReproducesRunFingerprint is spec.md §8 invariant 9: replaying
// a saved action log to completion reproduces the stored run fingerprint,
// not merely a converging node ID.
func TestReplayReproducesRunFingerprint(t *testing.T) {
	reg := testRegistry(t)
	commits := syntheticCommits(10)
	state, _, err := NewRun(reg, commits, 42, chapter.StandardMutator, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := FingerprintOf(state, reg.PackIDs, "")

	actions := []Action{{Kind: ActionAdvanceNode}, {Kind: ActionAdvanceNode}}
	var log []ActionRecord
	for _, a := range actions {
		_, _ = Apply(reg, state, a)
		log = append(log, FromAction(a))
	}

	doc := SavedRun{SchemaVersion: CurrentSchemaVersion, RunID: "run-1", Seed: 42, Mutator: chapter.StandardMutator.Name, ActionLog: log}
	replayedState, _, err := Replay(reg, commits, doc)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	got := FingerprintOf(replayedState, reg.PackIDs, "")
	if got.String() != want.String() {
		t.Fatalf("replay fingerprint diverged: got %q want %q", got.String(), want.String())
	}
}

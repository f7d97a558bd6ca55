package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Fingerprint is the run-identifying tuple §6/§4.9 define: repository
// identity, seed, mutator, sorted pack IDs, and an optional
// daily-challenge date (GLOSSARY "Run fingerprint").
type Fingerprint struct {
	RepoFingerprint string
	Seed            int64
	Mutator         string
	PackIDs         []string
	ChallengeDate   string // empty outside daily-challenge mode
}

// String renders a stable, shareable run ID from the fingerprint's
// fields, joined in a fixed order so equal fingerprints always render
// identically.
func (f Fingerprint) String() string {
	packs := append([]string{}, f.PackIDs...)
	sort.Strings(packs)
	parts := []string{f.RepoFingerprint, fmt.Sprintf("%d", f.Seed), f.Mutator, strings.Join(packs, ",")}
	if f.ChallengeDate != "" {
		parts = append(parts, f.ChallengeDate)
	}
	return strings.Join(parts, "|")
}

// NewRunID generates a fresh opaque run identifier (§3 "run identifier"),
// grounded on the teacher's use of google/uuid for participant/session
// IDs.
func NewRunID() string {
	return uuid.NewString()
}

// FingerprintOf builds the run fingerprint from a finished or in-progress
// GameState.
func FingerprintOf(state *GameState, packIDs []string, challengeDate string) Fingerprint {
	return Fingerprint{
		RepoFingerprint: state.RepoFingerprint,
		Seed:            state.RootSeed,
		Mutator:         state.Mutator.Name,
		PackIDs:         append([]string{}, packIDs...),
		ChallengeDate:   challengeDate,
	}
}

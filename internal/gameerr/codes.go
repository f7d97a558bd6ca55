// Package gameerr provides structured error handling for the deterministic
// gameplay core, mirroring the machine-readable code plus human message
// shape used across the codebase.
package gameerr

// Code is a machine-readable error code.
type Code string

// Content-validation errors: raised while building the registry, abort
// startup.
const (
	CodeContentMissingField     Code = "CONTENT_MISSING_FIELD"
	CodeContentUnknownReference Code = "CONTENT_UNKNOWN_REFERENCE"
	CodeContentDuplicateID      Code = "CONTENT_DUPLICATE_ID"
	CodeContentInvalidRelicHook Code = "CONTENT_INVALID_RELIC_HOOK"
)

// Repository errors: abort run creation.
const (
	CodeRepoNotFound     Code = "REPO_NOT_FOUND"
	CodeRepoEmpty        Code = "REPO_EMPTY"
	CodeRepoCommitCapHit Code = "REPO_COMMIT_CAP_HIT"
)

// Illegal-action errors: produce an error event, state is left untouched.
const (
	CodeWrongPhase          Code = "WRONG_PHASE"
	CodeInsufficientEnergy  Code = "INSUFFICIENT_ENERGY"
	CodeUnknownCard         Code = "UNKNOWN_CARD"
	CodeUnknownAction       Code = "UNKNOWN_ACTION"
	CodeNoActiveEncounter   Code = "NO_ACTIVE_ENCOUNTER"
	CodeEncounterMismatch   Code = "ENCOUNTER_MISMATCH"
	CodeGameAlreadyOver     Code = "GAME_ALREADY_OVER"
	CodeNodeAlreadyVisited  Code = "NODE_ALREADY_VISITED"
	CodeInsufficientGold    Code = "INSUFFICIENT_GOLD"
	CodeInvalidChoiceIndex  Code = "INVALID_CHOICE_INDEX"
)

// Save-schema errors: abort the load and are reported to the caller.
const (
	CodeSaveUnreadableVersion Code = "SAVE_UNREADABLE_VERSION"
	CodeSaveCorrupt           Code = "SAVE_CORRUPT"
)

// Resource-limit errors: surfaced with a stable kind code.
const (
	CodeResourceLimitExceeded Code = "RESOURCE_LIMIT_EXCEEDED"
)

// Programmer errors: invariant violations, bugs.
const (
	CodeInvariantViolation Code = "INVARIANT_VIOLATION"
	CodeUnseededRNG        Code = "UNSEEDED_RNG"
)

// Kind groups codes into the §7 error-kind taxonomy.
type Kind string

const (
	KindContentValidation Kind = "content-validation"
	KindRepository        Kind = "repository"
	KindIllegalAction     Kind = "illegal-action"
	KindSaveSchema        Kind = "save-schema"
	KindResourceLimit     Kind = "resource-limit"
	KindProgrammer        Kind = "programmer"
)

var codeKinds = map[Code]Kind{
	CodeContentMissingField:     KindContentValidation,
	CodeContentUnknownReference: KindContentValidation,
	CodeContentDuplicateID:      KindContentValidation,
	CodeContentInvalidRelicHook: KindContentValidation,

	CodeRepoNotFound:     KindRepository,
	CodeRepoEmpty:        KindRepository,
	CodeRepoCommitCapHit: KindRepository,

	CodeWrongPhase:         KindIllegalAction,
	CodeInsufficientEnergy: KindIllegalAction,
	CodeUnknownCard:        KindIllegalAction,
	CodeUnknownAction:      KindIllegalAction,
	CodeNoActiveEncounter:  KindIllegalAction,
	CodeEncounterMismatch:  KindIllegalAction,
	CodeGameAlreadyOver:    KindIllegalAction,
	CodeNodeAlreadyVisited: KindIllegalAction,
	CodeInsufficientGold:   KindIllegalAction,
	CodeInvalidChoiceIndex: KindIllegalAction,

	CodeSaveUnreadableVersion: KindSaveSchema,
	CodeSaveCorrupt:           KindSaveSchema,

	CodeResourceLimitExceeded: KindResourceLimit,

	CodeInvariantViolation: KindProgrammer,
	CodeUnseededRNG:        KindProgrammer,
}

// Kind reports which §7 error-kind bucket a code belongs to.
func (c Code) Kind() Kind {
	if k, ok := codeKinds[c]; ok {
		return k
	}
	return KindProgrammer
}

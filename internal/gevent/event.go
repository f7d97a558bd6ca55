// Package gevent defines the first-class event values the orchestrator
// emits (spec.md §4.9): every state transition in the gameplay core
// produces an ordered list of these, never side effects, matching the
// teacher's internal/campaign/event package shape (a typed envelope plus
// a small typed payload per event type).
package gevent

// Type tags an event's kind. The catalog matches §4.9's "at least"
// list verbatim plus the additional kinds the combat/reward/event-opcode
// subsystems need to stay fully observable.
type Type string

const (
	TypeBattleStarted        Type = "battle_started"
	TypeBattleEnded          Type = "battle_ended"
	TypeDamageDealt          Type = "damage_dealt"
	TypeStatusApplied        Type = "status_applied"
	TypeStatusRemoved        Type = "status_removed"
	TypeTurnStarted          Type = "turn_started"
	TypeTurnEnded            Type = "turn_ended"
	TypeCardsDrawn           Type = "cards_drawn"
	TypeCardPlayed           Type = "card_played"
	TypeEnemyIntentRevealed  Type = "enemy_intent_revealed"
	TypeExpGained            Type = "exp_gained"
	TypeLevelUp              Type = "level_up"
	TypeItemDropped          Type = "item_dropped"
	TypeGoldGained           Type = "gold_gained"
	TypeChapterStarted       Type = "chapter_started"
	TypeChapterCompleted     Type = "chapter_completed"
	TypeEnemyDefeated        Type = "enemy_defeated"
	TypeShopEntered          Type = "shop_entered"
	TypeRewardOffered        Type = "reward_offered"
	TypeRewardPicked         Type = "reward_picked"
	TypeEventResolved        Type = "event_resolved"
	TypeDeckShuffled         Type = "deck_shuffled"
	TypeError                Type = "error"
)

// ActorType names who caused an event, mirroring the teacher's
// distinction between player- and enemy-originated events so replay
// consumers can attribute cause without re-deriving it from context.
type ActorType string

const (
	ActorPlayer ActorType = "player"
	ActorEnemy  ActorType = "enemy"
	ActorSystem ActorType = "system"
)

// Event is the envelope every event type shares: a monotonically
// increasing per-run Seq, a wall/monotonic Timestamp supplied by the host
// clock (never used for branching, §6), and a typed Payload.
type Event struct {
	Type      Type
	Seq       uint64
	Timestamp int64
	Actor     ActorType
	Payload   any
}

// IsValid reports whether the event carries a recognised type tag.
func (e Event) IsValid() bool {
	switch e.Type {
	case TypeBattleStarted, TypeBattleEnded, TypeDamageDealt, TypeStatusApplied,
		TypeStatusRemoved, TypeTurnStarted, TypeTurnEnded, TypeCardsDrawn,
		TypeCardPlayed, TypeEnemyIntentRevealed, TypeExpGained, TypeLevelUp,
		TypeItemDropped, TypeGoldGained, TypeChapterStarted, TypeChapterCompleted,
		TypeEnemyDefeated, TypeShopEntered, TypeRewardOffered, TypeRewardPicked,
		TypeEventResolved, TypeDeckShuffled, TypeError:
		return true
	default:
		return false
	}
}

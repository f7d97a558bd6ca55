package combat

import (
	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/gameerr"
	"github.com/louisbranch/gitdungeon/internal/gevent"
	"github.com/louisbranch/gitdungeon/internal/rng"
)

// Phase is the battle's current turn phase (§3, §4.5).
type Phase string

const (
	PhasePlayer     Phase = "player"
	PhaseEnemy      Phase = "enemy"
	PhaseResolution Phase = "resolution"
)

// StartingHandSize is §4.5's default starting hand.
const StartingHandSize = 5

// Combatant is the player's in-battle stat block: HP plus the stats that
// feed into damage resolution. PlayerState (owned by the engine package)
// projects into this shape on battle entry and back out on resolution.
type Combatant struct {
	HP       int
	MaxHP    int
	Attack   int
	Defense  int
	Statuses StatusStacks
}

// Battle is the full in-progress encounter state (§3 "Game state ...
// current encounter").
type Battle struct {
	NodeID            int
	Phase             Phase
	Turn              int
	Player            Combatant
	Enemy             EnemyState
	EnemyDef          content.EnemyDef
	Deck              DeckState
	Energy            EnergyState
	EscapeProbability float64
	AllowEscape       bool
	Stream            *rng.Stream
	Ended             bool
	Result            string // "victory", "defeat", "escaped"

	// RelicIDs are the owned relics whose hooks (§9(ii): on_turn_start,
	// on_damage_taken, on_card_played, on_reward) fire during this battle.
	RelicIDs []string
}

// StartBattle builds the initial battle state: fresh deck shuffled into
// the draw pile, starting hand drawn, energy reset, and the enemy's first
// intent declared (§4.5).
func StartBattle(reg *content.Registry, nodeID int, enemyDef content.EnemyDef, enemyName string, enemyMaxHP, enemyAttack, enemyDefense, goldReward, expReward int, player Combatant, energyMax int, runDeck Deck, relicIDs []string, stream *rng.Stream) (*Battle, []gevent.Event) {
	b := &Battle{
		NodeID: nodeID,
		Phase:  PhasePlayer,
		Turn:   1,
		Player: player,
		Enemy: EnemyState{
			ContentID:  enemyDef.ID,
			Name:       enemyName,
			MaxHP:      enemyMaxHP,
			CurrentHP:  enemyMaxHP,
			Attack:     enemyAttack,
			Defense:    enemyDefense,
			Statuses:   NewStatusStacks(),
			GoldReward: goldReward,
			ExpReward:  expReward,
			IsBoss:     enemyDef.IsBoss,
		},
		EnemyDef:          enemyDef,
		Energy:            EnergyState{Max: energyMax},
		EscapeProbability: enemyDef.EscapeProbability,
		AllowEscape:       !enemyDef.IsBoss,
		Stream:            stream,
		RelicIDs:          relicIDs,
	}
	if b.Player.Statuses.byID == nil {
		b.Player.Statuses = NewStatusStacks()
	}

	var events []gevent.Event
	events = append(events, gevent.Event{Type: gevent.TypeBattleStarted, Actor: gevent.ActorSystem, Payload: gevent.BattleStartedPayload{
		NodeID: nodeID, EnemyID: enemyDef.ID, EnemyName: enemyName, IsBoss: enemyDef.IsBoss,
	}})

	b.Deck = NewDeckState(runDeck, stream)
	b.Energy.ResetForTurn(0)

	drawn, reshuffled := b.Deck.DrawCards(StartingHandSize, stream)
	if reshuffled {
		events = append(events, gevent.Event{Type: gevent.TypeDeckShuffled, Actor: gevent.ActorSystem, Payload: gevent.DeckShuffledPayload{CardCount: len(b.Deck.Draw)}})
	}
	events = append(events, gevent.Event{Type: gevent.TypeCardsDrawn, Actor: gevent.ActorSystem, Payload: gevent.CardsDrawnPayload{CardIDs: drawnCardIDs(drawn)}})

	b.Enemy.Intent = SelectIntent(enemyDef, &b.Enemy, stream)
	events = append(events, gevent.Event{Type: gevent.TypeEnemyIntentRevealed, Actor: gevent.ActorEnemy, Payload: gevent.EnemyIntentRevealedPayload{
		Kind: string(b.Enemy.Intent.Kind), Value: b.Enemy.Intent.Value, StatusID: b.Enemy.Intent.StatusID,
	}})

	events = append(events, gevent.Event{Type: gevent.TypeTurnStarted, Actor: gevent.ActorPlayer, Payload: gevent.TurnStartedPayload{Turn: b.Turn, Phase: string(PhasePlayer)}})
	events = append(events, b.FireRelicHook(reg, content.HookOnTurnStart)...)
	return b, events
}

// PlayCard plays hand[index] against the registry's card definition:
// checks the legal-play precondition (§4.5), spends energy, applies the
// card's effect list in order, and routes the card to discard or exhaust.
func (b *Battle) PlayCard(reg *content.Registry, index int) ([]gevent.Event, error) {
	if b.Ended {
		return nil, gameerr.New(gameerr.CodeGameAlreadyOver, "battle already resolved")
	}
	if b.Phase != PhasePlayer {
		return nil, gameerr.New(gameerr.CodeWrongPhase, "cannot play a card during %s phase", b.Phase)
	}
	if index < 0 || index >= len(b.Deck.Hand) {
		return nil, gameerr.New(gameerr.CodeUnknownCard, "hand index %d out of range", index)
	}
	card := b.Deck.Hand[index]
	def, ok := reg.Cards[card.CardID]
	if !ok {
		return nil, gameerr.New(gameerr.CodeUnknownCard, "unknown card id %q", card.CardID).WithMetadata("card_id", card.CardID)
	}
	if b.Energy.Current < def.Cost {
		return nil, gameerr.New(gameerr.CodeInsufficientEnergy, "need %d energy, have %d", def.Cost, b.Energy.Current)
	}

	b.Energy.Spend(def.Cost)
	effects := def.Effects
	if card.Upgraded && len(def.UpgradeEffects) > 0 {
		effects = def.UpgradeEffects
	}

	events := []gevent.Event{{Type: gevent.TypeCardPlayed, Actor: gevent.ActorPlayer, Payload: gevent.CardPlayedPayload{CardID: card.CardID, Cost: def.Cost}}}
	exhaustSelf := def.ExhaustOnPlay
	effectEvents, extraExhaust := b.applyEffects(reg, effects, ActorSidePlayer)
	events = append(events, effectEvents...)
	exhaustSelf = exhaustSelf || extraExhaust

	b.Deck.PlayIndex(index, exhaustSelf)
	events = append(events, b.FireRelicHook(reg, content.HookOnCardPlayed)...)

	if b.Enemy.IsDefeated() {
		events = append(events, b.resolve("victory")...)
	}
	return events, nil
}

// baseDefendBlock is the block a bare defend action grants, independent
// of any card (§4.9 "combat_action(play_card/defend/end_turn/escape)").
const baseDefendBlock = 3

// Defend applies a fixed block amount to the player without consuming a
// card or checking the hand, distinct from playing the "defend" card.
func (b *Battle) Defend(reg *content.Registry) ([]gevent.Event, error) {
	if b.Ended {
		return nil, gameerr.New(gameerr.CodeGameAlreadyOver, "battle already resolved")
	}
	if b.Phase != PhasePlayer {
		return nil, gameerr.New(gameerr.CodeWrongPhase, "cannot defend during %s phase", b.Phase)
	}
	def := content.StatusDef{ID: "block", Kind: content.StatusBlock, MaxStacks: 999}
	b.Player.Statuses.Apply(def, baseDefendBlock, DefaultDuration)
	return []gevent.Event{{Type: gevent.TypeStatusApplied, Actor: gevent.ActorPlayer, Payload: gevent.StatusAppliedPayload{
		Target: "player", StatusID: "block", Stacks: b.Player.Statuses.Get("block"),
	}}}, nil
}

// FireRelicHook runs every owned relic's effect list for the given hook
// point, caster always the player (§9(ii): relics only ever act on the
// player's behalf). Unset/absent hooks are a no-op.
func (b *Battle) FireRelicHook(reg *content.Registry, hook content.RelicHook) []gevent.Event {
	var events []gevent.Event
	for _, id := range b.RelicIDs {
		def, ok := reg.Relics[id]
		if !ok {
			continue
		}
		effects, ok := def.Hooks[hook]
		if !ok || len(effects) == 0 {
			continue
		}
		effectEvents, _ := b.applyEffects(reg, effects, ActorSidePlayer)
		events = append(events, effectEvents...)
	}
	return events
}

// EndTurn discards the hand, runs the enemy's turn, ticks statuses, and
// transitions back to the player phase for the next turn (§4.5).
func (b *Battle) EndTurn(reg *content.Registry) ([]gevent.Event, error) {
	if b.Ended {
		return nil, gameerr.New(gameerr.CodeGameAlreadyOver, "battle already resolved")
	}
	if b.Phase != PhasePlayer {
		return nil, gameerr.New(gameerr.CodeWrongPhase, "cannot end turn during %s phase", b.Phase)
	}

	var events []gevent.Event
	b.Deck.DiscardHand()
	events = append(events, gevent.Event{Type: gevent.TypeTurnEnded, Actor: gevent.ActorPlayer, Payload: gevent.TurnEndedPayload{Turn: b.Turn, Phase: string(PhasePlayer)}})

	for _, st := range b.Player.Statuses.InOrder() {
		events = append(events, b.applyTurnEndStatus(ActorSidePlayer, st)...)
	}
	if b.Player.HP <= 0 {
		events = append(events, b.resolve("defeat")...)
		return events, nil
	}

	b.Phase = PhaseEnemy
	events = append(events, b.runEnemyTurn(reg)...)
	if b.Ended {
		return events, nil
	}

	b.Phase = PhasePlayer
	b.Turn++
	events = append(events, b.startPlayerTurn(reg)...)
	return events, nil
}

func (b *Battle) startPlayerTurn(reg *content.Registry) []gevent.Event {
	var events []gevent.Event
	b.Player.Statuses.Remove("block")
	b.Energy.ResetForTurn(0)
	for _, st := range b.Player.Statuses.InOrder() {
		events = append(events, b.applyTurnStartStatus(ActorSidePlayer, st)...)
	}
	drawn, reshuffled := b.Deck.DrawCards(StartingHandSize, b.Stream)
	if reshuffled {
		events = append(events, gevent.Event{Type: gevent.TypeDeckShuffled, Actor: gevent.ActorSystem, Payload: gevent.DeckShuffledPayload{CardCount: len(b.Deck.Draw)}})
	}
	events = append(events, gevent.Event{Type: gevent.TypeCardsDrawn, Actor: gevent.ActorSystem, Payload: gevent.CardsDrawnPayload{CardIDs: drawnCardIDs(drawn)}})
	events = append(events, gevent.Event{Type: gevent.TypeTurnStarted, Actor: gevent.ActorPlayer, Payload: gevent.TurnStartedPayload{Turn: b.Turn, Phase: string(PhasePlayer)}})
	events = append(events, b.FireRelicHook(reg, content.HookOnTurnStart)...)
	return events
}

func (b *Battle) runEnemyTurn(reg *content.Registry) []gevent.Event {
	var events []gevent.Event

	// Block resets at the owner's turn start; the enemy's turn follows
	// the player's, so the enemy's own block resets here.
	b.Enemy.Statuses.Remove("block")

	switch b.Enemy.Intent.Kind {
	case content.IntentAttack:
		res := ResolveDamage(b.Enemy.Intent.Value, 0, b.Player.Statuses.Get("vulnerable"), b.Player.Statuses.Get("block"), b.Player.Defense, false, false)
		b.applyBlockRemainder(ActorSidePlayer, res.RemainingBlock)
		b.Player.HP -= res.FinalDamage
		if b.Player.HP < 0 {
			b.Player.HP = 0
		}
		events = append(events, gevent.Event{Type: gevent.TypeDamageDealt, Actor: gevent.ActorEnemy, Payload: gevent.DamageDealtPayload{Source: "enemy", Target: "player", Amount: res.FinalDamage}})
		b.reflectThorns(ActorSidePlayer, res.FinalDamage, &events)
		events = append(events, b.FireRelicHook(reg, content.HookOnDamageTaken)...)
	case content.IntentDefend:
		b.Enemy.Statuses.Apply(content.StatusDef{ID: "block", Kind: content.StatusBlock, MaxStacks: 999}, b.Enemy.Intent.Value, DefaultDuration)
	case content.IntentBuff:
		b.Enemy.Attack += b.Enemy.Intent.Magnitude
	case content.IntentDebuff:
		if b.Enemy.Intent.StatusID != "" {
			if def, ok := reg.Statuses[b.Enemy.Intent.StatusID]; ok {
				b.Player.Statuses.Apply(def, maxStacks(b.Enemy.Intent.Magnitude, 1), DefaultDuration)
				events = append(events, gevent.Event{Type: gevent.TypeStatusApplied, Actor: gevent.ActorEnemy, Payload: gevent.StatusAppliedPayload{Target: "player", StatusID: def.ID, Stacks: maxStacks(b.Enemy.Intent.Magnitude, 1)}})
			}
		}
	case content.IntentCharge:
		b.Enemy.Statuses.Apply(content.StatusDef{ID: "charge", Kind: content.StatusCharge, MaxStacks: 99}, maxStacks(b.Enemy.Intent.Value, 1), DefaultDuration)
	}

	if b.Player.HP <= 0 {
		events = append(events, b.resolve("defeat")...)
		return events
	}

	for _, st := range b.Enemy.Statuses.InOrder() {
		events = append(events, b.applyTurnEndStatus(ActorSideEnemy, st)...)
	}
	if b.Enemy.IsDefeated() {
		events = append(events, b.resolve("victory")...)
		return events
	}

	removed := b.Enemy.Statuses.TickDurations()
	for _, id := range removed {
		events = append(events, gevent.Event{Type: gevent.TypeStatusRemoved, Actor: gevent.ActorEnemy, Payload: gevent.StatusRemovedPayload{Target: "enemy", StatusID: id}})
	}

	b.Enemy.Intent = SelectIntent(b.EnemyDef, &b.Enemy, b.Stream)
	events = append(events, gevent.Event{Type: gevent.TypeEnemyIntentRevealed, Actor: gevent.ActorEnemy, Payload: gevent.EnemyIntentRevealedPayload{
		Kind: string(b.Enemy.Intent.Kind), Value: b.Enemy.Intent.Value, StatusID: b.Enemy.Intent.StatusID,
	}})
	return events
}

// Escape rolls against the per-encounter escape probability (§4.5,
// scenario D); only legal in non-boss encounters.
func (b *Battle) Escape() ([]gevent.Event, error) {
	if b.Ended {
		return nil, gameerr.New(gameerr.CodeGameAlreadyOver, "battle already resolved")
	}
	if b.Phase != PhasePlayer {
		return nil, gameerr.New(gameerr.CodeWrongPhase, "cannot escape during %s phase", b.Phase)
	}
	if !b.AllowEscape {
		return nil, gameerr.New(gameerr.CodeWrongPhase, "cannot escape a boss encounter")
	}
	roll := b.Stream.Float64()
	if roll < b.EscapeProbability {
		return b.resolve("escaped"), nil
	}
	return nil, nil
}

func (b *Battle) resolve(result string) []gevent.Event {
	b.Ended = true
	b.Result = result
	b.Phase = PhaseResolution
	events := []gevent.Event{{Type: gevent.TypeBattleEnded, Actor: gevent.ActorSystem, Payload: gevent.BattleEndedPayload{NodeID: b.NodeID, Result: result}}}
	if result == "victory" {
		events = append(events, gevent.Event{Type: gevent.TypeEnemyDefeated, Actor: gevent.ActorSystem, Payload: gevent.EnemyDefeatedPayload{EnemyID: b.Enemy.ContentID}})
	}
	return events
}

func maxStacks(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

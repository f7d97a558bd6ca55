package engine

import (
	"sort"

	"github.com/louisbranch/gitdungeon/internal/chapter"
	"github.com/louisbranch/gitdungeon/internal/combat"
	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/eventops"
	"github.com/louisbranch/gitdungeon/internal/gameerr"
	"github.com/louisbranch/gitdungeon/internal/gevent"
	"github.com/louisbranch/gitdungeon/internal/nodegraph"
	"github.com/louisbranch/gitdungeon/internal/rewards"
	"github.com/louisbranch/gitdungeon/internal/rng"
)

// Apply is the engine's single pure transition (§4.9): given a state and
// an action, it returns the next state and the ordered event list that
// transition produced. An action whose precondition is not met leaves
// state unchanged and returns exactly one error event (§8 invariant 4).
func Apply(reg *content.Registry, state *GameState, action Action) (*GameState, []gevent.Event) {
	if state.IsGameOver {
		return state, state.errorEvent(gameerr.New(gameerr.CodeGameAlreadyOver, "run already finished"))
	}

	switch action.Kind {
	case ActionStartCombat:
		return applyStartCombat(reg, state)
	case ActionPlayCard:
		return applyCombatAction(reg, state, func(b *combat.Battle) ([]gevent.Event, error) {
			return b.PlayCard(reg, action.HandIndex)
		})
	case ActionDefend:
		return applyCombatAction(reg, state, func(b *combat.Battle) ([]gevent.Event, error) {
			return b.Defend(reg)
		})
	case ActionEndTurn:
		return applyCombatAction(reg, state, func(b *combat.Battle) ([]gevent.Event, error) {
			return b.EndTurn(reg)
		})
	case ActionEscape:
		return applyCombatAction(reg, state, func(b *combat.Battle) ([]gevent.Event, error) {
			return b.Escape()
		})
	case ActionEventChoice:
		return applyEventChoice(reg, state, action)
	case ActionShopBuy:
		return applyShopBuy(reg, state, action)
	case ActionShopSkip:
		return applyShopSkip(state)
	case ActionRestChoice:
		return applyRestChoice(state, action)
	case ActionAdvanceNode:
		return applyAdvanceNode(reg, state)
	case ActionRewardPick:
		return applyRewardPick(reg, state, action)
	default:
		return state, state.errorEvent(gameerr.New(gameerr.CodeUnknownAction, "unknown action kind %q", action.Kind))
	}
}

// applyCombatAction routes a combat_action through the active battle,
// turning a nil-or-error result into the single required error event.
func applyCombatAction(reg *content.Registry, state *GameState, fn func(*combat.Battle) ([]gevent.Event, error)) (*GameState, []gevent.Event) {
	if state.EncounterKind != EncounterBattle || state.Battle == nil {
		return state, state.errorEvent(gameerr.New(gameerr.CodeNoActiveEncounter, "no active battle"))
	}
	events, err := fn(state.Battle)
	if err != nil {
		return state, state.errorEvent(err)
	}
	state.TurnNumber = state.Battle.Turn
	stamped := restamp(state, events)
	if state.Battle.Ended {
		stamped = append(stamped, finishBattle(reg, state)...)
	}
	return state, stamped
}

// restamp assigns this run's monotonic sequence numbers to events
// produced by a sub-package that has no notion of the run-level counter.
func restamp(state *GameState, events []gevent.Event) []gevent.Event {
	out := make([]gevent.Event, len(events))
	for i, e := range events {
		state.EventSeq++
		e.Seq = state.EventSeq
		out[i] = e
	}
	return out
}

func applyStartCombat(reg *content.Registry, state *GameState) (*GameState, []gevent.Event) {
	node, ok := state.CurrentNode()
	if !ok || !node.IsCombat() {
		return state, state.errorEvent(gameerr.New(gameerr.CodeEncounterMismatch, "current node is not a combat node"))
	}
	if state.EncounterKind != EncounterNone {
		return state, state.errorEvent(gameerr.New(gameerr.CodeEncounterMismatch, "an encounter is already active"))
	}
	ch, _ := state.CurrentChapter()
	if node.CommitIndex < 0 || node.CommitIndex >= len(ch.Commits) {
		return state, state.errorEvent(gameerr.New(gameerr.CodeInvariantViolation, "combat node has no mapped commit"))
	}
	commit := ch.Commits[node.CommitIndex]
	state.CommitCursor = node.CommitIndex
	stats := chapter.ParameteriseEnemy(commit, ch, state.Mutator)

	enemyDef := firstEnemyDef(reg, node.Kind == nodegraph.KindBoss)
	stream := enemyStreamFor(state.RootSeed, state.ChapterIndex, node.Position)

	combatant := combat.Combatant{
		HP: state.Player.Character.HP, MaxHP: state.Player.Character.MaxHP.Value(),
		Attack: state.Player.Character.Attack.Value(), Defense: state.Player.Character.Defense.Value(),
		Statuses: combat.NewStatusStacks(),
	}

	creatureName := stats.CreatureName
	if node.Kind == nodegraph.KindBoss && len(ch.Config.BossNames) > 0 {
		nameStream := rng.Derive(state.RootSeed, rng.DomainBossName, int64(state.ChapterIndex))
		creatureName = ch.Config.BossNames[nameStream.IntRange(0, len(ch.Config.BossNames)-1)]
	}
	battle, events := combat.StartBattle(reg, node.Position, enemyDef, creatureName, stats.MaxHP, stats.Attack, stats.Defense, stats.GoldReward, stats.ExpReward, combatant, defaultEnergyMax, state.Player.Deck, state.Player.RelicIDs, stream)

	state.Battle = battle
	state.EncounterKind = EncounterBattle
	state.InCombat = true
	state.TurnNumber = battle.Turn
	state.TurnPhase = PhasePlayer
	state.lastEncounterFeatures = rewards.EncounterFeatures{
		LargeDiff: commit.TotalChanges() > 100,
		IsMerge:   commit.IsMerge(),
		IsElite:   node.Kind == nodegraph.KindElite,
		IsBoss:    node.Kind == nodegraph.KindBoss,
	}

	return state, restamp(state, events)
}

// firstEnemyDef deterministically selects an enemy template for a node:
// boss nodes require IsBoss, others exclude it. Ties break by sorted ID
// so the same registry always resolves the same way.
func firstEnemyDef(reg *content.Registry, boss bool) content.EnemyDef {
	var best content.EnemyDef
	bestID := ""
	for id, def := range reg.Enemies {
		if def.IsBoss != boss {
			continue
		}
		if bestID == "" || id < bestID {
			bestID, best = id, def
		}
	}
	return best
}

// finishBattle projects the resolved battle back into the player state
// and, on victory, generates the reward bundle (§4.7).
func finishBattle(reg *content.Registry, state *GameState) []gevent.Event {
	b := state.Battle
	state.Player.Character.HP = b.Player.HP
	state.Player.Deck = projectDeckToRun(b)

	var events []gevent.Event
	switch b.Result {
	case "victory":
		state.EnemiesDefeated = append(state.EnemiesDefeated, b.Enemy.ContentID)
		features := state.lastEncounterFeatures
		hpFrac := 1.0
		if state.Player.Character.MaxHP.Value() > 0 {
			hpFrac = float64(state.Player.Character.HP) / float64(state.Player.Character.MaxHP.Value())
		}
		stream := rng.Derive(state.RootSeed, rng.DomainRewardOffer, int64(state.ChapterIndex), int64(b.NodeID))
		bundle, rewardEvents := rewards.Generate(reg, stream, b.Enemy.GoldReward, state.Player.Bias, features, hpFrac)
		events = append(events, restamp(state, rewardEvents)...)
		events = append(events, restamp(state, b.FireRelicHook(reg, content.HookOnReward))...)
		state.Player.Gold += bundle.Gold
		events = append(events, grantExperience(state, b.Enemy.ExpReward)...)

		if len(bundle.CardOffers) > 0 || bundle.RelicOffer != "" || bundle.HealOffered {
			state.EncounterKind = EncounterReward
			state.Reward = &RewardState{CardOffers: bundle.CardOffers, RelicOffer: bundle.RelicOffer, HealOffer: bundle.HealOffered}
		} else {
			state.EncounterKind = EncounterNone
		}
	case "defeat":
		state.IsGameOver = true
		state.IsVictory = false
		state.EncounterKind = EncounterNone
	}

	state.InCombat = false
	state.TurnPhase = PhaseOutOfCombat
	state.Battle = nil
	return events
}

// applyRewardPick resolves the reward offer finishBattle left pending
// after a victory: the player takes at most one of the offered card,
// the relic drop, or the heal, or skips the offer outright. Recording
// the pick's tags against the bias is what makes a reward pick actually
// feed back into future reward weighting (§4.7).
func applyRewardPick(reg *content.Registry, state *GameState, action Action) (*GameState, []gevent.Event) {
	if state.EncounterKind != EncounterReward || state.Reward == nil {
		return state, state.errorEvent(gameerr.New(gameerr.CodeNoActiveEncounter, "no active reward offer"))
	}
	reward := state.Reward

	var events []gevent.Event
	switch action.RewardOption {
	case "card":
		if action.RewardCardIndex < 0 || action.RewardCardIndex >= len(reward.CardOffers) {
			return state, state.errorEvent(gameerr.New(gameerr.CodeInvalidChoiceIndex, "reward card index %d out of range", action.RewardCardIndex))
		}
		cardID := reward.CardOffers[action.RewardCardIndex]
		state.Player.Deck = append(state.Player.Deck, combat.CardInstance{CardID: cardID})
		state.Player.Bias.RecordChoice(reg.Cards[cardID].Tags)
		events = append(events, state.emit(gevent.TypeRewardPicked, gevent.ActorPlayer, gevent.RewardPickedPayload{PickedID: cardID, Kind: "card"}))
	case "relic":
		if reward.RelicOffer == "" {
			return state, state.errorEvent(gameerr.New(gameerr.CodeInvalidChoiceIndex, "no relic offered"))
		}
		state.Player.RelicIDs = append(state.Player.RelicIDs, reward.RelicOffer)
		state.Player.Bias.RecordChoice(reg.Relics[reward.RelicOffer].Tags)
		events = append(events, state.emit(gevent.TypeRewardPicked, gevent.ActorPlayer, gevent.RewardPickedPayload{PickedID: reward.RelicOffer, Kind: "relic"}))
	case "heal":
		if !reward.HealOffer {
			return state, state.errorEvent(gameerr.New(gameerr.CodeInvalidChoiceIndex, "no heal offered"))
		}
		missing := state.Player.Character.MaxHP.Value() - state.Player.Character.HP
		healed := min(10, missing)
		if healed > 0 {
			state.Player.Character.HP += healed
		}
		events = append(events, state.emit(gevent.TypeRewardPicked, gevent.ActorPlayer, gevent.RewardPickedPayload{PickedID: "heal", Kind: "heal"}))
	case "skip":
	default:
		return state, state.errorEvent(gameerr.New(gameerr.CodeInvalidChoiceIndex, "unknown reward option %q", action.RewardOption))
	}

	state.EncounterKind = EncounterNone
	state.Reward = nil
	return state, events
}

// projectDeckToRun rebuilds the run-level deck from every pile in the
// resolved battle (§3 "piles are rebuilt on battle entry from the run
// deck", symmetric on exit minus exhausted cards).
func projectDeckToRun(b *combat.Battle) combat.Deck {
	deck := make(combat.Deck, 0, b.Deck.Count())
	deck = append(deck, b.Deck.Draw...)
	deck = append(deck, b.Deck.Hand...)
	deck = append(deck, b.Deck.Discard...)
	return deck
}

func applyEventChoice(reg *content.Registry, state *GameState, action Action) (*GameState, []gevent.Event) {
	if state.EncounterKind != EncounterEvent || state.Event == nil {
		return state, state.errorEvent(gameerr.New(gameerr.CodeNoActiveEncounter, "no active event"))
	}
	def, ok := reg.Events[state.Event.EventID]
	if !ok {
		return state, state.errorEvent(gameerr.New(gameerr.CodeInvariantViolation, "event id not in registry"))
	}
	if action.ChoiceIndex < 0 || action.ChoiceIndex >= len(def.Choices) {
		return state, state.errorEvent(gameerr.New(gameerr.CodeInvalidChoiceIndex, "choice index %d out of range", action.ChoiceIndex))
	}
	choice := def.Choices[action.ChoiceIndex]

	s := eventops.State{
		Gold: state.Player.Gold, PlayerHP: state.Player.Character.HP, PlayerMaxHP: state.Player.Character.MaxHP.Value(),
		DeckCardIDs: deckCardIDs(state.Player.Deck), RelicIDs: append([]string{}, state.Player.RelicIDs...),
		Bias: map[content.ArchetypeID]float64{}, Flags: copyFlags(state.Route.EventFlags),
	}
	next, result, effectEvents := eventops.Interpret(reg, s, choice.Effects)

	state.Player.Gold = next.Gold
	state.Player.Character.HP = next.PlayerHP
	state.Player.Deck = cardIDsToDeck(next.DeckCardIDs)
	state.Player.RelicIDs = next.RelicIDs
	state.Player.Bias.ApplyDelta(next.Bias)
	state.Route.EventFlags = next.Flags
	state.EncounterKind = EncounterNone
	state.Event = nil

	applied := make([]string, len(result.EffectsApplied))
	for i, a := range result.EffectsApplied {
		if a.Failed {
			applied[i] = "error:" + string(a.Op)
		} else {
			applied[i] = string(a.Op)
		}
	}

	events := restamp(state, effectEvents)
	events = append(events, state.emit(gevent.TypeEventResolved, gevent.ActorSystem, gevent.EventResolvedPayload{
		EventID: def.ID, ChoiceIndex: action.ChoiceIndex, EffectsApplied: applied, Messages: result.Messages,
	}))
	return state, events
}

func deckCardIDs(d combat.Deck) []string {
	ids := make([]string, len(d))
	for i, c := range d {
		ids[i] = c.CardID
	}
	return ids
}

func cardIDsToDeck(ids []string) combat.Deck {
	d := make(combat.Deck, len(ids))
	for i, id := range ids {
		d[i] = combat.CardInstance{CardID: id}
	}
	return d
}

func copyFlags(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func applyShopBuy(reg *content.Registry, state *GameState, action Action) (*GameState, []gevent.Event) {
	if state.EncounterKind != EncounterShop || state.Shop == nil {
		return state, state.errorEvent(gameerr.New(gameerr.CodeNoActiveEncounter, "no active shop"))
	}
	var offer *ShopOffer
	for i := range state.Shop.Offers {
		if state.Shop.Offers[i].ID == action.OfferID {
			offer = &state.Shop.Offers[i]
			break
		}
	}
	if offer == nil {
		return state, state.errorEvent(gameerr.New(gameerr.CodeInvalidChoiceIndex, "unknown shop offer %q", action.OfferID))
	}
	if state.Player.Gold < offer.Price {
		return state, state.errorEvent(gameerr.New(gameerr.CodeInsufficientGold, "need %d gold, have %d", offer.Price, state.Player.Gold))
	}

	state.Player.Gold -= offer.Price
	var events []gevent.Event
	switch offer.Kind {
	case "card":
		state.Player.Deck = append(state.Player.Deck, combat.CardInstance{CardID: offer.RefID})
	case "relic":
		state.Player.RelicIDs = append(state.Player.RelicIDs, offer.RefID)
	}
	events = append(events, state.emit(gevent.TypeItemDropped, gevent.ActorSystem, gevent.ItemDroppedPayload{ItemID: offer.RefID, Kind: offer.Kind}))
	return state, events
}

func applyShopSkip(state *GameState) (*GameState, []gevent.Event) {
	if state.EncounterKind != EncounterShop {
		return state, state.errorEvent(gameerr.New(gameerr.CodeNoActiveEncounter, "no active shop"))
	}
	state.EncounterKind = EncounterNone
	state.Shop = nil
	return state, nil
}

func applyRestChoice(state *GameState, action Action) (*GameState, []gevent.Event) {
	node, ok := state.CurrentNode()
	if !ok || node.Kind != nodegraph.KindRest {
		return state, state.errorEvent(gameerr.New(gameerr.CodeEncounterMismatch, "current node is not a rest node"))
	}
	var events []gevent.Event
	switch action.RestOption {
	case "heal":
		healed := state.Player.Character.MaxHP.Value() / 3
		state.Player.Character.HP += healed
		if state.Player.Character.HP > state.Player.Character.MaxHP.Value() {
			state.Player.Character.HP = state.Player.Character.MaxHP.Value()
		}
	case "focus":
		state.Player.Character.Attack.Modifier++
	default:
		return state, state.errorEvent(gameerr.New(gameerr.CodeInvalidChoiceIndex, "unknown rest option %q", action.RestOption))
	}
	return state, events
}

// applyAdvanceNode moves the route cursor to the next node, marking the
// current node visited (§8 invariant 8: a node cannot be advanced past
// twice in a row).
func applyAdvanceNode(reg *content.Registry, state *GameState) (*GameState, []gevent.Event) {
	if state.EncounterKind != EncounterNone {
		return state, state.errorEvent(gameerr.New(gameerr.CodeEncounterMismatch, "cannot advance while an encounter is active"))
	}
	for _, v := range state.Route.VisitedNodeIDs {
		if v == state.Route.CurrentNodeID {
			return state, state.errorEvent(gameerr.New(gameerr.CodeNodeAlreadyVisited, "node %d already visited", state.Route.CurrentNodeID))
		}
	}
	state.Route.VisitedNodeIDs = append(state.Route.VisitedNodeIDs, state.Route.CurrentNodeID)

	nextID := state.Route.CurrentNodeID + 1
	if nextID >= len(state.Nodes) {
		return completeChapter(reg, state)
	}
	state.Route.CurrentNodeID = nextID
	return state, enterNode(reg, state)
}

// completeChapter marks the current chapter done and either enters the
// next chapter or ends the run in victory (§4.4, §8 invariant 11).
func completeChapter(reg *content.Registry, state *GameState) (*GameState, []gevent.Event) {
	events := []gevent.Event{state.emit(gevent.TypeChapterCompleted, gevent.ActorSystem, gevent.ChapterCompletedPayload{ChapterIndex: state.ChapterIndex})}
	state.ChaptersCompleted = append(state.ChaptersCompleted, state.ChapterIndex)

	next := state.ChapterIndex + 1
	if next >= len(state.Chapters) {
		state.IsGameOver = true
		state.IsVictory = true
		return state, events
	}
	events = append(events, enterChapter(state, reg, next)...)
	events = append(events, enterNode(reg, state)...)
	return state, events
}

// enterNode materialises the encounter sub-state for the node the route
// cursor now points at: combat nodes wait for start_combat, event nodes
// pick a deterministic event definition, shop nodes build an offer list.
func enterNode(reg *content.Registry, state *GameState) []gevent.Event {
	node, ok := state.CurrentNode()
	if !ok {
		return nil
	}
	switch node.Kind {
	case nodegraph.KindEvent:
		id := pickEventID(reg, state.RootSeed, state.ChapterIndex, node.Position)
		if id == "" {
			return nil
		}
		state.EncounterKind = EncounterEvent
		state.Event = &EventState{EventID: id}
	case nodegraph.KindShop:
		state.EncounterKind = EncounterShop
		state.Shop = &ShopState{Offers: buildShopOffers(reg, state.RootSeed, state.ChapterIndex, node.Position)}
		return []gevent.Event{state.emit(gevent.TypeShopEntered, gevent.ActorSystem, gevent.ShopEnteredPayload{NodeID: node.Position})}
	}
	return nil
}

func pickEventID(reg *content.Registry, seed int64, chapterIdx, nodeID int) string {
	var ids []string
	for id := range reg.Events {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return ""
	}
	sort.Strings(ids)
	stream := rng.Derive(seed, rng.DomainEventChoice, int64(chapterIdx), int64(nodeID))
	return ids[stream.IntRange(0, len(ids)-1)]
}

func buildShopOffers(reg *content.Registry, seed int64, chapterIdx, nodeID int) []ShopOffer {
	var cardIDs []string
	for id := range reg.Cards {
		cardIDs = append(cardIDs, id)
	}
	sort.Strings(cardIDs)
	stream := rng.Derive(seed, rng.DomainShopOffer, int64(chapterIdx), int64(nodeID))
	var offers []ShopOffer
	for i := 0; i < 3 && len(cardIDs) > 0; i++ {
		idx := stream.IntRange(0, len(cardIDs)-1)
		id := cardIDs[idx]
		offers = append(offers, ShopOffer{ID: id, Kind: "card", RefID: id, Price: 20 + 10*reg.Cards[id].Cost})
		cardIDs = append(cardIDs[:idx], cardIDs[idx+1:]...)
	}
	return offers
}

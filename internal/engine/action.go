package engine

// ActionKind tags the action sum type (§4.9, §9 "exception-driven
// control flow ... replace with explicit result types").
type ActionKind string

const (
	ActionStartCombat   ActionKind = "start_combat"
	ActionPlayCard      ActionKind = "combat_action.play_card"
	ActionDefend        ActionKind = "combat_action.defend"
	ActionEndTurn       ActionKind = "combat_action.end_turn"
	ActionEscape        ActionKind = "combat_action.escape"
	ActionEventChoice   ActionKind = "event_choice"
	ActionShopBuy       ActionKind = "shop_buy"
	ActionShopSkip      ActionKind = "shop_skip"
	ActionRestChoice    ActionKind = "rest_choice"
	ActionAdvanceNode   ActionKind = "advance_node"
	ActionRewardPick    ActionKind = "reward_pick"
)

// Action is the tagged union every call to Apply consumes. Only the
// fields relevant to Kind are read; the rest are ignored.
type Action struct {
	Kind ActionKind

	// ActionPlayCard
	HandIndex int

	// ActionEventChoice
	ChoiceIndex int

	// ActionShopBuy
	OfferID string

	// ActionRestChoice: "heal" or "focus"
	RestOption string

	// ActionRewardPick: "card", "relic", "heal", or "skip"
	RewardOption string
	// ActionRewardPick ("card" only): index into RewardState.CardOffers
	RewardCardIndex int
}

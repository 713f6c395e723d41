package schema

import "strconv"

// Envelope field names shared with the dispatcher.
const (
	EnvelopeComponent   = "GameEvent"
	FieldAdventurerID   = "adventurer_id"
	FieldActionCount    = "action_count"
	BagSlotCount        = 15
	ComponentBag        = "Bag"
	ComponentBeast      = "Beast"
	ComponentAdventurer = "Adventurer"
)

// Default is the schema of the deployed game contract. Field order follows
// the contract's struct declarations exactly.
var Default = MustRegistry(EnvelopeComponent, map[string][]Field{
	EnvelopeComponent: {
		{FieldAdventurerID, Wide},
		{FieldActionCount, Integer},
	},
	ComponentAdventurer: {
		{"health", Integer},
		{"xp", Integer},
		{"gold", Integer},
		{"beast_health", Integer},
		{"stat_upgrades_available", Integer},
		{"stats", Ref("Stats")},
		{"equipment", Ref("Equipment")},
		{"item_specials_seed", Integer},
		{"action_count", Integer},
	},
	"Stats": {
		{"strength", Integer},
		{"dexterity", Integer},
		{"vitality", Integer},
		{"intelligence", Integer},
		{"wisdom", Integer},
		{"charisma", Integer},
		{"luck", Integer},
	},
	"Equipment": {
		{"weapon", Ref("Item")},
		{"chest", Ref("Item")},
		{"head", Ref("Item")},
		{"waist", Ref("Item")},
		{"foot", Ref("Item")},
		{"hand", Ref("Item")},
		{"neck", Ref("Item")},
		{"ring", Ref("Item")},
	},
	"Item": {
		{"id", Integer},
		{"xp", Integer},
	},
	ComponentBag: bagFields(),
	ComponentBeast: {
		{"id", Integer},
		{"seed", Wide},
		{"health", Integer},
		{"level", Integer},
		{"specials", Ref("SpecialPowers")},
		{"is_collectable", Flag},
	},
	"SpecialPowers": {
		{"special1", Integer},
		{"special2", Integer},
		{"special3", Integer},
	},
	"DiscoveryEvent": {
		{"discovery_type", Discovery},
		{"amount", Integer},
		{"xp_reward", Integer},
	},
	"ObstacleEvent": {
		{"obstacle_id", Integer},
		{"dodged", Flag},
		{"damage", Integer},
		{"location", Location},
		{"critical_hit", Flag},
		{"xp_reward", Integer},
	},
	"DefeatedBeastEvent": {
		{"beast_id", Integer},
		{"gold_reward", Integer},
		{"xp_reward", Integer},
	},
	"FledBeastEvent": {
		{"beast_id", Integer},
		{"xp_reward", Integer},
	},
	"StatUpgradeEvent": {
		{"stats", Ref("Stats")},
	},
	"BuyItemsEvent": {
		{"potions", Integer},
		{"items_purchased", ArrayOf(Ref("ItemPurchase"))},
	},
	"ItemPurchase": {
		{"item_id", Integer},
		{"equip", Flag},
	},
	"EquipEvent": {
		{"items", ArrayOf(Integer)},
	},
	"DropEvent": {
		{"items", ArrayOf(Integer)},
	},
	"LevelUpEvent": {
		{"level", Integer},
	},
	"MarketItemsEvent": {
		{"items", ArrayOf(Integer)},
	},
	"AmbushEvent":      combatFields(),
	"AttackEvent":      combatFields(),
	"BeastAttackEvent": combatFields(),
	"FleeEvent": {
		{"success", Flag},
	},
}, []Variant{
	{"adventurer", Ref(ComponentAdventurer)},
	{"bag", Ref(ComponentBag)},
	{"beast", Ref(ComponentBeast)},
	{"discovery", Ref("DiscoveryEvent")},
	{"obstacle", Ref("ObstacleEvent")},
	{"defeated_beast", Ref("DefeatedBeastEvent")},
	{"fled_beast", Ref("FledBeastEvent")},
	{"stat_upgrade", Ref("StatUpgradeEvent")},
	{"buy_items", Ref("BuyItemsEvent")},
	{"equip", Ref("EquipEvent")},
	{"drop", Ref("DropEvent")},
	{"level_up", Ref("LevelUpEvent")},
	{"market_items", Ref("MarketItemsEvent")},
	{"ambush", Ref("AmbushEvent")},
	{"attack", Ref("AttackEvent")},
	{"beast_attack", Ref("BeastAttackEvent")},
	{"flee", Ref("FleeEvent")},
})

// BagSlotField names the n-th (1-based) bag slot.
func BagSlotField(n int) string {
	return "item_" + strconv.Itoa(n)
}

func bagFields() []Field {
	fields := make([]Field, 0, BagSlotCount+1)
	for i := 1; i <= BagSlotCount; i++ {
		fields = append(fields, Field{BagSlotField(i), Ref("Item")})
	}
	return append(fields, Field{"mutated", Flag})
}

func combatFields() []Field {
	return []Field{
		{"damage", Integer},
		{"location", Location},
		{"critical_hit", Flag},
	}
}

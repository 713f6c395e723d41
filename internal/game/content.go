package game

// Content tables for the current ruleset. They are keyed by on-chain ids and
// are swapped wholesale when the ruleset changes.

// SpecialNameUnlockLevel is the first beast level that shows special names.
const SpecialNameUnlockLevel = 19

// Slot is an equipment slot
type Slot uint8

const (
	SlotNone Slot = iota
	SlotWeapon
	SlotChest
	SlotHead
	SlotWaist
	SlotFoot
	SlotHand
	SlotNeck
	SlotRing
)

var slotNames = [...]string{"None", "Weapon", "Chest", "Head", "Waist", "Foot", "Hand", "Neck", "Ring"}

func (s Slot) String() string {
	if int(s) < len(slotNames) {
		return slotNames[s]
	}
	return "Unknown"
}

// slotRanges maps inclusive item id ranges to their slot. Shared with market
// pricing, which classifies by the same ranges.
var slotRanges = []struct {
	from, to ItemID
	slot     Slot
}{
	{1, 3, SlotNeck},
	{4, 8, SlotRing},
	{9, 16, SlotWeapon},
	{17, 21, SlotChest},
	{22, 26, SlotHead},
	{27, 31, SlotWaist},
	{32, 36, SlotFoot},
	{37, 41, SlotHand},
	{42, 46, SlotWeapon},
	{47, 51, SlotChest},
	{52, 56, SlotHead},
	{57, 61, SlotWaist},
	{62, 66, SlotFoot},
	{67, 71, SlotHand},
	{72, 76, SlotWeapon},
	{77, 81, SlotChest},
	{82, 86, SlotHead},
	{87, 91, SlotWaist},
	{92, 96, SlotFoot},
	{97, 101, SlotHand},
}

// ItemSlot classifies an item id by id range. Unknown ids map to SlotNone.
func ItemSlot(id ItemID) Slot {
	for _, r := range slotRanges {
		if id >= r.from && id <= r.to {
			return r.slot
		}
	}
	return SlotNone
}

// Beast families, 25 ids each.
const (
	BeastTypeMagical = "Magic"
	BeastTypeHunter  = "Hunter"
	BeastTypeBrute   = "Brute"
)

const beastCount = 75

var beastNames = [beastCount + 1]string{
	"",
	// Magical
	"Warlock", "Typhon", "Jiangshi", "Anansi", "Basilisk",
	"Gorgon", "Kitsune", "Lich", "Chimera", "Wendigo",
	"Rakshasa", "Werewolf", "Banshee", "Draugr", "Vampire",
	"Goblin", "Ghoul", "Wraith", "Sprite", "Kappa",
	"Fairy", "Leprechaun", "Kelpie", "Pixie", "Gnome",
	// Hunter
	"Griffin", "Manticore", "Phoenix", "Dragon", "Minotaur",
	"Qilin", "Ammit", "Nue", "Skinwalker", "Chupacabra",
	"Weretiger", "Wyvern", "Roc", "Harpy", "Pegasus",
	"Hippogriff", "Fenrir", "Jaguar", "Satori", "Direwolf",
	"Bear", "Wolf", "Mantis", "Spider", "Rat",
	// Brute
	"Kraken", "Colossus", "Balrog", "Leviathan", "Tarrasque",
	"Titan", "Nephilim", "Behemoth", "Hydra", "Juggernaut",
	"Oni", "Jotunn", "Ettin", "Cyclops", "Giant",
	"Nemean Lion", "Berserker", "Yeti", "Golem", "Ent",
	"Troll", "Bigfoot", "Ogre", "Orc", "Skeleton",
}

// BeastName returns the base name for a beast id, or "" when unknown.
func BeastName(id uint8) string {
	if id == 0 || int(id) > beastCount {
		return ""
	}
	return beastNames[id]
}

// BeastTier returns 1 (strongest) to 5, or 0 when unknown.
func BeastTier(id uint8) uint8 {
	if id == 0 || int(id) > beastCount {
		return 0
	}
	return uint8((int(id)-1)%25/5) + 1
}

// BeastType returns the beast family, or "" when unknown.
func BeastType(id uint8) string {
	switch {
	case id >= 1 && id <= 25:
		return BeastTypeMagical
	case id >= 26 && id <= 50:
		return BeastTypeHunter
	case id >= 51 && id <= beastCount:
		return BeastTypeBrute
	}
	return ""
}

var specialPrefixes = []string{
	"",
	"Agony", "Apocalypse", "Armageddon", "Beast", "Behemoth", "Blight", "Blood", "Bramble",
	"Brimstone", "Brood", "Carrion", "Cataclysm", "Chimeric", "Corpse", "Corruption", "Damnation",
	"Death", "Demon", "Dire", "Dragon", "Dread", "Doom", "Dusk", "Eagle",
	"Empyrean", "Fate", "Foe", "Gale", "Ghoul", "Gloom", "Glyph", "Golem",
	"Grim", "Hate", "Havoc", "Honour", "Horror", "Hypnotic", "Kraken", "Loath",
	"Maelstrom", "Mind", "Miracle", "Morbid", "Oblivion", "Onslaught", "Pain", "Pandemonium",
	"Phoenix", "Plague", "Rage", "Rapture", "Rune", "Skull", "Sol", "Soul",
	"Sorrow", "Spirit", "Storm", "Tempest", "Torment", "Vengeance", "Victory", "Viper",
	"Vortex", "Woe", "Wrath", "Lights", "Shimmering",
}

var specialSuffixes = []string{
	"",
	"Bane", "Root", "Bite", "Song", "Roar", "Grasp", "Instrument", "Glow", "Bender",
	"Shadow", "Whisper", "Shout", "Growl", "Tear", "Peak", "Form", "Sun", "Moon",
}

// SpecialPrefix resolves a prefix index; index 0 and out-of-range give false.
func SpecialPrefix(i uint16) (string, bool) {
	if i == 0 || int(i) >= len(specialPrefixes) {
		return "", false
	}
	return specialPrefixes[i], true
}

// SpecialSuffix resolves a suffix index; index 0 and out-of-range give false.
func SpecialSuffix(i uint16) (string, bool) {
	if i == 0 || int(i) >= len(specialSuffixes) {
		return "", false
	}
	return specialSuffixes[i], true
}

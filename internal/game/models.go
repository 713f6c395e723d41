package game

import (
	"math"

	"github.com/frontboat/death-mountain-sub001/internal/wire"
)

// ItemID identifies a loot item; 0 marks an empty slot.
type ItemID uint16

// EmptyItem is the empty-slot sentinel.
var EmptyItem = Item{}

// Item is an owned loot item
type Item struct {
	ID ItemID `json:"id"`
	XP uint16 `json:"xp"`
}

// IsEmpty reports whether the slot holds nothing
func (i Item) IsEmpty() bool {
	return i.ID == 0
}

// Stats is the adventurer's attribute block
type Stats struct {
	Strength     uint8 `json:"strength"`
	Dexterity    uint8 `json:"dexterity"`
	Vitality     uint8 `json:"vitality"`
	Intelligence uint8 `json:"intelligence"`
	Wisdom       uint8 `json:"wisdom"`
	Charisma     uint8 `json:"charisma"`
	Luck         uint8 `json:"luck"`
}

// Add returns the field-wise sum of two stat blocks, saturating at 255
func (s Stats) Add(d Stats) Stats {
	return Stats{
		Strength:     addStat(s.Strength, d.Strength),
		Dexterity:    addStat(s.Dexterity, d.Dexterity),
		Vitality:     addStat(s.Vitality, d.Vitality),
		Intelligence: addStat(s.Intelligence, d.Intelligence),
		Wisdom:       addStat(s.Wisdom, d.Wisdom),
		Charisma:     addStat(s.Charisma, d.Charisma),
		Luck:         addStat(s.Luck, d.Luck),
	}
}

func addStat(a, b uint8) uint8 {
	if sum := int(a) + int(b); sum <= math.MaxUint8 {
		return uint8(sum)
	}
	return math.MaxUint8
}

// Values returns the stats in contract field order
func (s Stats) Values() [7]uint8 {
	return [7]uint8{s.Strength, s.Dexterity, s.Vitality, s.Intelligence, s.Wisdom, s.Charisma, s.Luck}
}

// Total returns the sum of all stats
func (s Stats) Total() int {
	return int(s.Strength) + int(s.Dexterity) + int(s.Vitality) + int(s.Intelligence) +
		int(s.Wisdom) + int(s.Charisma) + int(s.Luck)
}

// Equipment is the 8-slot gear block
type Equipment struct {
	Weapon Item `json:"weapon"`
	Chest  Item `json:"chest"`
	Head   Item `json:"head"`
	Waist  Item `json:"waist"`
	Foot   Item `json:"foot"`
	Hand   Item `json:"hand"`
	Neck   Item `json:"neck"`
	Ring   Item `json:"ring"`
}

// Slot returns the item in a slot
func (e *Equipment) Slot(s Slot) Item {
	if p := e.slotPtr(s); p != nil {
		return *p
	}
	return EmptyItem
}

// SetSlot places an item in a slot and returns what was there before
func (e *Equipment) SetSlot(s Slot, item Item) Item {
	p := e.slotPtr(s)
	if p == nil {
		return EmptyItem
	}
	prev := *p
	*p = item
	return prev
}

func (e *Equipment) slotPtr(s Slot) *Item {
	switch s {
	case SlotWeapon:
		return &e.Weapon
	case SlotChest:
		return &e.Chest
	case SlotHead:
		return &e.Head
	case SlotWaist:
		return &e.Waist
	case SlotFoot:
		return &e.Foot
	case SlotHand:
		return &e.Hand
	case SlotNeck:
		return &e.Neck
	case SlotRing:
		return &e.Ring
	}
	return nil
}

// Adventurer is the full on-chain adventurer snapshot. Health and gold caps
// are enforced by the contract, not here.
type Adventurer struct {
	Health                uint16    `json:"health"`
	XP                    uint16    `json:"xp"`
	Gold                  uint16    `json:"gold"`
	BeastHealth           uint16    `json:"beast_health"`
	StatUpgradesAvailable uint8     `json:"stat_upgrades_available"`
	Stats                 Stats     `json:"stats"`
	Equipment             Equipment `json:"equipment"`
	ItemSpecialsSeed      uint16    `json:"item_specials_seed"`
	ActionCount           uint16    `json:"action_count"`
}

// Bag is the positional slot list; a slot's index is its storage identity,
// so entries are never reordered or deduplicated.
type Bag []Item

// Clone returns a copy that does not share backing storage
func (b Bag) Clone() Bag {
	if b == nil {
		return nil
	}
	return append(Bag(nil), b...)
}

// Slots returns a copy padded with empty slots to at least n entries
func (b Bag) Slots(n int) Bag {
	out := make(Bag, max(n, len(b)))
	copy(out, b)
	return out
}

// Store puts an item into the first empty slot, appending when none is free.
func (b *Bag) Store(item Item) {
	for i := range *b {
		if (*b)[i].IsEmpty() {
			(*b)[i] = item
			return
		}
	}
	*b = append(*b, item)
}

// SpecialPowers are the raw special-name indices of a beast
type SpecialPowers struct {
	Special1 uint16 `json:"special1"`
	Special2 uint16 `json:"special2"`
	Special3 uint16 `json:"special3"`
}

// Beast is the raw beast record as emitted on chain
type Beast struct {
	ID            uint8         `json:"id"`
	Seed          wire.Felt     `json:"seed"`
	Health        uint16        `json:"health"`
	Level         uint16        `json:"level"`
	Specials      SpecialPowers `json:"specials"`
	IsCollectable bool          `json:"is_collectable"`
}

// BeastView is a beast with content lookups resolved. The special names are
// nil below SpecialNameUnlockLevel.
type BeastView struct {
	ID            uint8         `json:"id"`
	Seed          wire.Felt     `json:"seed"`
	Health        uint16        `json:"health"`
	Level         uint16        `json:"level"`
	Specials      SpecialPowers `json:"specials"`
	IsCollectable bool          `json:"is_collectable"`
	Name          string        `json:"name"`
	Tier          uint8         `json:"tier"`
	Type          string        `json:"type"`
	SpecialPrefix *string       `json:"special_prefix"`
	SpecialSuffix *string       `json:"special_suffix"`
}

// ItemPurchase is one entry of a market purchase
type ItemPurchase struct {
	ItemID ItemID `json:"item_id"`
	Equip  bool   `json:"equip"`
}

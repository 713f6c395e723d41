// Package optimistic predicts the events the chain will emit for an action,
// so state can update before the transaction confirms. Predictions use the
// same event shapes as decoded receipts.
package optimistic

import (
	"math"

	"github.com/frontboat/death-mountain-sub001/internal/game"
	"github.com/frontboat/death-mountain-sub001/internal/schema"
)

const (
	// HealthPerVitality is the max health each vitality point adds.
	HealthPerVitality = 15
	// BaseMaxHealth is the max health with zero vitality.
	BaseMaxHealth = 100
	// HealthPerPotion is the health one potion restores.
	HealthPerPotion = 10
)

// MaxHealth is the healing cap for a vitality value
func MaxHealth(vitality uint8) int {
	return BaseMaxHealth + int(vitality)*HealthPerVitality
}

// AllocateStats predicts a stat upgrade: the raw delta, then the updated
// snapshot. action_count keeps the pre-action value; only the confirmed
// events carry the authoritative count.
func AllocateStats(adv game.Adventurer, delta game.Stats) []game.GameEvent {
	next := adv
	next.StatUpgradesAvailable = 0
	next.Stats = adv.Stats.Add(delta)
	next.Health = clampU16(int(adv.Health) + int(delta.Vitality)*HealthPerVitality)

	return []game.GameEvent{
		game.NewEvent(adv.ActionCount, game.StatUpgradeEvent{Stats: delta}),
		game.NewEvent(adv.ActionCount, game.AdventurerEvent{Adventurer: next}),
	}
}

// Purchase is a market order as submitted. RemainingGold is the gold left
// after the order, as priced by the caller.
type Purchase struct {
	Potions       uint8               `json:"potions"`
	Items         []game.ItemPurchase `json:"items"`
	RemainingGold uint16              `json:"remaining_gold"`
}

// PurchaseItems predicts a market purchase: the full bag, the raw purchase
// list, then the updated snapshot. Items equipped over an occupied slot move
// to the bag. The predicted bag always has at least the decoded slot count.
func PurchaseItems(adv game.Adventurer, bag game.Bag, p Purchase) []game.GameEvent {
	next := adv
	nextBag := bag.Slots(schema.BagSlotCount)

	var equipNow []game.ItemPurchase
	for _, it := range p.Items {
		if it.Equip && game.ItemSlot(it.ItemID) != game.SlotNone {
			equipNow = append(equipNow, it)
			continue
		}
		nextBag.Store(game.Item{ID: it.ItemID})
	}
	for _, it := range equipNow {
		prev := next.Equipment.SetSlot(game.ItemSlot(it.ItemID), game.Item{ID: it.ItemID})
		if !prev.IsEmpty() {
			nextBag.Store(prev)
		}
	}

	if p.Potions > 0 {
		next.Health = heal(adv.Health, p.Potions, next.Stats.Vitality)
	}
	next.Gold = p.RemainingGold

	return []game.GameEvent{
		game.NewEvent(adv.ActionCount, game.BagEvent{Bag: nextBag}),
		game.NewEvent(adv.ActionCount, game.BuyItemsEvent{
			Potions:        p.Potions,
			ItemsPurchased: append([]game.ItemPurchase(nil), p.Items...),
		}),
		game.NewEvent(adv.ActionCount, game.AdventurerEvent{Adventurer: next}),
	}
}

func heal(health uint16, potions uint8, vitality uint8) uint16 {
	limit := MaxHealth(vitality)
	h := int(health) + int(potions)*HealthPerPotion
	if h > limit {
		h = limit
	}
	return clampU16(h)
}

func clampU16(v int) uint16 {
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	if v < 0 {
		return 0
	}
	return uint16(v)
}

package dispatch

import (
	"fmt"
	"math"

	"github.com/frontboat/death-mountain-sub001/internal/apperr"
	"github.com/frontboat/death-mountain-sub001/internal/game"
	"github.com/frontboat/death-mountain-sub001/internal/schema"
	"github.com/frontboat/death-mountain-sub001/internal/wire"
)

// binder copies generic decoded records into typed payloads. The first
// failure sticks and later reads return zero values.
type binder struct {
	err error
}

func (b *binder) fail(path, msg string) {
	if b.err == nil {
		b.err = apperr.WithMetadata(apperr.CodeSchemaBinding, path+": "+msg, map[string]string{"field": path})
	}
}

func (b *binder) value(rec schema.Record, name string) any {
	v, ok := rec.Get(name)
	if !ok {
		b.fail(rec.Name+"."+name, "field missing")
		return nil
	}
	return v
}

func (b *binder) uint(rec schema.Record, name string, max uint64) uint64 {
	v := b.value(rec, name)
	if v == nil {
		return 0
	}
	n, ok := v.(uint64)
	if !ok {
		b.fail(rec.Name+"."+name, fmt.Sprintf("expected integer, got %T", v))
		return 0
	}
	if n > max {
		b.fail(rec.Name+"."+name, fmt.Sprintf("%d out of range", n))
		return 0
	}
	return n
}

func (b *binder) u8(rec schema.Record, name string) uint8 {
	return uint8(b.uint(rec, name, math.MaxUint8))
}

func (b *binder) u16(rec schema.Record, name string) uint16 {
	return uint16(b.uint(rec, name, math.MaxUint16))
}

func (b *binder) flag(rec schema.Record, name string) bool {
	v, _ := b.value(rec, name).(bool)
	return v
}

func (b *binder) felt(rec schema.Record, name string) wire.Felt {
	v := b.value(rec, name)
	f, ok := v.(wire.Felt)
	if !ok && v != nil {
		b.fail(rec.Name+"."+name, fmt.Sprintf("expected wide integer, got %T", v))
	}
	return f
}

func (b *binder) location(rec schema.Record, name string) schema.ImpactLocation {
	v := b.value(rec, name)
	l, ok := v.(schema.ImpactLocation)
	if !ok && v != nil {
		b.fail(rec.Name+"."+name, fmt.Sprintf("expected location, got %T", v))
	}
	return l
}

func (b *binder) discovery(rec schema.Record, name string) schema.DiscoveryType {
	v := b.value(rec, name)
	d, ok := v.(schema.DiscoveryType)
	if !ok && v != nil {
		b.fail(rec.Name+"."+name, fmt.Sprintf("expected discovery, got %T", v))
	}
	return d
}

func (b *binder) record(rec schema.Record, name string) schema.Record {
	v := b.value(rec, name)
	r, ok := v.(schema.Record)
	if !ok && v != nil {
		b.fail(rec.Name+"."+name, fmt.Sprintf("expected record, got %T", v))
	}
	return r
}

func (b *binder) list(rec schema.Record, name string) []any {
	v := b.value(rec, name)
	l, ok := v.([]any)
	if !ok && v != nil {
		b.fail(rec.Name+"."+name, fmt.Sprintf("expected array, got %T", v))
	}
	return l
}

func (b *binder) itemIDs(rec schema.Record, name string) []game.ItemID {
	raw := b.list(rec, name)
	ids := make([]game.ItemID, 0, len(raw))
	for i, v := range raw {
		n, ok := v.(uint64)
		if !ok || n > math.MaxUint16 {
			b.fail(fmt.Sprintf("%s.%s[%d]", rec.Name, name, i), fmt.Sprintf("invalid item id %v", v))
			return nil
		}
		ids = append(ids, game.ItemID(n))
	}
	return ids
}

func (b *binder) item(rec schema.Record) game.Item {
	return game.Item{ID: game.ItemID(b.u16(rec, "id")), XP: b.u16(rec, "xp")}
}

func (b *binder) stats(rec schema.Record) game.Stats {
	return game.Stats{
		Strength:     b.u8(rec, "strength"),
		Dexterity:    b.u8(rec, "dexterity"),
		Vitality:     b.u8(rec, "vitality"),
		Intelligence: b.u8(rec, "intelligence"),
		Wisdom:       b.u8(rec, "wisdom"),
		Charisma:     b.u8(rec, "charisma"),
		Luck:         b.u8(rec, "luck"),
	}
}

func (b *binder) equipment(rec schema.Record) game.Equipment {
	return game.Equipment{
		Weapon: b.item(b.record(rec, "weapon")),
		Chest:  b.item(b.record(rec, "chest")),
		Head:   b.item(b.record(rec, "head")),
		Waist:  b.item(b.record(rec, "waist")),
		Foot:   b.item(b.record(rec, "foot")),
		Hand:   b.item(b.record(rec, "hand")),
		Neck:   b.item(b.record(rec, "neck")),
		Ring:   b.item(b.record(rec, "ring")),
	}
}

func (b *binder) adventurer(rec schema.Record) game.Adventurer {
	return game.Adventurer{
		Health:                b.u16(rec, "health"),
		XP:                    b.u16(rec, "xp"),
		Gold:                  b.u16(rec, "gold"),
		BeastHealth:           b.u16(rec, "beast_health"),
		StatUpgradesAvailable: b.u8(rec, "stat_upgrades_available"),
		Stats:                 b.stats(b.record(rec, "stats")),
		Equipment:             b.equipment(b.record(rec, "equipment")),
		ItemSpecialsSeed:      b.u16(rec, "item_specials_seed"),
		ActionCount:           b.u16(rec, "action_count"),
	}
}

// bag projects the named item_N slots into a positional list.
func (b *binder) bag(rec schema.Record) game.Bag {
	bag := make(game.Bag, 0, schema.BagSlotCount)
	for i := 1; i <= schema.BagSlotCount; i++ {
		bag = append(bag, b.item(b.record(rec, schema.BagSlotField(i))))
	}
	return bag
}

func (b *binder) beast(rec schema.Record) game.Beast {
	specials := b.record(rec, "specials")
	return game.Beast{
		ID:     b.u8(rec, "id"),
		Seed:   b.felt(rec, "seed"),
		Health: b.u16(rec, "health"),
		Level:  b.u16(rec, "level"),
		Specials: game.SpecialPowers{
			Special1: b.u16(specials, "special1"),
			Special2: b.u16(specials, "special2"),
			Special3: b.u16(specials, "special3"),
		},
		IsCollectable: b.flag(rec, "is_collectable"),
	}
}

func (b *binder) attack(rec schema.Record) game.Attack {
	return game.Attack{
		Damage:      b.u16(rec, "damage"),
		Location:    b.location(rec, "location"),
		CriticalHit: b.flag(rec, "critical_hit"),
	}
}

func (b *binder) purchases(rec schema.Record) []game.ItemPurchase {
	raw := b.list(rec, "items_purchased")
	out := make([]game.ItemPurchase, 0, len(raw))
	for _, v := range raw {
		p, ok := v.(schema.Record)
		if !ok {
			b.fail(rec.Name+".items_purchased", fmt.Sprintf("expected record, got %T", v))
			return nil
		}
		out = append(out, game.ItemPurchase{ItemID: game.ItemID(b.u16(p, "item_id")), Equip: b.flag(p, "equip")})
	}
	return out
}

// bindPayload turns a decoded payload record into the kind's typed payload.
// Bag and beast payloads get their content projections here.
func bindPayload(kind game.EventKind, rec schema.Record) (game.Payload, error) {
	b := &binder{}
	var p game.Payload

	switch kind {
	case game.KindAdventurer:
		p = game.AdventurerEvent{Adventurer: b.adventurer(rec)}
	case game.KindBag:
		p = game.BagEvent{Bag: b.bag(rec)}
	case game.KindBeast:
		p = game.BeastEvent{Beast: game.EnrichBeast(b.beast(rec))}
	case game.KindDiscovery:
		p = game.DiscoveryEvent{Discovery: game.Discovery{
			Type:     b.discovery(rec, "discovery_type"),
			Amount:   b.u16(rec, "amount"),
			XPReward: b.u16(rec, "xp_reward"),
		}}
	case game.KindObstacle:
		p = game.ObstacleEvent{Obstacle: game.Obstacle{
			ID:          b.u8(rec, "obstacle_id"),
			Dodged:      b.flag(rec, "dodged"),
			Damage:      b.u16(rec, "damage"),
			Location:    b.location(rec, "location"),
			CriticalHit: b.flag(rec, "critical_hit"),
			XPReward:    b.u16(rec, "xp_reward"),
		}}
	case game.KindDefeatedBeast:
		p = game.DefeatedBeastEvent{
			BeastID:    b.u8(rec, "beast_id"),
			GoldReward: b.u16(rec, "gold_reward"),
			XPReward:   b.u16(rec, "xp_reward"),
		}
	case game.KindFledBeast:
		p = game.FledBeastEvent{BeastID: b.u8(rec, "beast_id"), XPReward: b.u16(rec, "xp_reward")}
	case game.KindStatUpgrade:
		p = game.StatUpgradeEvent{Stats: b.stats(b.record(rec, "stats"))}
	case game.KindBuyItems:
		p = game.BuyItemsEvent{Potions: b.u8(rec, "potions"), ItemsPurchased: b.purchases(rec)}
	case game.KindEquip:
		p = game.EquipEvent{Items: b.itemIDs(rec, "items")}
	case game.KindDrop:
		p = game.DropEvent{Items: b.itemIDs(rec, "items")}
	case game.KindLevelUp:
		p = game.LevelUpEvent{Level: b.u8(rec, "level")}
	case game.KindMarketItems:
		p = game.MarketItemsEvent{Items: b.itemIDs(rec, "items")}
	case game.KindAmbush:
		p = game.AmbushEvent{Attack: b.attack(rec)}
	case game.KindAttack:
		p = game.AttackEvent{Attack: b.attack(rec)}
	case game.KindBeastAttack:
		p = game.BeastAttackEvent{Attack: b.attack(rec)}
	case game.KindFlee:
		p = game.FleeEvent{Success: b.flag(rec, "success")}
	default:
		return nil, apperr.New(apperr.CodeUnknownEventKind, fmt.Sprintf("no binding for event kind %q", kind))
	}

	if b.err != nil {
		return nil, b.err
	}
	return p, nil
}

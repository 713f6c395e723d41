package game

import (
	"encoding/json"
	"fmt"

	"github.com/frontboat/death-mountain-sub001/internal/apperr"
	"github.com/frontboat/death-mountain-sub001/internal/schema"
)

// EventKind names a game event variant
type EventKind string

const (
	KindAdventurer    EventKind = "adventurer"
	KindBag           EventKind = "bag"
	KindBeast         EventKind = "beast"
	KindDiscovery     EventKind = "discovery"
	KindObstacle      EventKind = "obstacle"
	KindDefeatedBeast EventKind = "defeated_beast"
	KindFledBeast     EventKind = "fled_beast"
	KindStatUpgrade   EventKind = "stat_upgrade"
	KindBuyItems      EventKind = "buy_items"
	KindEquip         EventKind = "equip"
	KindDrop          EventKind = "drop"
	KindLevelUp       EventKind = "level_up"
	KindMarketItems   EventKind = "market_items"
	KindAmbush        EventKind = "ambush"
	KindAttack        EventKind = "attack"
	KindBeastAttack   EventKind = "beast_attack"
	KindFlee          EventKind = "flee"
)

// EventKinds lists every kind; the index is the wire type tag.
var EventKinds = []EventKind{
	KindAdventurer,
	KindBag,
	KindBeast,
	KindDiscovery,
	KindObstacle,
	KindDefeatedBeast,
	KindFledBeast,
	KindStatUpgrade,
	KindBuyItems,
	KindEquip,
	KindDrop,
	KindLevelUp,
	KindMarketItems,
	KindAmbush,
	KindAttack,
	KindBeastAttack,
	KindFlee,
}

// KindFromTag maps a wire type tag to its kind
func KindFromTag(tag uint64) (EventKind, error) {
	if tag >= uint64(len(EventKinds)) {
		return "", apperr.WithMetadata(apperr.CodeUnknownEventKind,
			fmt.Sprintf("unknown event type tag %d", tag),
			map[string]string{"tag": fmt.Sprint(tag)})
	}
	return EventKinds[tag], nil
}

// tag returns the wire type tag of a kind
func (k EventKind) tag() (int, bool) {
	for i, kind := range EventKinds {
		if kind == k {
			return i, true
		}
	}
	return -1, false
}

// Payload is the variant-specific body of a GameEvent
type Payload interface {
	Kind() EventKind
}

// Attack is the shared body of ambush, attack and beast_attack
type Attack struct {
	Damage      uint16                `json:"damage"`
	Location    schema.ImpactLocation `json:"location"`
	CriticalHit bool                  `json:"critical_hit"`
}

// Discovery is a found reward
type Discovery struct {
	Type     schema.DiscoveryType `json:"type"`
	Amount   uint16               `json:"amount"`
	XPReward uint16               `json:"xp_reward"`
}

// Obstacle is an encountered trap
type Obstacle struct {
	ID          uint8                 `json:"id"`
	Dodged      bool                  `json:"dodged"`
	Damage      uint16                `json:"damage"`
	Location    schema.ImpactLocation `json:"location"`
	CriticalHit bool                  `json:"critical_hit"`
	XPReward    uint16                `json:"xp_reward"`
}

type AdventurerEvent struct {
	Adventurer Adventurer `json:"adventurer"`
}

type BagEvent struct {
	Bag Bag `json:"bag"`
}

type BeastEvent struct {
	Beast BeastView `json:"beast"`
}

type DiscoveryEvent struct {
	Discovery Discovery `json:"discovery"`
}

type ObstacleEvent struct {
	Obstacle Obstacle `json:"obstacle"`
}

type DefeatedBeastEvent struct {
	BeastID    uint8  `json:"beast_id"`
	GoldReward uint16 `json:"gold_reward"`
	XPReward   uint16 `json:"xp_reward"`
}

type FledBeastEvent struct {
	BeastID  uint8  `json:"beast_id"`
	XPReward uint16 `json:"xp_reward"`
}

// StatUpgradeEvent carries the raw per-stat delta
type StatUpgradeEvent struct {
	Stats Stats `json:"stats"`
}

type BuyItemsEvent struct {
	Potions        uint8          `json:"potions"`
	ItemsPurchased []ItemPurchase `json:"items_purchased"`
}

type EquipEvent struct {
	Items []ItemID `json:"items"`
}

type DropEvent struct {
	Items []ItemID `json:"items"`
}

type LevelUpEvent struct {
	Level uint8 `json:"level"`
}

type MarketItemsEvent struct {
	Items []ItemID `json:"items"`
}

type AmbushEvent struct {
	Attack Attack `json:"attack"`
}

type AttackEvent struct {
	Attack Attack `json:"attack"`
}

type BeastAttackEvent struct {
	Attack Attack `json:"attack"`
}

type FleeEvent struct {
	Success bool `json:"success"`
}

func (AdventurerEvent) Kind() EventKind    { return KindAdventurer }
func (BagEvent) Kind() EventKind           { return KindBag }
func (BeastEvent) Kind() EventKind         { return KindBeast }
func (DiscoveryEvent) Kind() EventKind     { return KindDiscovery }
func (ObstacleEvent) Kind() EventKind      { return KindObstacle }
func (DefeatedBeastEvent) Kind() EventKind { return KindDefeatedBeast }
func (FledBeastEvent) Kind() EventKind     { return KindFledBeast }
func (StatUpgradeEvent) Kind() EventKind   { return KindStatUpgrade }
func (BuyItemsEvent) Kind() EventKind      { return KindBuyItems }
func (EquipEvent) Kind() EventKind         { return KindEquip }
func (DropEvent) Kind() EventKind          { return KindDrop }
func (LevelUpEvent) Kind() EventKind       { return KindLevelUp }
func (MarketItemsEvent) Kind() EventKind   { return KindMarketItems }
func (AmbushEvent) Kind() EventKind        { return KindAmbush }
func (AttackEvent) Kind() EventKind        { return KindAttack }
func (BeastAttackEvent) Kind() EventKind   { return KindBeastAttack }
func (FleeEvent) Kind() EventKind          { return KindFlee }

// GameEvent is one decoded or predicted event. Both provenances share this
// shape so consumers fold them the same way.
type GameEvent struct {
	Type        EventKind
	ActionCount uint16
	Payload     Payload
}

// NewEvent builds an event whose type follows its payload
func NewEvent(actionCount uint16, p Payload) GameEvent {
	return GameEvent{Type: p.Kind(), ActionCount: actionCount, Payload: p}
}

// MarshalJSON renders the flat {type, action_count, ...payload} form.
func (e GameEvent) MarshalJSON() ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if e.Payload != nil {
		body, err := json.Marshal(e.Payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", e.Type, err)
		}
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, fmt.Errorf("flatten %s payload: %w", e.Type, err)
		}
	}

	typ, err := json.Marshal(e.Type)
	if err != nil {
		return nil, err
	}
	count, err := json.Marshal(e.ActionCount)
	if err != nil {
		return nil, err
	}
	fields["type"] = typ
	fields["action_count"] = count
	return json.Marshal(fields)
}

// UnmarshalJSON reads the flat form produced by MarshalJSON
func (e *GameEvent) UnmarshalJSON(data []byte) error {
	ev, err := UnmarshalEvent(data)
	if err != nil {
		return err
	}
	*e = ev
	return nil
}

// UnmarshalEvent unmarshals JSON into the correct payload type
func UnmarshalEvent(data []byte) (GameEvent, error) {
	var head struct {
		Type        EventKind `json:"type"`
		ActionCount uint16    `json:"action_count"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return GameEvent{}, err
	}

	var (
		p   Payload
		err error
	)
	switch head.Type {
	case KindAdventurer:
		p, err = unmarshalPayload[AdventurerEvent](data)
	case KindBag:
		p, err = unmarshalPayload[BagEvent](data)
	case KindBeast:
		p, err = unmarshalPayload[BeastEvent](data)
	case KindDiscovery:
		p, err = unmarshalPayload[DiscoveryEvent](data)
	case KindObstacle:
		p, err = unmarshalPayload[ObstacleEvent](data)
	case KindDefeatedBeast:
		p, err = unmarshalPayload[DefeatedBeastEvent](data)
	case KindFledBeast:
		p, err = unmarshalPayload[FledBeastEvent](data)
	case KindStatUpgrade:
		p, err = unmarshalPayload[StatUpgradeEvent](data)
	case KindBuyItems:
		p, err = unmarshalPayload[BuyItemsEvent](data)
	case KindEquip:
		p, err = unmarshalPayload[EquipEvent](data)
	case KindDrop:
		p, err = unmarshalPayload[DropEvent](data)
	case KindLevelUp:
		p, err = unmarshalPayload[LevelUpEvent](data)
	case KindMarketItems:
		p, err = unmarshalPayload[MarketItemsEvent](data)
	case KindAmbush:
		p, err = unmarshalPayload[AmbushEvent](data)
	case KindAttack:
		p, err = unmarshalPayload[AttackEvent](data)
	case KindBeastAttack:
		p, err = unmarshalPayload[BeastAttackEvent](data)
	case KindFlee:
		p, err = unmarshalPayload[FleeEvent](data)
	default:
		return GameEvent{}, apperr.New(apperr.CodeUnknownEventKind,
			fmt.Sprintf("unknown event type %q", head.Type))
	}
	if err != nil {
		return GameEvent{}, fmt.Errorf("unmarshal %s event: %w", head.Type, err)
	}
	return GameEvent{Type: head.Type, ActionCount: head.ActionCount, Payload: p}, nil
}

func unmarshalPayload[T Payload](data []byte) (Payload, error) {
	var p T
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p, nil
}

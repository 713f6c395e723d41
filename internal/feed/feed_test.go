package feed

import (
	"errors"
	"testing"

	"github.com/frontboat/death-mountain-sub001/internal/apperr"
	"github.com/frontboat/death-mountain-sub001/internal/game"
	"github.com/frontboat/death-mountain-sub001/internal/optimistic"
	"github.com/frontboat/death-mountain-sub001/internal/schema"
	"github.com/frontboat/death-mountain-sub001/internal/wire"
)

func newTestFeed(t *testing.T) *Feed {
	t.Helper()
	f := NewFeed(wire.FeltFromUint64(7), 10)
	f.Confirm([]game.GameEvent{
		game.NewEvent(4, game.AdventurerEvent{Adventurer: game.Adventurer{
			Health:                50,
			Gold:                  60,
			StatUpgradesAvailable: 2,
			Stats:                 game.Stats{Vitality: 2},
			Equipment:             game.Equipment{Weapon: game.Item{ID: 46}},
			ActionCount:           4,
		}}),
		game.NewEvent(4, game.BagEvent{Bag: game.Bag{{ID: 3}}}),
	})
	return f
}

// TestPredictRequiresSnapshot tests that prediction needs a confirmed adventurer
func TestPredictRequiresSnapshot(t *testing.T) {
	f := NewFeed(wire.FeltFromUint64(1), 10)
	_, err := f.PredictStats(game.Stats{Luck: 1})
	if apperr.CodeOf(err) != apperr.CodeNotFound {
		t.Errorf("Expected NOT_FOUND, got %v", err)
	}
}

// TestPredictSerializes tests that a second prediction waits for the first
func TestPredictSerializes(t *testing.T) {
	f := newTestFeed(t)

	p, err := f.PredictStats(game.Stats{Vitality: 2})
	if err != nil {
		t.Fatalf("PredictStats failed: %v", err)
	}
	if p.ID == "" || len(p.Events) != 2 {
		t.Fatalf("Unexpected prediction: %+v", p)
	}

	_, err = f.PredictPurchase(optimistic.Purchase{Potions: 1, RemainingGold: 50})
	if apperr.CodeOf(err) != apperr.CodePredictionPending {
		t.Fatalf("Expected PREDICTION_PENDING, got %v", err)
	}

	dropped := f.Rollback()
	if len(dropped) != 1 || dropped[0].ID != p.ID {
		t.Fatalf("Expected rollback to return the prediction, got %+v", dropped)
	}
	if f.HasPending() {
		t.Error("Expected no pending prediction after rollback")
	}
	if _, err := f.PredictPurchase(optimistic.Purchase{Potions: 1, RemainingGold: 50}); err != nil {
		t.Errorf("Expected prediction after rollback, got %v", err)
	}
}

// TestViewFoldsPending tests the optimistic overlay and its provenance tags
func TestViewFoldsPending(t *testing.T) {
	f := newTestFeed(t)
	if _, err := f.PredictPurchase(optimistic.Purchase{
		Items:         []game.ItemPurchase{{ItemID: 76, Equip: true}},
		RemainingGold: 20,
	}); err != nil {
		t.Fatalf("PredictPurchase failed: %v", err)
	}

	v := f.View()
	if v.Pending == nil || v.Pending.Action != "buy_items" {
		t.Fatalf("Expected pending buy_items, got %+v", v.Pending)
	}
	if v.State.Adventurer.Gold != 20 || v.State.Adventurer.Equipment.Weapon.ID != 76 {
		t.Errorf("Expected predicted snapshot, got %+v", v.State.Adventurer)
	}
	if len(v.State.Bag) != schema.BagSlotCount || v.State.Bag[1].ID != 46 {
		t.Errorf("Expected old weapon in the first free slot, got %+v", v.State.Bag)
	}

	if len(v.Events) != 5 {
		t.Fatalf("Expected 5 events, got %d", len(v.Events))
	}
	for i, ev := range v.Events {
		want := ProvenanceConfirmed
		if i >= 2 {
			want = ProvenanceOptimistic
		}
		if ev.Provenance != want {
			t.Errorf("Event %d (%s): expected %s, got %s", i, ev.Event.Type, want, ev.Provenance)
		}
	}

	if got := f.Confirmed().Adventurer.Gold; got != 60 {
		t.Errorf("Expected confirmed gold untouched, got %d", got)
	}
}

// TestConfirmReplacesPending tests replace-on-confirmation
func TestConfirmReplacesPending(t *testing.T) {
	f := newTestFeed(t)
	if _, err := f.PredictStats(game.Stats{Vitality: 1}); err != nil {
		t.Fatalf("PredictStats failed: %v", err)
	}

	confirmed := game.Adventurer{Health: 65, Stats: game.Stats{Vitality: 3}, ActionCount: 5}
	dropped := f.Confirm([]game.GameEvent{
		game.NewEvent(5, game.StatUpgradeEvent{Stats: game.Stats{Vitality: 1}}),
		game.NewEvent(5, game.AdventurerEvent{Adventurer: confirmed}),
	})
	if len(dropped) != 1 {
		t.Fatalf("Expected 1 dropped prediction, got %d", len(dropped))
	}

	v := f.View()
	if v.Pending != nil {
		t.Error("Expected no pending prediction")
	}
	if v.State.Adventurer.ActionCount != 5 {
		t.Errorf("Expected confirmed action count 5, got %d", v.State.Adventurer.ActionCount)
	}
	for _, ev := range v.Events {
		if ev.Provenance != ProvenanceConfirmed {
			t.Errorf("Expected only confirmed events, got %s", ev.Provenance)
		}
	}
}

// TestHubOpenLoadsHistory tests rehydration from persisted events
func TestHubOpenLoadsHistory(t *testing.T) {
	calls := 0
	hub := NewHub(5, func(id wire.Felt) ([]game.GameEvent, error) {
		calls++
		return []game.GameEvent{game.NewEvent(1, game.AdventurerEvent{Adventurer: game.Adventurer{Health: 33}})}, nil
	})

	f, err := hub.Open(wire.FeltFromUint64(9))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if f.Confirmed().Adventurer.Health != 33 {
		t.Errorf("Expected replayed health 33")
	}

	again, err := hub.Open(wire.MustParseFelt("0x9"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if again != f || calls != 1 || hub.count() != 1 {
		t.Errorf("Expected one cached feed and one load, got %d loads and %d feeds", calls, hub.count())
	}
}

// TestHubOpenLoadError tests that a failed load is not cached
func TestHubOpenLoadError(t *testing.T) {
	hub := NewHub(5, func(id wire.Felt) ([]game.GameEvent, error) {
		return nil, errors.New("disk gone")
	})

	if _, err := hub.Open(wire.FeltFromUint64(1)); err == nil {
		t.Fatal("Expected load error")
	}
	if hub.count() != 0 {
		t.Errorf("Expected no cached feed, got %d", hub.count())
	}
}

// TestHubLookupSkipsUnknown tests that read paths do not retain adventurers without history
func TestHubLookupSkipsUnknown(t *testing.T) {
	hub := NewHub(5, func(id wire.Felt) ([]game.GameEvent, error) {
		return nil, nil
	})

	for i := uint64(1); i <= 100; i++ {
		f, ok, err := hub.Lookup(wire.FeltFromUint64(i))
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		if ok || f != nil {
			t.Fatalf("Expected no feed for unknown adventurer %d", i)
		}
	}
	if hub.count() != 0 {
		t.Errorf("Expected no retained feeds, got %d", hub.count())
	}

	opened, err := hub.Open(wire.FeltFromUint64(1))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	f, ok, err := hub.Lookup(wire.FeltFromUint64(1))
	if err != nil || !ok || f != opened {
		t.Errorf("Expected Lookup to return the opened feed, got %v %v", ok, err)
	}
}

// TestHubLookupLoadsHistory tests that known adventurers are rebuilt and cached
func TestHubLookupLoadsHistory(t *testing.T) {
	hub := NewHub(5, func(id wire.Felt) ([]game.GameEvent, error) {
		if id.String() != "9" {
			return nil, nil
		}
		return []game.GameEvent{game.NewEvent(1, game.AdventurerEvent{Adventurer: game.Adventurer{Health: 12}})}, nil
	})

	f, ok, err := hub.Lookup(wire.FeltFromUint64(9))
	if err != nil || !ok {
		t.Fatalf("Expected feed from history, got %v %v", ok, err)
	}
	if f.Confirmed().Adventurer.Health != 12 {
		t.Errorf("Expected replayed health 12")
	}
	if hub.count() != 1 {
		t.Errorf("Expected one retained feed, got %d", hub.count())
	}
}

// TestPredictPurchaseWithoutBag tests the predicted bag shape before any bag was confirmed
func TestPredictPurchaseWithoutBag(t *testing.T) {
	f := NewFeed(wire.FeltFromUint64(3), 10)
	f.Confirm([]game.GameEvent{
		game.NewEvent(2, game.AdventurerEvent{Adventurer: game.Adventurer{
			Health:    40,
			Gold:      50,
			Equipment: game.Equipment{Weapon: game.Item{ID: 46}},
		}}),
	})

	p, err := f.PredictPurchase(optimistic.Purchase{
		Items:         []game.ItemPurchase{{ItemID: 76, Equip: true}},
		RemainingGold: 10,
	})
	if err != nil {
		t.Fatalf("PredictPurchase failed: %v", err)
	}
	bag := p.Events[0].Payload.(game.BagEvent).Bag
	if len(bag) != schema.BagSlotCount || bag[0].ID != 46 {
		t.Errorf("Expected %d slots with the old weapon first, got %+v", schema.BagSlotCount, bag)
	}
}

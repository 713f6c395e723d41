package game

import "testing"

// TestStateApplySnapshots tests that later snapshots overwrite earlier ones
func TestStateApplySnapshots(t *testing.T) {
	s := NewState(10)
	adv := createTestAdventurer()

	s.Apply(NewEvent(1, AdventurerEvent{Adventurer: adv}))
	adv.Health = 10
	s.Apply(NewEvent(2, AdventurerEvent{Adventurer: adv}))

	if s.Adventurer == nil || s.Adventurer.Health != 10 {
		t.Fatalf("Expected latest snapshot with health 10, got %+v", s.Adventurer)
	}
	if len(s.Recent) != 2 {
		t.Errorf("Expected 2 recent events, got %d", len(s.Recent))
	}
}

// TestStateApplyBeastLifecycle tests that the beast is set and cleared
func TestStateApplyBeastLifecycle(t *testing.T) {
	s := NewState(10)

	s.Apply(NewEvent(1, BeastEvent{Beast: EnrichBeast(createTestBeast(5))}))
	if s.Beast == nil || s.Beast.Name != "Dragon" {
		t.Fatalf("Expected Dragon, got %+v", s.Beast)
	}

	s.Apply(NewEvent(2, DefeatedBeastEvent{BeastID: 29, GoldReward: 4}))
	if s.Beast != nil {
		t.Error("Expected beast cleared after defeat")
	}

	s.Apply(NewEvent(3, BeastEvent{Beast: EnrichBeast(createTestBeast(5))}))
	s.Apply(NewEvent(4, FledBeastEvent{BeastID: 29}))
	if s.Beast != nil {
		t.Error("Expected beast cleared after flee")
	}
}

// TestStateRecentCap tests that the oldest events are dropped first
func TestStateRecentCap(t *testing.T) {
	s := NewState(3)
	for i := uint16(1); i <= 5; i++ {
		s.Apply(NewEvent(i, LevelUpEvent{Level: uint8(i)}))
	}

	if len(s.Recent) != 3 {
		t.Fatalf("Expected 3 recent events, got %d", len(s.Recent))
	}
	if s.Recent[0].ActionCount != 3 || s.Recent[2].ActionCount != 5 {
		t.Errorf("Expected action counts 3..5, got %d..%d", s.Recent[0].ActionCount, s.Recent[2].ActionCount)
	}
}

// TestStateClone tests that folding into a clone leaves the original alone
func TestStateClone(t *testing.T) {
	s := NewState(5)
	s.Apply(NewEvent(1, BagEvent{Bag: Bag{{ID: 4}, {}}}))

	c := s.Clone()
	c.Bag.Store(Item{ID: 9})
	c.Apply(NewEvent(2, MarketItemsEvent{Items: []ItemID{1}}))

	if s.Bag[1].ID != 0 {
		t.Errorf("Expected original bag untouched, got %+v", s.Bag)
	}
	if len(s.Recent) != 1 || s.Market != nil {
		t.Errorf("Expected original recent log untouched, got %d events", len(s.Recent))
	}
	if c.limit != 5 {
		t.Errorf("Expected clone to keep limit 5, got %d", c.limit)
	}
}

// TestBagStore tests first-empty-slot placement
func TestBagStore(t *testing.T) {
	b := Bag{{ID: 3}, {}, {ID: 5}}
	b.Store(Item{ID: 46})
	if b[1].ID != 46 {
		t.Errorf("Expected item in slot 1, got %+v", b)
	}
	b.Store(Item{ID: 47})
	if len(b) != 4 || b[3].ID != 47 {
		t.Errorf("Expected item appended, got %+v", b)
	}
}

// TestStatsAddSaturates tests that stat sums stop at the 8-bit limit
func TestStatsAddSaturates(t *testing.T) {
	got := Stats{Strength: 250, Luck: 1}.Add(Stats{Strength: 10, Luck: 2})
	if got.Strength != 255 || got.Luck != 3 {
		t.Errorf("Expected strength 255 and luck 3, got %+v", got)
	}
}

// TestBagSlots tests padding to the decoded slot count
func TestBagSlots(t *testing.T) {
	b := Bag{{ID: 3}}
	padded := b.Slots(4)
	if len(padded) != 4 || padded[0].ID != 3 || !padded[3].IsEmpty() {
		t.Errorf("Expected 4 slots, got %+v", padded)
	}
	padded[0] = Item{ID: 9}
	if b[0].ID != 3 {
		t.Error("Expected original bag untouched")
	}
	if long := (Bag{{ID: 1}, {ID: 2}}).Slots(1); len(long) != 2 {
		t.Errorf("Expected longer bag kept whole, got %+v", long)
	}
}

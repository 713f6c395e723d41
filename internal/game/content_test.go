package game

import "testing"

// TestItemSlot tests id-range slot classification
func TestItemSlot(t *testing.T) {
	tests := []struct {
		id   ItemID
		want Slot
	}{
		{0, SlotNone},
		{1, SlotNeck},
		{3, SlotNeck},
		{4, SlotRing},
		{8, SlotRing},
		{9, SlotWeapon},
		{16, SlotWeapon},
		{17, SlotChest},
		{26, SlotHead},
		{31, SlotWaist},
		{36, SlotFoot},
		{41, SlotHand},
		{46, SlotWeapon},
		{76, SlotWeapon},
		{81, SlotChest},
		{101, SlotHand},
		{102, SlotNone},
	}

	for _, tt := range tests {
		if got := ItemSlot(tt.id); got != tt.want {
			t.Errorf("ItemSlot(%d) = %s, want %s", tt.id, got, tt.want)
		}
	}
}

// TestBeastLookups tests name, tier and type tables
func TestBeastLookups(t *testing.T) {
	tests := []struct {
		id   uint8
		name string
		tier uint8
		typ  string
	}{
		{1, "Warlock", 1, BeastTypeMagical},
		{5, "Basilisk", 1, BeastTypeMagical},
		{6, "Gorgon", 2, BeastTypeMagical},
		{25, "Gnome", 5, BeastTypeMagical},
		{29, "Dragon", 1, BeastTypeHunter},
		{50, "Rat", 5, BeastTypeHunter},
		{51, "Kraken", 1, BeastTypeBrute},
		{75, "Skeleton", 5, BeastTypeBrute},
		{0, "", 0, ""},
		{76, "", 0, ""},
	}

	for _, tt := range tests {
		if got := BeastName(tt.id); got != tt.name {
			t.Errorf("BeastName(%d) = %q, want %q", tt.id, got, tt.name)
		}
		if got := BeastTier(tt.id); got != tt.tier {
			t.Errorf("BeastTier(%d) = %d, want %d", tt.id, got, tt.tier)
		}
		if got := BeastType(tt.id); got != tt.typ {
			t.Errorf("BeastType(%d) = %q, want %q", tt.id, got, tt.typ)
		}
	}
}

// TestSpecialNameTables tests index bounds of the special name tables
func TestSpecialNameTables(t *testing.T) {
	if _, ok := SpecialPrefix(0); ok {
		t.Error("Expected prefix index 0 to be unset")
	}
	if got, ok := SpecialPrefix(1); !ok || got != "Agony" {
		t.Errorf("Expected prefix 1 to be Agony, got %q", got)
	}
	if got, ok := SpecialPrefix(69); !ok || got != "Shimmering" {
		t.Errorf("Expected prefix 69 to be Shimmering, got %q", got)
	}
	if _, ok := SpecialPrefix(70); ok {
		t.Error("Expected prefix 70 to be out of range")
	}
	if got, ok := SpecialSuffix(18); !ok || got != "Moon" {
		t.Errorf("Expected suffix 18 to be Moon, got %q", got)
	}
	if _, ok := SpecialSuffix(19); ok {
		t.Error("Expected suffix 19 to be out of range")
	}
}

package validation

import (
	"strings"
	"testing"

	"github.com/frontboat/death-mountain-sub001/internal/game"
	"github.com/frontboat/death-mountain-sub001/internal/optimistic"
)

// TestValidateAdventurerID tests id parsing
func TestValidateAdventurerID(t *testing.T) {
	valid := []string{"1", "0x5a1", "0X5A1", "123456789012345678901234567890"}
	for _, s := range valid {
		if _, err := ValidateAdventurerID(s); err != nil {
			t.Errorf("Expected %q to be valid: %v", s, err)
		}
	}

	invalid := []string{"", "0", "0x0", "-1", "abc", "1.5", "0x" + strings.Repeat("f", 65), "1 OR 1=1"}
	for _, s := range invalid {
		if _, err := ValidateAdventurerID(s); err == nil {
			t.Errorf("Expected %q to be rejected", s)
		}
	}
}

// TestValidateLogs tests receipt size bounds
func TestValidateLogs(t *testing.T) {
	if err := ValidateLogs(0, nil); err == nil {
		t.Error("Expected empty receipt to be rejected")
	}
	if err := ValidateLogs(MaxLogsPerReceipt+1, func(int) int { return 1 }); err == nil {
		t.Error("Expected oversized receipt to be rejected")
	}
	if err := ValidateLogs(2, func(i int) int { return i * MaxValuesPerLog * 2 }); err == nil {
		t.Error("Expected oversized log to be rejected")
	}
	if err := ValidateLogs(2, func(int) int { return 10 }); err != nil {
		t.Errorf("Expected valid receipt, got %v", err)
	}
}

// TestValidateStatAllocation tests point accounting
func TestValidateStatAllocation(t *testing.T) {
	current := game.Stats{Strength: 4, Vitality: 2}
	if err := ValidateStatAllocation(current, game.Stats{Vitality: 3}, 3); err != nil {
		t.Errorf("Expected valid allocation, got %v", err)
	}
	if err := ValidateStatAllocation(current, game.Stats{Vitality: 2}, 3); err == nil {
		t.Error("Expected partial allocation to be rejected")
	}
	if err := ValidateStatAllocation(current, game.Stats{}, 0); err == nil {
		t.Error("Expected empty allocation to be rejected")
	}
	if err := ValidateStatAllocation(game.Stats{Luck: 254}, game.Stats{Luck: 2}, 2); err == nil {
		t.Error("Expected overflowing allocation to be rejected")
	}
	if err := ValidateStatAllocation(game.Stats{Luck: 253}, game.Stats{Luck: 2}, 2); err != nil {
		t.Errorf("Expected allocation up to 255 to pass, got %v", err)
	}
}

// TestValidatePurchase tests market order checks
func TestValidatePurchase(t *testing.T) {
	ok := optimistic.Purchase{Items: []game.ItemPurchase{{ItemID: 76, Equip: true}}, RemainingGold: 10}
	if err := ValidatePurchase(ok, 40); err != nil {
		t.Errorf("Expected valid purchase, got %v", err)
	}

	bad := []optimistic.Purchase{
		{},
		{Items: []game.ItemPurchase{{ItemID: 0}}},
		{Items: []game.ItemPurchase{{ItemID: 200}}},
		{Potions: 1, RemainingGold: 50},
	}
	for i, p := range bad {
		if err := ValidatePurchase(p, 40); err == nil {
			t.Errorf("Purchase %d: expected rejection", i)
		}
	}
}

// TestValidateFilter tests filter length
func TestValidateFilter(t *testing.T) {
	if err := ValidateFilter(strings.Repeat("a", MaxFilterLength+1)); err == nil {
		t.Error("Expected long filter to be rejected")
	}
	if err := ValidateFilter(`kind == "attack"`); err != nil {
		t.Errorf("Expected valid filter, got %v", err)
	}
}

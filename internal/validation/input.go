package validation

import (
	"fmt"
	"math"
	"regexp"

	"github.com/frontboat/death-mountain-sub001/internal/game"
	"github.com/frontboat/death-mountain-sub001/internal/optimistic"
	"github.com/frontboat/death-mountain-sub001/internal/wire"
)

const (
	// MaxLogsPerReceipt bounds one decode request
	MaxLogsPerReceipt = 512
	// MaxValuesPerLog bounds the scalars of one log
	MaxValuesPerLog = 1024
	// MaxFilterLength bounds filter expressions
	MaxFilterLength = 512
	// MaxPurchaseItems bounds one market order
	MaxPurchaseItems = 32
)

var scalarPattern = regexp.MustCompile(`^(0[xX][0-9a-fA-F]{1,64}|[0-9]{1,78})$`)

// ValidateScalar checks the textual form of a wire scalar
func ValidateScalar(s string) error {
	if !scalarPattern.MatchString(s) {
		return fmt.Errorf("scalar %q must be decimal or 0x-prefixed hex", s)
	}
	return nil
}

// ValidateAdventurerID parses an adventurer id from a path or body
func ValidateAdventurerID(s string) (wire.Felt, error) {
	if err := ValidateScalar(s); err != nil {
		return wire.Felt{}, fmt.Errorf("adventurer ID: %w", err)
	}
	id, err := wire.ParseFelt(s)
	if err != nil {
		return wire.Felt{}, fmt.Errorf("adventurer ID: %w", err)
	}
	if id.IsZero() {
		return wire.Felt{}, fmt.Errorf("adventurer ID must be nonzero")
	}
	return id, nil
}

// ValidateLogs checks the shape of raw logs before decoding. Value contents
// are checked by the decoder itself.
func ValidateLogs(count int, valueCount func(i int) int) error {
	if count == 0 {
		return fmt.Errorf("receipt has no logs")
	}
	if count > MaxLogsPerReceipt {
		return fmt.Errorf("receipt has %d logs, max %d", count, MaxLogsPerReceipt)
	}
	for i := 0; i < count; i++ {
		if n := valueCount(i); n > MaxValuesPerLog {
			return fmt.Errorf("log %d has %d values, max %d", i, n, MaxValuesPerLog)
		}
	}
	return nil
}

// ValidateFilter checks a filter expression's length
func ValidateFilter(src string) error {
	if len(src) > MaxFilterLength {
		return fmt.Errorf("filter must be at most %d characters", MaxFilterLength)
	}
	return nil
}

// ValidateStatAllocation checks that a delta spends exactly the available
// points and leaves every stat within its 8-bit range
func ValidateStatAllocation(current, delta game.Stats, available uint8) error {
	total := delta.Total()
	if total == 0 {
		return fmt.Errorf("stat allocation is empty")
	}
	if total != int(available) {
		return fmt.Errorf("stat allocation spends %d points, %d available", total, available)
	}
	have, add := current.Values(), delta.Values()
	for i := range have {
		if int(have[i])+int(add[i]) > math.MaxUint8 {
			return fmt.Errorf("stat allocation overflows stat %d", i)
		}
	}
	return nil
}

// ValidatePurchase checks a market order against current gold
func ValidatePurchase(p optimistic.Purchase, gold uint16) error {
	if p.Potions == 0 && len(p.Items) == 0 {
		return fmt.Errorf("purchase is empty")
	}
	if len(p.Items) > MaxPurchaseItems {
		return fmt.Errorf("purchase has %d items, max %d", len(p.Items), MaxPurchaseItems)
	}
	for i, it := range p.Items {
		if game.ItemSlot(it.ItemID) == game.SlotNone {
			return fmt.Errorf("item %d: unknown item id %d", i, it.ItemID)
		}
	}
	if p.RemainingGold > gold {
		return fmt.Errorf("remaining gold %d exceeds current gold %d", p.RemainingGold, gold)
	}
	return nil
}

package db

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/frontboat/death-mountain-sub001/internal/apperr"
	"github.com/frontboat/death-mountain-sub001/internal/game"
	"github.com/frontboat/death-mountain-sub001/internal/wire"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func levelUps(from, to int) ([]game.GameEvent, []int) {
	var events []game.GameEvent
	var indexes []int
	for i := from; i <= to; i++ {
		events = append(events, game.NewEvent(uint16(i), game.LevelUpEvent{Level: uint8(i)}))
		indexes = append(indexes, i-from)
	}
	return events, indexes
}

// TestSaveReceiptAndListEvents tests persistence order and the recent cap
func TestSaveReceiptAndListEvents(t *testing.T) {
	db := newTestDB(t)

	first, idx := levelUps(1, 3)
	if err := db.SaveReceipt(Receipt{ID: uuid.New().String(), AdventurerID: "7", LogCount: 3}, first, idx); err != nil {
		t.Fatalf("SaveReceipt failed: %v", err)
	}
	second, idx := levelUps(4, 5)
	if err := db.SaveReceipt(Receipt{ID: uuid.New().String(), AdventurerID: "7", LogCount: 4, FailureCount: 2}, second, idx); err != nil {
		t.Fatalf("SaveReceipt failed: %v", err)
	}
	other, idx := levelUps(9, 9)
	if err := db.SaveReceipt(Receipt{ID: uuid.New().String(), AdventurerID: "8", LogCount: 1}, other, idx); err != nil {
		t.Fatalf("SaveReceipt failed: %v", err)
	}

	all, err := db.ListEvents("7", 0)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("Expected 5 events, got %d", len(all))
	}
	for i, ev := range all {
		if ev.ActionCount != uint16(i+1) {
			t.Errorf("Event %d: expected action %d, got %d", i, i+1, ev.ActionCount)
		}
	}

	recent, err := db.ListEvents("7", 2)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(recent) != 2 || recent[0].ActionCount != 4 || recent[1].ActionCount != 5 {
		t.Errorf("Expected actions 4 and 5 oldest first, got %+v", recent)
	}
	if lvl, ok := recent[1].Payload.(game.LevelUpEvent); !ok || lvl.Level != 5 {
		t.Errorf("Expected typed level_up payload, got %#v", recent[1].Payload)
	}
}

// TestHistoryKeepsWideValues tests that a stored beast seed keeps full precision
func TestHistoryKeepsWideValues(t *testing.T) {
	db := newTestDB(t)
	seed := wire.MustParseFelt("0x7d1a3b9e2f8c4d6a5b0e1f2a3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d5e")
	id := wire.FeltFromUint64(7)

	ev := game.NewEvent(2, game.BeastEvent{Beast: game.EnrichBeast(game.Beast{ID: 1, Seed: seed, Level: 20})})
	if err := db.SaveReceipt(Receipt{ID: "r1", AdventurerID: id.String(), LogCount: 1}, []game.GameEvent{ev}, []int{0}); err != nil {
		t.Fatalf("SaveReceipt failed: %v", err)
	}

	events, err := db.History(id)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if got := events[0].Payload.(game.BeastEvent).Beast.Seed; !got.Equal(seed) {
		t.Errorf("Seed changed: %s", got.Hex())
	}
}

// TestSaveReceiptMismatchedIndexes tests argument validation
func TestSaveReceiptMismatchedIndexes(t *testing.T) {
	db := newTestDB(t)
	events, _ := levelUps(1, 2)
	if err := db.SaveReceipt(Receipt{ID: "r1", AdventurerID: "7"}, events, []int{0}); err == nil {
		t.Error("Expected error for mismatched indexes")
	}
}

// TestGetReceipt tests receipt lookup and not-found handling
func TestGetReceipt(t *testing.T) {
	db := newTestDB(t)
	events, idx := levelUps(1, 2)
	if err := db.SaveReceipt(Receipt{ID: "r1", AdventurerID: "7", TxHash: "0xabc", LogCount: 3, FailureCount: 1}, events, idx); err != nil {
		t.Fatalf("SaveReceipt failed: %v", err)
	}

	r, err := db.GetReceipt("r1")
	if err != nil {
		t.Fatalf("GetReceipt failed: %v", err)
	}
	if r.TxHash != "0xabc" || r.EventCount != 2 || r.FailureCount != 1 || r.CreatedAt.IsZero() {
		t.Errorf("Unexpected receipt: %+v", r)
	}

	_, err = db.GetReceipt("missing")
	if apperr.CodeOf(err) != apperr.CodeNotFound {
		t.Errorf("Expected NOT_FOUND, got %v", err)
	}

	receipts, err := db.ListReceipts("7")
	if err != nil {
		t.Fatalf("ListReceipts failed: %v", err)
	}
	if len(receipts) != 1 || receipts[0].ID != "r1" {
		t.Errorf("Unexpected receipts: %+v", receipts)
	}
}

// TestClaimAdventurer tests first-claim ownership
func TestClaimAdventurer(t *testing.T) {
	db := newTestDB(t)

	ok, err := db.ClaimAdventurer("7", "alice")
	if err != nil || !ok {
		t.Fatalf("Expected alice to claim, got %v %v", ok, err)
	}
	ok, err = db.ClaimAdventurer("7", "bob")
	if err != nil || ok {
		t.Errorf("Expected bob to be refused, got %v %v", ok, err)
	}
	ok, err = db.ClaimAdventurer("7", "alice")
	if err != nil || !ok {
		t.Errorf("Expected alice to keep ownership, got %v %v", ok, err)
	}

	owner, err := db.GetAdventurerOwner("7")
	if err != nil || owner != "alice" {
		t.Errorf("Expected owner alice, got %q %v", owner, err)
	}
	if _, err := db.GetAdventurerOwner("8"); apperr.CodeOf(err) != apperr.CodeNotFound {
		t.Errorf("Expected NOT_FOUND, got %v", err)
	}
}

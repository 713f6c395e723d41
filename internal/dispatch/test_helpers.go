package dispatch

import (
	"strconv"

	"github.com/frontboat/death-mountain-sub001/internal/schema"
	"github.com/frontboat/death-mountain-sub001/internal/wire"
)

const testAdventurerID = "0x5a1"

func testID() wire.Felt {
	return wire.MustParseFelt(testAdventurerID)
}

// buildLog creates an envelope log: the selector and adventurer id as keys,
// then action count, type tag and payload as data.
func buildLog(id string, actionCount, tag int, payload ...string) RawLog {
	data := []string{strconv.Itoa(actionCount), strconv.Itoa(tag)}
	return RawLog{
		Keys: []string{wire.Selector(schema.EnvelopeComponent).Hex(), id},
		Data: append(data, payload...),
	}
}

func nums(vs ...int) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = strconv.Itoa(v)
	}
	return out
}

// adventurerPayload returns the 30 wire values of an adventurer snapshot with
// a weapon equipped.
func adventurerPayload(health int) []string {
	values := nums(health, 120, 40, 0, 3)
	// stats
	values = append(values, nums(1, 2, 2, 0, 0, 0, 0)...)
	// weapon, chest, then head through ring
	values = append(values, nums(46, 0, 21, 4)...)
	values = append(values, nums(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)...)
	return append(values, nums(7, 11)...)
}

// bagPayload returns 15 item slots plus the mutated flag.
func bagPayload(items ...int) []string {
	var values []string
	for i := 0; i < schema.BagSlotCount; i++ {
		id := 0
		if i < len(items) {
			id = items[i]
		}
		values = append(values, strconv.Itoa(id), "0")
	}
	return append(values, "1")
}

func beastPayload(level int) []string {
	return []string{"29", "0x7d1a3b9e2f8c4d6a5b0e1f2a3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d5e", "80",
		strconv.Itoa(level), "5", "10", "4", "0"}
}

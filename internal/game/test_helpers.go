package game

import "github.com/frontboat/death-mountain-sub001/internal/wire"

// createTestAdventurer creates an adventurer snapshot for unit tests
func createTestAdventurer() Adventurer {
	return Adventurer{
		Health:                50,
		XP:                    120,
		Gold:                  40,
		StatUpgradesAvailable: 3,
		Stats: Stats{
			Strength:  1,
			Dexterity: 2,
			Vitality:  2,
		},
		Equipment: Equipment{
			Weapon: Item{ID: 46, XP: 0},
			Chest:  Item{ID: 21, XP: 4},
		},
		ItemSpecialsSeed: 7,
		ActionCount:      11,
	}
}

// createTestBeast creates a raw beast for unit tests
func createTestBeast(level uint16) Beast {
	return Beast{
		ID:       29,
		Seed:     wire.MustParseFelt("0x7d1a3b9e2f8c4d6a5b0e1f2a3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d5e"),
		Health:   80,
		Level:    level,
		Specials: SpecialPowers{Special1: 5, Special2: 10, Special3: 4},
	}
}

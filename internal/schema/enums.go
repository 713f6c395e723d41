package schema

import (
	"fmt"
	"strconv"

	"github.com/frontboat/death-mountain-sub001/internal/apperr"
)

// ImpactLocation is where a hit landed; index 0 means no location.
type ImpactLocation uint8

const (
	LocationNone ImpactLocation = iota
	LocationWeapon
	LocationChest
	LocationHead
	LocationWaist
	LocationFoot
	LocationHand
	LocationNeck
	LocationRing
)

var locationNames = [...]string{"None", "Weapon", "Chest", "Head", "Waist", "Foot", "Hand", "Neck", "Ring"}

// LocationFromIndex converts a wire index, failing outside the table.
func LocationFromIndex(i uint64) (ImpactLocation, error) {
	if i >= uint64(len(locationNames)) {
		return 0, unknownIndex("location", i, len(locationNames))
	}
	return ImpactLocation(i), nil
}

// ParseLocation converts a location name back to its value.
func ParseLocation(name string) (ImpactLocation, error) {
	for i, n := range locationNames {
		if n == name {
			return ImpactLocation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown location %q", name)
}

func (l ImpactLocation) String() string {
	if int(l) < len(locationNames) {
		return locationNames[l]
	}
	return "Unknown"
}

func (l ImpactLocation) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *ImpactLocation) UnmarshalText(text []byte) error {
	v, err := ParseLocation(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// DiscoveryType is what an exploration step found.
type DiscoveryType uint8

const (
	DiscoveryGold DiscoveryType = iota
	DiscoveryHealth
	DiscoveryLoot
)

var discoveryNames = [...]string{"Gold", "Health", "Loot"}

// DiscoveryFromIndex converts a wire index, failing outside the table.
func DiscoveryFromIndex(i uint64) (DiscoveryType, error) {
	if i >= uint64(len(discoveryNames)) {
		return 0, unknownIndex("discovery", i, len(discoveryNames))
	}
	return DiscoveryType(i), nil
}

// ParseDiscovery converts a discovery name back to its value.
func ParseDiscovery(name string) (DiscoveryType, error) {
	for i, n := range discoveryNames {
		if n == name {
			return DiscoveryType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown discovery type %q", name)
}

func (d DiscoveryType) String() string {
	if int(d) < len(discoveryNames) {
		return discoveryNames[d]
	}
	return "Unknown"
}

func (d DiscoveryType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DiscoveryType) UnmarshalText(text []byte) error {
	v, err := ParseDiscovery(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func unknownIndex(table string, i uint64, size int) error {
	return apperr.WithMetadata(apperr.CodeUnknownEnumIndex,
		fmt.Sprintf("%s index %d outside table of %d", table, i, size),
		map[string]string{"table": table, "index": strconv.FormatUint(i, 10)})
}

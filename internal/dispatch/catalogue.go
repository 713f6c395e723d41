package dispatch

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/frontboat/death-mountain-sub001/internal/schema"
	"github.com/frontboat/death-mountain-sub001/internal/wire"
)

// Entry pairs an event selector with the event's declared name
type Entry struct {
	Selector wire.Felt
	Name     string
}

type entryJSON struct {
	Selector string `json:"selector"`
	Name     string `json:"name"`
}

// MarshalJSON renders the selector in hex, the form explorers show.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{Selector: e.Selector.Hex(), Name: e.Name})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Name == "" {
		return fmt.Errorf("catalogue entry has no name")
	}

	sel := wire.Selector(raw.Name)
	if raw.Selector != "" {
		parsed, err := wire.ParseFelt(raw.Selector)
		if err != nil {
			return fmt.Errorf("catalogue entry %s: %w", raw.Name, err)
		}
		sel = parsed
	}
	*e = Entry{Selector: sel, Name: raw.Name}
	return nil
}

// Catalogue is a contract's event list
type Catalogue []Entry

// DefaultCatalogue holds only the envelope event, with its selector hashed
// from the name.
func DefaultCatalogue() Catalogue {
	return Catalogue{{Selector: wire.Selector(schema.EnvelopeComponent), Name: schema.EnvelopeComponent}}
}

// LoadCatalogue reads a JSON array of {selector, name}. A missing selector is
// computed from the name.
func LoadCatalogue(path string) (Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}

	var cat Catalogue
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalogue %s: %w", path, err)
	}
	if len(cat) == 0 {
		return nil, fmt.Errorf("catalogue %s is empty", path)
	}
	return cat, nil
}

// Lookup returns the declared name for a selector. Selectors compare by value
// so leading zeros do not matter.
func (c Catalogue) Lookup(selector wire.Felt) (string, bool) {
	for _, e := range c {
		if e.Selector.Equal(selector) {
			return e.Name, true
		}
	}
	return "", false
}

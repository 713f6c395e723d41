package game

// DefaultRecentLimit caps the recent-event log when no limit is given
const DefaultRecentLimit = 50

// State is the folded view of one adventurer. It is the single fold path for
// confirmed and predicted events alike.
type State struct {
	Adventurer *Adventurer `json:"adventurer"`
	Bag        Bag         `json:"bag"`
	Beast      *BeastView  `json:"beast"`
	Market     []ItemID    `json:"market"`
	Recent     []GameEvent `json:"recent_events"`

	limit int
}

// NewState creates an empty state whose recent log keeps at most limit events
func NewState(limit int) *State {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return &State{limit: limit}
}

// Apply folds one event into the state. Events must be applied in emission
// order since later snapshots overwrite earlier ones.
func (s *State) Apply(ev GameEvent) {
	switch p := ev.Payload.(type) {
	case AdventurerEvent:
		adv := p.Adventurer
		s.Adventurer = &adv
	case BagEvent:
		s.Bag = p.Bag.Clone()
	case BeastEvent:
		beast := p.Beast
		s.Beast = &beast
	case DefeatedBeastEvent, FledBeastEvent:
		s.Beast = nil
	case MarketItemsEvent:
		s.Market = append([]ItemID(nil), p.Items...)
	}

	s.Recent = append(s.Recent, ev)
	if over := len(s.Recent) - s.limit; over > 0 {
		s.Recent = append([]GameEvent(nil), s.Recent[over:]...)
	}
}

// ApplyAll folds events in order
func (s *State) ApplyAll(events []GameEvent) {
	for _, ev := range events {
		s.Apply(ev)
	}
}

// Clone returns a copy safe to fold further events into
func (s *State) Clone() *State {
	c := &State{
		Bag:    s.Bag.Clone(),
		Recent: append([]GameEvent(nil), s.Recent...),
		limit:  s.limit,
	}
	if s.Adventurer != nil {
		adv := *s.Adventurer
		c.Adventurer = &adv
	}
	if s.Beast != nil {
		beast := *s.Beast
		c.Beast = &beast
	}
	if s.Market != nil {
		c.Market = append([]ItemID(nil), s.Market...)
	}
	return c
}

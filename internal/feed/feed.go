package feed

import (
	"container/list"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/frontboat/death-mountain-sub001/internal/apperr"
	"github.com/frontboat/death-mountain-sub001/internal/game"
	"github.com/frontboat/death-mountain-sub001/internal/optimistic"
	"github.com/frontboat/death-mountain-sub001/internal/wire"
)

// Provenance tells whether an event came from a receipt or a prediction
type Provenance string

const (
	ProvenanceConfirmed  Provenance = "confirmed"
	ProvenanceOptimistic Provenance = "optimistic"
)

// maxPending is how many unconfirmed predictions an adventurer may have.
// A new action is predicted only after the previous one settles.
const maxPending = 1

// Prediction is one batch of optimistic events for a submitted action
type Prediction struct {
	ID        string           `json:"id"`
	Action    string           `json:"action"`
	Events    []game.GameEvent `json:"events"`
	CreatedAt time.Time        `json:"created_at"`
}

// TaggedEvent is an event with its provenance
type TaggedEvent struct {
	Event      game.GameEvent `json:"event"`
	Provenance Provenance     `json:"provenance"`
}

// View is the state a client renders: confirmed state with any pending
// prediction folded on top.
type View struct {
	AdventurerID wire.Felt     `json:"adventurer_id"`
	State        *game.State   `json:"state"`
	Events       []TaggedEvent `json:"events"`
	Pending      *Prediction   `json:"pending"`
}

// Feed tracks one adventurer's confirmed state and pending predictions
type Feed struct {
	ID        wire.Felt
	confirmed *game.State
	pending   *list.List // *Prediction
	mu        sync.RWMutex
}

// NewFeed creates an empty feed whose recent log keeps limit events
func NewFeed(id wire.Felt, limit int) *Feed {
	return &Feed{
		ID:        id,
		confirmed: game.NewState(limit),
		pending:   list.New(),
	}
}

// PredictStats records the prediction for a stat allocation
func (f *Feed) PredictStats(delta game.Stats) (*Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	adv, err := f.predictable()
	if err != nil {
		return nil, err
	}
	return f.enqueue("stat_upgrade", optimistic.AllocateStats(adv, delta)), nil
}

// PredictPurchase records the prediction for a market purchase
func (f *Feed) PredictPurchase(p optimistic.Purchase) (*Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	adv, err := f.predictable()
	if err != nil {
		return nil, err
	}
	return f.enqueue("buy_items", optimistic.PurchaseItems(adv, f.confirmed.Bag, p)), nil
}

func (f *Feed) predictable() (game.Adventurer, error) {
	if f.pending.Len() >= maxPending {
		return game.Adventurer{}, apperr.New(apperr.CodePredictionPending,
			"previous action is still awaiting confirmation")
	}
	if f.confirmed.Adventurer == nil {
		return game.Adventurer{}, apperr.New(apperr.CodeNotFound, "no confirmed adventurer snapshot")
	}
	return *f.confirmed.Adventurer, nil
}

func (f *Feed) enqueue(action string, events []game.GameEvent) *Prediction {
	p := &Prediction{
		ID:        uuid.New().String(),
		Action:    action,
		Events:    events,
		CreatedAt: time.Now(),
	}
	f.pending.PushBack(p)
	return p
}

// Confirm replaces pending predictions with authoritative events. It returns
// the discarded predictions.
func (f *Feed) Confirm(events []game.GameEvent) []*Prediction {
	f.mu.Lock()
	defer f.mu.Unlock()

	dropped := f.drain()
	f.confirmed.ApplyAll(events)
	return dropped
}

// Rollback discards pending predictions after a reverted transaction
func (f *Feed) Rollback() []*Prediction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.drain()
}

func (f *Feed) drain() []*Prediction {
	var out []*Prediction
	for elem := f.pending.Front(); elem != nil; elem = elem.Next() {
		out = append(out, elem.Value.(*Prediction))
	}
	f.pending.Init()
	return out
}

// HasPending returns true if a prediction awaits confirmation
func (f *Feed) HasPending() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.pending.Len() > 0
}

// View folds pending predictions over a copy of the confirmed state
func (f *Feed) View() View {
	f.mu.RLock()
	defer f.mu.RUnlock()

	state := f.confirmed.Clone()

	var pending *Prediction
	optimisticCount := 0
	for elem := f.pending.Front(); elem != nil; elem = elem.Next() {
		p := elem.Value.(*Prediction)
		state.ApplyAll(p.Events)
		optimisticCount += len(p.Events)
		pending = p
	}

	// Predicted events are always the newest; the cap only drops older ones.
	if optimisticCount > len(state.Recent) {
		optimisticCount = len(state.Recent)
	}

	events := make([]TaggedEvent, len(state.Recent))
	split := len(state.Recent) - optimisticCount
	for i, ev := range state.Recent {
		prov := ProvenanceConfirmed
		if i >= split {
			prov = ProvenanceOptimistic
		}
		events[i] = TaggedEvent{Event: ev, Provenance: prov}
	}

	return View{AdventurerID: f.ID, State: state, Events: events, Pending: pending}
}

// Confirmed returns a copy of the confirmed state
func (f *Feed) Confirmed() *game.State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.confirmed.Clone()
}

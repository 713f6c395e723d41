package feed

import (
	"sync"

	"github.com/frontboat/death-mountain-sub001/internal/game"
	"github.com/frontboat/death-mountain-sub001/internal/wire"
)

// Loader returns an adventurer's full persisted confirmed history, oldest
// first. Replaying all of it rebuilds snapshots older than the recent cap.
type Loader func(id wire.Felt) ([]game.GameEvent, error)

// Hub owns the feeds of every active adventurer
type Hub struct {
	feeds map[string]*Feed
	limit int
	load  Loader
	mu    sync.RWMutex
}

// NewHub creates a hub. load may be nil when there is no persisted history.
func NewHub(limit int, load Loader) *Hub {
	if limit <= 0 {
		limit = game.DefaultRecentLimit
	}
	return &Hub{
		feeds: make(map[string]*Feed),
		limit: limit,
		load:  load,
	}
}

func (h *Hub) get(id wire.Felt) (*Feed, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	f, ok := h.feeds[id.String()]
	return f, ok
}

// Open returns the feed for id, creating it from persisted history on first
// use. Use it on paths that are about to confirm events for id.
func (h *Hub) Open(id wire.Felt) (*Feed, error) {
	f, _, err := h.open(id, true)
	return f, err
}

// Lookup returns the feed for id when it is open or has persisted history.
// Adventurers without history are not retained.
func (h *Hub) Lookup(id wire.Felt) (*Feed, bool, error) {
	return h.open(id, false)
}

func (h *Hub) open(id wire.Felt, create bool) (*Feed, bool, error) {
	if f, ok := h.get(id); ok {
		return f, true, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	key := id.String()
	if f, ok := h.feeds[key]; ok {
		return f, true, nil
	}

	var history []game.GameEvent
	if h.load != nil {
		events, err := h.load(id)
		if err != nil {
			return nil, false, err
		}
		history = events
	}
	if len(history) == 0 && !create {
		return nil, false, nil
	}

	f := NewFeed(id, h.limit)
	f.confirmed.ApplyAll(history)
	h.feeds[key] = f
	return f, true, nil
}

func (h *Hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.feeds)
}

package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frontboat/death-mountain-sub001/internal/db"
	"github.com/frontboat/death-mountain-sub001/internal/dispatch"
	"github.com/frontboat/death-mountain-sub001/internal/feed"
	"github.com/frontboat/death-mountain-sub001/internal/filter"
	"github.com/frontboat/death-mountain-sub001/internal/game"
	"github.com/frontboat/death-mountain-sub001/internal/optimistic"
	"github.com/frontboat/death-mountain-sub001/internal/validation"
	"github.com/frontboat/death-mountain-sub001/internal/wire"
)

// failedUpdate is all a client learns about a log that did not decode.
const failedUpdate = "failed to process update"

const maxEventPage = 1000

func parseAdventurerID(s string) (wire.Felt, error) {
	return validation.ValidateAdventurerID(s)
}

// logFailure is the client view of a per-log decode failure
type logFailure struct {
	LogIndex int    `json:"log_index"`
	Code     string `json:"code"`
	Error    string `json:"error"`
}

type decodeResult struct {
	ReceiptID  string           `json:"receipt_id"`
	Events     []game.GameEvent `json:"events"`
	Failures   []logFailure     `json:"failures"`
	Ignored    int              `json:"ignored"`
	Superseded int              `json:"superseded"`
}

// getCatalogue lists the events the decoder recognizes
func (s *Server) getCatalogue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    s.translator.Catalogue(),
	})
}

// decodeReceipt decodes a receipt's logs, persists the events and confirms
// them into the adventurer's feed
func (s *Server) decodeReceipt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdventurerID string            `json:"adventurer_id"`
		TxHash       string            `json:"tx_hash"`
		Logs         []dispatch.RawLog `json:"logs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := parseAdventurerID(req.AdventurerID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid adventurer ID")
		return
	}
	if err := validation.ValidateLogs(len(req.Logs), func(i int) int {
		return len(req.Logs[i].Keys) + len(req.Logs[i].Data)
	}); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TxHash != "" {
		if err := validation.ValidateScalar(req.TxHash); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid transaction hash")
			return
		}
	}
	if !s.checkAdventurerOwnership(w, r, id) {
		return
	}

	res := s.translator.TranslateReceipt(req.Logs, id)

	// Only a receipt that produced events for id claims it or keeps a feed.
	// The feed is opened before saving so the new events are not replayed
	// from history.
	var f *feed.Feed
	if len(res.Events) > 0 {
		if !s.claimAdventurer(w, r, id) {
			return
		}
		f, err = s.feeds.Open(id)
	} else {
		f, _, err = s.feeds.Lookup(id)
	}
	if err != nil {
		s.writeAppError(w, err, "Failed to load adventurer")
		return
	}

	receiptID := uuid.New().String()
	err = s.db.SaveReceipt(db.Receipt{
		ID:           receiptID,
		AdventurerID: id.String(),
		TxHash:       req.TxHash,
		LogCount:     len(req.Logs),
		FailureCount: len(res.Failures),
	}, res.Events, res.LogIndexes)
	if err != nil {
		s.writeAppError(w, err, "Failed to save receipt")
		return
	}

	var dropped []*feed.Prediction
	if f != nil {
		dropped = f.Confirm(res.Events)
	}

	failures := make([]logFailure, 0, len(res.Failures))
	for _, fl := range res.Failures {
		failures = append(failures, logFailure{LogIndex: fl.LogIndex, Code: string(fl.Code), Error: failedUpdate})
	}

	s.logger.Info("receipt decoded",
		zap.String("receipt_id", receiptID),
		zap.String("adventurer_id", id.String()),
		zap.Int("events", len(res.Events)),
		zap.Int("failures", len(res.Failures)),
		zap.Int("ignored", res.Ignored))

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: decodeResult{
			ReceiptID:  receiptID,
			Events:     res.Events,
			Failures:   failures,
			Ignored:    res.Ignored,
			Superseded: len(dropped),
		},
	})
}

// getReceipt gets one stored receipt batch
func (s *Server) getReceipt(w http.ResponseWriter, r *http.Request) {
	receiptID := chi.URLParam(r, "receiptID")
	if _, err := uuid.Parse(receiptID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid receipt ID")
		return
	}

	receipt, err := s.db.GetReceipt(receiptID)
	if err != nil {
		s.writeAppError(w, err, "Failed to load receipt")
		return
	}

	id, err := parseAdventurerID(receipt.AdventurerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Corrupt receipt")
		return
	}
	if !s.checkAdventurerOwnership(w, r, id) {
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: receipt})
}

// getAdventurer returns the adventurer's view with any prediction applied
func (s *Server) getAdventurer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.adventurerID(w, r)
	if !ok {
		return
	}

	f, ok, err := s.feeds.Lookup(id)
	if err != nil {
		s.writeAppError(w, err, "Failed to load adventurer")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Adventurer not found")
		return
	}

	view := f.View()
	if view.State.Adventurer == nil && len(view.Events) == 0 {
		writeError(w, http.StatusNotFound, "Adventurer not found")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: view})
}

// listEvents lists confirmed events, optionally filtered
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := s.adventurerID(w, r)
	if !ok {
		return
	}

	limit := s.recentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxEventPage {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	var f *filter.Filter
	if src := r.URL.Query().Get("filter"); src != "" {
		if err := validation.ValidateFilter(src); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		compiled, err := filter.Compile(src)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		f = compiled
	}

	events, err := s.db.ListEvents(id.String(), limit)
	if err != nil {
		s.writeAppError(w, err, "Failed to list events")
		return
	}

	if f != nil {
		events, err = f.Apply(r.Context(), events)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: events})
}

// listReceipts lists an adventurer's receipt batches
func (s *Server) listReceipts(w http.ResponseWriter, r *http.Request) {
	id, ok := s.adventurerID(w, r)
	if !ok {
		return
	}

	receipts, err := s.db.ListReceipts(id.String())
	if err != nil {
		s.writeAppError(w, err, "Failed to list receipts")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: receipts})
}

// predictStats records the optimistic events for a stat allocation
func (s *Server) predictStats(w http.ResponseWriter, r *http.Request) {
	id, ok := s.adventurerID(w, r)
	if !ok {
		return
	}

	var req struct {
		Stats game.Stats `json:"stats"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	f, adv, ok := s.confirmedAdventurer(w, id)
	if !ok {
		return
	}
	if err := validation.ValidateStatAllocation(adv.Stats, req.Stats, adv.StatUpgradesAvailable); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	prediction, err := f.PredictStats(req.Stats)
	if err != nil {
		s.writeAppError(w, err, "Failed to predict")
		return
	}

	writeJSON(w, http.StatusAccepted, Response{Success: true, Data: prediction})
}

// predictPurchase records the optimistic events for a market purchase
func (s *Server) predictPurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := s.adventurerID(w, r)
	if !ok {
		return
	}

	var req optimistic.Purchase
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	f, adv, ok := s.confirmedAdventurer(w, id)
	if !ok {
		return
	}
	if err := validation.ValidatePurchase(req, adv.Gold); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	prediction, err := f.PredictPurchase(req)
	if err != nil {
		s.writeAppError(w, err, "Failed to predict")
		return
	}

	writeJSON(w, http.StatusAccepted, Response{Success: true, Data: prediction})
}

// rollback discards the pending prediction after a reverted transaction
func (s *Server) rollback(w http.ResponseWriter, r *http.Request) {
	id, ok := s.adventurerID(w, r)
	if !ok {
		return
	}

	f, ok, err := s.feeds.Lookup(id)
	if err != nil {
		s.writeAppError(w, err, "Failed to load adventurer")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Adventurer not found")
		return
	}
	dropped := f.Rollback()

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]int{"discarded": len(dropped)},
	})
}

func (s *Server) confirmedAdventurer(w http.ResponseWriter, id wire.Felt) (*feed.Feed, game.Adventurer, bool) {
	f, ok, err := s.feeds.Lookup(id)
	if err != nil {
		s.writeAppError(w, err, "Failed to load adventurer")
		return nil, game.Adventurer{}, false
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Adventurer not found")
		return nil, game.Adventurer{}, false
	}
	state := f.Confirmed()
	if state.Adventurer == nil {
		writeError(w, http.StatusNotFound, "Adventurer not found")
		return nil, game.Adventurer{}, false
	}
	return f, *state.Adventurer, true
}

package dispatch

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/frontboat/death-mountain-sub001/internal/apperr"
	"github.com/frontboat/death-mountain-sub001/internal/game"
	"github.com/frontboat/death-mountain-sub001/internal/schema"
	"github.com/frontboat/death-mountain-sub001/internal/wire"
)

// RawLog is one event log from a transaction receipt. Keys[0] is the event
// selector; the remaining keys are the event's indexed fields.
type RawLog struct {
	Keys []string `json:"keys"`
	Data []string `json:"data"`
}

// Config configures a Translator
type Config struct {
	// Registry defaults to schema.Default.
	Registry *schema.Registry
	// Catalogue defaults to DefaultCatalogue().
	Catalogue Catalogue
	// Envelope is the declared event name every game event is nested under.
	Envelope string
	Logger   *zap.Logger
}

// Translator turns raw logs into game events. It holds no per-call state and
// is safe for concurrent use.
type Translator struct {
	decoder   *schema.Decoder
	catalogue Catalogue
	envelope  string
	logger    *zap.Logger
}

// NewTranslator creates a translator, filling unset config with defaults
func NewTranslator(cfg Config) *Translator {
	if cfg.Registry == nil {
		cfg.Registry = schema.Default
	}
	if len(cfg.Catalogue) == 0 {
		cfg.Catalogue = DefaultCatalogue()
	}
	if cfg.Envelope == "" {
		cfg.Envelope = schema.EnvelopeComponent
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Translator{
		decoder:   schema.NewDecoder(cfg.Registry),
		catalogue: cfg.Catalogue,
		envelope:  cfg.Envelope,
		logger:    cfg.Logger,
	}
}

// Catalogue returns the event catalogue logs are matched against
func (t *Translator) Catalogue() Catalogue {
	return append(Catalogue(nil), t.catalogue...)
}

// Translate decodes one log for the given adventurer. Logs for other events
// fail with UNRECOGNIZED_EVENT, which callers treat as a skip. A log for a
// different adventurer fails with SESSION_MISMATCH.
func (t *Translator) Translate(log RawLog, adventurerID wire.Felt) (game.GameEvent, error) {
	if err := t.match(log); err != nil {
		return game.GameEvent{}, err
	}

	values := make([]string, 0, len(log.Keys)-1+len(log.Data))
	values = append(values, log.Keys[1:]...)
	values = append(values, log.Data...)
	c := wire.NewCursor(values)

	reg := t.decoder.Registry()
	envelope, err := t.decoder.DecodeComponent(c, reg.Root())
	if err != nil {
		return game.GameEvent{}, fmt.Errorf("decode envelope: %w", err)
	}

	b := &binder{}
	id := b.felt(envelope, schema.FieldAdventurerID)
	actionCount := b.u16(envelope, schema.FieldActionCount)
	if b.err != nil {
		return game.GameEvent{}, b.err
	}
	if !id.Equal(adventurerID) {
		return game.GameEvent{}, apperr.WithMetadata(apperr.CodeSessionMismatch,
			"event belongs to another adventurer",
			map[string]string{"expected": adventurerID.String(), "actual": id.String()})
	}

	rawTag, err := t.decoder.Decode(c, schema.Integer)
	if err != nil {
		return game.GameEvent{}, fmt.Errorf("decode type tag: %w", err)
	}
	tag := rawTag.(uint64)
	kind, err := game.KindFromTag(tag)
	if err != nil {
		return game.GameEvent{}, err
	}
	variant, ok := reg.Variant(tag)
	if !ok || variant.Name != string(kind) {
		return game.GameEvent{}, apperr.WithMetadata(apperr.CodeUnknownEventKind,
			fmt.Sprintf("schema has no %s variant at tag %d", kind, tag),
			map[string]string{"tag": strconv.FormatUint(tag, 10)})
	}

	decoded, err := t.decoder.Decode(c, variant.Payload)
	if err != nil {
		return game.GameEvent{}, fmt.Errorf("decode %s payload: %w", kind, err)
	}
	if n := c.Remaining(); n > 0 {
		return game.GameEvent{}, apperr.WithMetadata(apperr.CodeTrailingValues,
			fmt.Sprintf("%d values left after %s payload", n, kind),
			map[string]string{"remaining": strconv.Itoa(n)})
	}

	rec, ok := decoded.(schema.Record)
	if !ok {
		return game.GameEvent{}, apperr.New(apperr.CodeSchemaBinding,
			fmt.Sprintf("%s payload is %s, not a component", kind, variant.Payload))
	}
	payload, err := bindPayload(kind, rec)
	if err != nil {
		return game.GameEvent{}, fmt.Errorf("bind %s payload: %w", kind, err)
	}
	return game.GameEvent{Type: kind, ActionCount: actionCount, Payload: payload}, nil
}

func (t *Translator) match(log RawLog) error {
	if len(log.Keys) == 0 {
		return apperr.New(apperr.CodeUnrecognizedEvent, "log has no selector")
	}
	sel, err := wire.ParseFelt(log.Keys[0])
	if err != nil {
		return apperr.Wrap(apperr.CodeUnrecognizedEvent, "log selector is not a scalar", err)
	}
	name, ok := t.catalogue.Lookup(sel)
	if !ok || name != t.envelope {
		return apperr.WithMetadata(apperr.CodeUnrecognizedEvent, "log is not a "+t.envelope+" event",
			map[string]string{"selector": sel.Hex(), "name": name})
	}
	return nil
}

// Failure records why one log of a receipt did not decode
type Failure struct {
	LogIndex int         `json:"log_index"`
	Code     apperr.Code `json:"code"`
	Err      error       `json:"-"`
}

// Result is the outcome of translating a whole receipt
type Result struct {
	Events []game.GameEvent `json:"events"`
	// LogIndexes[i] is the receipt position of Events[i].
	LogIndexes []int     `json:"log_indexes"`
	Failures   []Failure `json:"failures"`
	Ignored    int       `json:"ignored"`
}

// HasMismatch reports whether any log belonged to another adventurer
func (r Result) HasMismatch() bool {
	for _, f := range r.Failures {
		if f.Code == apperr.CodeSessionMismatch {
			return true
		}
	}
	return false
}

// TranslateReceipt decodes every log independently. Events keep receipt
// order and a failing log never stops its siblings.
func (t *Translator) TranslateReceipt(logs []RawLog, adventurerID wire.Felt) Result {
	res := Result{Events: []game.GameEvent{}, LogIndexes: []int{}, Failures: []Failure{}}
	for i, log := range logs {
		ev, err := t.Translate(log, adventurerID)
		if err == nil {
			res.Events = append(res.Events, ev)
			res.LogIndexes = append(res.LogIndexes, i)
			continue
		}

		code := apperr.CodeOf(err)
		switch {
		case code.Skippable():
			res.Ignored++
			t.logger.Debug("log ignored", zap.Int("log_index", i), zap.Error(err))
		case code == apperr.CodeSessionMismatch:
			res.Failures = append(res.Failures, Failure{LogIndex: i, Code: code, Err: err})
			t.logger.Error("session mismatch",
				zap.Int("log_index", i),
				zap.String("adventurer_id", adventurerID.String()),
				zap.Error(err))
		default:
			res.Failures = append(res.Failures, Failure{LogIndex: i, Code: code, Err: err})
			t.logger.Warn("log decode failed",
				zap.Int("log_index", i),
				zap.String("code", string(code)),
				zap.Error(err))
		}
	}
	return res
}

// Package filter evaluates user-supplied expressions against game events.
//
// An expression sees three variables: kind (string), action_count (number)
// and payload (the event's variant fields as decoded JSON), e.g.
//
//	kind == "attack" && payload.attack.critical_hit
package filter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/frontboat/death-mountain-sub001/internal/game"
)

// EvalTimeout bounds one evaluation
const EvalTimeout = 100 * time.Millisecond

// Filter is a compiled event predicate
type Filter struct {
	source  string
	program *vm.Program
}

// Compile checks an expression once so it can run against many events
func Compile(source string) (*Filter, error) {
	program, err := expr.Compile(source,
		expr.Env(map[string]any{
			"kind":         "",
			"action_count": 0.0,
			"payload":      map[string]any{},
		}),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return &Filter{source: source, program: program}, nil
}

// String returns the expression source
func (f *Filter) String() string {
	return f.source
}

// Match evaluates the filter against one event
func (f *Filter) Match(ctx context.Context, ev game.GameEvent) (bool, error) {
	env, err := eventEnv(ev)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, EvalTimeout)
	defer cancel()

	resultChan := make(chan any, 1)
	errChan := make(chan error, 1)

	go func() {
		result, err := vm.Run(f.program, env)
		if err != nil {
			errChan <- err
		} else {
			resultChan <- result
		}
	}()

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("filter evaluation timeout")
	case err := <-errChan:
		return false, fmt.Errorf("filter evaluation error: %w", err)
	case result := <-resultChan:
		ok, isBool := result.(bool)
		if !isBool {
			return false, fmt.Errorf("filter did not evaluate to boolean")
		}
		return ok, nil
	}
}

// Apply keeps the events that match, in order
func (f *Filter) Apply(ctx context.Context, events []game.GameEvent) ([]game.GameEvent, error) {
	out := make([]game.GameEvent, 0, len(events))
	for _, ev := range events {
		ok, err := f.Match(ctx, ev)
		if err != nil {
			return nil, fmt.Errorf("event %s at action %d: %w", ev.Type, ev.ActionCount, err)
		}
		if ok {
			out = append(out, ev)
		}
	}
	return out, nil
}

func eventEnv(ev game.GameEvent) (map[string]any, error) {
	payload := map[string]any{}
	if ev.Payload != nil {
		data, err := json.Marshal(ev.Payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", ev.Type, err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", ev.Type, err)
		}
	}
	return map[string]any{
		"kind":         string(ev.Type),
		"action_count": float64(ev.ActionCount),
		"payload":      payload,
	}, nil
}

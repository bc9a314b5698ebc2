package ui

import (
	"encoding/json"
	"fmt"
)

// Snapshot holds every state cell of a host as JSON, keyed by the cell path.
type Snapshot map[string]json.RawMessage

func (that Snapshot) Clone() Snapshot {
	clone := make(Snapshot, len(that))
	for key, value := range that {
		clone[key] = append(json.RawMessage(nil), value...)
	}

	return clone
}

// State is a single state cell. Set replaces the whole value and schedules a re-render.
type State[T any] struct {
	host  *Host
	key   string
	value T
}

// UseState - registers the cell name in scope, seeding it with initial on first use.
func UseState[T any](scope *Scope, name string, initial T) *State[T] {
	key := scope.key(name)
	host := scope.host

	cell := &State[T]{host: host, key: key, value: initial}

	raw, ok := host.state[key]
	if !ok {
		host.state[key] = mustMarshal(initial)
		return cell
	}

	if err := json.Unmarshal(raw, &cell.value); err != nil {
		host.errs = append(host.errs, fmt.Errorf("state %q reset: %w", key, err))
		cell.value = initial
		host.state[key] = mustMarshal(initial)
	}

	return cell
}

func (that *State[T]) Get() T {
	return that.value
}

func (that *State[T]) Set(value T) {
	that.value = value
	that.host.state[that.key] = mustMarshal(value)
	that.host.dirty = true
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

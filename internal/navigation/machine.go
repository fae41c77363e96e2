// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package navigation

import "sync"

// Machine holds the state of one navigation and applies events one at a time.
type Machine struct {
	mu    sync.Mutex
	cat   Catalog
	state State
}

// NewMachine starts a navigation in [MapIdle].
func NewMachine(cat Catalog) *Machine {
	return Resume(cat, Initial())
}

// Resume continues a navigation from state.
func Resume(cat Catalog, state State) *Machine {
	if state == nil {
		state = Initial()
	}
	return &Machine{cat: cat, state: state}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Apply runs one transition. When the event is not accepted the state is
// unchanged and [ErrIgnored] is returned alongside it.
func (m *Machine) Apply(event Event) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, accepted := Transition(m.cat, m.state, event)
	if !accepted {
		return m.state, ErrIgnored
	}
	m.state = next
	return next, nil
}

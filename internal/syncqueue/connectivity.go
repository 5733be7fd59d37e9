package syncqueue

import "sync"

// AlwaysOnline is a Connectivity that never changes, for compositions without
// a real probe.
type AlwaysOnline struct{}

func (AlwaysOnline) Online() bool { return true }

func (AlwaysOnline) Changes() <-chan bool { return nil }

// Manual is a Connectivity whose state is toggled explicitly. Each Changes
// call gets its own subscription; slow subscribers drop transitions rather
// than block the toggler.
type Manual struct {
	mu     sync.Mutex
	online bool
	subs   []chan bool
}

// NewManual creates a manual probe with the given initial state.
func NewManual(online bool) *Manual {
	return &Manual{online: online}
}

func (m *Manual) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

func (m *Manual) Changes() <-chan bool {
	ch := make(chan bool, 8)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

// SetOnline updates the state and broadcasts the transition to subscribers.
// Setting the current state again is a no-op.
func (m *Manual) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	subs := make([]chan bool, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- online:
		default:
		}
	}
}

package booking

import (
	"sync"

	"github.com/Domenick1991/gnawa-tickets/internal/domain"
)

type MutationState string

const (
	MutationIdle       MutationState = "idle"
	MutationSubmitting MutationState = "submitting"
	MutationSucceeded  MutationState = "succeeded"
	MutationFailed     MutationState = "failed"
)

// Mutation tracks one create-booking call: Idle -> Submitting -> Succeeded | Failed.
// Both outcomes are terminal.
type Mutation struct {
	mu      sync.RWMutex
	state   MutationState
	booking *domain.Booking
	err     error
}

type MutationSnapshot struct {
	State   MutationState
	Booking *domain.Booking
	Err     error
}

func NewMutation() *Mutation {
	return &Mutation{state: MutationIdle}
}

func (m *Mutation) submit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == MutationIdle {
		m.state = MutationSubmitting
	}
}

func (m *Mutation) succeed(b *domain.Booking) {
	m.finish(MutationSucceeded, b, nil)
}

func (m *Mutation) fail(b *domain.Booking, err error) {
	m.finish(MutationFailed, b, err)
}

func (m *Mutation) finish(state MutationState, b *domain.Booking, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != MutationSubmitting {
		return
	}
	m.state = state
	m.booking = b
	m.err = err
}

func (m *Mutation) State() MutationState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Mutation) Snapshot() MutationSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var b *domain.Booking
	if m.booking != nil {
		copied := *m.booking
		b = &copied
	}
	return MutationSnapshot{State: m.state, Booking: b, Err: m.err}
}

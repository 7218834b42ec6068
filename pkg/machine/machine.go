package machine

import (
	"errors"
	"fmt"
	"sync"
)

type State interface {
	~string
}

// Allowable maps where a from state is allowed to transition to
type Allowable[S State] struct {
	from S
	to   []S
}

// StateMachine tracks the current state of a context and guards its transitions
type StateMachine[S State] struct {
	mu       sync.Mutex
	current  S
	toStates []Allowable[S]
	history  []S
}

var (
	ErrInvalidTransition = errors.New("invalid state transition")
)

// TransitionBuilder helps in creating a from-to relationship for state transitions
type TransitionBuilder[S State] struct {
	transition Allowable[S]
}

func New[S State](currentState S, transitions ...Allowable[S]) *StateMachine[S] {
	return &StateMachine[S]{current: currentState, toStates: transitions, history: []S{currentState}}
}

// From initializes a transition from a specific state
func From[S State](from S) *TransitionBuilder[S] {
	return &TransitionBuilder[S]{transition: Allowable[S]{from: from}}
}

// To sets the possible destination states and returns the configured transition
func (tb *TransitionBuilder[S]) To(to ...S) Allowable[S] {
	tb.transition.to = to
	return tb.transition
}

// ToState determines if the current state can transition to s
func (m *StateMachine[S]) ToState(s S) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allowed(s)
}

func (m *StateMachine[S]) allowed(s S) error {
	for _, transition := range m.toStates {
		if transition.from != m.current {
			continue
		}

		for _, transitionToState := range transition.to {
			if transitionToState == s {
				return nil
			}
		}
	}

	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.current, s)
}

// Transition moves to s when allowed and records it
func (m *StateMachine[S]) Transition(s S) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.allowed(s); err != nil {
		return err
	}

	m.current = s
	m.history = append(m.history, s)
	return nil
}

// Current returns the state the machine is in
func (m *StateMachine[S]) Current() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// History returns every state visited, starting with the initial one
func (m *StateMachine[S]) History() []S {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]S, len(m.history))
	copy(out, m.history)
	return out
}

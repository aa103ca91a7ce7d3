package server

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var ErrInvalidTransition = errors.New("invalid state transition")

// State is the lifecycle state of a server.
type State int32

const (
	StateCreated State = iota
	StateBound
	StateServing
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateBound:
		return "bound"
	case StateServing:
		return "serving"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

type stateMachine struct {
	state atomic.Int32
}

func (m *stateMachine) load() State {
	return State(m.state.Load())
}

func (m *stateMachine) transition(from, to State) error {
	if !m.state.CompareAndSwap(int32(from), int32(to)) {
		return fmt.Errorf("%w: %s -> %s in state %s", ErrInvalidTransition, from, to, m.load())
	}

	return nil
}

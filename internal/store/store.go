// Package store holds the client-side authentication state: whether a user is
// signed in and who. State changes only through dispatched actions.
package store

import (
	"sync"

	"github.com/BloggingApp/blog-client/internal/model"
)

type State struct {
	Status   bool            `json:"status"`
	Identity *model.Identity `json:"identity"`
}

type ActionType string

const (
	ActionSetIdentity   ActionType = "SET_IDENTITY"
	ActionClearIdentity ActionType = "CLEAR_IDENTITY"
)

type Action struct {
	Type     ActionType
	Identity *model.Identity
}

func SetIdentity(identity *model.Identity) Action {
	return Action{Type: ActionSetIdentity, Identity: identity}
}

func ClearIdentity() Action {
	return Action{Type: ActionClearIdentity}
}

// Reduce returns the state after applying action to state. Unknown actions
// and a set without an identity leave the state as is.
func Reduce(state State, action Action) State {
	switch action.Type {
	case ActionSetIdentity:
		if action.Identity == nil {
			return state
		}
		identity := *action.Identity
		return State{Status: true, Identity: &identity}
	case ActionClearIdentity:
		return State{}
	default:
		return state
	}
}

// Listener is called after every dispatch that changed the state.
type Listener func(prev, next State)

type Store struct {
	mu        sync.RWMutex
	state     State
	listeners []Listener
}

func New() *Store {
	return &Store{}
}

// Dispatch applies action and reports whether the state changed.
func (s *Store) Dispatch(action Action) bool {
	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, action)
	if equal(prev, next) {
		s.mu.Unlock()
		return false
	}
	s.state = next
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(prev, next)
	}
	return true
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	if st.Identity != nil {
		identity := *st.Identity
		st.Identity = &identity
	}
	return st
}

func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func equal(a, b State) bool {
	if a.Status != b.Status {
		return false
	}
	if a.Identity == nil || b.Identity == nil {
		return a.Identity == b.Identity
	}
	return *a.Identity == *b.Identity
}

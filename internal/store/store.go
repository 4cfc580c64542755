// Package store owns the application state together with the history of
// applied actions, and implements undo/redo by replaying that history.
package store

import (
	"fmt"

	"github.com/kk-code-lab/fluxdir/internal/state"
)

// Reducer applies one action to a state. *state.Dispatcher satisfies it.
type Reducer interface {
	Dispatch(s *state.AppState, action state.Action) (state.Outcome, error)
}

// DispatchFunc is one link of the dispatch chain.
type DispatchFunc func(s *state.AppState, action state.Action) (state.Outcome, error)

// Middleware wraps a DispatchFunc. Middlewares see every live dispatch but
// never the replay performed by Undo and Redo.
type Middleware func(next DispatchFunc) DispatchFunc

// Option configures an AppStore.
type Option func(*AppStore)

// WithMiddleware appends middlewares; the first one given is outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(st *AppStore) {
		st.middleware = append(st.middleware, mw...)
	}
}

// AppStore is the owner of AppState and the replayable action history.
//
// history holds applied actions only; index is the replay cursor with
// 0 <= index <= len(history). The current state always equals the initial
// state with history[:index] replayed on top of it.
type AppStore struct {
	initial    *state.AppState
	current    *state.AppState
	reducer    Reducer
	middleware []Middleware
	dispatch   DispatchFunc

	history []state.Action
	index   int
}

// New creates a store. initial is cloned twice: one copy stays frozen as
// the replay origin, the other becomes the live state.
func New(initial *state.AppState, reducer Reducer, opts ...Option) *AppStore {
	st := &AppStore{
		initial: initial.Clone(),
		current: initial.Clone(),
		reducer: reducer,
	}
	for _, opt := range opts {
		opt(st)
	}

	chain := DispatchFunc(reducer.Dispatch)
	for i := len(st.middleware) - 1; i >= 0; i-- {
		chain = st.middleware[i](chain)
	}
	st.dispatch = chain
	return st
}

// State returns the live state. Callers read it through its accessors; the
// state package exposes no mutators.
func (st *AppStore) State() *state.AppState { return st.current }

// History returns a copy of the applied actions.
func (st *AppStore) History() []state.Action {
	out := make([]state.Action, len(st.history))
	copy(out, st.history)
	return out
}

// Index returns the replay cursor.
func (st *AppStore) Index() int { return st.index }

func (st *AppStore) CanUndo() bool { return st.index > 0 }
func (st *AppStore) CanRedo() bool { return st.index < len(st.history) }

// Dispatch runs action through the middleware chain and the reducer. Every
// applied action discards the redo tail and is appended to history, even
// one that changed nothing. Ignored and failed actions leave history
// untouched.
func (st *AppStore) Dispatch(action state.Action) (state.Outcome, error) {
	outcome, err := st.dispatch(st.current, action)
	if err != nil || outcome != state.OutcomeApplied {
		return outcome, err
	}
	st.history = append(st.history[:st.index:st.index], action)
	st.index = len(st.history)
	return outcome, nil
}

// Undo steps the cursor back by one and rebuilds the state from the
// initial snapshot.
func (st *AppStore) Undo() error {
	if st.index == 0 {
		return state.ErrNothingToUndo
	}
	return st.replayTo(st.index - 1)
}

// Redo re-applies the next action in history.
func (st *AppStore) Redo() error {
	if st.index >= len(st.history) {
		return state.ErrNothingToRedo
	}
	return st.replayTo(st.index + 1)
}

// replayTo rebuilds the state at cursor target. If the filesystem drifted
// and an action no longer applies, the store keeps its previous state and
// cursor.
func (st *AppStore) replayTo(target int) error {
	rebuilt := st.initial.Clone()
	for i, action := range st.history[:target] {
		if _, err := st.reducer.Dispatch(rebuilt, action); err != nil {
			return fmt.Errorf("replay step %d (%T): %w", i+1, action, err)
		}
	}
	st.current = rebuilt
	st.index = target
	return nil
}

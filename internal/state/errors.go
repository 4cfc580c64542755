package state

import "errors"

// Error taxonomy. Dispatcher and store errors wrap one of these, so callers
// test with errors.Is.
var (
	ErrIO            = errors.New("io error")
	ErrNotADirectory = errors.New("not a directory")
	ErrInvalidAction = errors.New("invalid action")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

package store

import (
	"errors"
	"fmt"

	"backlog-cli/internal/model"
)

// Backend is the persistence strategy behind the store: read the full
// snapshot, or rewrite it in full. Implementations report failures as
// ReadError/WriteError so callers can tell the two apart without knowing
// which backend is in use.
type Backend interface {
	ReadState() (model.State, error)
	WriteState(model.State) error
}

// ReadError means the persisted state could not be read (missing file,
// malformed content, unreachable database).
type ReadError struct {
	Err error
}

func (e ReadError) Error() string { return fmt.Sprintf("read backlog state: %v", e.Err) }
func (e ReadError) Unwrap() error { return e.Err }

// WriteError means the persisted state could not be rewritten.
type WriteError struct {
	Err error
}

func (e WriteError) Error() string { return fmt.Sprintf("write backlog state: %v", e.Err) }
func (e WriteError) Unwrap() error { return e.Err }

// NotFoundError reports a failed referential lookup.
type NotFoundError struct {
	Kind string // "epic" or "story"
	ID   uint64
}

func (e NotFoundError) Error() string { return fmt.Sprintf("%s not found: %d", e.Kind, e.ID) }

func errNoEpic(id uint64) error  { return NotFoundError{Kind: "epic", ID: id} }
func errNoStory(id uint64) error { return NotFoundError{Kind: "story", ID: id} }

// IsNotFound reports whether err is a referential lookup failure of any kind.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

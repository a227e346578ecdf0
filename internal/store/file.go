package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"backlog-cli/internal/model"
)

// FileBackend persists the snapshot as a single JSON document. Every write
// replaces the whole file; there is no partial update.
type FileBackend struct {
	Path string
}

func (b FileBackend) ReadState() (model.State, error) {
	raw, err := os.ReadFile(b.Path)
	if err != nil {
		return model.State{}, ReadError{Err: err}
	}
	var st model.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return model.State{}, ReadError{Err: err}
	}
	if st.Epics == nil {
		st.Epics = map[uint64]model.Epic{}
	}
	if st.Stories == nil {
		st.Stories = map[uint64]model.Story{}
	}
	return st, nil
}

func (b FileBackend) WriteState(st model.State) error {
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return WriteError{Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(b.Path), 0o755); err != nil {
		return WriteError{Err: err}
	}
	// Write to a sibling temp file and rename so a failed write leaves the
	// previous snapshot intact.
	tmp := b.Path + ".tmp"
	if err := os.WriteFile(tmp, append(raw, '\n'), 0o644); err != nil {
		return WriteError{Err: err}
	}
	if err := os.Rename(tmp, b.Path); err != nil {
		return WriteError{Err: err}
	}
	return nil
}

package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"backlog-cli/internal/model"
)

func TestFileBackendMissingFile(t *testing.T) {
	b := FileBackend{Path: filepath.Join(t.TempDir(), "db.json")}
	_, err := b.ReadState()
	var re ReadError
	if !errors.As(err, &re) {
		t.Fatalf("expected ReadError; got %v", err)
	}
}

func TestFileBackendMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte(`{ "lastItemId": 0 epics: {} }`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	b := FileBackend{Path: path}
	_, err := b.ReadState()
	var re ReadError
	if !errors.As(err, &re) {
		t.Fatalf("expected ReadError; got %v", err)
	}
}

func TestFileBackendEmptyState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte(`{ "lastItemId": 0, "epics": {}, "stories": {} }`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	b := FileBackend{Path: path}
	st, err := b.ReadState()
	if err != nil {
		t.Fatalf("ReadState: %v", err)
	}
	if st.LastItemID != 0 || len(st.Epics) != 0 || len(st.Stories) != 0 {
		t.Fatalf("expected empty state; got %+v", st)
	}
}

func testRoundTripState() model.State {
	return model.State{
		LastItemID: 2,
		Epics: map[uint64]model.Epic{
			1: {Name: "epic 1", Description: "epic 1", Status: model.StatusOpen, Stories: []uint64{2}},
		},
		Stories: map[uint64]model.Story{
			2: {Name: "story 2", Description: "story 2", Status: model.StatusInProgress},
		},
	}
}

func TestFileBackendRoundTrip(t *testing.T) {
	b := FileBackend{Path: filepath.Join(t.TempDir(), "db.json")}
	want := testRoundTripState()

	if err := b.WriteState(want); err != nil {
		t.Fatalf("WriteState: %v", err)
	}
	got, err := b.ReadState()
	if err != nil {
		t.Fatalf("ReadState: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestFileBackendRewriteReplacesContents(t *testing.T) {
	b := FileBackend{Path: filepath.Join(t.TempDir(), "db.json")}
	if err := b.WriteState(testRoundTripState()); err != nil {
		t.Fatalf("WriteState: %v", err)
	}
	if err := b.WriteState(model.NewState()); err != nil {
		t.Fatalf("WriteState: %v", err)
	}
	got, err := b.ReadState()
	if err != nil {
		t.Fatalf("ReadState: %v", err)
	}
	if got.LastItemID != 0 || len(got.Epics) != 0 || len(got.Stories) != 0 {
		t.Fatalf("expected empty state after rewrite; got %+v", got)
	}
}

func TestOpenPicksBackendByExtension(t *testing.T) {
	dir := t.TempDir()

	s := Open(filepath.Join(dir, "db.json"))
	if _, ok := s.backend.(FileBackend); !ok {
		t.Fatalf("expected FileBackend for .json; got %T", s.backend)
	}

	s = Open(filepath.Join(dir, "state.sqlite"))
	if _, ok := s.backend.(SQLiteBackend); !ok {
		t.Fatalf("expected SQLiteBackend for .sqlite; got %T", s.backend)
	}
}

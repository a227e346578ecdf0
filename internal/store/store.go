package store

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"backlog-cli/internal/model"
)

// Store owns the persisted snapshot and enforces referential integrity
// between epics and stories. Every mutating operation reads the full current
// state, validates the referenced ids (failing fast with no side effect),
// applies one mutation to a copy, and rewrites the full state. Either the
// entire mutation is persisted or nothing is.
type Store struct {
	backend Backend
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Open picks a backend for path by extension: .sqlite/.db selects SQLite,
// anything else is the JSON file backend.
func Open(path string) *Store {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sqlite", ".db":
		return New(SQLiteBackend{Path: path})
	default:
		return New(FileBackend{Path: path})
	}
}

// Read returns the current snapshot.
func (s *Store) Read() (model.State, error) {
	return s.backend.ReadState()
}

// EnsureInitialized seeds an empty snapshot when nothing has been persisted
// yet. Existing state that fails to read for any other reason (including
// malformed content) keeps returning its ReadError.
func (s *Store) EnsureInitialized() error {
	_, err := s.backend.ReadState()
	if err == nil {
		return nil
	}
	var re ReadError
	if !errors.As(err, &re) || !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return s.backend.WriteState(model.NewState())
}

// CreateEpic allocates the next item id for epic and persists it.
func (s *Store) CreateEpic(epic model.Epic) (uint64, error) {
	st, err := s.backend.ReadState()
	if err != nil {
		return 0, err
	}

	id := st.LastItemID + 1
	st.Epics[id] = epic
	st.LastItemID = id

	if err := s.backend.WriteState(st); err != nil {
		return 0, err
	}
	return id, nil
}

// CreateStory allocates the next item id for story, attaches it to the epic,
// and persists both together.
func (s *Store) CreateStory(story model.Story, epicID uint64) (uint64, error) {
	st, err := s.backend.ReadState()
	if err != nil {
		return 0, err
	}

	epic, ok := st.Epics[epicID]
	if !ok {
		return 0, errNoEpic(epicID)
	}

	id := st.LastItemID + 1
	st.Stories[id] = story
	epic.Stories = append(epic.Stories, id)
	st.Epics[epicID] = epic
	st.LastItemID = id

	if err := s.backend.WriteState(st); err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteEpic removes the epic and cascades to every story it references.
func (s *Store) DeleteEpic(epicID uint64) error {
	st, err := s.backend.ReadState()
	if err != nil {
		return err
	}

	epic, ok := st.Epics[epicID]
	if !ok {
		return errNoEpic(epicID)
	}
	for _, storyID := range epic.Stories {
		delete(st.Stories, storyID)
	}
	delete(st.Epics, epicID)

	return s.backend.WriteState(st)
}

// DeleteStory removes one story from the given epic. The story must be listed
// under that epic: a story id that only exists elsewhere in the store fails
// the membership check and leaves state untouched.
func (s *Store) DeleteStory(epicID, storyID uint64) error {
	st, err := s.backend.ReadState()
	if err != nil {
		return err
	}

	epic, ok := st.Epics[epicID]
	if !ok {
		return errNoEpic(epicID)
	}
	i := slices.Index(epic.Stories, storyID)
	if i < 0 {
		return errNoStory(storyID)
	}
	if _, ok := st.Stories[storyID]; !ok {
		return errNoStory(storyID)
	}

	delete(st.Stories, storyID)
	epic.Stories = slices.Delete(epic.Stories, i, i+1)
	st.Epics[epicID] = epic

	return s.backend.WriteState(st)
}

// SetEpicStatus updates only the epic's status field.
func (s *Store) SetEpicStatus(epicID uint64, status model.Status) error {
	st, err := s.backend.ReadState()
	if err != nil {
		return err
	}

	epic, ok := st.Epics[epicID]
	if !ok {
		return errNoEpic(epicID)
	}
	epic.Status = status
	st.Epics[epicID] = epic

	return s.backend.WriteState(st)
}

// SetStoryStatus updates only the story's status field.
func (s *Store) SetStoryStatus(storyID uint64, status model.Status) error {
	st, err := s.backend.ReadState()
	if err != nil {
		return err
	}

	story, ok := st.Stories[storyID]
	if !ok {
		return errNoStory(storyID)
	}
	story.Status = status
	st.Stories[storyID] = story

	return s.backend.WriteState(st)
}

package store

import (
	"errors"
	"reflect"
	"testing"

	"backlog-cli/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(NewMemoryBackend())
}

func TestCreateEpic(t *testing.T) {
	s := newTestStore(t)
	epic := model.NewEpic("", "")

	id, err := s.CreateEpic(epic)
	if err != nil {
		t.Fatalf("CreateEpic: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected id 1; got %d", id)
	}

	st, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if st.LastItemID != id {
		t.Fatalf("expected lastItemId %d; got %d", id, st.LastItemID)
	}
	if got, ok := st.Epics[id]; !ok || !reflect.DeepEqual(got, epic) {
		t.Fatalf("expected epic %+v under id %d; got %+v (ok=%v)", epic, id, got, ok)
	}
}

func TestCreateEpicIDsIncreaseByOne(t *testing.T) {
	s := newTestStore(t)
	var prev uint64
	for i := 0; i < 5; i++ {
		id, err := s.CreateEpic(model.NewEpic("e", ""))
		if err != nil {
			t.Fatalf("CreateEpic #%d: %v", i, err)
		}
		if id != prev+1 {
			t.Fatalf("expected id %d; got %d", prev+1, id)
		}
		prev = id
	}
	st, _ := s.Read()
	if st.LastItemID != prev {
		t.Fatalf("expected lastItemId %d; got %d", prev, st.LastItemID)
	}
}

func TestCreateStoryInvalidEpicID(t *testing.T) {
	s := newTestStore(t)
	before, _ := s.Read()

	_, err := s.CreateStory(model.NewStory("", ""), 999)
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "epic" {
		t.Fatalf("expected epic NotFoundError; got %v", err)
	}

	after, _ := s.Read()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed on failed CreateStory:\nbefore: %+v\nafter:  %+v", before, after)
	}
}

func TestCreateStory(t *testing.T) {
	s := newTestStore(t)
	story := model.NewStory("", "")

	epicID, err := s.CreateEpic(model.NewEpic("", ""))
	if err != nil {
		t.Fatalf("CreateEpic: %v", err)
	}
	id, err := s.CreateStory(story, epicID)
	if err != nil {
		t.Fatalf("CreateStory: %v", err)
	}
	if id != 2 {
		t.Fatalf("expected id 2; got %d", id)
	}

	st, _ := s.Read()
	if st.LastItemID != id {
		t.Fatalf("expected lastItemId %d; got %d", id, st.LastItemID)
	}
	if !reflect.DeepEqual(st.Epics[epicID].Stories, []uint64{id}) {
		t.Fatalf("expected epic stories [%d]; got %v", id, st.Epics[epicID].Stories)
	}
	if got := st.Stories[id]; !reflect.DeepEqual(got, story) {
		t.Fatalf("expected story %+v; got %+v", story, got)
	}
}

func TestDeleteEpicInvalidID(t *testing.T) {
	s := newTestStore(t)
	if err := s.DeleteEpic(999); !IsNotFound(err) {
		t.Fatalf("expected NotFoundError; got %v", err)
	}
}

func TestDeleteEpicCascades(t *testing.T) {
	s := newTestStore(t)

	epicID, _ := s.CreateEpic(model.NewEpic("", ""))
	storyID, err := s.CreateStory(model.NewStory("", ""), epicID)
	if err != nil {
		t.Fatalf("CreateStory: %v", err)
	}

	otherEpic, _ := s.CreateEpic(model.NewEpic("other", ""))
	otherStory, _ := s.CreateStory(model.NewStory("other", ""), otherEpic)

	if err := s.DeleteEpic(epicID); err != nil {
		t.Fatalf("DeleteEpic: %v", err)
	}

	st, _ := s.Read()
	if _, ok := st.Epics[epicID]; ok {
		t.Fatalf("epic %d still present after delete", epicID)
	}
	if _, ok := st.Stories[storyID]; ok {
		t.Fatalf("story %d still present after cascade delete", storyID)
	}
	// Unrelated entities are untouched.
	if _, ok := st.Epics[otherEpic]; !ok {
		t.Fatalf("unrelated epic %d was removed", otherEpic)
	}
	if _, ok := st.Stories[otherStory]; !ok {
		t.Fatalf("unrelated story %d was removed", otherStory)
	}
	if st.LastItemID != otherStory {
		t.Fatalf("expected lastItemId %d; got %d", otherStory, st.LastItemID)
	}
}

func TestDeleteStoryInvalidEpicID(t *testing.T) {
	s := newTestStore(t)
	epicID, _ := s.CreateEpic(model.NewEpic("", ""))
	storyID, _ := s.CreateStory(model.NewStory("", ""), epicID)

	err := s.DeleteStory(999, storyID)
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "epic" {
		t.Fatalf("expected epic NotFoundError; got %v", err)
	}
}

func TestDeleteStoryNotInEpic(t *testing.T) {
	s := newTestStore(t)
	epicID, _ := s.CreateEpic(model.NewEpic("", ""))
	if _, err := s.CreateStory(model.NewStory("", ""), epicID); err != nil {
		t.Fatalf("CreateStory: %v", err)
	}

	err := s.DeleteStory(epicID, 999)
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "story" {
		t.Fatalf("expected story NotFoundError; got %v", err)
	}
}

func TestDeleteStoryListedUnderOtherEpic(t *testing.T) {
	s := newTestStore(t)
	epicA, _ := s.CreateEpic(model.NewEpic("a", ""))
	epicB, _ := s.CreateEpic(model.NewEpic("b", ""))
	storyB, _ := s.CreateStory(model.NewStory("", ""), epicB)

	before, _ := s.Read()

	// storyB is a valid story key, but it is not listed under epicA.
	err := s.DeleteStory(epicA, storyB)
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "story" {
		t.Fatalf("expected story NotFoundError; got %v", err)
	}

	after, _ := s.Read()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed on failed DeleteStory")
	}
}

func TestDeleteStory(t *testing.T) {
	s := newTestStore(t)
	epicID, _ := s.CreateEpic(model.NewEpic("", ""))
	storyID, _ := s.CreateStory(model.NewStory("", ""), epicID)

	if err := s.DeleteStory(epicID, storyID); err != nil {
		t.Fatalf("DeleteStory: %v", err)
	}

	st, _ := s.Read()
	if st.LastItemID != storyID {
		t.Fatalf("expected lastItemId %d; got %d", storyID, st.LastItemID)
	}
	if _, ok := st.Stories[storyID]; ok {
		t.Fatalf("story %d still present after delete", storyID)
	}
	if got := st.Epics[epicID].Stories; len(got) != 0 {
		t.Fatalf("expected empty story list; got %v", got)
	}
}

func TestSetEpicStatusInvalidID(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetEpicStatus(999, model.StatusClosed); !IsNotFound(err) {
		t.Fatalf("expected NotFoundError; got %v", err)
	}
}

func TestSetEpicStatus(t *testing.T) {
	s := newTestStore(t)
	epicID, _ := s.CreateEpic(model.NewEpic("name", "desc"))

	if err := s.SetEpicStatus(epicID, model.StatusClosed); err != nil {
		t.Fatalf("SetEpicStatus: %v", err)
	}

	st, _ := s.Read()
	epic := st.Epics[epicID]
	if epic.Status != model.StatusClosed {
		t.Fatalf("expected status closed; got %q", epic.Status)
	}
	// Only the status field changes.
	if epic.Name != "name" || epic.Description != "desc" || len(epic.Stories) != 0 {
		t.Fatalf("unexpected field change: %+v", epic)
	}
}

func TestSetStoryStatusInvalidID(t *testing.T) {
	s := newTestStore(t)
	err := s.SetStoryStatus(999, model.StatusClosed)
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "story" {
		t.Fatalf("expected story NotFoundError; got %v", err)
	}
}

func TestSetStoryStatus(t *testing.T) {
	s := newTestStore(t)
	epicID, _ := s.CreateEpic(model.NewEpic("", ""))
	storyID, _ := s.CreateStory(model.NewStory("name", "desc"), epicID)

	if err := s.SetStoryStatus(storyID, model.StatusInProgress); err != nil {
		t.Fatalf("SetStoryStatus: %v", err)
	}

	st, _ := s.Read()
	story := st.Stories[storyID]
	if story.Status != model.StatusInProgress {
		t.Fatalf("expected status in-progress; got %q", story.Status)
	}
	if story.Name != "name" || story.Description != "desc" {
		t.Fatalf("unexpected field change: %+v", story)
	}
}

func TestCreateThenDeleteScenario(t *testing.T) {
	s := newTestStore(t)

	epicID, err := s.CreateEpic(model.NewEpic("", ""))
	if err != nil || epicID != 1 {
		t.Fatalf("CreateEpic: id=%d err=%v", epicID, err)
	}
	storyID, err := s.CreateStory(model.NewStory("", ""), epicID)
	if err != nil || storyID != 2 {
		t.Fatalf("CreateStory: id=%d err=%v", storyID, err)
	}

	st, _ := s.Read()
	if !reflect.DeepEqual(st.Epics[1].Stories, []uint64{2}) {
		t.Fatalf("expected epics[1].stories == [2]; got %v", st.Epics[1].Stories)
	}

	if err := s.DeleteStory(1, 2); err != nil {
		t.Fatalf("DeleteStory: %v", err)
	}
	st, _ = s.Read()
	if _, ok := st.Stories[2]; ok {
		t.Fatalf("stories still has key 2")
	}
	if got := st.Epics[1].Stories; len(got) != 0 {
		t.Fatalf("expected epics[1].stories == []; got %v", got)
	}
}

// failingWriteBackend reads a fixed snapshot but refuses every rewrite, so
// tests can observe the write-failure path of each mutation.
type failingWriteBackend struct {
	state model.State
}

func (b failingWriteBackend) ReadState() (model.State, error) {
	return b.state.Clone(), nil
}

func (b failingWriteBackend) WriteState(model.State) error {
	return WriteError{Err: errors.New("disk full")}
}

func TestCreateEpicSurfacesWriteFailure(t *testing.T) {
	s := New(failingWriteBackend{state: model.NewState()})

	_, err := s.CreateEpic(model.NewEpic("e", ""))
	if err == nil {
		t.Fatalf("expected write failure")
	}
	var we WriteError
	if !errors.As(err, &we) {
		t.Fatalf("err = %v; want a WriteError", err)
	}
}

func TestDeleteEpicSurfacesWriteFailure(t *testing.T) {
	st := model.NewState()
	st.LastItemID = 1
	st.Epics[1] = model.NewEpic("e", "")
	s := New(failingWriteBackend{state: st})

	err := s.DeleteEpic(1)
	if err == nil {
		t.Fatalf("expected write failure")
	}
	var we WriteError
	if !errors.As(err, &we) {
		t.Fatalf("err = %v; want a WriteError", err)
	}
}

func TestSetStoryStatusSurfacesWriteFailure(t *testing.T) {
	st := model.NewState()
	st.LastItemID = 2
	epic := model.NewEpic("e", "")
	epic.Stories = []uint64{2}
	st.Epics[1] = epic
	st.Stories[2] = model.NewStory("s", "")
	s := New(failingWriteBackend{state: st})

	err := s.SetStoryStatus(2, model.StatusClosed)
	var we WriteError
	if !errors.As(err, &we) {
		t.Fatalf("err = %v; want a WriteError", err)
	}
}

package model

import (
	"fmt"
	"slices"
	"strings"
)

// Status is the lifecycle state shared by epics and stories.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Statuses lists all states in lifecycle order. The interactive status prompt
// maps the numeric tokens 1-4 onto this slice.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

// Label returns the canonical display label shown in listings.
func (s Status) Label() string {
	switch s {
	case StatusOpen:
		return "OPEN"
	case StatusInProgress:
		return "IN PROGRESS"
	case StatusResolved:
		return "RESOLVED"
	case StatusClosed:
		return "CLOSED"
	default:
		return strings.ToUpper(string(s))
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// ParseStatus accepts status names as used on the CLI (case-insensitive,
// "in progress" and "inprogress" are tolerated alongside "in-progress").
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return StatusOpen, nil
	case "in-progress", "in progress", "inprogress":
		return StatusInProgress, nil
	case "resolved":
		return StatusResolved, nil
	case "closed":
		return StatusClosed, nil
	default:
		return "", fmt.Errorf("invalid status: %q", strings.TrimSpace(s))
	}
}

// Epic is a top-level work item. Stories holds the ids of the stories that
// belong to this epic, in creation order.
type Epic struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Stories     []uint64 `json:"stories"`
}

func NewEpic(name, description string) Epic {
	return Epic{
		Name:        name,
		Description: description,
		Status:      StatusOpen,
		Stories:     []uint64{},
	}
}

// Story is a leaf work item. It carries no back-reference to its epic; epic
// membership is tracked only in Epic.Stories, so story-scoped operations are
// always handed the epic id by the caller.
type Story struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

func NewStory(name, description string) Story {
	return Story{
		Name:        name,
		Description: description,
		Status:      StatusOpen,
	}
}

// State is the full persisted snapshot. Epics and stories share one id
// counter: LastItemID is the highest id ever allocated and ids are never
// reused, so the two key sets stay disjoint.
type State struct {
	LastItemID uint64           `json:"lastItemId"`
	Epics      map[uint64]Epic  `json:"epics"`
	Stories    map[uint64]Story `json:"stories"`
}

func NewState() State {
	return State{
		Epics:   map[uint64]Epic{},
		Stories: map[uint64]Story{},
	}
}

// Clone returns a deep copy. Mutating operations work on a clone so a failed
// validation never touches the snapshot handed to the caller.
func (st State) Clone() State {
	out := State{
		LastItemID: st.LastItemID,
		Epics:      make(map[uint64]Epic, len(st.Epics)),
		Stories:    make(map[uint64]Story, len(st.Stories)),
	}
	for id, e := range st.Epics {
		stories := make([]uint64, len(e.Stories))
		copy(stories, e.Stories)
		e.Stories = stories
		out.Epics[id] = e
	}
	for id, s := range st.Stories {
		out.Stories[id] = s
	}
	return out
}

// SortedEpicIDs returns epic ids in ascending order for deterministic listings.
func (st State) SortedEpicIDs() []uint64 {
	return sortedKeys(st.Epics)
}

// SortedStoryIDs returns story ids in ascending order for deterministic listings.
func (st State) SortedStoryIDs() []uint64 {
	return sortedKeys(st.Stories)
}

func sortedKeys[V any](m map[uint64]V) []uint64 {
	ids := make([]uint64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

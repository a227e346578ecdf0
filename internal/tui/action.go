package tui

// ActionKind enumerates every user intent a page can produce. The set is
// closed; the navigator switches over it exhaustively.
type ActionKind int

const (
	ActionCreateEpic ActionKind = iota
	ActionNavigateToEpicDetail
	ActionUpdateEpicStatus
	ActionDeleteEpic
	ActionCreateStory
	ActionNavigateToStoryDetail
	ActionUpdateStoryStatus
	ActionDeleteStory
	ActionNavigateToPreviousPage
	ActionExit
)

// Action is a user intent produced by a page and consumed by the navigator.
// Story-scoped actions carry the epic id alongside the story id because
// stories hold no back-reference to their epic.
type Action struct {
	Kind    ActionKind
	EpicID  uint64
	StoryID uint64
}

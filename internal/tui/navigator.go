package tui

import (
	"fmt"

	"backlog-cli/internal/store"
)

// Navigator owns the page stack and is the only place where navigation and
// store mutations intersect. The top of the stack is the displayed page; an
// empty stack is the terminal condition.
type Navigator struct {
	stack   []Page
	store   *store.Store
	prompts *Prompts
}

func NewNavigator(s *store.Store, prompts *Prompts) *Navigator {
	return &Navigator{
		stack:   []Page{&HomePage{Store: s}},
		store:   s,
		prompts: prompts,
	}
}

// CurrentPage returns the top of the stack, or nil once the stack is empty.
func (n *Navigator) CurrentPage() Page {
	if len(n.stack) == 0 {
		return nil
	}
	return n.stack[len(n.stack)-1]
}

// Depth reports the stack depth.
func (n *Navigator) Depth() int { return len(n.stack) }

// HandleAction applies one action to the stack and/or the store. A store
// failure is returned wrapped and leaves the stack exactly as it was.
func (n *Navigator) HandleAction(a Action) error {
	switch a.Kind {
	case ActionNavigateToEpicDetail:
		n.push(&EpicDetailPage{EpicID: a.EpicID, Store: n.store})

	case ActionNavigateToStoryDetail:
		n.push(&StoryDetailPage{EpicID: a.EpicID, StoryID: a.StoryID, Store: n.store})

	case ActionNavigateToPreviousPage:
		n.pop()

	case ActionExit:
		n.stack = n.stack[:0]

	case ActionCreateEpic:
		epic := n.prompts.CreateEpic()
		if _, err := n.store.CreateEpic(epic); err != nil {
			return fmt.Errorf("create epic: %w", err)
		}

	case ActionCreateStory:
		story := n.prompts.CreateStory()
		if _, err := n.store.CreateStory(story, a.EpicID); err != nil {
			return fmt.Errorf("create story: %w", err)
		}

	case ActionDeleteEpic:
		if !n.prompts.ConfirmDeleteEpic() {
			return nil
		}
		if err := n.store.DeleteEpic(a.EpicID); err != nil {
			return fmt.Errorf("delete epic: %w", err)
		}
		// Back to the page that listed this epic.
		n.pop()

	case ActionDeleteStory:
		if !n.prompts.ConfirmDeleteStory() {
			return nil
		}
		if err := n.store.DeleteStory(a.EpicID, a.StoryID); err != nil {
			return fmt.Errorf("delete story: %w", err)
		}
		n.pop()

	case ActionUpdateEpicStatus:
		status, ok := n.prompts.PickStatus()
		if !ok {
			return nil
		}
		if err := n.store.SetEpicStatus(a.EpicID, status); err != nil {
			return fmt.Errorf("update epic status: %w", err)
		}

	case ActionUpdateStoryStatus:
		status, ok := n.prompts.PickStatus()
		if !ok {
			return nil
		}
		if err := n.store.SetStoryStatus(a.StoryID, status); err != nil {
			return fmt.Errorf("update story status: %w", err)
		}
	}

	return nil
}

func (n *Navigator) push(p Page) {
	n.stack = append(n.stack, p)
}

func (n *Navigator) pop() {
	if len(n.stack) > 0 {
		n.stack = n.stack[:len(n.stack)-1]
	}
}

package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"backlog-cli/internal/store"
)

// Page is one screen of the navigation stack. Render returns the full page
// text; HandleInput maps one raw input line to an action (ok=false means the
// input produced no action and the page is simply redrawn).
type Page interface {
	Render() (string, error)
	HandleInput(input string) (Action, bool, error)
}

// RenderError means a page was asked to render (or interpret input) against
// data that no longer exists or could not be read.
type RenderError struct {
	Page string
	Err  error
}

func (e RenderError) Error() string { return fmt.Sprintf("draw %s page: %v", e.Page, e.Err) }
func (e RenderError) Unwrap() error { return e.Err }

// Listing column widths match the header rows below.
const (
	listIDWidth     = 12
	listNameWidth   = 34
	listStatusWidth = 18

	detailIDWidth     = 6
	detailNameWidth   = 14
	detailDescWidth   = 29
	detailStatusWidth = 14

	descriptionWrapWidth = 72
)

// HomePage lists every epic sorted by id.
type HomePage struct {
	Store *store.Store
}

func (p *HomePage) Render() (string, error) {
	st, err := p.Store.Read()
	if err != nil {
		return "", RenderError{Page: "home", Err: err}
	}

	var b strings.Builder
	b.WriteString(styleBanner.Render("----------------------------- EPICS -----------------------------"))
	b.WriteString("\n")
	b.WriteString(styleColumnHead.Render("     id     |               name               |      status      "))
	b.WriteString("\n")

	for _, id := range st.SortedEpicIDs() {
		epic := st.Epics[id]
		b.WriteString(columnRow(
			columnCell(strconv.FormatUint(id, 10), listIDWidth),
			columnCell(epic.Name, listNameWidth),
			statusLabel(epic.Status, listStatusWidth),
		))
		b.WriteString("\n")
	}

	b.WriteString("\n\n")
	b.WriteString(styleHints.Render("[q] quit | [c] create epic | [:id:] navigate to epic"))
	return b.String(), nil
}

func (p *HomePage) HandleInput(input string) (Action, bool, error) {
	if input == "" {
		return Action{}, false, nil
	}
	if id, err := strconv.ParseUint(input, 10, 64); err == nil {
		st, err := p.Store.Read()
		if err != nil {
			return Action{}, false, RenderError{Page: "home", Err: err}
		}
		if _, ok := st.Epics[id]; ok {
			return Action{Kind: ActionNavigateToEpicDetail, EpicID: id}, true, nil
		}
		return Action{}, false, nil
	}
	switch input {
	case "q":
		return Action{Kind: ActionExit}, true, nil
	case "c":
		return Action{Kind: ActionCreateEpic}, true, nil
	default:
		return Action{}, false, nil
	}
}

// EpicDetailPage shows one epic and the stories that belong to it.
type EpicDetailPage struct {
	EpicID uint64
	Store  *store.Store
}

func (p *EpicDetailPage) Render() (string, error) {
	st, err := p.Store.Read()
	if err != nil {
		return "", RenderError{Page: "epic", Err: err}
	}
	epic, ok := st.Epics[p.EpicID]
	if !ok {
		return "", RenderError{Page: "epic", Err: store.NotFoundError{Kind: "epic", ID: p.EpicID}}
	}

	var b strings.Builder
	b.WriteString(styleBanner.Render("------------------------------ EPIC ------------------------------"))
	b.WriteString("\n")
	b.WriteString(styleColumnHead.Render("  id  |     name     |         description         |    status    "))
	b.WriteString("\n")
	b.WriteString(columnRow(
		columnCell(strconv.FormatUint(p.EpicID, 10), detailIDWidth),
		columnCell(epic.Name, detailNameWidth),
		columnCell(epic.Description, detailDescWidth),
		statusLabel(epic.Status, detailStatusWidth),
	))
	b.WriteString("\n")

	if desc := renderMarkdown(epic.Description, descriptionWrapWidth); desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleBanner.Render("---------------------------- STORIES ----------------------------"))
	b.WriteString("\n")
	b.WriteString(styleColumnHead.Render("     id     |               name               |      status      "))
	b.WriteString("\n")

	// Only this epic's stories. Creation order is already ascending, but a
	// sorted copy keeps the listing deterministic regardless of history.
	ids := make([]uint64, len(epic.Stories))
	copy(ids, epic.Stories)
	slices.Sort(ids)
	for _, id := range ids {
		story, ok := st.Stories[id]
		if !ok {
			continue
		}
		b.WriteString(columnRow(
			columnCell(strconv.FormatUint(id, 10), listIDWidth),
			columnCell(story.Name, listNameWidth),
			statusLabel(story.Status, listStatusWidth),
		))
		b.WriteString("\n")
	}

	b.WriteString("\n\n")
	b.WriteString(styleHints.Render("[p] previous | [u] update epic | [d] delete epic | [c] create story | [:id:] navigate to story"))
	return b.String(), nil
}

func (p *EpicDetailPage) HandleInput(input string) (Action, bool, error) {
	if input == "" {
		return Action{}, false, nil
	}
	if id, err := strconv.ParseUint(input, 10, 64); err == nil {
		st, err := p.Store.Read()
		if err != nil {
			return Action{}, false, RenderError{Page: "epic", Err: err}
		}
		if _, ok := st.Stories[id]; ok {
			return Action{Kind: ActionNavigateToStoryDetail, EpicID: p.EpicID, StoryID: id}, true, nil
		}
		return Action{}, false, nil
	}
	switch input {
	case "p":
		return Action{Kind: ActionNavigateToPreviousPage}, true, nil
	case "u":
		return Action{Kind: ActionUpdateEpicStatus, EpicID: p.EpicID}, true, nil
	case "d":
		return Action{Kind: ActionDeleteEpic, EpicID: p.EpicID}, true, nil
	case "c":
		return Action{Kind: ActionCreateStory, EpicID: p.EpicID}, true, nil
	default:
		return Action{}, false, nil
	}
}

// StoryDetailPage shows one story.
type StoryDetailPage struct {
	EpicID  uint64
	StoryID uint64
	Store   *store.Store
}

func (p *StoryDetailPage) Render() (string, error) {
	st, err := p.Store.Read()
	if err != nil {
		return "", RenderError{Page: "story", Err: err}
	}
	story, ok := st.Stories[p.StoryID]
	if !ok {
		return "", RenderError{Page: "story", Err: store.NotFoundError{Kind: "story", ID: p.StoryID}}
	}

	var b strings.Builder
	b.WriteString(styleBanner.Render("------------------------------ STORY ------------------------------"))
	b.WriteString("\n")
	b.WriteString(styleColumnHead.Render("  id  |     name     |         description         |    status    "))
	b.WriteString("\n")
	b.WriteString(columnRow(
		columnCell(strconv.FormatUint(p.StoryID, 10), detailIDWidth),
		columnCell(story.Name, detailNameWidth),
		columnCell(story.Description, detailDescWidth),
		statusLabel(story.Status, detailStatusWidth),
	))
	b.WriteString("\n")

	if desc := renderMarkdown(story.Description, descriptionWrapWidth); desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
		b.WriteString("\n")
	}

	b.WriteString("\n\n")
	b.WriteString(styleHints.Render("[p] previous | [u] update story | [d] delete story"))
	return b.String(), nil
}

func (p *StoryDetailPage) HandleInput(input string) (Action, bool, error) {
	if input == "" {
		return Action{}, false, nil
	}
	if _, err := strconv.ParseUint(input, 10, 64); err == nil {
		return Action{}, false, nil
	}
	switch input {
	case "p":
		return Action{Kind: ActionNavigateToPreviousPage}, true, nil
	case "q":
		return Action{Kind: ActionExit}, true, nil
	case "u":
		return Action{Kind: ActionUpdateStoryStatus, StoryID: p.StoryID}, true, nil
	case "d":
		return Action{Kind: ActionDeleteStory, EpicID: p.EpicID, StoryID: p.StoryID}, true, nil
	default:
		return Action{}, false, nil
	}
}

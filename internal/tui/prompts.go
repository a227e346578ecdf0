package tui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"backlog-cli/internal/model"
)

// Prompts holds the interactive inputs the navigator needs for mutating
// actions. It is a struct of funcs so tests can substitute deterministic
// stand-ins for each prompt.
type Prompts struct {
	CreateEpic         func() model.Epic
	CreateStory        func() model.Story
	ConfirmDeleteEpic  func() bool
	ConfirmDeleteStory func() bool
	// PickStatus returns ok=false when the user cancels.
	PickStatus func() (model.Status, bool)
}

// NewPrompts builds the interactive prompt set reading lines from in and
// writing prompt text to w. The reader is shared with the interaction loop
// so prompt reads and page input consume one stream.
func NewPrompts(in *bufio.Reader, w io.Writer) *Prompts {
	readLine := func() string {
		line, _ := in.ReadString('\n')
		return strings.TrimSpace(line)
	}

	return &Prompts{
		CreateEpic: func() model.Epic {
			fmt.Fprintln(w, "----------------------------")
			fmt.Fprintln(w, "Epic Name:")
			name := readLine()
			fmt.Fprintln(w, "Epic Description:")
			description := readLine()
			return model.NewEpic(name, description)
		},
		CreateStory: func() model.Story {
			fmt.Fprintln(w, "----------------------------")
			fmt.Fprintln(w, "Story Name:")
			name := readLine()
			fmt.Fprintln(w, "Story Description:")
			description := readLine()
			return model.NewStory(name, description)
		},
		ConfirmDeleteEpic: func() bool {
			fmt.Fprintln(w, "----------------------------")
			fmt.Fprintln(w, "Are you sure you want to delete this epic? All stories in this epic will also be deleted [Y/n]:")
			return confirmed(readLine())
		},
		ConfirmDeleteStory: func() bool {
			fmt.Fprintln(w, "----------------------------")
			fmt.Fprintln(w, "Are you sure you want to delete this story? [Y/n]:")
			return confirmed(readLine())
		},
		PickStatus: func() (model.Status, bool) {
			fmt.Fprintln(w, "----------------------------")
			fmt.Fprintln(w, "New Status (1 - OPEN, 2 - IN-PROGRESS, 3 - RESOLVED, 4 - CLOSED):")
			n, err := strconv.Atoi(readLine())
			if err != nil || n < 1 || n > len(model.Statuses) {
				return "", false
			}
			return model.Statuses[n-1], true
		},
	}
}

// confirmed treats empty input as yes; anything other than y/Y declines.
func confirmed(input string) bool {
	switch input {
	case "", "Y", "y":
		return true
	default:
		return false
	}
}

package tui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"backlog-cli/internal/store"
)

// Run drives the interaction loop: clear the screen, render the current
// page, read one line, interpret it, and hand any action to the navigator.
// Failures are displayed and the loop waits for one keypress before redrawing
// the same page. The loop ends once the navigator's stack is empty.
func Run(s *store.Store) error {
	in := bufio.NewReader(os.Stdin)
	return run(s, NewPrompts(in, os.Stdout), in, os.Stdout)
}

func run(s *store.Store, prompts *Prompts, in *bufio.Reader, out io.Writer) error {
	nav := NewNavigator(s, prompts)
	term := termenv.NewOutput(out)

	for {
		page := nav.CurrentPage()
		if page == nil {
			return nil
		}

		term.ClearScreen()

		view, err := page.Render()
		if err != nil {
			if !pause(out, in, err) {
				return nil
			}
			continue
		}
		fmt.Fprintln(out, view)

		line, readErr := in.ReadString('\n')
		input := strings.TrimSpace(line)

		action, ok, err := page.HandleInput(input)
		if err != nil {
			if !pause(out, in, err) {
				return nil
			}
			continue
		}
		if ok {
			if err := nav.HandleAction(action); err != nil {
				if !pause(out, in, err) {
					return nil
				}
				continue
			}
		}

		if readErr != nil {
			// Input source is exhausted (e.g. stdin closed); stop instead of
			// redrawing forever.
			return nil
		}
	}
}

// pause shows the error and blocks for one line. It returns false when the
// input source is exhausted.
func pause(out io.Writer, in *bufio.Reader, err error) bool {
	fmt.Fprintln(out, err)
	fmt.Fprintln(out, "(press Enter to continue)")
	_, readErr := in.ReadString('\n')
	return readErr == nil
}

package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"backlog-cli/internal/model"
)

// epicView is the JSON shape of one epic in command output; listings carry
// the id explicitly since the store keys epics by id.
type epicView struct {
	ID          uint64       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Status      model.Status `json:"status"`
	Stories     []uint64     `json:"stories"`
}

func newEpicsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "epics",
		Short: "Epic commands",
	}
	cmd.AddCommand(newEpicsListCmd(app))
	cmd.AddCommand(newEpicsShowCmd(app))
	cmd.AddCommand(newEpicsCreateCmd(app))
	cmd.AddCommand(newEpicsDeleteCmd(app))
	cmd.AddCommand(newEpicsSetStatusCmd(app))
	return cmd
}

func newEpicsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List epics sorted by id",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := s.Read()
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make([]epicView, 0, len(st.Epics))
			for _, id := range st.SortedEpicIDs() {
				e := st.Epics[id]
				out = append(out, epicView{ID: id, Name: e.Name, Description: e.Description, Status: e.Status, Stories: e.Stories})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newEpicsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <epic-id>",
		Short: "Show one epic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := s.Read()
			if err != nil {
				return writeErr(cmd, err)
			}
			e, ok := st.Epics[id]
			if !ok {
				return writeErr(cmd, errNoEpic(id))
			}
			return writeOut(cmd, app, map[string]any{
				"data": epicView{ID: id, Name: e.Name, Description: e.Description, Status: e.Status, Stories: e.Stories},
			})
		},
	}
}

func newEpicsCreateCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an epic",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			epic := model.NewEpic(name, description)
			id, err := s.CreateEpic(epic)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": epicView{ID: id, Name: epic.Name, Description: epic.Description, Status: epic.Status, Stories: epic.Stories},
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Epic name")
	cmd.Flags().StringVar(&description, "description", "", "Epic description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newEpicsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <epic-id>",
		Short: "Delete an epic and every story in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.DeleteEpic(id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}
}

func newEpicsSetStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <epic-id> <status>",
		Short: "Set an epic's status (open, in-progress, resolved, closed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			status, err := model.ParseStatus(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SetEpicStatus(id, status); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "status": status}})
		},
	}
}

func parseID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, invalidIDError{arg: arg}
	}
	return id, nil
}

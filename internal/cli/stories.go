package cli

import (
	"github.com/spf13/cobra"

	"backlog-cli/internal/model"
)

type storyView struct {
	ID          uint64       `json:"id"`
	EpicID      uint64       `json:"epicId,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Status      model.Status `json:"status"`
}

func newStoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stories",
		Short: "Story commands",
	}
	cmd.AddCommand(newStoriesListCmd(app))
	cmd.AddCommand(newStoriesCreateCmd(app))
	cmd.AddCommand(newStoriesDeleteCmd(app))
	cmd.AddCommand(newStoriesSetStatusCmd(app))
	return cmd
}

func newStoriesListCmd(app *App) *cobra.Command {
	var epicID uint64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an epic's stories sorted by id",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := s.Read()
			if err != nil {
				return writeErr(cmd, err)
			}
			epic, ok := st.Epics[epicID]
			if !ok {
				return writeErr(cmd, errNoEpic(epicID))
			}
			out := make([]storyView, 0, len(epic.Stories))
			for _, id := range epic.Stories {
				story, ok := st.Stories[id]
				if !ok {
					continue
				}
				out = append(out, storyView{ID: id, EpicID: epicID, Name: story.Name, Description: story.Description, Status: story.Status})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().Uint64Var(&epicID, "epic", 0, "Epic id")
	_ = cmd.MarkFlagRequired("epic")
	return cmd
}

func newStoriesCreateCmd(app *App) *cobra.Command {
	var epicID uint64
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a story under an epic",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			story := model.NewStory(name, description)
			id, err := s.CreateStory(story, epicID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": storyView{ID: id, EpicID: epicID, Name: story.Name, Description: story.Description, Status: story.Status},
			})
		},
	}

	cmd.Flags().Uint64Var(&epicID, "epic", 0, "Epic id")
	cmd.Flags().StringVar(&name, "name", "", "Story name")
	cmd.Flags().StringVar(&description, "description", "", "Story description")
	_ = cmd.MarkFlagRequired("epic")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newStoriesDeleteCmd(app *App) *cobra.Command {
	var epicID uint64

	cmd := &cobra.Command{
		Use:   "delete <story-id>",
		Short: "Delete a story from its epic",
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
			if err := s.DeleteStory(epicID, id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}

	cmd.Flags().Uint64Var(&epicID, "epic", 0, "Epic id the story belongs to")
	_ = cmd.MarkFlagRequired("epic")
	return cmd
}

func newStoriesSetStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <story-id> <status>",
		Short: "Set a story's status (open, in-progress, resolved, closed)",
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
			if err := s.SetStoryStatus(id, status); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "status": status}})
		},
	}
}

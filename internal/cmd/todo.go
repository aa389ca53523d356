package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/service"
)

var (
	todoTitle   string
	todoHeading string
	todoForce   bool

	todoHeadingName  string
	todoHeadingColor string
)

var todoCmd = &cobra.Command{
	Use:     "todo",
	Aliases: []string{"todos"},
	Short:   "Todo list commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewTodoService(env)
		return svc.List(cmd.Context())
	},
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos grouped by heading",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewTodoService(env)
		return svc.List(cmd.Context())
	},
}

var todoAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewTodoService(env)
		return svc.Add(cmd.Context(), args[0], todoHeading)
	},
}

var todoEditCmd = &cobra.Command{
	Use:   "edit <todo-id>",
	Short: "Retitle a todo or move it to another heading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var title, heading *string
		if cmd.Flags().Changed("title") {
			title = &todoTitle
		}
		if cmd.Flags().Changed("heading") {
			heading = &todoHeading
		}
		svc := service.NewTodoService(env)
		return svc.Edit(cmd.Context(), args[0], title, heading)
	},
}

var todoDoneCmd = &cobra.Command{
	Use:   "done <todo-id>",
	Short: "Mark a todo done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewTodoService(env)
		return svc.SetDone(cmd.Context(), args[0], true)
	},
}

var todoUndoneCmd = &cobra.Command{
	Use:   "undone <todo-id>",
	Short: "Reopen a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewTodoService(env)
		return svc.SetDone(cmd.Context(), args[0], false)
	},
}

var todoDeleteCmd = &cobra.Command{
	Use:   "delete <todo-id>",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewTodoService(env)
		return svc.Delete(cmd.Context(), args[0], todoForce)
	},
}

var todoHeadingCmd = &cobra.Command{
	Use:   "heading",
	Short: "Manage todo headings",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewTodoService(env)
		return svc.ListHeadings(cmd.Context())
	},
}

var todoHeadingAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a todo heading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewTodoService(env)
		return svc.AddHeading(cmd.Context(), args[0], todoHeadingColor)
	},
}

var todoHeadingEditCmd = &cobra.Command{
	Use:   "edit <heading-id>",
	Short: "Rename or recolor a todo heading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewTodoService(env)
		return svc.EditHeading(cmd.Context(), args[0], todoHeadingName, todoHeadingColor)
	},
}

var todoHeadingDeleteCmd = &cobra.Command{
	Use:   "delete <heading-id>",
	Short: "Delete a todo heading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewTodoService(env)
		return svc.DeleteHeading(cmd.Context(), args[0], todoForce)
	},
}

func init() {
	todoAddCmd.Flags().StringVar(&todoHeading, "heading", "", "Todo heading ID")
	todoEditCmd.Flags().StringVar(&todoTitle, "title", "", "New title")
	todoEditCmd.Flags().StringVar(&todoHeading, "heading", "", "Todo heading ID; empty to ungroup")
	todoDeleteCmd.Flags().BoolVarP(&todoForce, "force", "f", false, "Do not ask for confirmation")

	todoHeadingAddCmd.Flags().StringVar(&todoHeadingColor, "color", "", "Heading color (hex)")
	todoHeadingEditCmd.Flags().StringVar(&todoHeadingName, "name", "", "New name")
	todoHeadingEditCmd.Flags().StringVar(&todoHeadingColor, "color", "", "New color (hex)")
	todoHeadingDeleteCmd.Flags().BoolVarP(&todoForce, "force", "f", false, "Do not ask for confirmation")

	todoHeadingCmd.AddCommand(todoHeadingAddCmd)
	todoHeadingCmd.AddCommand(todoHeadingEditCmd)
	todoHeadingCmd.AddCommand(todoHeadingDeleteCmd)

	todoCmd.AddCommand(todoListCmd)
	todoCmd.AddCommand(todoAddCmd)
	todoCmd.AddCommand(todoEditCmd)
	todoCmd.AddCommand(todoDoneCmd)
	todoCmd.AddCommand(todoUndoneCmd)
	todoCmd.AddCommand(todoDeleteCmd)
	todoCmd.AddCommand(todoHeadingCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/service"
)

var (
	headingColor string
	headingName  string
	headingForce bool
)

var headingCmd = &cobra.Command{
	Use:   "heading",
	Short: "Manage target headings",
	Long:  "Create, rename, recolor and delete the headings that group your steps",
}

var headingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List headings",
	RunE: func(cmd *cobra.Command, args []string) error {
		headingSvc := service.NewHeadingService(env)
		return headingSvc.List(cmd.Context())
	},
}

var headingShowCmd = &cobra.Command{
	Use:   "show <heading-id>",
	Short: "Show a heading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headingSvc := service.NewHeadingService(env)
		return headingSvc.Show(cmd.Context(), args[0])
	},
}

var headingAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a heading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headingSvc := service.NewHeadingService(env)
		return headingSvc.Add(cmd.Context(), args[0], headingColor)
	},
}

var headingEditCmd = &cobra.Command{
	Use:   "edit <heading-id>",
	Short: "Rename or recolor a heading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headingSvc := service.NewHeadingService(env)
		return headingSvc.Edit(cmd.Context(), args[0], headingName, headingColor)
	},
}

var headingDeleteCmd = &cobra.Command{
	Use:   "delete <heading-id>",
	Short: "Delete a heading; its steps move to Others",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headingSvc := service.NewHeadingService(env)
		return headingSvc.Delete(cmd.Context(), args[0], headingForce)
	},
}

func init() {
	headingAddCmd.Flags().StringVar(&headingColor, "color", "", "Heading color (hex)")
	headingEditCmd.Flags().StringVar(&headingName, "name", "", "New name")
	headingEditCmd.Flags().StringVar(&headingColor, "color", "", "New color (hex)")
	headingDeleteCmd.Flags().BoolVarP(&headingForce, "force", "f", false, "Do not ask for confirmation")

	headingCmd.AddCommand(headingListCmd)
	headingCmd.AddCommand(headingShowCmd)
	headingCmd.AddCommand(headingAddCmd)
	headingCmd.AddCommand(headingEditCmd)
	headingCmd.AddCommand(headingDeleteCmd)
}

package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/service"
)

var targetCmd = &cobra.Command{
	Use:     "target",
	Aliases: []string{"today"},
	Short:   "Track today's targets",
	Long: `Show and update today's steps. A step can be referenced by its ID or by
a unique, case-insensitive part of its title.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetSvc := service.NewTargetService(env)
		return targetSvc.List(cmd.Context())
	},
}

var targetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List today's steps grouped by heading",
	RunE: func(cmd *cobra.Command, args []string) error {
		targetSvc := service.NewTargetService(env)
		return targetSvc.List(cmd.Context())
	},
}

var targetIncCmd = &cobra.Command{
	Use:   "inc <step>",
	Short: "Increment a count step",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targetSvc := service.NewTargetService(env)
		return targetSvc.Apply(cmd.Context(), args[0], service.OpIncrement, 0)
	},
}

var targetDecCmd = &cobra.Command{
	Use:   "dec <step>",
	Short: "Decrement a count step",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targetSvc := service.NewTargetService(env)
		return targetSvc.Apply(cmd.Context(), args[0], service.OpDecrement, 0)
	},
}

var targetSetCmd = &cobra.Command{
	Use:   "set <step> <value>",
	Short: "Set today's value of a step",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		targetSvc := service.NewTargetService(env)
		return targetSvc.Apply(cmd.Context(), args[0], service.OpSet, n)
	},
}

var targetToggleCmd = &cobra.Command{
	Use:   "toggle <step>",
	Short: "Toggle a yes/no step",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targetSvc := service.NewTargetService(env)
		return targetSvc.Apply(cmd.Context(), args[0], service.OpToggle, 0)
	},
}

var targetHeadingToggleCmd = &cobra.Command{
	Use:   "heading-toggle <heading>",
	Short: "Expand or collapse a heading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targetSvc := service.NewTargetService(env)
		return targetSvc.ToggleHeading(cmd.Context(), args[0])
	},
}

func init() {
	targetCmd.AddCommand(targetListCmd)
	targetCmd.AddCommand(targetIncCmd)
	targetCmd.AddCommand(targetDecCmd)
	targetCmd.AddCommand(targetSetCmd)
	targetCmd.AddCommand(targetToggleCmd)
	targetCmd.AddCommand(targetHeadingToggleCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/service"
)

var (
	stepTitle       string
	stepDescription string
	stepType        string
	stepDays        []string
	stepPublic      bool
	stepHeading     string
	stepIcon        string
	stepForce       bool
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Manage target steps",
	Long:  "Create, edit and delete the steps tracked on your target page",
}

var stepListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all steps",
	RunE: func(cmd *cobra.Command, args []string) error {
		stepSvc := service.NewStepService(env)
		return stepSvc.List(cmd.Context())
	},
}

var stepShowCmd = &cobra.Command{
	Use:   "show <step-id>",
	Short: "Show a step",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stepSvc := service.NewStepService(env)
		return stepSvc.Show(cmd.Context(), args[0])
	},
}

var stepAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a step",
	Long: `Create a step. Count steps track a number per day, bool steps a yes/no.
Days are weekday names such as "Mon,Wed,Fri"; none means every day.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := stepInput(cmd)
		in.Title = &args[0]
		stepSvc := service.NewStepService(env)
		return stepSvc.Add(cmd.Context(), in)
	},
}

var stepEditCmd = &cobra.Command{
	Use:   "edit <step-id>",
	Short: "Edit a step; unset flags keep their values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stepSvc := service.NewStepService(env)
		return stepSvc.Edit(cmd.Context(), args[0], stepInput(cmd))
	},
}

var stepStatusCmd = &cobra.Command{
	Use:       "status <step-id> <active|suspended|completed>",
	Short:     "Change a step's status",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"active", "suspended", "completed"},
	RunE: func(cmd *cobra.Command, args []string) error {
		stepSvc := service.NewStepService(env)
		return stepSvc.SetStatus(cmd.Context(), args[0], args[1])
	},
}

var stepDeleteCmd = &cobra.Command{
	Use:   "delete <step-id>",
	Short: "Delete a step",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stepSvc := service.NewStepService(env)
		return stepSvc.Delete(cmd.Context(), args[0], stepForce)
	},
}

var iconsCmd = &cobra.Command{
	Use:   "icons [query]",
	Short: "List step icon names",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		stepSvc := service.NewStepService(env)
		return stepSvc.Icons(query)
	},
}

// stepInput collects only the flags the user actually set.
func stepInput(cmd *cobra.Command) service.StepInput {
	flags := cmd.Flags()
	var in service.StepInput
	if flags.Changed("title") {
		in.Title = &stepTitle
	}
	if flags.Changed("description") {
		in.Description = &stepDescription
	}
	if flags.Changed("type") {
		in.Type = &stepType
	}
	if flags.Changed("days") {
		in.Days, in.DaysSet = stepDays, true
	}
	if flags.Changed("public") {
		in.Public = &stepPublic
	}
	if flags.Changed("heading") {
		in.Heading = &stepHeading
	}
	if flags.Changed("icon") {
		in.Icon = &stepIcon
	}
	return in
}

func addStepFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&stepDescription, "description", "", "Description")
	cmd.Flags().StringSliceVar(&stepDays, "days", nil, "Weekdays, e.g. Mon,Wed,Fri")
	cmd.Flags().BoolVar(&stepPublic, "public", false, "Show the step to friends")
	cmd.Flags().StringVar(&stepHeading, "heading", "", "Heading ID; empty for Others")
	cmd.Flags().StringVar(&stepIcon, "icon", "", "Icon name (see 'deserve icons')")
}

func init() {
	addStepFlags(stepAddCmd)
	stepAddCmd.Flags().StringVar(&stepType, "type", "count", "Step type: count or bool")

	addStepFlags(stepEditCmd)
	stepEditCmd.Flags().StringVar(&stepTitle, "title", "", "New title")

	stepDeleteCmd.Flags().BoolVarP(&stepForce, "force", "f", false, "Do not ask for confirmation")

	stepCmd.AddCommand(stepListCmd)
	stepCmd.AddCommand(stepShowCmd)
	stepCmd.AddCommand(stepAddCmd)
	stepCmd.AddCommand(stepEditCmd)
	stepCmd.AddCommand(stepStatusCmd)
	stepCmd.AddCommand(stepDeleteCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/service"
)

var (
	reminderTitle       string
	reminderDescription string
	reminderTime        string
	reminderRepeat      string
	reminderDays        []string
	reminderForce       bool
)

var reminderCmd = &cobra.Command{
	Use:     "reminder",
	Aliases: []string{"reminders"},
	Short:   "Reminder commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewReminderService(env)
		return svc.List(cmd.Context())
	},
}

var reminderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewReminderService(env)
		return svc.List(cmd.Context())
	},
}

var reminderAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a reminder",
	Long: `Add a reminder. --time accepts "HH:MM" (today), "YYYY-MM-DD HH:MM" or
RFC 3339. --repeat is none, daily, weekly or custom; custom needs --days.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := reminderInput(cmd)
		in.Title = &args[0]
		svc := service.NewReminderService(env)
		return svc.Add(cmd.Context(), in)
	},
}

var reminderEditCmd = &cobra.Command{
	Use:   "edit <reminder-id>",
	Short: "Edit a reminder; unset flags keep their values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewReminderService(env)
		return svc.Edit(cmd.Context(), args[0], reminderInput(cmd))
	},
}

var reminderDeleteCmd = &cobra.Command{
	Use:   "delete <reminder-id>",
	Short: "Delete a reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewReminderService(env)
		return svc.Delete(cmd.Context(), args[0], reminderForce)
	},
}

func reminderInput(cmd *cobra.Command) service.ReminderInput {
	flags := cmd.Flags()
	var in service.ReminderInput
	if flags.Changed("title") {
		in.Title = &reminderTitle
	}
	if flags.Changed("description") {
		in.Description = &reminderDescription
	}
	if flags.Changed("time") {
		in.Time = &reminderTime
	}
	if flags.Changed("repeat") {
		in.Repeat = &reminderRepeat
	}
	if flags.Changed("days") {
		in.Days, in.DaysSet = reminderDays, true
	}
	return in
}

func addReminderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&reminderDescription, "description", "", "Description")
	cmd.Flags().StringVar(&reminderTime, "time", "", "When to remind")
	cmd.Flags().StringVar(&reminderRepeat, "repeat", "", "Repeat: none, daily, weekly or custom")
	cmd.Flags().StringSliceVar(&reminderDays, "days", nil, "Weekdays for custom repeat, e.g. Mon,Thu")
}

func init() {
	addReminderFlags(reminderAddCmd)
	addReminderFlags(reminderEditCmd)
	reminderEditCmd.Flags().StringVar(&reminderTitle, "title", "", "New title")
	reminderDeleteCmd.Flags().BoolVarP(&reminderForce, "force", "f", false, "Do not ask for confirmation")

	reminderCmd.AddCommand(reminderListCmd)
	reminderCmd.AddCommand(reminderAddCmd)
	reminderCmd.AddCommand(reminderEditCmd)
	reminderCmd.AddCommand(reminderDeleteCmd)
}

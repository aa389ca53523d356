package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/service"
)

var (
	feedbackTitle       string
	feedbackDescription string
	feedbackTag         string
	feedbackForce       bool
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Feedback board commands",
	Long:  "Report bugs and request features. Only the admin can change an item's status.",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewFeedbackService(env)
		return svc.List(cmd.Context())
	},
}

var feedbackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List feedback",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewFeedbackService(env)
		return svc.List(cmd.Context())
	},
}

var feedbackShowCmd = &cobra.Command{
	Use:   "show <feedback-id>",
	Short: "Show a feedback item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewFeedbackService(env)
		return svc.Show(cmd.Context(), args[0])
	},
}

var feedbackAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Submit feedback",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := feedbackDescription
		if description == "" && env.Prompt.Interactive() {
			d, err := env.Prompt.Multiline("Description", 50)
			if err != nil {
				return err
			}
			description = d
		}
		svc := service.NewFeedbackService(env)
		return svc.Add(cmd.Context(), args[0], description, feedbackTag)
	},
}

var feedbackEditCmd = &cobra.Command{
	Use:   "edit <feedback-id>",
	Short: "Edit a feedback item; unset flags keep their values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewFeedbackService(env)
		return svc.Edit(cmd.Context(), args[0], feedbackTitle, feedbackDescription, feedbackTag)
	},
}

var feedbackStatusCmd = &cobra.Command{
	Use:   "status <feedback-id> <status>",
	Short: "Set a feedback item's status (admin only)",
	Long:  `Status is one of: open, "in progress", fixed, "need more info".`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewFeedbackService(env)
		return svc.SetStatus(cmd.Context(), args[0], args[1])
	},
}

var feedbackDeleteCmd = &cobra.Command{
	Use:   "delete <feedback-id>",
	Short: "Delete a feedback item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewFeedbackService(env)
		return svc.Delete(cmd.Context(), args[0], feedbackForce)
	},
}

func init() {
	feedbackAddCmd.Flags().StringVarP(&feedbackDescription, "description", "d", "", "Description (prompted when empty)")
	feedbackAddCmd.Flags().StringVarP(&feedbackTag, "tag", "t", "feedback", `Tag: feedback, bug, "feature request" or "ui / ux issue"`)

	feedbackEditCmd.Flags().StringVar(&feedbackTitle, "title", "", "New title")
	feedbackEditCmd.Flags().StringVarP(&feedbackDescription, "description", "d", "", "New description")
	feedbackEditCmd.Flags().StringVarP(&feedbackTag, "tag", "t", "", "New tag")

	feedbackDeleteCmd.Flags().BoolVarP(&feedbackForce, "force", "f", false, "Do not ask for confirmation")

	feedbackCmd.AddCommand(feedbackListCmd)
	feedbackCmd.AddCommand(feedbackShowCmd)
	feedbackCmd.AddCommand(feedbackAddCmd)
	feedbackCmd.AddCommand(feedbackEditCmd)
	feedbackCmd.AddCommand(feedbackStatusCmd)
	feedbackCmd.AddCommand(feedbackDeleteCmd)
}

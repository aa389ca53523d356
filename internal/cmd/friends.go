package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/service"
)

var friendForce bool

var friendsCmd = &cobra.Command{
	Use:     "friends",
	Aliases: []string{"friend"},
	Short:   "Friends commands",
	Long:    "Add friends by user ID and look at their public steps for today",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewFriendService(env)
		return svc.List(cmd.Context())
	},
}

var friendsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your friends",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewFriendService(env)
		return svc.List(cmd.Context())
	},
}

var friendsAddCmd = &cobra.Command{
	Use:   "add <user-id>",
	Short: "Add a friend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewFriendService(env)
		return svc.Add(cmd.Context(), args[0])
	},
}

var friendsRemoveCmd = &cobra.Command{
	Use:   "remove <user-id>",
	Short: "Remove a friend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewFriendService(env)
		return svc.Remove(cmd.Context(), args[0], friendForce)
	},
}

var friendsTodayCmd = &cobra.Command{
	Use:   "today <user-id>",
	Short: "Show a friend's public steps for today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewFriendService(env)
		return svc.Today(cmd.Context(), args[0])
	},
}

func init() {
	friendsRemoveCmd.Flags().BoolVarP(&friendForce, "force", "f", false, "Do not ask for confirmation")

	friendsCmd.AddCommand(friendsListCmd)
	friendsCmd.AddCommand(friendsAddCmd)
	friendsCmd.AddCommand(friendsRemoveCmd)
	friendsCmd.AddCommand(friendsTodayCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/service"
)

var deserveForce bool

var deserveCmd = &cobra.Command{
	Use:   "deserve",
	Short: "Things you want and have to earn",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewDeserveService(env)
		return svc.List(cmd.Context())
	},
}

var deserveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your rewards",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewDeserveService(env)
		return svc.List(cmd.Context())
	},
}

var deserveAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a reward",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewDeserveService(env)
		return svc.Add(cmd.Context(), args[0])
	},
}

var deserveEditCmd = &cobra.Command{
	Use:   "edit <id> <title>",
	Short: "Rename a reward",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewDeserveService(env)
		return svc.Edit(cmd.Context(), args[0], args[1])
	},
}

var deserveDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a reward",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewDeserveService(env)
		return svc.Delete(cmd.Context(), args[0], deserveForce)
	},
}

func init() {
	deserveDeleteCmd.Flags().BoolVarP(&deserveForce, "force", "f", false, "Do not ask for confirmation")

	deserveCmd.AddCommand(deserveListCmd)
	deserveCmd.AddCommand(deserveAddCmd)
	deserveCmd.AddCommand(deserveEditCmd)
	deserveCmd.AddCommand(deserveDeleteCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/service"
)

var reportPeriod string

var reportCmd = &cobra.Command{
	Use:   "report <step-id>",
	Short: "Show a step's history",
	Long:  "Show a step's daily values over the last week, month or year",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewReportService(env)
		return svc.Show(cmd.Context(), args[0], reportPeriod)
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportPeriod, "period", "p", "week", "Period: week, month or year")
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VisheshVGR/do-i-deserve-it-website/internal/tui"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/config"
)

var tuiNoListen bool

var tuiCmd = &cobra.Command{
	Use:         "tui",
	Short:       "Open the interactive tracker",
	Long:        "Full-screen interface for today's targets, friends, todos, reminders and feedback",
	Annotations: map[string]string{annotationFullscreen: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := tui.Options{OpenBrowser: openBrowser}
		if !tuiNoListen {
			opts.CallbackAddr = config.GetString("auth.callback_addr")
		}
		return tui.Run(cmd.Context(), application, opts)
	},
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiNoListen, "no-listen", false, "Do not listen for the sign-in redirect; paste the token instead")
}

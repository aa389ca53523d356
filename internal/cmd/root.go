package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/VisheshVGR/do-i-deserve-it-website/internal/app"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/config"
	clierrors "github.com/VisheshVGR/do-i-deserve-it-website/pkg/errors"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/formatter"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/output"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/prompter"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/service"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
)

const annotationFullscreen = "fullscreen"

// Built once per invocation by the root command.
var (
	application *app.App
	env         *service.Env
)

var rootCmd = &cobra.Command{
	Use:   "deserve",
	Short: "Do I Deserve It - daily habit tracker",
	Long: `deserve is a command-line client for Do I Deserve It. Track today's
targets, manage steps and headings, keep todos and reminders, and see
how your friends are doing, from the terminal or the interactive TUI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.Init(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
			os.Exit(1)
		}

		logger.Init(verbose)

		if cmd.Flags().Changed("output") {
			if !output.ValidateOutputFormat(outputFmt) {
				fmt.Fprintf(os.Stderr, "Error: invalid output format %q (use text, json or table)\n", outputFmt)
				os.Exit(1)
			}
			_ = config.SetString("output.format", outputFmt)
		}

		application = app.FromConfig(Version)
		out := output.Default()
		// The TUI draws notifications and handles navigation itself.
		if cmd.Annotations[annotationFullscreen] == "" {
			application.Notify.Subscribe(formatter.NotifySink(out.Err))
			application.SetNavigator(func(path string) {
				logger.Debug("Navigation requested", "path", path)
				out.Info("Run 'deserve auth login' to sign in again")
			})
		}

		env = &service.Env{
			API:          application.API,
			Session:      application.Session,
			Loader:       application.Loader,
			Notify:       application.Notify,
			Out:          out,
			Prompt:       prompter.Stdio(),
			NewTracker:   application.NewTracker,
			OpenBrowser:  openBrowser,
			CallbackAddr: config.GetString("auth.callback_addr"),
		}
	},
}

// Execute runs the command tree. Errors already shown as notifications are
// not printed a second time.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !service.IsReported(err) && !errors.Is(err, prompter.ErrCancelled) {
			fmt.Fprint(os.Stderr, clierrors.FormatError(err))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/deserve/config.toml)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "text", "Output format: text, json, table")

	// Add subcommands
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(targetCmd)
	rootCmd.AddCommand(headingCmd)
	rootCmd.AddCommand(stepCmd)
	rootCmd.AddCommand(iconsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(friendsCmd)
	rootCmd.AddCommand(todoCmd)
	rootCmd.AddCommand(reminderCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(deserveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd)
}

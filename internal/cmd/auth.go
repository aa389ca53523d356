package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/service"
)

var (
	loginWait     time.Duration
	loginNoListen bool
	logoutForce   bool
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Sign in with Google and manage the stored session",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with Google",
	Long: `Opens the Google sign-in page of the backend. The redirect is caught by a
local listener (auth.callback_addr); when that is unavailable, paste the
token shown on the page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(env)
		return authSvc.Login(cmd.Context(), service.LoginOptions{Wait: loginWait, NoListen: loginNoListen})
	},
}

var callbackCmd = &cobra.Command{
	Use:   "callback <token>",
	Short: "Finish sign-in with the one-time token from the redirect",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(env)
		return authSvc.Callback(cmd.Context(), args[0])
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token [id-token]",
	Short: "Sign in with an ID token",
	Long: `Sign in with a Firebase ID token, such as the firebaseToken cookie of a
browser session. Without an argument the token is read from the prompt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(env)
		token := ""
		if len(args) == 1 {
			token = args[0]
		} else {
			t, err := env.Prompt.Secret("ID token: ")
			if err != nil {
				return err
			}
			token = t
		}
		return authSvc.UseToken(cmd.Context(), token)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from Do I Deserve It",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(env)
		return authSvc.Logout(cmd.Context(), logoutForce)
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Display current authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(env)
		return authSvc.Me(cmd.Context())
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(env)
		return authSvc.Status(cmd.Context())
	},
}

func init() {
	loginCmd.Flags().DurationVar(&loginWait, "wait", 2*time.Minute, "How long to wait for the browser redirect")
	loginCmd.Flags().BoolVar(&loginNoListen, "no-listen", false, "Do not start the local callback listener; paste the token instead")
	logoutCmd.Flags().BoolVarP(&logoutForce, "force", "f", false, "Do not ask for confirmation")

	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(callbackCmd)
	authCmd.AddCommand(tokenCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(meCmd)
	authCmd.AddCommand(statusCmd)
}

// auth.go implements the "byetax login", "logout" and "whoami" commands.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/byetax/byetax/internal/log"
	"github.com/byetax/byetax/internal/session"
	"github.com/byetax/byetax/internal/share"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the ByeTax backend",
	Long: `Log in and store the access token locally.

Use --dev --nickname <name> against a development backend, --kakao to open
the Kakao login page in your browser, and --link to finish a Kakao login
with the address the browser was redirected to.`,
	RunE: runLogin,
}

var (
	devFlag      bool
	nicknameFlag string
	kakaoFlag    bool
	loginLink    string
)

func init() {
	loginCmd.Flags().BoolVar(&devFlag, "dev", false, "Use the development login endpoint")
	loginCmd.Flags().StringVar(&nicknameFlag, "nickname", "", "Nickname for --dev login")
	loginCmd.Flags().BoolVar(&kakaoFlag, "kakao", false, "Open the Kakao login page in the browser")
	loginCmd.Flags().StringVar(&loginLink, "link", "", "Callback link carrying ?token=")
	loginCmd.MarkFlagsMutuallyExclusive("dev", "kakao", "link")
}

func runLogin(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()
	out := cmd.OutOrStdout()

	switch {
	case devFlag:
		if nicknameFlag == "" {
			return fmt.Errorf("--nickname is required with --dev")
		}
		resp, err := e.client.DevLogin(context.Background(), nicknameFlag)
		if err != nil {
			return e.check(err)
		}
		if err := e.gate.Login(resp.AccessToken); err != nil {
			return err
		}
		e.log.Event(log.EventLogin, zap.String("nickname", resp.Nickname))
		fmt.Fprintf(out, "Logged in as %s\n", resp.Nickname)
		return nil

	case kakaoFlag:
		u := e.client.KakaoLoginURL()
		if err := share.Open(u); err != nil {
			fmt.Fprintf(out, "Open this address in a browser: %s\n", u)
		}
		fmt.Fprintln(out, "After logging in, run: byetax login --link '<address you were redirected to>'")
		return nil

	case loginLink != "":
		nav, err := session.ParseNavigation(loginLink, "", "")
		if err != nil {
			return err
		}
		if nav.Token == "" {
			return fmt.Errorf("link has no token")
		}
		if _, err := e.gate.Resolve(nav); err != nil {
			return err
		}
		return printWhoami(cmd, e)
	}

	return cmd.Help()
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.gate.Logout(); err != nil {
			return err
		}
		e.log.Event(log.EventLogout)
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()
		return printWhoami(cmd, e)
	},
}

// printWhoami validates the stored credential; a rejected one is cleared.
func printWhoami(cmd *cobra.Command, e *env) error {
	client, err := e.authed()
	if err != nil {
		return err
	}
	profile, err := e.gate.Validate(context.Background(), client)
	if err != nil {
		e.log.Event(log.EventAuthFailed, zap.Error(err))
		return fmt.Errorf("login is no longer valid; run 'byetax login' again")
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s", profile.Nickname)
	if profile.Email != "" {
		fmt.Fprintf(out, " <%s>", profile.Email)
	}
	fmt.Fprintln(out)
	return nil
}

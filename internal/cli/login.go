package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/pmlite/pmlite/internal/tui"
)

// loginFlags holds the flags for the login command.
type loginFlags struct {
	email    string
	password string
}

// newLoginCmd creates the login command.
func newLoginCmd() *cobra.Command {
	flags := &loginFlags{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with the demo account",
		Long: `Sign in and record the session.

pmlite is single-user; the login exists so the dashboard can greet you
and is not a security boundary. Without flags an interactive form asks
for the credentials.

Examples:
  pmlite login
  pmlite login --email demo@pmlite.io --password demo123`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogin(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.email, "email", "", "account email")
	cmd.Flags().StringVar(&flags.password, "password", "", "account password")

	return cmd
}

// runLogin executes the login command.
func runLogin(ctx context.Context, w io.Writer, flags *loginFlags) error {
	out := tui.NewTTYOutput(w)

	if flags.email == "" || flags.password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Email").
					Value(&flags.email),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&flags.password),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	if err := s.Login(ctx, flags.email, flags.password); err != nil {
		out.Error(err)
		return err
	}

	logger := GetLogger()
	logger.Info().Str("email", flags.email).Msg("logged in")
	out.Success("logged in as " + flags.email)
	return nil
}

// newLogoutCmd creates the logout command.
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the recorded session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogout(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

// runLogout executes the logout command.
func runLogout(ctx context.Context, w io.Writer) error {
	out := tui.NewTTYOutput(w)

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	if err := s.Logout(ctx); err != nil {
		out.Error(err)
		return err
	}

	out.Success("logged out")
	return nil
}

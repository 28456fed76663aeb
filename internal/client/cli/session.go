package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/goldmanager/internal/common"
)

func loginCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "login [NAME]",
		Short: "Log in and print a token",
		Long: "Authenticates against the server and prints the issued token. The password\n" +
			"is read from the interactive prompt or from stdin. Export the token as\n" +
			common.TokenEnvName + " for the other commands.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				line, err := in.prompt("username: ", false)
				if err != nil {
					return err
				}
				name = string(line)
			}

			passwd, err := in.prompt("password: ", true)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(passwd)

			session, err := opts.client.Login(cmd.Context(), name, string(passwd))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), session.Token)
			fmt.Fprintf(cmd.ErrOrStderr(), "token expires at %s\n", session.ExpiresAt.Local().Format(time.RFC3339))
			return nil
		},
	}
}

func logoutCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Long:  "Drops the server-side session key, which invalidates every token of the user.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.authedClient()
			if err != nil {
				return err
			}
			if err := c.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "logged out")
			return nil
		},
	}
}

func whoamiCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user the token belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.authedClient()
			if err != nil {
				return err
			}
			id, err := c.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (expires %s)\n", id.Username, id.ExpiresAt.Local().Format(time.RFC3339))
			return nil
		},
	}
}

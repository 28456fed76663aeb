package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/goldmanager/internal/common"
)

func usersCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User management commands",
	}
	cmd.AddCommand(
		usersListCommand(opts),
		usersCreateCommand(opts),
		usersPasswdCommand(opts),
		usersStatusCommand(opts, "activate", true),
		usersStatusCommand(opts, "deactivate", false),
	)
	return cmd
}

func usersListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.authedClient()
			if err != nil {
				return err
			}
			users, err := c.ListUsers(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "USERNAME\tACTIVE")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%t\n", u.Username, u.Active)
			}
			return tw.Flush()
		},
	}
}

func usersCreateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create user",
		Long: "Creates an active user with the provided username and password. Passwords may be\n" +
			"provided via stdin or through the interactive prompt.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.authedClient()
			if err != nil {
				return err
			}
			passwd, err := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()).prompt("password: ", true)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(passwd)

			u, err := c.CreateUser(cmd.Context(), args[0], string(passwd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "created user %s\n", u.Username)
			return nil
		},
	}
}

func usersPasswdCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "passwd NAME",
		Short: "Change a user's password",
		Long:  "Sets a new password. The user's current session ends.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.authedClient()
			if err != nil {
				return err
			}
			passwd, err := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()).prompt("new password: ", true)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(passwd)

			if err := c.UpdatePassword(cmd.Context(), args[0], string(passwd)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "password of %s updated\n", args[0])
			return nil
		},
	}
}

func usersStatusCommand(opts *options, use string, active bool) *cobra.Command {
	short := "Activate user"
	if !active {
		short = "Deactivate user and end its session"
	}
	return &cobra.Command{
		Use:   use + " NAME",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.authedClient()
			if err != nil {
				return err
			}
			if err := c.SetActive(cmd.Context(), args[0], active); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: active=%t\n", args[0], active)
			return nil
		},
	}
}

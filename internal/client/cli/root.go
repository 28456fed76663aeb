// Package cli contains the goldmanager client command constructors.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/goldmanager/internal/client/api"
	"github.com/dmitrijs2005/goldmanager/internal/client/config"
	"github.com/dmitrijs2005/goldmanager/internal/common"
)

var errNoToken = errors.New("no token: run `goldmanager login` and export " + common.TokenEnvName + " or pass --token")

// options collects the persistent flags shared by every command.
type options struct {
	configPath string
	serverURL  string
	timeout    time.Duration
	token      string

	client *api.Client
}

// authedClient returns the API client carrying the caller's token.
func (o *options) authedClient() (*api.Client, error) {
	token := o.token
	if token == "" {
		token = os.Getenv(common.TokenEnvName)
	}
	if token == "" {
		return nil, errNoToken
	}
	return o.client.WithToken(token), nil
}

// RootCommand instantiates the root command, with all sub-commands bound.
func RootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "goldmanager [command] [flags]",
		Short:        "Client for the goldmanager authentication service",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration file: %w", err)
			}
			if cmd.Flags().Changed("server") {
				cfg.ServerURL = opts.serverURL
			}
			if cmd.Flags().Changed("timeout") {
				cfg.RequestTimeout = opts.timeout
			}
			opts.client = api.New(cfg.ServerURL, cfg.RequestTimeout)
			return nil
		},
	}

	var defaults config.Config
	defaults.LoadDefaults()

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a JSON configuration file")
	cmd.PersistentFlags().StringVar(&opts.serverURL, "server", defaults.ServerURL, "base URL of the goldmanager server")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaults.RequestTimeout, "request timeout")
	cmd.PersistentFlags().StringVar(&opts.token, "token", "", "bearer token (defaults to $"+common.TokenEnvName+")")

	cmd.AddCommand(
		loginCommand(opts),
		logoutCommand(opts),
		whoamiCommand(opts),
		usersCommand(opts),
	)

	return cmd
}

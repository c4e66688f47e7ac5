package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the `bookshelf` command tree. Running the
// root command without any subcommand starts the api server.
func NewRootCommand() *cobra.Command {
	var configFile, envFile string

	serve := func(cmd *cobra.Command, _ []string) error {
		app, err := NewApp(configFile, envFile)
		if err != nil {
			return fmt.Errorf("application failed to initialize: %w", err)
		}
		if err = app.Run(); err != nil {
			return fmt.Errorf("application exited. check logs for more details: %w", err)
		}
		return nil
	}

	root := &cobra.Command{
		Use:           "bookshelf",
		Short:         "Bookshelf api server",
		Args:          cobra.NoArgs,
		RunE:          serve,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "./config.yml", "path to the yaml configuration file")
	root.PersistentFlags().StringVarP(&envFile, "env", "e", "./config.env", "path to the optional dotenv file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the api server",
			Args:  cobra.NoArgs,
			RunE:  serve,
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print build details",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				cmd.Printf("commit: %s\ntag: %s\nbuilt: %s\n", GitCommit, GitTag, BuildTime)
			},
		},
	)
	return root
}

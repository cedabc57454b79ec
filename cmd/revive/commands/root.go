// Package commands implements the CLI commands for revive.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/revive/internal/app"
	"go.trai.ch/revive/internal/build"
)

// CLI represents the command line interface for revive.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Watch(ctx context.Context, cfg app.Config) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "revive <entry-file>",
		Short:         "Run a program and live-reload it on file changes",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			// Display usage without returning an error.
			_ = cmd.Help()
			return nil
		}
		targets, _ := cmd.Flags().GetStringArray("watch")
		verbose, _ := cmd.Flags().GetBool("verbose")

		return c.app.Watch(cmd.Context(), app.Config{
			EntryFile: args[0],
			Targets:   targets,
			Verbose:   verbose,
		})
	}
	rootCmd.Flags().StringArrayP("watch", "w", nil, "Path to watch (repeatable, defaults to the working directory)")
	rootCmd.Flags().BoolP("verbose", "V", true, "Log watch and reload progress")

	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

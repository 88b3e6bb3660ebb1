// Package commands implements the subcommands of the kiln admin CLI.
// Grounded on cmd/bob/commands/root.go's CLI struct shape (persistent
// --config flag, SilenceUsage/SilenceErrors, a CLI.Execute entry point),
// adapted from bob's app.App composition to kiln's stateless, file-driven
// subcommands (init/doctor/graph/version), none of which need a shared
// application object the way bob's "run" command does.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// CLI represents the kiln admin tool's command line interface.
type CLI struct {
	rootCmd *cobra.Command
}

// New constructs the root command and wires every subcommand.
func New() *CLI {
	rootCmd := &cobra.Command{
		Use:           "kiln",
		Short:         "Admin tool for kiln build-description generator binaries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "kiln.yaml", "Path to workspace configuration file")

	c := &CLI{rootCmd: rootCmd}

	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newDoctorCmd())
	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// GetConfigPath returns the value of the --config flag.
func (c *CLI) GetConfigPath() string {
	config, _ := c.rootCmd.PersistentFlags().GetString("config")
	return config
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut redirects the root command's output stream. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}

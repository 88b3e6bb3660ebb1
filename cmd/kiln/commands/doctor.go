package commands

import (
	"fmt"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"go.kiln.build/kiln/toolchain"
)

func (c *CLI) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Print registered toolchains and detected environment capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Registered toolchains:")
			names := toolchain.List()
			if len(names) == 0 {
				fmt.Fprintln(out, "  (none — import a toolchain package, e.g. go.kiln.build/kiln/toolchain/gcc)")
			}
			for _, name := range names {
				fmt.Fprintf(out, "  %s\n", name)
			}

			fmt.Fprintf(out, "\nCPUs: %d\n", runtime.NumCPU())
			fmt.Fprintf(out, "Terminal: stdout is a tty: %v\n", isatty.IsTerminal(os.Stdout.Fd()))
			return nil
		},
	}
}

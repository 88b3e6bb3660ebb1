package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

const starterMain = `package main

import (
	"fmt"
	"os"

	_ "go.kiln.build/kiln/toolchain/gcc"

	"go.kiln.build/kiln/cli"
	"go.kiln.build/kiln/option"
	"go.kiln.build/kiln/project"
	"go.kiln.build/kiln/stdopt"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func run() error {
	env := cli.BootstrapEnv()
	args := cli.ParseArgs(os.Args)

	app := project.New("app", project.Executable)
	option.Add(app.Base.Options, stdopt.Files, []string{"main.cpp"})

	return cli.Generate(env.StartDir, args, []*project.Project{app}, []string{"debug", "release"}, project.OSAny)
}
`

const starterConfig = `defaultEmitter: ninja
defaultOutputDir: build
jobs: 0
persistFlags: false
`

func (c *CLI) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Scaffold a starter generator binary and kiln.yaml in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return zerr.Wrap(err, "resolving current directory")
			}
			if err := writeIfAbsent(filepath.Join(dir, "main.go"), starterMain); err != nil {
				return err
			}
			if err := writeIfAbsent(filepath.Join(dir, "kiln.yaml"), starterConfig); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "scaffolded main.go and kiln.yaml")
			return nil
		},
	}
}

func writeIfAbsent(path, contents string) error {
	if _, err := os.Stat(path); err == nil {
		return zerr.With(zerr.New("refusing to overwrite existing file"), "path", path)
	} else if !os.IsNotExist(err) {
		return zerr.With(zerr.Wrap(err, "checking for existing file"), "path", path)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "writing file"), "path", path)
	}
	return nil
}

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"go.kiln.build/kiln/command"
)

// newGraphCmd implements `kiln graph <commands-file>`, supplementing
// spec.md with the dependency-graph visualization daedaleanai-dbt's
// --graph flag offers (cmd/build.go's dependencyGraph flag, which shells
// out to `ninja -t graph`). kiln renders the graph itself from a
// generator's JSON command dump (written via `--dump-commands`) rather
// than depending on ninja being installed, so the graph is available
// even for direct-builder-only workflows.
func (c *CLI) newGraphCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "graph <commands-file>",
		Short: "Render a generator's command list as a Graphviz dependency graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loadCommands(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return zerr.With(zerr.Wrap(err, "creating graph output file"), "path", outPath)
				}
				defer func() { _ = f.Close() }()
				out = f
			}

			return writeDot(out, entries)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "Write the dot graph to this file instead of stdout")
	return cmd
}

func loadCommands(path string) ([]command.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "reading command list"), "path", path)
	}
	var entries []command.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "parsing command list"), "path", path)
	}
	return entries, nil
}

// writeDot renders entries as a Graphviz digraph: one node per command
// (labeled by its Description, falling back to Command), with an edge
// from every command producing an output to every command consuming it
// as an input — the same producer/output matching direct.Build uses to
// construct its DAG.
func writeDot(w io.Writer, entries []command.Entry) error {
	outputOwner := make(map[string]int, len(entries))
	for i, e := range entries {
		for _, out := range e.Outputs {
			outputOwner[out] = i
		}
	}

	fmt.Fprintln(w, "digraph kiln {")
	fmt.Fprintln(w, "  rankdir=LR;")
	for i, e := range entries {
		label := e.Description
		if label == "" {
			label = e.Command
		}
		fmt.Fprintf(w, "  n%d [label=%q];\n", i, label)
	}

	type edge struct{ from, to int }
	var edges []edge
	seen := make(map[edge]bool)
	for i, e := range entries {
		for _, in := range e.Inputs {
			owner, ok := outputOwner[in]
			if !ok || owner == i {
				continue
			}
			ed := edge{from: owner, to: i}
			if !seen[ed] {
				seen[ed] = true
				edges = append(edges, ed)
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		return edges[i].to < edges[j].to
	})
	for _, ed := range edges {
		fmt.Fprintf(w, "  n%d -> n%d;\n", ed.from, ed.to)
	}
	fmt.Fprintln(w, "}")
	return nil
}

// Package ninja emits Ninja build files from resolved projects. The
// low-level syntax writer is grounded on google-blueprint's
// ninja_writer.go (rule/build/subninja statement shapes, line wrapping
// on long build statements); the semantic content — one sub-ninja file
// per project, a generic "command" rule parameterized by $cmd/$cwd/
// $depfile/$desc, a synthetic "_generator" project so Ninja reruns the
// generator on build-description changes, a phony target per project
// aggregating its outputs — is grounded on original_source/build.h's
// NinjaEmitter::emit/emitProject.
package ninja

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

const lineWidth = 80

// writer is a minimal Ninja syntax writer: indented variable
// assignments under rule/build statements, with long build statements
// wrapped across continuation lines using Ninja's trailing-$ syntax.
type writer struct {
	w io.StringWriter
}

func newWriter(w io.StringWriter) *writer { return &writer{w: w} }

func (n *writer) raw(s string) { _, _ = n.w.WriteString(s) }

func (n *writer) Subninja(file string) {
	n.raw("subninja ")
	n.raw(file)
	n.raw("\n")
}

func (n *writer) Rule(name string, vars map[string]string) {
	n.raw("rule " + name + "\n")
	for _, k := range sortedKeys(vars) {
		n.raw("  " + k + " = " + vars[k] + "\n")
	}
	n.raw("\n")
}

// Build writes a `build outputs: rule inputs | implicit || orderOnly`
// statement, wrapping tokens across `$`-continued lines once the
// current line exceeds lineWidth, then the statement's variables
// indented beneath it.
func (n *writer) Build(outputs []string, rule string, inputs, implicit, orderOnly []string, vars map[string]string) {
	var b strings.Builder
	col := 0
	write := func(tok string) {
		if col > 0 && col+1+len(tok) > lineWidth {
			b.WriteString(" $\n    ")
			col = 4
		} else if col > 0 {
			b.WriteString(" ")
			col++
		}
		b.WriteString(tok)
		col += len(tok)
	}

	write("build")
	for _, o := range outputs {
		write(o)
	}
	write(":")
	write(rule)
	for _, i := range inputs {
		write(i)
	}
	if len(implicit) > 0 {
		write("|")
		for _, i := range implicit {
			write(i)
		}
	}
	if len(orderOnly) > 0 {
		write("||")
		for _, i := range orderOnly {
			write(i)
		}
	}

	n.raw(b.String())
	n.raw("\n")
	for _, k := range sortedKeys(vars) {
		n.raw(fmt.Sprintf("  %s = %s\n", k, vars[k]))
	}
	n.raw("\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

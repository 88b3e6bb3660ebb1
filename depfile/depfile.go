// Package depfile parses Make-format dependency files, the kind compilers
// emit via -MMD/-MF and the direct builder consults for staleness beyond
// declared inputs. Grounded on spec.md §4.8's escaping rules; cross-checked
// against google-blueprint/deptools/depfile.go, which writes this same
// format (but does not parse it — no parser exists anywhere in the
// retrieved pack, so this one is built directly from the spec's prose and
// Make's documented escaping rules).
package depfile

import (
	"fmt"
	"os"

	"go.trai.ch/zerr"
)

// Parse reads the Make dependency file at path and returns its listed
// input paths (the tokens after the `:` terminator). An empty or unreadable
// file yields an error that wraps ErrUnavailable (errors.Is matches it);
// callers that need "missing depfile means dirty" semantics (spec.md §4.7)
// should treat ErrUnavailable as such.
func Parse(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrUnavailable, path)
	}
	return ParseBytes(data), nil
}

// ErrUnavailable marks a depfile that could not be read or was empty.
var ErrUnavailable = zerr.New("depfile unavailable")

// ParseBytes parses the in-memory contents of a Make dependency file and
// returns its listed input paths.
//
// Grammar: a single logical line `outputs : inputs`, where `\`-newline is a
// line continuation (the two characters, and the newline, are all treated
// as whitespace), `\ ` escapes a literal space inside a path, and a
// backslash followed by any other character (in practice `\\`) becomes a
// single literal backslash, with that following character consumed. A
// backslash as the file's last byte is kept as is. The parser scans tokens; the first token ending in
// an unescaped `:` ends the output section and begins the input section —
// every whitespace-separated token after that is an input path.
func ParseBytes(data []byte) []string {
	var inputs []string
	var tok []byte
	inOutputs := true

	flush := func() {
		if len(tok) == 0 {
			return
		}
		if inOutputs {
			// A token in the output section ending with ':' transitions to
			// the input section; the colon itself is not part of any path.
			if tok[len(tok)-1] == ':' {
				inOutputs = false
				tok = tok[:len(tok)-1]
				if len(tok) > 0 {
					// text glued to the colon (e.g. "out:") is an output
					// path fragment, not an input — discard it.
				}
				tok = nil
				return
			}
			tok = nil
			return
		}
		inputs = append(inputs, string(tok))
		tok = nil
	}

	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case c == '\\' && i+1 < len(data):
			next := data[i+1]
			switch next {
			case '\n':
				// line continuation: treat as whitespace.
				flush()
				i++
			case ' ':
				tok = append(tok, ' ')
				i++
			default:
				// Backslash before any other non-space character (in
				// practice just `\\`, GCC's own escape for a literal
				// backslash in a path) collapses the two-byte pair into a
				// single literal backslash in the output.
				tok = append(tok, '\\')
				i++
			}
		case c == ' ' || c == '\t' || c == '\r':
			flush()
		case c == '\n':
			flush()
		default:
			tok = append(tok, c)
		}
	}
	flush()

	return inputs
}

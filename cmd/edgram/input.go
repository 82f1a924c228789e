// Input resolution for the three equivalent entry points: file path,
// stdin ("-" or no argument), and inline JSON.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// readInput returns the raw document bytes for the given argument.
// An empty argument or "-" reads stdin; an argument that looks like a
// JSON object literal is taken inline; anything else is a file path.
func readInput(input string) ([]byte, error) {
	switch {
	case input == "" || input == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	case isInlineJSON(input):
		return []byte(input), nil
	default:
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", input, err)
		}

		return data, nil
	}
}

// isInlineJSON reports whether the argument is a JSON object literal
// rather than a file path. File names starting with "{" are not a case
// worth supporting.
func isInlineJSON(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "{")
}

// Package repl provides the interactive read loop over the search engine.
// The loop is a pure boundary: it owns prompting, exit handling and output
// formatting, and talks to the core through a narrow interface.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sonnet-engine/backend/internal/search"
)

// Searcher is the slice of the engine the read loop needs.
type Searcher interface {
	Search(raw string) []search.Document
}

// Run reads queries line by line until EOF or a bare "q". Query lines have
// no length limit.
func Run(in io.Reader, out io.Writer, s Searcher) error {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "Search for sonnets (enter 'q' to quit): ")
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return readErr
		}
		input := strings.TrimSpace(line)
		if readErr == io.EOF && input == "" {
			fmt.Fprintln(out)
			return nil
		}
		if input == "q" {
			fmt.Fprintln(out, "Quitting search")
			return nil
		}

		hits := s.Search(input)
		if len(hits) == 0 {
			fmt.Fprintf(out, "No sonnets found for query: %q\n", input)
		} else {
			ids := make([]string, len(hits))
			for i, doc := range hits {
				ids[i] = strconv.Itoa(doc.ID)
			}
			fmt.Fprintf(out, "Your search for %q matched %d sonnets (%s):\n", input, len(hits), strings.Join(ids, ", "))
			for _, doc := range hits {
				fmt.Fprintf(out, "Sonnet %d: %s\n  %s\n\n", doc.ID, doc.Title, strings.Join(doc.Lines, "\n  "))
			}
		}

		if readErr == io.EOF {
			fmt.Fprintln(out)
			return nil
		}
	}
}

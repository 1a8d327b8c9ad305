package fetcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// ImportHTML reads a saved HTML page containing one poem and converts it to a
// raw record: the title element becomes the poem title and each text block
// outside script/style becomes one line.
func ImportHTML(r io.Reader) (Poem, error) {
	tokenizer := html.NewTokenizer(r)
	var poem Poem
	inScript := false
	inStyle := false
	inTitle := false

	for {
		tokenType := tokenizer.Next()

		switch tokenType {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				if len(poem.Lines) == 0 {
					return Poem{}, fmt.Errorf("page contains no poem text")
				}
				return poem, nil
			}
			return Poem{}, tokenizer.Err()

		case html.StartTagToken:
			switch tokenizer.Token().Data {
			case "script":
				inScript = true
			case "style":
				inStyle = true
			case "title":
				inTitle = true
			}

		case html.EndTagToken:
			switch tokenizer.Token().Data {
			case "script":
				inScript = false
			case "style":
				inStyle = false
			case "title":
				inTitle = false
			}

		case html.TextToken:
			text := strings.TrimSpace(tokenizer.Token().Data)
			if text == "" {
				continue
			}
			if inTitle {
				poem.Title = text
				continue
			}
			if !inScript && !inStyle {
				poem.Lines = append(poem.Lines, text)
			}
		}
	}
}

// HTMLDir sources the corpus from saved HTML pages in a local directory, one
// poem per page. Lets operators load a corpus without the remote API.
type HTMLDir struct {
	dir    string
	logger *logrus.Entry
}

func NewHTMLDir(dir string, logger *logrus.Entry) *HTMLDir {
	return &HTMLDir{dir: dir, logger: logger}
}

// FetchSonnets imports every .html/.htm file in the directory. Pages that do
// not parse are logged and skipped; an import that yields nothing is an error.
func (h *HTMLDir) FetchSonnets(ctx context.Context) ([]Poem, error) {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read import directory: %w", err)
	}

	var poems []Poem
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".html", ".htm":
		default:
			continue
		}

		f, err := os.Open(filepath.Join(h.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", entry.Name(), err)
		}
		poem, err := ImportHTML(f)
		f.Close()
		if err != nil {
			h.logger.WithError(err).Warnf("Skipping page %s", entry.Name())
			continue
		}
		poems = append(poems, poem)
	}

	if len(poems) == 0 {
		return nil, fmt.Errorf("no poems imported from %s", h.dir)
	}

	h.logger.Infof("Imported %d poems from %s", len(poems), h.dir)
	return poems, nil
}

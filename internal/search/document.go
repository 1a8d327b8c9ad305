package search

import "strings"

// punctuation is the character set stripped from text before splitting into
// words.
const punctuation = ".,':;!?"

// Tokenize normalizes text lines into word tokens: punctuation stripped,
// lowercased, split on whitespace, appended in line order. Tokens are not
// deduplicated here. With useStemming set, each token is reduced to its
// Porter stem so indexed text and query text normalize identically.
func Tokenize(lines []string, useStemming bool) []string {
	var tokens []string
	for _, line := range lines {
		clean := strings.Map(func(r rune) rune {
			if strings.ContainsRune(punctuation, r) {
				return -1
			}
			return r
		}, line)
		for _, word := range strings.Fields(strings.ToLower(clean)) {
			if useStemming {
				word = Stem(word)
			}
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// Document is one indexed poem: a stable externally assigned identifier, a
// title, and the text lines in order. Immutable once constructed.
type Document struct {
	ID    int
	Title string
	Lines []string
}

// Tokens runs the document's lines through the tokenization pipeline.
func (d Document) Tokens(useStemming bool) []string {
	return Tokenize(d.Lines, useStemming)
}

// Query carries a single line of raw user input. It shares the Document
// tokenization pipeline but has no identifier or title of its own.
type Query struct {
	Lines []string
}

// NewQuery wraps raw input as a one-line query.
func NewQuery(raw string) Query {
	return Query{Lines: []string{raw}}
}

// Tokens runs the query line through the tokenization pipeline.
func (q Query) Tokens(useStemming bool) []string {
	return Tokenize(q.Lines, useStemming)
}

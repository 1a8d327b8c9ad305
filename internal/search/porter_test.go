package search_test

import (
	"testing"

	"github.com/sonnet-engine/backend/internal/search"
)

func TestStem(t *testing.T) {
	cases := map[string]string{
		// Plurals
		"caresses": "caress",
		"ponies":   "poni",
		"ties":     "ti",
		"caress":   "caress",
		"cats":     "cat",
		// Past participles and gerunds
		"feed":      "feed",
		"agreed":    "agre",
		"plastered": "plaster",
		"bled":      "bled",
		"motoring":  "motor",
		"sing":      "sing",
		"conflated": "conflat",
		"troubled":  "troubl",
		"sized":     "size",
		"hopping":   "hop",
		"falling":   "fall",
		"filing":    "file",
		// y -> i
		"happy": "happi",
		"sky":   "sky",
		// Later passes
		"relational":  "relat",
		"conditional": "condit",
		"happiness":   "happi",
		"probate":     "probat",
		"rate":        "rate",
		// Domain words
		"love":   "love",
		"loves":  "love",
		"loving": "love",
		"king":   "king",
	}

	for word, want := range cases {
		if got := search.Stem(word); got != want {
			t.Errorf("Stem(%q) = %q, want %q", word, got, want)
		}
	}
}

func TestStemShortWordsUnchanged(t *testing.T) {
	for _, word := range []string{"", "a", "is", "as", "by"} {
		if got := search.Stem(word); got != word {
			t.Errorf("Stem(%q) = %q, expected short words unchanged", word, got)
		}
	}
}

func TestStemDeterministic(t *testing.T) {
	first := search.Stem("creatures")
	for i := 0; i < 10; i++ {
		if got := search.Stem("creatures"); got != first {
			t.Fatalf("Stem is not deterministic: %q vs %q", got, first)
		}
	}
}

// Indexed corpus tokens and query tokens must normalize to the same stem for
// matching to work, even though stemming itself is not idempotent in general.
func TestStemCorpusQueryConsistency(t *testing.T) {
	corpus := search.Stem("creatures")
	query := search.Stem("creature")
	if corpus != query {
		t.Errorf("corpus stem %q does not match query stem %q", corpus, query)
	}
}

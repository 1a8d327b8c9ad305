package search

import "strings"

// Porter suffix-stripping stemmer. Five ordered passes over the word, each
// applying at most one suffix rule gated by the measure of the remaining stem
// and a few phonetic predicates. Purely syntactic: the output is a retrieval
// key, not necessarily a dictionary word ("ponies" -> "poni").

// Stem reduces an English word to its root form. Words of two letters or
// fewer are returned unchanged.
func Stem(word string) string {
	if len(word) <= 2 {
		return word
	}
	w := step1a(word)
	w = step1b(w)
	w = step1c(w)
	w = step2(w)
	w = step3(w)
	w = step4(w)
	w = step5(w)
	return w
}

// isConsonant treats a/e/i/o/u as vowels, and y as a vowel when it follows a
// consonant.
func isConsonant(w string, i int) bool {
	switch w[i] {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	case 'y':
		if i == 0 {
			return true
		}
		return !isConsonant(w, i-1)
	}
	return true
}

// measure counts vowel-to-consonant sequence transitions: a word of the form
// [C](VC)^m[V] has measure m.
func measure(w string) int {
	m := 0
	i := 0
	for i < len(w) && isConsonant(w, i) {
		i++
	}
	for i < len(w) {
		for i < len(w) && !isConsonant(w, i) {
			i++
		}
		if i == len(w) {
			break
		}
		m++
		for i < len(w) && isConsonant(w, i) {
			i++
		}
	}
	return m
}

func hasVowel(w string) bool {
	for i := range w {
		if !isConsonant(w, i) {
			return true
		}
	}
	return false
}

func endsDoubleConsonant(w string) bool {
	n := len(w)
	return n >= 2 && w[n-1] == w[n-2] && isConsonant(w, n-1)
}

// endsCVC reports whether w ends consonant-vowel-consonant where the final
// consonant is not w, x or y.
func endsCVC(w string) bool {
	n := len(w)
	if n < 3 {
		return false
	}
	if !isConsonant(w, n-3) || isConsonant(w, n-2) || !isConsonant(w, n-1) {
		return false
	}
	switch w[n-1] {
	case 'w', 'x', 'y':
		return false
	}
	return true
}

// step1a handles plurals: sses -> ss, ies -> i, bare s dropped.
func step1a(w string) string {
	switch {
	case strings.HasSuffix(w, "sses"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "ies"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "ss"):
		return w
	case strings.HasSuffix(w, "s"):
		return w[:len(w)-1]
	}
	return w
}

// step1b handles past participles and gerunds: eed -> ee when the stem has
// measure, ed/ing dropped when the stem contains a vowel.
func step1b(w string) string {
	if strings.HasSuffix(w, "eed") {
		if measure(w[:len(w)-3]) > 0 {
			return w[:len(w)-1]
		}
		return w
	}
	if strings.HasSuffix(w, "ed") && hasVowel(w[:len(w)-2]) {
		return repairStem(w[:len(w)-2])
	}
	if strings.HasSuffix(w, "ing") && hasVowel(w[:len(w)-3]) {
		return repairStem(w[:len(w)-3])
	}
	return w
}

// repairStem restores a usable stem after stripping ed/ing: conflat(e),
// hopp(ing) -> hop, fil(ing) -> file.
func repairStem(w string) string {
	if strings.HasSuffix(w, "at") || strings.HasSuffix(w, "bl") || strings.HasSuffix(w, "iz") {
		return w + "e"
	}
	if endsDoubleConsonant(w) {
		switch w[len(w)-1] {
		case 'l', 's', 'z':
			return w
		}
		return w[:len(w)-1]
	}
	if measure(w) == 1 && endsCVC(w) {
		return w + "e"
	}
	return w
}

// step1c turns a trailing y into i when the stem contains a vowel.
func step1c(w string) string {
	if strings.HasSuffix(w, "y") && hasVowel(w[:len(w)-1]) {
		return w[:len(w)-1] + "i"
	}
	return w
}

type suffixRule struct {
	suffix      string
	replacement string
}

// Ordered so that no rule is shadowed by a shorter one earlier in the table.
var step2Rules = []suffixRule{
	{"ational", "ate"},
	{"tional", "tion"},
	{"enci", "ence"},
	{"anci", "ance"},
	{"izer", "ize"},
	{"abli", "able"},
	{"alli", "al"},
	{"entli", "ent"},
	{"eli", "e"},
	{"ousli", "ous"},
	{"ization", "ize"},
	{"ation", "ate"},
	{"ator", "ate"},
	{"alism", "al"},
	{"iveness", "ive"},
	{"fulness", "ful"},
	{"ousness", "ous"},
	{"aliti", "al"},
	{"iviti", "ive"},
	{"biliti", "ble"},
}

var step3Rules = []suffixRule{
	{"icate", "ic"},
	{"ative", ""},
	{"alize", "al"},
	{"iciti", "ic"},
	{"ical", "ic"},
	{"ful", ""},
	{"ness", ""},
}

// applyRules replaces the first matching suffix, and only when the remaining
// stem has measure > 0. A match with a failing gate still ends the step.
func applyRules(w string, rules []suffixRule) string {
	for _, r := range rules {
		if !strings.HasSuffix(w, r.suffix) {
			continue
		}
		if stem := w[:len(w)-len(r.suffix)]; measure(stem) > 0 {
			return stem + r.replacement
		}
		return w
	}
	return w
}

func step2(w string) string { return applyRules(w, step2Rules) }

func step3(w string) string { return applyRules(w, step3Rules) }

var step4Suffixes = []string{
	"al", "ance", "ence", "er", "ic", "able", "ible", "ant", "ement",
	"ment", "ent", "ion", "ou", "ism", "ate", "iti", "ous", "ive", "ize",
}

// step4 strips residual suffixes outright when the stem has measure > 1;
// "ion" additionally requires the stem to end in s or t.
func step4(w string) string {
	for _, suf := range step4Suffixes {
		if !strings.HasSuffix(w, suf) {
			continue
		}
		stem := w[:len(w)-len(suf)]
		if suf == "ion" && !strings.HasSuffix(stem, "s") && !strings.HasSuffix(stem, "t") {
			continue
		}
		if measure(stem) > 1 {
			return stem
		}
		return w
	}
	return w
}

// step5 tidies up: drop a final e unless it is needed ("rate" keeps it,
// "probate" loses it), and reduce a final double l when the measure allows.
func step5(w string) string {
	if strings.HasSuffix(w, "e") {
		stem := w[:len(w)-1]
		if m := measure(stem); m > 1 || (m == 1 && !endsCVC(stem)) {
			w = stem
		}
	}
	if strings.HasSuffix(w, "ll") && measure(w) > 1 {
		w = w[:len(w)-1]
	}
	return w
}

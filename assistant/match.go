package assistant

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var nonWord = regexp.MustCompile(`\W+`)

// stopwords never count as search keywords.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "who": true, "what": true, "how": true,
	"why": true, "when": true, "where": true, "which": true, "tell": true, "about": true,
	"with": true, "was": true, "were": true, "are": true, "does": true, "did": true,
	"his": true, "her": true, "him": true, "she": true, "they": true, "them": true,
	"their": true, "this": true, "that": true, "from": true, "into": true, "you": true,
	"your": true, "can": true, "please": true, "any": true, "has": true, "have": true,
	"had": true, "there": true, "give": true, "know": true, "some": true, "show": true,
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// containsWord reports whether phrase occurs in text without being glued to
// a neighbouring letter or digit, so "arc" does not match "archaeologist".
func containsWord(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(phrase)
	last, _ := utf8.DecodeLastRuneInString(phrase)
	for off := 0; off < len(text); {
		i := strings.Index(text[off:], phrase)
		if i < 0 {
			return false
		}
		i += off
		j := i + len(phrase)

		before := i == 0 || !isWordRune(first)
		if !before {
			prev, _ := utf8.DecodeLastRuneInString(text[:i])
			before = !isWordRune(prev)
		}
		after := j == len(text) || !isWordRune(last)
		if !after {
			next, _ := utf8.DecodeRuneInString(text[j:])
			after = !isWordRune(next)
		}
		if before && after {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		off = i + size
	}
	return false
}

func containsAnyWord(text string, phrases ...string) bool {
	for _, p := range phrases {
		if containsWord(text, p) {
			return true
		}
	}
	return false
}

// normalize lowercases s and drops everything but letters and digits.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isWordRune(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// fuzzyMatch ignores case, spacing and punctuation and accepts containment in
// either direction. The shorter side must have at least three characters.
func fuzzyMatch(a, b string) bool {
	na, nb := normalize(a), normalize(b)
	if len(na) < 3 || len(nb) < 3 {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// keywords splits text on non-word characters, keeping words longer than two
// characters that are not stopwords.
func keywords(text string) []string {
	var out []string
	for _, w := range nonWord.Split(strings.ToLower(text), -1) {
		if len(w) > 2 && !stopwords[w] {
			out = append(out, w)
		}
	}
	return out
}

// summarize cuts text at a sentence boundary so it stays within maxLen.
// A first sentence longer than maxLen is truncated.
func summarize(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	var out strings.Builder
	for _, s := range strings.Split(text, ". ") {
		if utf8.RuneCountInString(out.String()+s) > maxLen {
			break
		}
		out.WriteString(s)
		out.WriteString(". ")
	}
	if out.Len() == 0 {
		return string([]rune(text)[:maxLen]) + "..."
	}
	return strings.TrimSpace(out.String())
}

// excerpt returns about a hundred characters of content around the first
// occurrence of word (case-insensitive), or "" when word does not occur.
func excerpt(content, word string) string {
	lower := strings.Map(unicode.ToLower, content)
	i := strings.Index(lower, word)
	if i < 0 {
		return ""
	}
	runes := []rune(content)
	at := utf8.RuneCountInString(lower[:i])
	start := max(0, at-40)
	end := min(len(runes), at+60)
	return string(runes[start:end]) + "..."
}

// opening returns the first n characters of content followed by an ellipsis.
func opening(content string, n int) string {
	runes := []rune(content)
	return string(runes[:min(n, len(runes))]) + "..."
}


package classifier

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"review-crawler/internal/models"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\p{L}\p{N}_]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// StopWords builds a lookup set from a word list.
func StopWords(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// TopKeywords returns the n most frequent alphabetic tokens of text that
// are not stop words. Equal counts keep the order in which words first
// appeared.
func TopKeywords(text string, stopWords map[string]struct{}, n int) []models.KeywordCount {
	if n <= 0 {
		return nil
	}
	text = nonWordRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")

	freq := map[string]int{}
	var order []string
	for _, w := range strings.Fields(text) {
		if !isAlpha(w) {
			continue
		}
		w = strings.ToLower(w)
		if _, stop := stopWords[w]; stop {
			continue
		}
		if freq[w] == 0 {
			order = append(order, w)
		}
		freq[w]++
	}

	list := make([]models.KeywordCount, len(order))
	for i, w := range order {
		list[i] = models.KeywordCount{Word: w, Count: freq[w]}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Count > list[j].Count })
	if n > len(list) {
		n = len(list)
	}
	return list[:n]
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// DefaultStopWords is the French stop-word list applied to review text.
func DefaultStopWords() []string {
	return []string{
		"le", "la", "les", "un", "une", "de", "des", "et", "à", "en", "du", "pour",
		"par", "avec", "plus", "moins", "est", "sont", "ce", "cette", "ces", "sur",
		"dans", "se", "au", "aux", "que", "qui", "quoi", "où", "quand", "comment",
		"ne", "pas", "n'", "y", "il", "elle", "ils", "elles", "nous", "vous",
		"je", "tu", "me", "te", "mon", "ma", "mes", "ton", "ta", "tes", "son",
		"sa", "ses", "notre", "nos", "votre", "vos", "leur", "leurs", "donc", "ainsi",
		"bien", "très", "comme", "mais", "ou", "encore", "fait", "chez",
	}
}

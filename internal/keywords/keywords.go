// Package keywords turns free text into ranked bags of significant words and
// compares a job posting against a CV.
package keywords

import (
	"regexp"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultTopN is the bag size used when callers do not ask for one.
	DefaultTopN = 30
	// AllowedVocabularyTopN is the number of CV keywords handed to the
	// model as the permitted vocabulary.
	AllowedVocabularyTopN = 80

	minTokenLength = 3
)

var nonWordRun = regexp.MustCompile(`[^a-zåäö0-9]+`)

var stopwords = map[string]struct{}{
	// Swedish
	"och": {}, "att": {}, "det": {}, "som": {}, "för": {}, "med": {}, "på": {},
	"är": {}, "av": {}, "en": {}, "ett": {}, "i": {}, "till": {}, "vi": {},
	// English
	"the": {}, "and": {}, "or": {}, "to": {}, "of": {}, "in": {}, "for": {},
	"with": {}, "a": {}, "an": {}, "is": {}, "are": {}, "as": {}, "on": {}, "by": {},
}

// Comparison is the keyword overlap between a job posting and a CV.
type Comparison struct {
	JobKeywords []string `json:"job_keywords"`
	CVKeywords  []string `json:"cv_keywords"`
	Matched     []string `json:"matched"`
	Missing     []string `json:"missing"`
}

// IsStopword reports whether token is dropped during normalization.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}

// Normalize lowercases text and returns its significant tokens in text order,
// duplicates included. Lowercasing is rune by rune, so the Turkish dotted
// capital I becomes a plain "i" and stays part of the token.
func Normalize(text string) []string {
	cleaned := nonWordRun.ReplaceAllString(strings.ToLower(text), " ")

	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(tok) < minTokenLength || IsStopword(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Extract returns up to topN distinct tokens of text ordered by descending
// frequency. Equal counts keep first-seen order.
func Extract(text string, topN int) []string {
	if topN <= 0 || text == "" {
		return []string{}
	}

	tokens := Normalize(text)
	counts := make(map[string]int, len(tokens))
	var order []string
	for _, tok := range tokens {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	// order is already first-seen, so a stable sort on count alone keeps ties in place.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > topN {
		order = order[:topN]
	}
	return append([]string{}, order...)
}

// Compare extracts both bags with the same topN and computes the overlap.
// Matched and Missing are sorted alphabetically.
func Compare(jobText, cvText string, topN int) Comparison {
	jobKeywords := Extract(jobText, topN)
	cvKeywords := Extract(cvText, topN)

	cvSet := make(map[string]struct{}, len(cvKeywords))
	for _, kw := range cvKeywords {
		cvSet[kw] = struct{}{}
	}

	matched := []string{}
	missing := []string{}
	for _, kw := range jobKeywords {
		if _, ok := cvSet[kw]; ok {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	slices.Sort(matched)
	slices.Sort(missing)

	return Comparison{
		JobKeywords: jobKeywords,
		CVKeywords:  cvKeywords,
		Matched:     matched,
		Missing:     missing,
	}
}

// Package vocab implements the second-pass vocabulary extractor (C8): it
// tokenizes cleaned text, accumulates per-token statistics, and classifies
// suspicious tokens by the first matching heuristic rule.
package vocab

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
)

// SuspicionCode is one of the six OCR-garbage classification codes a
// candidate word can be tagged with.
type SuspicionCode string

const (
	CodeNone       SuspicionCode = ""
	CodeGarbage    SuspicionCode = "G"
	CodeRepeated   SuspicionCode = "R"
	CodeMixedCase  SuspicionCode = "M"
	CodeConfusable SuspicionCode = "C"
	CodeFragment   SuspicionCode = "F"
	CodeModern     SuspicionCode = "X"
)

// ContextChars bounds how much surrounding text is kept from a token's
// first occurrence.
const ContextChars = 40

// WordInfo is the accumulated record for one unique lowercase token.
type WordInfo struct {
	Lower        string
	FirstSeen    string // first-seen casing
	EverTitled   bool
	Frequency    int
	Context      string
	Suspicion    SuspicionCode
}

// tokenRe matches a run of letters with internal apostrophes, the same
// word shape the noise stripper later matches against so extraction and
// stripping agree on word boundaries.
var tokenRe = regexp.MustCompile(`[A-Za-z]+(?:'[A-Za-z]+)*`)

// orphanAffixes are short known suffix/prefix fragments that a ≤3-char
// token matching them is classified as a fragment rather than garbage.
var orphanAffixes = map[string]bool{
	"ing": true, "tion": true, "ed": true, "ly": true, "er": true,
	"es": true, "al": true, "un": true, "re": true, "de": true,
	"th": true, "ness": true,
}

// modernVocabulary is a small anachronism word list: modern terms that
// should not appear in historical OCR text.
var modernVocabulary = map[string]bool{
	"email": true, "website": true, "internet": true, "online": true,
	"smartphone": true, "app": true, "blog": true, "username": true,
	"wifi": true, "download": true,
}

// Extractor accumulates Word Info records across one or more documents.
type Extractor struct {
	words     map[string]*WordInfo
	whitelist func(string) bool
	clear     func(string) bool // optional: dictionary-based clearing
}

// New returns an Extractor with no whitelist or dictionary clearing.
func New() *Extractor {
	return &Extractor{words: make(map[string]*WordInfo)}
}

// WithWhitelist suppresses tokens for which isWhitelisted returns true:
// they are skipped during extraction, so they are neither counted nor
// emitted as candidates.
func (e *Extractor) WithWhitelist(isWhitelisted func(string) bool) *Extractor {
	e.whitelist = isWhitelisted
	return e
}

// WithDictionaryClear enables a final pass that clears a suspicious
// token's classification if isKnownWord reports it recognized by any
// loaded dictionary.
func (e *Extractor) WithDictionaryClear(isKnownWord func(string) bool) *Extractor {
	e.clear = isKnownWord
	return e
}

// Extract tokenizes text and folds every token into the running
// accumulation. Safe to call repeatedly (e.g. once per file) to build a
// batched aggregation.
func (e *Extractor) Extract(text string) {
	for _, loc := range tokenRe.FindAllStringIndex(text, -1) {
		token := text[loc[0]:loc[1]]
		lower := strings.ToLower(token)

		if e.whitelist != nil && e.whitelist(lower) {
			continue
		}

		info, ok := e.words[lower]
		if !ok {
			info = &WordInfo{
				Lower:     lower,
				FirstSeen: token,
				Context:   extractContext(text, loc[0], loc[1]),
			}
			info.Suspicion = classify(token)
			e.words[lower] = info
		}
		info.Frequency++
		if isTitleCase(token) {
			info.EverTitled = true
		}
	}
}

// Candidates returns every accumulated token still classified as
// suspicious after any dictionary-based clearing, sorted by descending
// frequency (ties by ascending lowercase word) for deterministic,
// most-relevant-first output.
func (e *Extractor) Candidates() []WordInfo {
	var out []WordInfo
	for _, info := range e.words {
		suspicion := info.Suspicion
		if suspicion == CodeNone {
			continue
		}
		if e.clear != nil && e.clear(info.Lower) {
			continue
		}
		out = append(out, *info)
	}
	sortByFrequencyDesc(out)
	return out
}

// WriteCandidates writes infos to path as a pipe-delimited vocabulary
// candidates file (FREQ | FLAGS | CATEGORY | WORD | CONTEXT), the format
// noise.Load reads back. FLAGS is currently always "-"; it is reserved for
// future per-word annotations.
func WriteCandidates(path string, infos []WordInfo) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("vocab: creating candidates file %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, info := range infos {
		fmt.Fprintf(w, "%d | %s | %s | %s | %s\n", info.Frequency, "-", info.Suspicion, info.FirstSeen, info.Context)
	}
	return w.Flush()
}

func sortByFrequencyDesc(infos []WordInfo) {
	for i := 1; i < len(infos); i++ {
		for j := i; j > 0 && (infos[j].Frequency > infos[j-1].Frequency ||
			(infos[j].Frequency == infos[j-1].Frequency && infos[j].Lower < infos[j-1].Lower)); j-- {
			infos[j], infos[j-1] = infos[j-1], infos[j]
		}
	}
}

func extractContext(text string, start, end int) string {
	ctxStart := start - ContextChars
	if ctxStart < 0 {
		ctxStart = 0
	}
	ctxEnd := end + ContextChars
	if ctxEnd > len(text) {
		ctxEnd = len(text)
	}
	return strings.ReplaceAll(text[ctxStart:ctxEnd], "\n", " ")
}

func isTitleCase(token string) bool {
	runes := []rune(token)
	if len(runes) == 0 {
		return false
	}
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return len(runes) > 1
}

var vowels = map[rune]bool{'a': true, 'e': true, 'i': true, 'o': true, 'u': true, 'y': true}

// classify assigns the first matching suspicion rule, checked in a fixed
// precedence order: garbage, repeated, mixed-case, confusable, fragment,
// modern.
func classify(token string) SuspicionCode {
	lower := strings.ToLower(token)
	runes := []rune(lower)

	if hasConsonantRun(runes, 4) {
		return CodeGarbage
	}
	if hasRepeatedChar(runes, 3) {
		return CodeRepeated
	}
	if isMixedCase(token) {
		return CodeMixedCase
	}
	if isConfusable(lower) {
		return CodeConfusable
	}
	if len(runes) <= 3 && isOrphanFragment(lower) {
		return CodeFragment
	}
	if modernVocabulary[lower] {
		return CodeModern
	}
	return CodeNone
}

func hasConsonantRun(runes []rune, n int) bool {
	run := 0
	for _, r := range runes {
		if unicode.IsLetter(r) && !vowels[r] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

func hasRepeatedChar(runes []rune, n int) bool {
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

// isMixedCase reports mid-word case switching beyond the first letter
// (e.g. "wOrld", "woRLd") — ordinary Title-case and ALLCAPS are excluded.
func isMixedCase(token string) bool {
	runes := []rune(token)
	if len(runes) < 3 {
		return false
	}
	sawLowerThenUpper := false
	sawUpperThenLower := false
	for i := 1; i < len(runes); i++ {
		if unicode.IsUpper(runes[i]) && unicode.IsLower(runes[i-1]) {
			sawLowerThenUpper = true
		}
		if i >= 2 && unicode.IsLower(runes[i]) && unicode.IsUpper(runes[i-1]) && unicode.IsUpper(runes[i-2]) {
			sawUpperThenLower = true
		}
	}
	return sawLowerThenUpper || sawUpperThenLower
}

var confusableRe = regexp.MustCompile(`[0-9][A-Za-z]|[A-Za-z][0-9]|rn`)

func isConfusable(lower string) bool {
	return confusableRe.MatchString(lower)
}

func isOrphanFragment(lower string) bool {
	return orphanAffixes[lower]
}

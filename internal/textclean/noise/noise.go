// Package noise strips known-bad tokens from a vocabulary-candidates file
// out of cleaned text (C10). The candidates file is produced by the
// vocabulary extractor (C8) and is the same pipe-delimited format read
// back here.
package noise

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ocrclean/ocrclean/internal/textclean/vocab"
)

// DefaultCategories are stripped when no explicit category set is given:
// garbage and repeated-character tokens.
var DefaultCategories = []string{"G", "R"}

// Set is the loaded, read-only collection of lowercase words to strip.
type Set struct {
	words map[string]bool
}

// Load reads a pipe-delimited vocabulary-candidates file (FREQ | FLAGS |
// CATEGORY | WORD | CONTEXT), keeps only rows whose CATEGORY is in
// categories, and lowercases the WORD column into the returned Set. Lines
// beginning with "#" are comments and skipped.
func Load(path string, categories []string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("noise: opening candidates file %q: %w", path, err)
	}
	defer f.Close()

	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[strings.TrimSpace(c)] = true
	}

	words := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) < 4 {
			continue // malformed row, skip rather than fail the whole load
		}
		category := strings.TrimSpace(fields[2])
		word := strings.TrimSpace(fields[3])
		if word == "" || !wanted[category] {
			continue
		}
		words[strings.ToLower(word)] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("noise: reading candidates file %q: %w", path, err)
	}

	return &Set{words: words}, nil
}

// Contains reports whether lower(word) is in the noise set.
func (s *Set) Contains(word string) bool {
	return s.words[strings.ToLower(word)]
}

// Len returns the number of distinct words in the set.
func (s *Set) Len() int {
	return len(s.words)
}

var tokenRe = regexp.MustCompile(`[A-Za-z]+(?:'[A-Za-z]+)*`)

// multiSpaceRe collapses runs of spaces left behind by stripping, without
// touching newlines (those are paragraph structure, not noise).
var multiSpaceRe = regexp.MustCompile(`  +`)

// Strip replaces every token found in s with a single space, using the
// same word-boundary regex as the vocabulary extractor (vocab.tokenRe),
// then collapses the resulting runs of spaces.
func (s *Set) Strip(text string) string {
	stripped := tokenRe.ReplaceAllStringFunc(text, func(tok string) string {
		if s.Contains(tok) {
			return " "
		}
		return tok
	})
	return multiSpaceRe.ReplaceAllString(stripped, " ")
}

// FromCandidates builds a noise Set directly from already-extracted
// vocab.WordInfo records (e.g. within a single-process run that never
// materializes the intermediate file), filtered to categories.
func FromCandidates(infos []vocab.WordInfo, categories []string) *Set {
	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}
	words := make(map[string]bool)
	for _, info := range infos {
		if wanted[string(info.Suspicion)] {
			words[info.Lower] = true
		}
	}
	return &Set{words: words}
}

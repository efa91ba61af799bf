// Package triage computes structural quality metrics for a document in a
// single O(chars) pass and classifies it into {process, review, reject}
// (C5). Triage never modifies the text; it only judges it.
package triage

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// Action is the triage disposition for a document.
type Action string

const (
	ActionProcess Action = "process"
	ActionReview  Action = "review"
	ActionReject  Action = "reject"
)

// Reject/review reason strings, in the order they are checked. Problem
// strings are appended to Result.Problems in this order.
const (
	ReasonLowAlphaRatio  = "low_alpha_ratio"
	ReasonNonEnglish     = "non_english"
	ReasonTooShort       = "too_short"
	ReasonCatalogIndex   = "catalog_index"
	ReasonMultiColumn    = "multi_column"
	ReasonFragmented     = "fragmented"
)

// Thresholds holds the configurable triage cutoffs. Zero value is NOT
// safe to use directly — call DefaultThresholds().
type Thresholds struct {
	MinAlphaRatio       float64
	MinCharCount        int
	MaxListPatternRatio float64
	MaxLineLengthCV     float64
	MaxFragmentRatio    float64
}

// DefaultThresholds returns the documented default cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinAlphaRatio:       0.6,
		MinCharCount:        500,
		MaxListPatternRatio: 0.3,
		MaxLineLengthCV:     1.5,
		MaxFragmentRatio:    0.4,
	}
}

// Metrics are the per-document structural measurements used for triage.
type Metrics struct {
	LineCount         int
	CharCount         int
	AlphaRatio        float64
	MeanWordsPerLine  float64
	LineLengthCV      float64
	FragmentRatio     float64
	ListPatternRatio  float64
}

// Result is the full triage judgment for one document.
type Result struct {
	Action          Action
	Problems        []string
	Metrics         Metrics
	DetectedLang    string
	LangConfidence  float64
	IsEnglish       bool
}

// catalogLineRe matches "NAME, NAME, YEAR, NUM" catalogue lines and
// trailingDigitsRe (applied to lines of at most 24 bytes) matches short
// lines ending in digits: the two list-pattern line shapes triage looks for.
var (
	catalogLineRe = regexp.MustCompile(`^[A-Z][a-zA-Z'-]+,\s*[A-Z][a-zA-Z'-]+,\s*\d{3,4},\s*\d+\s*$`)
	trailingDigitsRe = regexp.MustCompile(`^.{0,40}\d+\s*$`)
)

// Triager classifies documents using a fixed set of thresholds.
type Triager struct {
	Thresholds Thresholds
}

// New returns a Triager using DefaultThresholds.
func New() *Triager {
	return &Triager{Thresholds: DefaultThresholds()}
}

// NewWithThresholds returns a Triager using custom thresholds, e.g. loaded
// from config.
func NewWithThresholds(t Thresholds) *Triager {
	return &Triager{Thresholds: t}
}

// Evaluate computes metrics over text in a single pass and combines them
// with the language-detection result to produce a triage Result. It does
// not re-run language detection; callers pass in C3's verdict since
// triage and language detection both need the same normalized text but
// must not duplicate the sampling work.
func (tg *Triager) Evaluate(text string, isEnglish bool, lang string, langConfidence float64) Result {
	m := computeMetrics(text)

	res := Result{
		Metrics:        m,
		DetectedLang:   lang,
		LangConfidence: langConfidence,
		IsEnglish:      isEnglish,
	}

	t := tg.Thresholds

	// Reject checks, in spec-mandated order.
	switch {
	case m.AlphaRatio < t.MinAlphaRatio:
		res.Problems = append(res.Problems, ReasonLowAlphaRatio)
	}
	if !isEnglish {
		res.Problems = append(res.Problems, ReasonNonEnglish)
	}
	if m.CharCount < t.MinCharCount {
		res.Problems = append(res.Problems, ReasonTooShort)
	}
	if m.ListPatternRatio > t.MaxListPatternRatio {
		res.Problems = append(res.Problems, ReasonCatalogIndex)
	}

	// Review checks.
	if m.LineLengthCV > t.MaxLineLengthCV {
		res.Problems = append(res.Problems, ReasonMultiColumn)
	}
	if m.FragmentRatio > t.MaxFragmentRatio {
		res.Problems = append(res.Problems, ReasonFragmented)
	}

	res.Action = classify(res.Problems)
	return res
}

// rejectReasons identifies which problem strings trigger a hard reject
// versus a review flag.
var rejectReasons = map[string]bool{
	ReasonLowAlphaRatio: true,
	ReasonNonEnglish:    true,
	ReasonTooShort:      true,
	ReasonCatalogIndex:  true,
}

func classify(problems []string) Action {
	for _, p := range problems {
		if rejectReasons[p] {
			return ActionReject
		}
	}
	if len(problems) > 0 {
		return ActionReview
	}
	return ActionProcess
}

func computeMetrics(text string) Metrics {
	if text == "" {
		return Metrics{}
	}

	lines := strings.Split(text, "\n")
	lineCount := len(lines)

	var alphaCount, nonSpaceCount, charCount int
	var lineLengths []int
	var totalWords int
	var fragmentLines int
	var listPatternLines int
	var nonEmptyLines int

	for _, line := range lines {
		lineRunes := []rune(line)
		charCount += len(lineRunes) + 1 // +1 accounts for the trailing newline

		trimmed := strings.TrimSpace(line)
		words := strings.Fields(trimmed)

		for _, r := range lineRunes {
			if !unicode.IsSpace(r) {
				nonSpaceCount++
			}
			if unicode.IsLetter(r) {
				alphaCount++
			}
		}

		if trimmed != "" {
			nonEmptyLines++
			lineLengths = append(lineLengths, len(lineRunes))
			totalWords += len(words)

			if len(words) <= 3 {
				fragmentLines++
			}
			if isListPatternLine(trimmed) {
				listPatternLines++
			}
		}
	}
	// computeMetrics counted one trailing newline per line including the
	// last, which has none; correct for that single off-by-one.
	if charCount > 0 {
		charCount--
	}

	m := Metrics{
		LineCount: lineCount,
		CharCount: charCount,
	}

	if nonSpaceCount > 0 {
		m.AlphaRatio = float64(alphaCount) / float64(nonSpaceCount)
	}
	if lineCount > 0 {
		m.MeanWordsPerLine = float64(totalWords) / float64(lineCount)
		m.FragmentRatio = float64(fragmentLines) / float64(lineCount)
		m.ListPatternRatio = float64(listPatternLines) / float64(lineCount)
	}
	if len(lineLengths) > 1 {
		m.LineLengthCV = coefficientOfVariation(lineLengths)
	}

	return m
}

func isListPatternLine(line string) bool {
	if catalogLineRe.MatchString(line) {
		return true
	}
	if len(line) <= 24 && trailingDigitsRe.MatchString(line) {
		return true
	}
	return false
}

func coefficientOfVariation(lengths []int) float64 {
	n := float64(len(lengths))
	var sum float64
	for _, l := range lengths {
		sum += float64(l)
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}
	var sqDiffSum float64
	for _, l := range lengths {
		d := float64(l) - mean
		sqDiffSum += d * d
	}
	stddev := math.Sqrt(sqDiffSum / n)
	return stddev / mean
}

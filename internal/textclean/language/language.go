// Package language implements the English/non-English decision (C3). It
// samples at most the first 10,000 characters of the normalized document
// and classifies the dominant language using stopword frequency rather
// than a statistical language model. Detection never fails: when the
// sample is too short to be confident, English is assumed, since the
// input corpus is expected to be overwhelmingly English-language sources.
package language

import (
	"strings"
)

// DefaultSampleChars bounds how much of a document is inspected.
const DefaultSampleChars = 10000

// DefaultConfidenceThreshold is the minimum confidence required to accept a
// document as English.
const DefaultConfidenceThreshold = 0.5

// Result is the outcome of classifying a document's primary language.
type Result struct {
	IsEnglish  bool
	Lang       string // ISO-ish short code: "eng", "fra", "deu", "lat"
	Confidence float64
}

// Detector classifies documents by their dominant stopword language. It is
// stateless and safe to share across worker goroutines.
type Detector struct {
	SampleChars          int
	ConfidenceThreshold  float64
}

// New returns a Detector configured with the documented defaults.
func New() *Detector {
	return &Detector{
		SampleChars:         DefaultSampleChars,
		ConfidenceThreshold: DefaultConfidenceThreshold,
	}
}

// languageOrder fixes the iteration order used when scoring and breaking
// ties, so Detect's result never depends on Go's randomized map order.
var languageOrder = []string{"eng", "fra", "deu", "lat"}

// stopwords maps an ISO-ish language code to a set of short, extremely
// frequent function words. Frequency-counting these over a sample is a
// cheap, deterministic proxy for language identity — no model, no
// training data, just closed word lists.
var stopwords = map[string]map[string]bool{
	"eng": setOf("the", "and", "of", "to", "in", "a", "is", "that", "it",
		"was", "for", "on", "as", "with", "his", "he", "be", "at", "by",
		"this", "had", "not", "are", "but", "from", "or", "have", "an",
		"they", "which", "one", "you", "were", "her", "all", "she"),
	"fra": setOf("le", "la", "les", "de", "des", "et", "un", "une", "du",
		"est", "que", "qui", "pour", "dans", "ce", "il", "elle", "pas",
		"sur", "avec", "vous", "nous", "son", "sa", "ses", "au", "aux",
		"mais", "ne", "se", "plus", "par"),
	"deu": setOf("der", "die", "das", "und", "ist", "ein", "eine", "nicht",
		"mit", "den", "von", "zu", "auf", "für", "im", "dem", "des",
		"war", "sich", "sind", "auch", "als", "einem", "einer", "aber",
		"dass", "wie", "wird", "werden"),
	"lat": setOf("et", "in", "est", "qui", "non", "ad", "quod", "cum",
		"sed", "ut", "sunt", "esse", "ex", "per", "de", "quam", "quae",
		"atque", "ab", "hoc", "hic", "si", "nec"),
}

func setOf(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// wordSplitFields is a small tokenizer: runs of letters/apostrophes become
// one lowercase token each.
func wordSplitFields(s string) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '\'':
			cur.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return out
}

// Detect samples the first SampleChars runes of text and returns a
// language Result. When the sample contains too few tokenized words to be
// confident, it conservatively assumes English.
func (d *Detector) Detect(text string) Result {
	sample := firstRunes(text, d.SampleChars)
	words := wordSplitFields(sample)

	if len(words) < 20 {
		return Result{IsEnglish: true, Lang: "eng", Confidence: 1.0}
	}

	scores := make(map[string]int, len(stopwords))
	total := 0
	for _, w := range words {
		for lang, set := range stopwords {
			if set[w] {
				scores[lang]++
				total++
			}
		}
	}

	if total == 0 {
		// No recognizable stopwords from any language: conservative default.
		return Result{IsEnglish: true, Lang: "eng", Confidence: d.ConfidenceThreshold}
	}

	bestLang, bestScore := "eng", 0
	for _, lang := range languageOrder {
		if score := scores[lang]; score > bestScore {
			bestLang, bestScore = lang, score
		}
	}

	confidence := float64(bestScore) / float64(total)
	isEnglish := bestLang == "eng" && confidence >= d.ConfidenceThreshold

	return Result{
		IsEnglish:  isEnglish,
		Lang:       bestLang,
		Confidence: confidence,
	}
}

func firstRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

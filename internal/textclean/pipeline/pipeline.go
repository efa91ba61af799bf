// Package pipeline wires the individual cleanup stages (C2-C7, optionally
// C10) into the single per-document pass the driver (C11) runs on every
// worker: normalize -> detect language -> triage -> strip boilerplate ->
// unwrap -> apply OCR patterns -> [optional strip noise].
package pipeline

import (
	"github.com/ocrclean/ocrclean/internal/textclean/boilerplate"
	"github.com/ocrclean/ocrclean/internal/textclean/language"
	"github.com/ocrclean/ocrclean/internal/textclean/noise"
	"github.com/ocrclean/ocrclean/internal/textclean/normalize"
	"github.com/ocrclean/ocrclean/internal/textclean/ocrengine"
	"github.com/ocrclean/ocrclean/internal/textclean/patterns"
	"github.com/ocrclean/ocrclean/internal/textclean/triage"
	"github.com/ocrclean/ocrclean/internal/textclean/unwrap"
)

// CleanupResult is the combined outcome of running the full pipeline over
// one document: the cleaned text, substitution and boilerplate statistics,
// and the triage verdict the driver needs for reporting.
type CleanupResult struct {
	Text               string
	BytesRead          int
	TotalSubstitutions int
	SubstitutionsByCat map[patterns.Category]int
	ContextMatches     map[string]int
	BoilerplateRegions []boilerplate.StrippedRegion
	TotalCharsStripped int
	Triage             triage.Result
	UnwrapStats        unwrap.Stats
	Rejected           bool
	RejectReason       string
}

// Pipeline holds the read-only, process-wide resources every worker
// shares: the compiled pattern table, triage thresholds, language
// detector, and (optionally) a noise set. All fields are safe for
// concurrent use once constructed.
type Pipeline struct {
	table      *patterns.Table
	engine     *ocrengine.Engine
	detector   *language.Detector
	triager    *triage.Triager
	stripper   *boilerplate.Stripper
	unwrapper  *unwrap.Unwrapper
	noiseSet   *noise.Set // nil disables the optional C10 stage
}

// Option configures a Pipeline at construction time.
type Option func(*Pipeline)

// WithTriageThresholds overrides the default triage cutoffs.
func WithTriageThresholds(t triage.Thresholds) Option {
	return func(p *Pipeline) { p.triager = triage.NewWithThresholds(t) }
}

// WithLanguageDetector overrides the default language.Detector, e.g. to
// change SampleChars or ConfidenceThreshold.
func WithLanguageDetector(d *language.Detector) Option {
	return func(p *Pipeline) { p.detector = d }
}

// WithDictionaryUnwrap enables compound-aware dehyphenation by backing the
// unwrapper with a dictionary lookup.
func WithDictionaryUnwrap(lookup unwrap.DictionaryLookup) Option {
	return func(p *Pipeline) { p.unwrapper = unwrap.WithDictionary(lookup) }
}

// WithNoiseSet enables the optional C10 stage, stripping any token in set
// after OCR pattern substitution.
func WithNoiseSet(set *noise.Set) Option {
	return func(p *Pipeline) { p.noiseSet = set }
}

// New constructs a Pipeline bound to table, the process-wide pattern
// table loaded once via patterns.Load / patterns.MustLoad.
func New(table *patterns.Table, opts ...Option) *Pipeline {
	p := &Pipeline{
		table:     table,
		engine:    ocrengine.New(table),
		detector:  language.New(),
		triager:   triage.New(),
		stripper:  boilerplate.New(),
		unwrapper: unwrap.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the full per-document pipeline on raw bytes read from disk
// and returns the combined CleanupResult. Run never returns an error:
// every stage is defined to be total (normalize never fails; triage only
// judges; the driver decides what a rejected Result means for output).
func (p *Pipeline) Run(raw []byte) CleanupResult {
	res := CleanupResult{BytesRead: len(raw)}

	decoded := normalize.DecodeBytes(raw)
	normalized := normalize.Normalize(decoded)
	text := normalized.Text

	langResult := p.detector.Detect(text)

	triageResult := p.triager.Evaluate(text, langResult.IsEnglish, langResult.Lang, langResult.Confidence)
	res.Triage = triageResult

	if triageResult.Action == triage.ActionReject {
		res.Rejected = true
		res.RejectReason = triageResult.Problems[0]
		res.Text = text
		return res
	}

	boilResult := p.stripper.Strip(text)
	res.BoilerplateRegions = boilResult.StrippedRegions
	res.TotalCharsStripped = boilResult.TotalCharsStripped
	text = boilResult.Text

	unwrapResult := p.unwrapper.Unwrap(text)
	res.UnwrapStats = unwrapResult.Stats
	text = unwrapResult.Text

	ocrResult := p.engine.Clean(text)
	res.TotalSubstitutions = ocrResult.TotalSubstitutions
	res.SubstitutionsByCat = ocrResult.SubstitutionsByCat
	res.ContextMatches = ocrResult.ContextMatches
	text = ocrResult.Text

	if p.noiseSet != nil {
		text = p.noiseSet.Strip(text)
	}

	res.Text = text
	return res
}

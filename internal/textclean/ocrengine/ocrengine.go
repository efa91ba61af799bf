// Package ocrengine applies the patterns.Table (C1) to document text in
// table order, counting substitutions per category. It consults no semantic
// context — that separation is the reason patterns.ContextPattern exists: a
// context pattern only counts, it never substitutes.
package ocrengine

import (
	"github.com/ocrclean/ocrclean/internal/textclean/patterns"
)

// Result is the outcome of applying the OCR pattern table to one document.
type Result struct {
	Text                  string
	TotalSubstitutions    int
	SubstitutionsByCat    map[patterns.Category]int
	ContextMatches        map[string]int // context pattern name -> count
}

// Engine applies an immutable patterns.Table to document text.
type Engine struct {
	table *patterns.Table
}

// New returns an Engine bound to table. Engines are cheap and stateless
// beyond the shared, read-only table, so one per worker goroutine (or one
// shared across all of them) is equally correct.
func New(table *patterns.Table) *Engine {
	return &Engine{table: table}
}

// Clean applies every pattern in table order, accumulating substitution
// counts by category, then counts (but does not apply) every context
// pattern. On input already free of the tracked errors, Clean returns text
// unchanged and TotalSubstitutions == 0.
func (e *Engine) Clean(text string) Result {
	res := Result{
		SubstitutionsByCat: make(map[patterns.Category]int),
		ContextMatches:     make(map[string]int),
	}

	for _, p := range e.table.Ordered() {
		matches := p.Regex.FindAllStringIndex(text, -1)
		if len(matches) == 0 {
			continue
		}
		text = p.Regex.ReplaceAllString(text, p.Replacement)
		res.SubstitutionsByCat[p.Category] += len(matches)
		res.TotalSubstitutions += len(matches)
	}

	for _, cp := range e.table.Contexts() {
		if n := len(cp.Regex.FindAllStringIndex(text, -1)); n > 0 {
			res.ContextMatches[cp.Name] = n
		}
	}

	res.Text = text
	return res
}

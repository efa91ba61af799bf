// Package patterns holds the compile-time-known, ordered OCR correction
// tables used by the cleanup pipeline. Patterns are declared as static data
// (category, name, match, replacement) and compiled exactly once into an
// immutable table; callers never mutate a Table after Load returns it.
//
// Order is significant: long-s fixes run before li/h fixes because later
// patterns rely on earlier ones having already produced a recognisable word
// (see Table.Ordered and the rationale on orderedCategories).
package patterns

import (
	"fmt"
	"regexp"
	"sync"
)

// Category labels an OCR pattern for reporting and per-category
// accounting. Context patterns carry no category; they are reported by name.
type Category string

// The nine pattern categories an OCR substitution pattern can belong to.
// orderedCategories applies the first eight; no table uses CategoryOther.
const (
	CategoryLongS      Category = "long_s"
	CategoryLiHConf    Category = "li_h_confusion"
	CategoryLlUConf    Category = "ll_U_confusion"
	CategoryRnMConf    Category = "rn_m_confusion"
	CategoryLigature   Category = "ligature"
	CategoryWordJoin   Category = "word_join"
	CategoryWatermark  Category = "watermark"
	CategoryAnachron   Category = "anachronism"
	CategoryOther      Category = "other"
)

// orderedCategories fixes the pass order the OCR engine applies patterns in:
// long-s first (it creates recognisable words), then li/h and ll/U (which
// rely on words now being recognisable), then rn/m and ligature fixes, then
// word-joining, then watermark residue, anachronism stripping last.
var orderedCategories = []Category{
	CategoryLongS,
	CategoryLiHConf,
	CategoryLlUConf,
	CategoryRnMConf,
	CategoryLigature,
	CategoryWordJoin,
	CategoryWatermark,
	CategoryAnachron,
}

// Pattern is a single OCR correction: a category, a stable name used in
// reports and audits, a compiled regex, and its replacement text.
type Pattern struct {
	Category    Category
	Name        string
	Regex       *regexp.Regexp
	Replacement string
	Note        string
}

// ContextPattern is counted for audit but never substitutes. Its resolution
// depends on context the engine deliberately does not attempt to infer
// (historical spelling vs. OCR error), e.g. "publick", "shew", "lie".
type ContextPattern struct {
	Name  string
	Regex *regexp.Regexp
	Note  string
}

// spec is the uncompiled source of truth for Pattern: a declarative literal
// table, analogous to a YAML rule file but known at compile time since the
// patterns never change at runtime.
type spec struct {
	category    Category
	name        string
	match       string
	replacement string
	note        string
}

type contextSpec struct {
	name  string
	match string
	note  string
}

// Table is the immutable, ordered collection of compiled patterns and
// context patterns produced by Load.
type Table struct {
	ordered  []Pattern          // in category-then-authored order
	byName   map[string]Category
	contexts []ContextPattern
}

// Ordered returns the patterns in the exact order the OCR engine must apply
// them.
func (t *Table) Ordered() []Pattern { return t.ordered }

// Contexts returns the context-only patterns (counted, never substituted).
func (t *Table) Contexts() []ContextPattern { return t.contexts }

// Categorize performs a constant-time lookup of a pattern's category by its
// stable name, for reporting. The second return value is false if no
// pattern with that name exists.
func (t *Table) Categorize(patternName string) (Category, bool) {
	c, ok := t.byName[patternName]
	return c, ok
}

var (
	loadOnce   sync.Once
	loaded     *Table
	loadErr    error
)

// Load compiles the static pattern table exactly once per process and
// returns the shared, read-only Table on every call. A malformed regex in
// the source table is a fatal configuration error: Load returns it so the
// caller can refuse to start.
func Load() (*Table, error) {
	loadOnce.Do(func() {
		loaded, loadErr = build()
	})
	return loaded, loadErr
}

// MustLoad calls Load and panics on error, for init paths where a
// malformed table should abort the process immediately rather than be
// handled per-call.
func MustLoad() *Table {
	t, err := Load()
	if err != nil {
		panic(err)
	}
	return t
}

func build() (*Table, error) {
	t := &Table{
		byName: make(map[string]Category),
	}

	for _, cat := range orderedCategories {
		specs := tableFor(cat)
		for _, s := range specs {
			re, err := regexp.Compile(s.match)
			if err != nil {
				return nil, fmt.Errorf("compiling pattern %q (%s): %w", s.name, s.category, err)
			}
			if _, dup := t.byName[s.name]; dup {
				return nil, fmt.Errorf("duplicate pattern name %q", s.name)
			}
			t.ordered = append(t.ordered, Pattern{
				Category:    s.category,
				Name:        s.name,
				Regex:       re,
				Replacement: s.replacement,
				Note:        s.note,
			})
			t.byName[s.name] = s.category
		}
	}

	for _, cs := range contextTable() {
		re, err := regexp.Compile(cs.match)
		if err != nil {
			return nil, fmt.Errorf("compiling context pattern %q: %w", cs.name, err)
		}
		t.contexts = append(t.contexts, ContextPattern{
			Name:  cs.name,
			Regex: re,
			Note:  cs.note,
		})
	}

	return t, nil
}

// tableFor returns the declarative pattern list for a single category.
// Each category's list is its own package variable so it stays
// independently reviewable.
func tableFor(cat Category) []spec {
	switch cat {
	case CategoryLongS:
		return longSPatterns
	case CategoryLiHConf:
		return liHPatterns
	case CategoryLlUConf:
		return llUPatterns
	case CategoryRnMConf:
		return rnMPatterns
	case CategoryLigature:
		return ligaturePatterns
	case CategoryWordJoin:
		return wordJoinPatterns
	case CategoryWatermark:
		return watermarkPatterns
	case CategoryAnachron:
		return anachronismPatterns
	default:
		return nil
	}
}

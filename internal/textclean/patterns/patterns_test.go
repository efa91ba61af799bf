package patterns

import "testing"

func TestLoad_ReturnsSameTableEveryCall(t *testing.T) {
	t1, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	t2, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if t1 != t2 {
		t.Fatalf("Load returned distinct tables on repeated calls; table must be compiled once and shared")
	}
}

func TestLoad_OrderIsAuthoredOrder(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	categoryRank := make(map[Category]int, len(orderedCategories))
	for i, cat := range orderedCategories {
		categoryRank[cat] = i
	}

	lastRank := -1
	for _, p := range table.Ordered() {
		rank, ok := categoryRank[p.Category]
		if !ok {
			t.Fatalf("pattern %q has category %q not listed in orderedCategories", p.Name, p.Category)
		}
		if rank < lastRank {
			t.Fatalf("pattern %q (category %q, rank %d) appears after a later-ranked category (rank %d); table order must follow orderedCategories", p.Name, p.Category, rank, lastRank)
		}
		lastRank = rank
	}
}

func TestLoad_NoDuplicatePatternNames(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	seen := map[string]bool{}
	for _, p := range table.Ordered() {
		if seen[p.Name] {
			t.Fatalf("duplicate pattern name %q", p.Name)
		}
		seen[p.Name] = true
	}
}

func TestCategorize(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cat, ok := table.Categorize("long_s_glyph")
	if !ok {
		t.Fatalf("expected long_s_glyph to be a known pattern name")
	}
	if cat != CategoryLongS {
		t.Fatalf("Categorize(long_s_glyph) = %q, want %q", cat, CategoryLongS)
	}

	if _, ok := table.Categorize("no_such_pattern"); ok {
		t.Fatalf("Categorize(no_such_pattern) should report ok=false")
	}
}

func TestMustLoad_DoesNotPanicOnValidTable(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("MustLoad panicked on a valid table: %v", r)
		}
	}()
	MustLoad()
}

func TestContexts_NeverEmpty(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(table.Contexts()) == 0 {
		t.Fatalf("expected at least one context pattern (publick, shew, etc.)")
	}
}

package noise

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ocrclean/ocrclean/internal/textclean/vocab"
)

func writeCandidates(t *testing.T, path string, lines []string) {
	t.Helper()
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing candidates fixture: %v", err)
	}
}

func TestLoad_FiltersByCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.txt")
	writeCandidates(t, path, []string{
		"# comment line",
		"12 | G | G | xqzpt | some context",
		"3 | R | R | aaabcd | other context",
		"9 | X | X | email | modern context",
	})

	set, err := Load(path, []string{"G", "R"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !set.Contains("xqzpt") {
		t.Fatalf("expected xqzpt (category G) to be in the set")
	}
	if !set.Contains("aaabcd") {
		t.Fatalf("expected aaabcd (category R) to be in the set")
	}
	if set.Contains("email") {
		t.Fatalf("category X should have been filtered out by default categories")
	}
	if set.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", set.Len())
	}
}

func TestLoad_DefaultCategories(t *testing.T) {
	if len(DefaultCategories) != 2 || DefaultCategories[0] != "G" || DefaultCategories[1] != "R" {
		t.Fatalf("DefaultCategories = %v, want [G R]", DefaultCategories)
	}
}

func TestStrip_ReplacesMatchingTokensAndCollapsesSpaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.txt")
	writeCandidates(t, path, []string{
		"5 | G | G | xqzpt | noise word",
	})
	set, err := Load(path, []string{"G"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := set.Strip("the xqzpt word appeared here")
	want := "the word appeared here"
	if got != want {
		t.Fatalf("Strip = %q, want %q", got, want)
	}
}

func TestStrip_CaseInsensitive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.txt")
	writeCandidates(t, path, []string{"5 | G | G | xqzpt | noise word"})
	set, err := Load(path, []string{"G"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := set.Strip("The XQZPT word.")
	if got != "The word." {
		t.Fatalf("Strip = %q, want %q", got, "The word.")
	}
}

func TestLoad_RoundTripsWithVocabWriteCandidates(t *testing.T) {
	e := vocab.New()
	e.Extract("the xqzpt word appeared here, and xqzpt showed up again")

	path := filepath.Join(t.TempDir(), "candidates.txt")
	if err := vocab.WriteCandidates(path, e.Candidates()); err != nil {
		t.Fatalf("WriteCandidates: %v", err)
	}

	set, err := Load(path, []string{"G"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !set.Contains("xqzpt") {
		t.Fatalf("expected xqzpt to round-trip through WriteCandidates into the noise set")
	}
}

func TestFromCandidates_BuildsSetFromWordInfo(t *testing.T) {
	infos := []vocab.WordInfo{
		{Lower: "xqzpt", Suspicion: vocab.CodeGarbage},
		{Lower: "house", Suspicion: vocab.CodeNone},
	}
	set := FromCandidates(infos, []string{"G"})

	if !set.Contains("xqzpt") {
		t.Fatalf("expected garbage-classified token in set")
	}
	if set.Contains("house") {
		t.Fatalf("clean token should not be in noise set")
	}
}

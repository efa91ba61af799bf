package dictionary

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDic(t *testing.T, dir, lang string, words []string) {
	t.Helper()
	content := "1\n"
	for _, w := range words {
		content += w + "\n"
	}
	if err := os.WriteFile(filepath.Join(dir, lang+".dic"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s.dic: %v", lang, err)
	}
}

func TestInit_LoadsAvailableLanguages(t *testing.T) {
	dir := t.TempDir()
	writeDic(t, dir, "en", []string{"house", "water/S"})
	writeDic(t, dir, "fr", []string{"maison"})

	svc := New()
	count, err := svc.Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if count != 2 {
		t.Fatalf("Init loaded %d languages, want 2", count)
	}
	if !svc.IsKnownWord("house") {
		t.Fatalf("expected house to be known")
	}
	if !svc.IsKnownWord("HOUSE") {
		t.Fatalf("expected case-insensitive match for HOUSE")
	}
	if !svc.IsKnownWord("water") {
		t.Fatalf("expected water to be known even with an affix flag suffix")
	}
	if svc.IsKnownWord("xyzzy") {
		t.Fatalf("unexpected false positive for xyzzy")
	}
}

func TestInit_MissingSingleLanguageFileIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	writeDic(t, dir, "en", []string{"house"})
	// fr.dic intentionally absent.

	svc := New()
	count, err := svc.Init(dir)
	if err != nil {
		t.Fatalf("Init should not fail when only some language files exist: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestInit_MissingDirectoryIsFatal(t *testing.T) {
	svc := New()
	_, err := svc.Init(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestInit_SecondCallFails(t *testing.T) {
	dir := t.TempDir()
	writeDic(t, dir, "en", []string{"house"})

	svc := New()
	if _, err := svc.Init(dir); err != nil {
		t.Fatalf("first Init: %v", err)
	}
	if _, err := svc.Init(dir); err == nil {
		t.Fatalf("expected second Init call to be rejected (one-shot barrier)")
	}
}

func TestWordLanguages(t *testing.T) {
	dir := t.TempDir()
	writeDic(t, dir, "en", []string{"pain"})
	writeDic(t, dir, "fr", []string{"pain"})

	svc := New()
	if _, err := svc.Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}

	langs := svc.WordLanguages("pain")
	if len(langs) != 2 {
		t.Fatalf("WordLanguages(pain) = %v, want both en and fr", langs)
	}
}

func TestWhitelist(t *testing.T) {
	dir := t.TempDir()
	writeDic(t, dir, "en", []string{"house"})
	wlPath := filepath.Join(dir, "whitelist.txt")
	if err := os.WriteFile(wlPath, []byte("# comment\ncustomword\n\n"), 0o644); err != nil {
		t.Fatalf("writing whitelist: %v", err)
	}

	svc := New()
	if _, err := svc.Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := svc.InitWhitelist(wlPath); err != nil {
		t.Fatalf("InitWhitelist: %v", err)
	}

	if !svc.IsWhitelisted("customword") {
		t.Fatalf("expected customword to be whitelisted")
	}
	if !svc.IsWhitelisted("CustomWord") {
		t.Fatalf("whitelist check should be case-insensitive")
	}
	if svc.IsWhitelisted("house") {
		t.Fatalf("house is in the dictionary, not the whitelist")
	}
}

package driver

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ocrclean/ocrclean/internal/textclean/patterns"
	"github.com/ocrclean/ocrclean/internal/textclean/pipeline"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPipeline(t *testing.T) *pipeline.Pipeline {
	t.Helper()
	table, err := patterns.Load()
	if err != nil {
		t.Fatalf("patterns.Load: %v", err)
	}
	return pipeline.New(table)
}

func TestDiscover_WalksNestedTxtFiles(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(inDir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	files := map[string]string{
		"a.txt":          "hello",
		"sub/b.txt":      "world",
		"ignore.me":      "skip this",
		"sub/ignore.csv": "skip this too",
	}
	for name, content := range files {
		full := filepath.Join(inDir, name)
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	pairs, err := Discover(inDir, outDir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("Discover found %d pairs, want 2: %+v", len(pairs), pairs)
	}

	var gotOutputs []string
	for _, p := range pairs {
		if !strings.HasSuffix(p.InputPath, ".txt") {
			t.Fatalf("non-.txt file discovered: %s", p.InputPath)
		}
		gotOutputs = append(gotOutputs, p.OutputPath)
	}
	wantA := filepath.Join(outDir, "a.txt")
	wantB := filepath.Join(outDir, "sub", "b.txt")
	found := map[string]bool{}
	for _, o := range gotOutputs {
		found[o] = true
	}
	if !found[wantA] || !found[wantB] {
		t.Fatalf("output paths = %v, want %v and %v", gotOutputs, wantA, wantB)
	}
}

func TestDiscover_EmptyDirectory(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	pairs, err := Discover(inDir, outDir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(pairs) != 0 {
		t.Fatalf("Discover on empty dir = %v, want none", pairs)
	}
}

func TestRun_ProcessesAllFilesAndWritesOutput(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	body := strings.Repeat("The firſt houſe stood quiet in the morning light, old and well kept.\n", 20)
	if err := os.WriteFile(filepath.Join(inDir, "book.txt"), []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	pairs, err := Discover(inDir, outDir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	d := New(testPipeline(t), testLogger(), nil, nil, nil, Config{})
	if err := d.Run(context.Background(), pairs, 2); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if d.Stats().FilesProcessed.Load() != 1 {
		t.Fatalf("FilesProcessed = %d, want 1", d.Stats().FilesProcessed.Load())
	}
	if d.Stats().FilesFailed.Load() != 0 {
		t.Fatalf("FilesFailed = %d, want 0", d.Stats().FilesFailed.Load())
	}

	out, err := os.ReadFile(filepath.Join(outDir, "book.txt"))
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	if strings.Contains(string(out), "ſ") {
		t.Fatalf("output still contains the long-s glyph: %q", string(out)[:60])
	}
}

func TestRun_TracksCategoryTotals(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	body := strings.Repeat("The firſt houſe stood quiet in the morning light, old and well kept.\n", 20)
	if err := os.WriteFile(filepath.Join(inDir, "book.txt"), []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	pairs, err := Discover(inDir, outDir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	d := New(testPipeline(t), testLogger(), nil, nil, nil, Config{})
	if err := d.Run(context.Background(), pairs, 1); err != nil {
		t.Fatalf("Run: %v", err)
	}

	totals := d.CategoryTotals()
	if totals["long_s"] == 0 {
		t.Fatalf("CategoryTotals()[long_s] = 0, want > 0: %v", totals)
	}
}

func TestRun_FailedReadIsCountedNotFatal(t *testing.T) {
	outDir := t.TempDir()
	pairs := []FilePair{
		{InputPath: filepath.Join(t.TempDir(), "missing.txt"), OutputPath: filepath.Join(outDir, "missing.txt")},
	}

	d := New(testPipeline(t), testLogger(), nil, nil, nil, Config{})
	if err := d.Run(context.Background(), pairs, 1); err != nil {
		t.Fatalf("Run should not return an error for a single failed file: %v", err)
	}
	if d.Stats().FilesFailed.Load() != 1 {
		t.Fatalf("FilesFailed = %d, want 1", d.Stats().FilesFailed.Load())
	}
}

func TestRun_OutputIndependentOfWorkerCount(t *testing.T) {
	inDir := t.TempDir()

	for i := 0; i < 5; i++ {
		name := strings.Repeat("x", 1) + "doc" + string(rune('a'+i)) + ".txt"
		body := strings.Repeat("The firſt houſe stood quiet in the evening light, old and well kept.\n", 15)
		if err := os.WriteFile(filepath.Join(inDir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}

	runWith := func(workers int) map[string]string {
		outDir := t.TempDir()
		pairs, err := Discover(inDir, outDir)
		if err != nil {
			t.Fatalf("Discover: %v", err)
		}
		d := New(testPipeline(t), testLogger(), nil, nil, nil, Config{})
		if err := d.Run(context.Background(), pairs, workers); err != nil {
			t.Fatalf("Run(workers=%d): %v", workers, err)
		}
		out := map[string]string{}
		for _, p := range pairs {
			data, err := os.ReadFile(filepath.Join(outDir, filepath.Base(p.InputPath)))
			if err != nil {
				t.Fatalf("reading output: %v", err)
			}
			out[filepath.Base(p.InputPath)] = string(data)
		}
		return out
	}

	single := runWith(1)
	parallel := runWith(4)

	if len(single) != len(parallel) {
		t.Fatalf("got %d outputs with 1 worker, %d with 4 workers", len(single), len(parallel))
	}
	for name, text := range single {
		if parallel[name] != text {
			t.Fatalf("output for %s differs between worker counts", name)
		}
	}
}

package report

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ocrclean/ocrclean/internal/textclean/boilerplate"
)

func TestJSONLWriter_AppendsOneRecordPerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rejected_files.jsonl")
	w, err := NewJSONLWriter(path)
	if err != nil {
		t.Fatalf("NewJSONLWriter: %v", err)
	}

	if err := w.Write(RejectedRecord{Path: "a.txt", Reason: "too_short"}); err != nil {
		t.Fatalf("Write 1: %v", err)
	}
	if err := w.Write(RejectedRecord{Path: "b.txt", Reason: "non_english"}); err != nil {
		t.Fatalf("Write 2: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening written file: %v", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var rec RejectedRecord
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unmarshal line 1: %v", err)
	}
	if rec.Path != "a.txt" || rec.Reason != "too_short" {
		t.Fatalf("line 1 = %+v, want path a.txt reason too_short", rec)
	}
}

func TestJSONLWriter_BoilerplateAndTriageRecordsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_boilerplate_stripped.jsonl")
	w, err := NewJSONLWriter(path)
	if err != nil {
		t.Fatalf("NewJSONLWriter: %v", err)
	}
	rec := BoilerplateRecord{
		Path: "book.txt",
		Regions: []boilerplate.StrippedRegion{
			{Category: "google_books", PatternName: "google_books_url", StartLine: 1, EndLine: 1, CharCount: 42},
		},
	}
	if err := w.Write(rec); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	var got BoilerplateRecord
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Regions) != 1 || got.Regions[0].PatternName != "google_books_url" {
		t.Fatalf("Regions = %+v, want one google_books_url region", got.Regions)
	}
}

func TestWriteAggregate_WritesValidIndentedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_cleanup_report.json")
	agg := Aggregate{
		RunID:              "test-run",
		GeneratedAt:        "2026-07-31T00:00:00Z",
		FilesProcessed:     10,
		FilesModified:      7,
		FilesFailed:        0,
		FilesRejected:      3,
		TotalSubstitutions: 120,
		TotalBytes:         4096,
		BoilerplateFiles:   2,
		BoilerplateChars:   512,
		PerCategoryTotals:  PerCategoryTotals{"long_s": 100, "li_h": 20},
	}

	if err := WriteAggregate(path, agg); err != nil {
		t.Fatalf("WriteAggregate: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading aggregate: %v", err)
	}
	var got Aggregate
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal aggregate: %v", err)
	}
	if !reflect.DeepEqual(got, agg) {
		t.Fatalf("round-tripped aggregate = %+v, want %+v", got, agg)
	}

	if entries, err := os.ReadDir(filepath.Dir(path)); err != nil {
		t.Fatalf("reading dir: %v", err)
	} else {
		for _, e := range entries {
			if e.Name() != "_cleanup_report.json" {
				t.Fatalf("leftover temp file %q, write-then-rename should leave only the final file", e.Name())
			}
		}
	}
}

func TestNewRunID_ReturnsDistinctIDs(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	if a == "" || b == "" {
		t.Fatalf("NewRunID returned an empty string")
	}
	if a == b {
		t.Fatalf("NewRunID returned the same ID twice: %q", a)
	}
}

func TestStamp_IsRFC3339UTC(t *testing.T) {
	s := Stamp()
	if s == "" {
		t.Fatalf("Stamp returned empty string")
	}
	if s[len(s)-1] != 'Z' {
		t.Fatalf("Stamp() = %q, want UTC (trailing Z)", s)
	}
}
